package literate

import (
	"strings"
	"unicode"
)

// Mode is what the preprocessor is currently collecting.
type Mode uint8

const (
	CollectingText Mode = iota
	CollectingHeader
	CollectingAnnotation
	// collectingCode releases a self-contained line without touching it.
	collectingCode
)

// structuralLabels hold references or names, never prose, so their values
// are not wrapped in markers.
var structuralLabels = map[string]bool{
	"subtypeof":     true,
	"basedon":       true,
	"dependents":    true,
	"subtyping":     true,
	"parenthetical": true,
	"plural":        true,
	"abbreviation":  true,
}

func normalizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '[' || r == ']' || r == '-' || r == '_' || unicode.IsSpace(r):
			return -1
		}
		return unicode.ToLower(r)
	}, label)
}

// Preprocessor inserts free text markers into notation so prose is never
// read as structure. Every input line produces exactly one output line,
// and running it over its own output changes nothing.
//
// A Preprocessor is not safe for concurrent use.
type Preprocessor struct {
	mode   Mode
	inSpan bool
	buf    []string
	out    []string

	headers     []string
	annotations []string
}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{mode: CollectingText}
}

// Markup runs lines through a fresh Preprocessor.
func Markup(lines []string) []string {
	p := NewPreprocessor()
	for _, line := range lines {
		p.Feed(line)
	}
	return p.Close()
}

// Feed processes the next input line.
func (p *Preprocessor) Feed(raw string) {
	if p.inSpan {
		p.feedSpan(raw)
		return
	}

	// A separator marks a record finished by an earlier pass.
	line, terminated := cutSeparator(raw)

	switch {
	case isSentinel(line):
		p.releaseAny()
		p.out = append(p.out, line)
		p.mode = CollectingText
		return
	case strings.HasPrefix(strings.TrimSpace(line), startMarker):
		p.releaseAny()
		p.mode = CollectingText
		p.buf = append(p.buf, line)
	default:
		p.feedClassified(line, Classify(line))
	}

	if terminated {
		p.releaseAny()
	} else if opensSpan(line) {
		p.inSpan = true
	}
}

func (p *Preprocessor) feedSpan(raw string) {
	line, terminated := raw, false
	if strings.Contains(raw, endMarker) {
		p.inSpan = opensSpan(raw)
		if !p.inSpan {
			line, terminated = cutSeparator(raw)
		}
	}
	p.buf = append(p.buf, line)
	if terminated {
		p.releaseAny()
	}
}

func (p *Preprocessor) feedClassified(line string, l Line) {
	switch l.Kind {
	case BlankLine:
		p.releaseAny(CollectingText)
		p.mode = CollectingText
		p.buf = append(p.buf, line)

	case TextLine:
		p.buf = append(p.buf, line)

	case AnnotationLine:
		p.releaseAny()
		if !structuralLabels[normalizeLabel(l.Label)] && !strings.Contains(l.Value, startMarker) {
			line = markValue(line)
		}
		p.mode = CollectingAnnotation
		p.buf = append(p.buf, line)

	case HeaderLine:
		p.releaseAny()
		if l.Parenthetical != "" {
			h := l.Header
			if l.OneLiner != "" {
				h += " - " + closeMarkers(l.OneLiner)
			}
			h += " (" + l.Parenthetical + ")"

			p.mode = collectingCode
			p.buf = append(p.buf, h)
			p.releaseAny()
			p.mode = CollectingText
			return
		}
		h := l.Header + " - " + l.OneLiner
		if !strings.Contains(l.OneLiner, startMarker) {
			h = l.Header + " - " + startMarker + l.OneLiner
		}
		p.mode = CollectingHeader
		p.buf = append(p.buf, h)
	}
}

// Close releases whatever is still buffered and returns the marked lines.
func (p *Preprocessor) Close() []string {
	p.releaseAny()
	return p.out
}

// Headers returns the header records released so far.
func (p *Preprocessor) Headers() []string { return p.headers }

// Annotations returns the annotation records released so far.
func (p *Preprocessor) Annotations() []string { return p.annotations }

// releaseAny flushes the buffer unless the current mode is excepted,
// closing the free text span and terminating the record.
func (p *Preprocessor) releaseAny(except ...Mode) {
	if len(p.buf) == 0 {
		return
	}
	for _, m := range except {
		if p.mode == m {
			return
		}
	}

	first, last := nonBlankBounds(p.buf)
	if first < 0 {
		// Only blank lines: nothing to protect.
		p.flush()
		return
	}

	// An explicit span left open by the input stays open so the parser
	// can report it.
	if !p.inSpan {
		switch p.mode {
		case CollectingText, CollectingHeader:
			if !strings.Contains(p.buf[first], startMarker) {
				p.buf[first] = insertStart(p.buf[first])
			}
			p.buf[last] = closeEnd(p.buf[last])
		case CollectingAnnotation:
			if strings.Contains(p.buf[first], startMarker) {
				p.buf[last] = closeEnd(p.buf[last])
			}
		}
		p.buf[last] = strings.TrimRight(p.buf[last], " \t") + separator
	}

	switch p.mode {
	case CollectingHeader, collectingCode:
		p.headers = append(p.headers, strings.Join(p.buf, "\n"))
	case CollectingAnnotation:
		p.annotations = append(p.annotations, strings.Join(p.buf, "\n"))
	}
	p.flush()
}

func (p *Preprocessor) flush() {
	p.out = append(p.out, p.buf...)
	p.buf = p.buf[:0]
}

// nonBlankBounds returns the first and last non-blank line, or -1, -1.
// Trailing blank lines stay outside the record.
func nonBlankBounds(lines []string) (int, int) {
	first, last := -1, -1
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last
}

// insertStart puts a start marker in front of the line's text, keeping
// its indentation.
func insertStart(line string) string {
	body := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(body)] + startMarker + body
}

func closeEnd(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.HasSuffix(line, endMarker) {
		return line
	}
	return line + endMarker
}

func closeMarkers(s string) string {
	if !strings.Contains(s, startMarker) {
		s = startMarker + s
	}
	return closeEnd(s)
}

// markValue puts a start marker in front of an annotation's value.
func markValue(line string) string {
	i := strings.IndexByte(line, ':') + 1
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i] + startMarker + line[i:]
}
