package literate

import (
	"strings"
	"unicode"
)

type LineKind uint8

const (
	BlankLine LineKind = iota
	HeaderLine
	AnnotationLine
	TextLine
)

func (k LineKind) String() string {
	switch k {
	case BlankLine:
		return "blank"
	case HeaderLine:
		return "header"
	case AnnotationLine:
		return "annotation"
	}
	return "text"
}

// Line is a classified line of notation. Only the fields belonging to
// Kind are set.
type Line struct {
	Kind LineKind

	// HeaderLine
	Header        string
	OneLiner      string
	Parenthetical string

	// AnnotationLine
	Label string
	Value string

	// TextLine
	Content string
}

const (
	startMarker = "<<<"
	endMarker   = ">>>"
	separator   = " ; "
	sentinel    = "====="
)

// Classify tags a single line. It has no state and the same line always
// classifies the same way.
func Classify(line string) Line {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Line{Kind: BlankLine}
	case headerMarker(trimmed) != "":
		return classifyHeader(trimmed)
	}
	if i := strings.IndexByte(line, ':'); i >= 0 {
		return Line{
			Kind:  AnnotationLine,
			Label: strings.TrimSpace(line[:i]),
			Value: strings.TrimSpace(line[i+1:]),
		}
	}
	return Line{Kind: TextLine, Content: line}
}

// headerMarker returns the structural prefix of line, one of "#".."#####"
// (any run of hashes), "__", "_" or "-". The marker must be followed by
// whitespace or the end of the line so prose like "_emphasis_" or
// "-1 degrees" is not mistaken for structure.
func headerMarker(line string) string {
	var marker string
	switch {
	case strings.HasPrefix(line, "#"):
		marker = line[:len(line)-len(strings.TrimLeft(line, "#"))]
	case strings.HasPrefix(line, "__"):
		marker = "__"
	case strings.HasPrefix(line, "_"):
		marker = "_"
	case strings.HasPrefix(line, "-"):
		marker = "-"
	default:
		return ""
	}
	rest := line[len(marker):]
	if rest == "" {
		if marker == "-" {
			return ""
		}
		return marker
	}
	if !unicode.IsSpace(rune(rest[0])) {
		return ""
	}
	return marker
}

func classifyHeader(line string) Line {
	l := Line{Kind: HeaderLine}
	rest := line

	// Text protected by markers is never searched for " - " or a
	// parenthetical.
	if i := strings.Index(rest, startMarker); i >= 0 {
		head := strings.TrimRight(rest[:i], " ")
		l.Header = strings.TrimSpace(strings.TrimSuffix(head, " -"))
		body := rest[i:]
		if j := strings.Index(body, endMarker); j >= 0 {
			l.OneLiner = body[:j+len(endMarker)]
			l.Parenthetical = trailingParenthetical(body[j+len(endMarker):])
		} else {
			l.OneLiner = body
		}
		return l
	}

	if p, ok := cutParenthetical(rest); ok {
		l.Parenthetical = p
		rest = strings.TrimSpace(rest[:strings.LastIndexByte(rest, '(')])
	}
	if i := strings.Index(rest, " - "); i >= 0 {
		l.Header = strings.TrimSpace(rest[:i])
		l.OneLiner = strings.TrimSpace(rest[i+len(" - "):])
	} else {
		l.Header = strings.TrimSpace(strings.TrimSuffix(rest, " -"))
	}
	return l
}

// cutParenthetical reports the contents of a "(...)" group closing line.
func cutParenthetical(line string) (string, bool) {
	line = strings.TrimRight(line, " \t")
	if !strings.HasSuffix(line, ")") {
		return "", false
	}
	open := strings.LastIndexByte(line, '(')
	if open < 0 {
		return "", false
	}
	inner := line[open+1 : len(line)-1]
	if strings.ContainsAny(inner, "()") {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

func trailingParenthetical(s string) string {
	p, ok := cutParenthetical(strings.TrimSpace(s))
	if !ok {
		return ""
	}
	return p
}

// unmark removes free text markers and a record separator from s.
func unmark(s string) string {
	s, _ = cutSeparator(s)
	s = strings.ReplaceAll(s, startMarker, "")
	s = strings.ReplaceAll(s, endMarker, "")
	return strings.TrimSpace(s)
}

// cutSeparator removes the record separator Markup appends. Only the exact
// " ; " suffix counts, so prose ending in " ;" keeps its semicolon.
func cutSeparator(line string) (string, bool) {
	if !strings.HasSuffix(line, separator) {
		return line, false
	}
	return strings.TrimRight(strings.TrimSuffix(line, separator), " \t"), true
}

// opensSpan reports whether line leaves a free text span open.
func opensSpan(line string) bool {
	return strings.LastIndex(line, startMarker) > strings.LastIndex(line, endMarker)
}

func isSentinel(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= len(sentinel) && strings.Trim(t, "=") == ""
}
