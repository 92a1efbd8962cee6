package literate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	classRe     = regexp.MustCompile(`^_\s+(?:(?i:(value\s*type))\s*:\s*)?(.+)$`)
	sectionRe   = regexp.MustCompile(`^__\s+(.+)$`)
	attributeRe = regexp.MustCompile(`^-\s+(.+)$`)
)

// Parser turns Literate Model notation into a Model. The zero value uses
// DefaultCasing.
type Parser struct {
	Casing Casing
}

// Parse parses text with the default Parser.
func Parse(text string) (*Model, error) {
	return (&Parser{}).Parse(text)
}

// ParseLines parses lines with the default Parser.
func ParseLines(lines []string) (*Model, error) {
	return (&Parser{}).ParseLines(lines)
}

func (p *Parser) Parse(text string) (*Model, error) {
	return p.ParseLines(SplitLines(text))
}

// ParseLines marks up lines and parses the result. Errors are always
// *ParseError and refer to lines by their position in lines.
func (p *Parser) ParseLines(lines []string) (*Model, error) {
	casing := p.Casing
	if casing == nil {
		casing = DefaultCasing
	}
	st := &parseState{
		casing: casing,
		orig:   lines,
		lines:  Markup(lines),
		model:  &Model{Subject{Level: 1}},
	}
	if err := st.run(); err != nil {
		return nil, err
	}
	return st.model, nil
}

// SplitLines splits text into lines, accepting "\r\n" line endings.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

type parseState struct {
	casing Casing
	orig   []string
	lines  []string
	pos    int

	model *Model
	// path holds the open subjects; path[0] is the model once its header
	// has been read and path[n] is at level n+1.
	path    []*Subject
	class   *Class
	section *AttributeSection
	attr    *Attribute
}

func (st *parseState) run() error {
	for st.pos < len(st.lines) {
		line, _ := cutSeparator(st.lines[st.pos])
		line = strings.TrimSpace(line)

		var err error
		switch {
		case line == "":
			st.pos++
		case isSentinel(line):
			st.class, st.section, st.attr = nil, nil, nil
			st.pos++
		case strings.HasPrefix(line, startMarker):
			err = st.parseElaboration()
		default:
			switch marker := headerMarker(line); {
			case strings.HasPrefix(marker, "#"):
				err = st.parseHeader(len(marker))
			case marker == "__":
				err = st.parseSection()
			case marker == "_":
				err = st.parseClass()
			case marker == "-":
				err = st.parseAttribute()
			default:
				err = st.parseField()
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (st *parseState) errorAt(i int, err error, format string, args ...interface{}) *ParseError {
	e := &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    i + 1,
		err:     err,
	}
	if i < len(st.orig) {
		e.Content = st.orig[i]
	}
	return e
}

// record consumes one logical record: a line plus any lines inside a free
// text span it opens, plus continuation text lines up to the record
// separator. It returns the lines without separators and the index of
// the first one.
func (st *parseState) record() ([]string, int, error) {
	start := st.pos
	var parts []string
	open := false
	for {
		if st.pos >= len(st.lines) {
			if open {
				return nil, start, st.errorAt(start, nil, "free text is never closed")
			}
			return parts, start, nil
		}
		raw := st.lines[st.pos]
		if len(parts) > 0 && !open && !continues(raw) {
			return parts, start, nil
		}
		st.pos++

		if open {
			if strings.Contains(raw, endMarker) {
				open = opensSpan(raw)
			}
		} else {
			open = opensSpan(raw)
		}
		body, terminated := raw, false
		if !open {
			body, terminated = cutSeparator(raw)
		}
		parts = append(parts, body)
		if terminated {
			return parts, start, nil
		}
	}
}

// continues reports whether raw carries on the record before it.
func continues(raw string) bool {
	line := strings.TrimSpace(raw)
	switch {
	case line == "", isSentinel(line), headerMarker(line) != "", strings.HasPrefix(line, startMarker):
		return false
	}
	return Classify(line).Kind == TextLine
}

// headerRecord reads a record and classifies it as one header line.
func (st *parseState) headerRecord() (Line, int, error) {
	parts, start, err := st.record()
	if err != nil {
		return Line{}, start, err
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return Classify(strings.Join(parts, " ")), start, nil
}

func (st *parseState) parseHeader(level int) error {
	l, start, err := st.headerRecord()
	if err != nil {
		return err
	}
	if level > MaxLevel {
		return st.errorAt(start, nil, "header level %d is deeper than %d", level, MaxLevel)
	}
	name := st.casing.UpperCamel(unbracket(l.Header[level:]))
	if name == "" {
		return st.errorAt(start, nil, "header has no name")
	}

	st.class, st.section, st.attr = nil, nil, nil
	if level == 1 {
		st.model.Name = name
		st.model.OneLiner = OneLiner(unmark(l.OneLiner))
		st.path = []*Subject{&st.model.Subject}
		return nil
	}

	if len(st.path) < level-1 {
		return st.errorAt(start, nil, "level %d header %q has no enclosing level %d subject", level, name, level-1)
	}
	sub := &Subject{
		Level:    level,
		Name:     name,
		OneLiner: OneLiner(unmark(l.OneLiner)),
	}
	parent := st.path[level-2]
	parent.Subjects = append(parent.Subjects, sub)
	st.path = append(st.path[:level-1], sub)
	return nil
}

func (st *parseState) parseClass() error {
	l, start, err := st.headerRecord()
	if err != nil {
		return err
	}
	m := classRe.FindStringSubmatch(l.Header)
	if m == nil {
		return st.errorAt(start, nil, "malformed class header")
	}
	if len(st.path) == 0 {
		return st.errorAt(start, nil, "class outside any subject")
	}

	c := &Class{
		Name:     st.casing.UpperCamel(unbracket(m[2])),
		OneLiner: OneLiner(unmark(l.OneLiner)),
		Plural:   l.Parenthetical,
	}
	if m[1] != "" {
		c.Kind = ValueType
	}
	if c.Name == "" {
		return st.errorAt(start, nil, "class has no name")
	}

	sub := st.path[len(st.path)-1]
	sub.Classes = append(sub.Classes, c)
	st.class, st.section, st.attr = c, nil, nil
	return nil
}

func (st *parseState) parseSection() error {
	l, start, err := st.headerRecord()
	if err != nil {
		return err
	}
	m := sectionRe.FindStringSubmatch(l.Header)
	if m == nil {
		return st.errorAt(start, nil, "malformed attribute section header")
	}
	if st.class == nil {
		return st.errorAt(start, nil, "attribute section outside any class")
	}

	s := &AttributeSection{Name: st.casing.UpperCamel(unbracket(m[1]))}
	if s.Name == "" {
		return st.errorAt(start, nil, "attribute section has no name")
	}

	oneLiner := unmark(l.OneLiner)
	switch strings.ToLower(l.Parenthetical) {
	case "required":
		s.Required = true
	case "optional":
	default:
		// "__ [Core] - required" carries the flag as the last word.
		i := strings.LastIndexAny(oneLiner, " \t") + 1
		switch strings.ToLower(oneLiner[i:]) {
		case "required":
			s.Required = true
			oneLiner = strings.TrimSpace(oneLiner[:i])
		case "optional":
			oneLiner = strings.TrimSpace(oneLiner[:i])
		}
	}
	s.OneLiner = OneLiner(oneLiner)

	st.class.Sections = append(st.class.Sections, s)
	st.section, st.attr = s, nil
	return nil
}

func (st *parseState) parseAttribute() error {
	l, start, err := st.headerRecord()
	if err != nil {
		return err
	}
	m := attributeRe.FindStringSubmatch(l.Header)
	if m == nil {
		return st.errorAt(start, nil, "malformed attribute header")
	}
	if st.class == nil {
		return st.errorAt(start, nil, "attribute outside any class")
	}

	a := &Attribute{
		Name:     st.casing.LowerCamel(unbracket(m[1])),
		OneLiner: OneLiner(unmark(l.OneLiner)),
	}
	if a.Name == "" {
		return st.errorAt(start, nil, "attribute has no name")
	}
	if l.Parenthetical != "" {
		clause, err := ParseDataTypeClause(l.Parenthetical)
		if err != nil {
			return st.errorAt(start, err, "malformed data type %q: %v", l.Parenthetical, err)
		}
		a.DataType = clause
	}

	if st.section != nil {
		st.section.Attributes = append(st.section.Attributes, a)
	} else {
		st.class.Attributes = append(st.class.Attributes, a)
	}
	st.attr = a
	return nil
}

func (st *parseState) parseElaboration() error {
	parts, _, err := st.record()
	if err != nil {
		return err
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	text := unmark(strings.Join(parts, "\n"))
	if text == "" {
		return nil
	}
	p := Paragraph(text)

	switch {
	case st.attr != nil:
		st.attr.Elaboration = append(st.attr.Elaboration, p)
	case st.section != nil:
		st.section.Elaboration = append(st.section.Elaboration, p)
	case st.class != nil:
		st.class.Elaboration = append(st.class.Elaboration, p)
	case len(st.path) > 0:
		sub := st.path[len(st.path)-1]
		sub.Elaboration = append(sub.Elaboration, p)
	default:
		// Prose ahead of the model header describes the model.
		st.model.Elaboration = append(st.model.Elaboration, p)
	}
	return nil
}

func (st *parseState) parseField() error {
	l, start, err := st.headerRecord()
	if err != nil {
		return err
	}
	if l.Kind != AnnotationLine {
		return nil
	}
	value := unmark(l.Value)

	switch key := normalizeLabel(l.Label); key {
	case "subtypeof", "basedon", "dependents", "plural", "abbreviation", "where":
		if st.class == nil {
			return st.errorAt(start, nil, "%s outside any class", l.Label)
		}
		switch key {
		case "subtypeof":
			st.class.SubtypeOf = append(st.class.SubtypeOf, st.refs(value)...)
		case "basedon":
			st.class.BasedOn = append(st.class.BasedOn, st.refs(value)...)
		case "dependents":
			st.class.Dependents = append(st.class.Dependents, st.refs(value)...)
		case "plural":
			st.class.Plural = value
		case "abbreviation":
			st.class.Abbreviation = value
		case "where":
			st.class.Where = value
		}
		return nil
	}

	emoji, label := cutEmoji(unmark(l.Label))
	a := Annotation{
		Label:   st.casing.LowerCamel(label),
		Content: OneLiner(value),
		Emoji:   emoji,
	}
	if a.Label == "" && a.Emoji == "" {
		return nil
	}

	switch {
	case st.attr != nil:
		st.attr.Annotations = append(st.attr.Annotations, a)
	case st.section != nil:
		st.section.Annotations = append(st.section.Annotations, a)
	case st.class != nil:
		st.class.Annotations = append(st.class.Annotations, a)
	case len(st.path) > 0:
		sub := st.path[len(st.path)-1]
		sub.Annotations = append(sub.Annotations, a)
	default:
		return st.errorAt(start, nil, "annotation %q outside any subject", l.Label)
	}
	return nil
}

// refs splits "Manager, Director and Clerk" into class references.
func (st *parseState) refs(value string) []ClassRef {
	var refs []ClassRef
	for _, name := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' }) {
		for _, part := range splitAnd(name) {
			if part = st.casing.UpperCamel(part); part != "" {
				refs = append(refs, ClassRef(part))
			}
		}
	}
	return refs
}

func splitAnd(s string) []string {
	var parts []string
	for {
		s = strings.TrimSpace(s)
		if rest, ok := cutPrefixFold(s, "and "); ok {
			s = rest
			continue
		}
		i := indexFold(s, " and ")
		if i < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:i])
		s = s[i+1:]
	}
}

func unbracket(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// cutEmoji splits leading pictographs from a label.
func cutEmoji(label string) (string, string) {
	i := strings.IndexFunc(label, func(r rune) bool {
		return !isEmojiRune(r)
	})
	if i < 0 {
		return label, ""
	}
	return strings.TrimSpace(label[:i]), strings.TrimSpace(label[i:])
}

func isEmojiRune(r rune) bool {
	switch {
	case unicode.Is(unicode.So, r):
		return true
	case r == '\u200d', r == '\ufe0f':
		return true
	case r >= 0x1f3fb && r <= 0x1f3ff:
		// skin tone modifiers
		return true
	}
	return false
}
