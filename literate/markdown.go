package literate

import (
	"fmt"
	"strings"
)

const bullet = "  • "

// Markdown renders the subject with its classes and child subjects until
// roughly limit bytes have been written. It reports whether anything was
// left out.
func (s *Subject) Markdown(limit int) (string, bool) {
	var b strings.Builder
	b.WriteString(heading(s.Level, s.Name))
	writeIntro(&b, s.OneLiner, s.Elaboration, s.Annotations)

	var more bool
	for _, c := range s.Classes {
		if b.Len() > limit {
			more = true
			break
		}
		b.WriteString(bullet)
		b.WriteString("**" + c.Name + "**")
		if c.OneLiner != "" {
			b.WriteString(": " + string(c.OneLiner))
		}
		b.WriteRune('\n')
	}

	for _, sub := range s.Subjects {
		if b.Len() > limit {
			more = true
			break
		}
		md, m := sub.Markdown(limit - b.Len())
		more = more || m
		b.WriteRune('\n')
		b.WriteString(md)
	}
	return b.String(), more
}

func heading(level int, text string) string {
	switch level {
	case 1:
		return "__**" + text + "**__\n"
	case 2:
		return "**" + text + "**\n"
	case 3:
		return "__" + text + "__\n"
	}
	return text + "\n"
}

func writeIntro(b *strings.Builder, one OneLiner, elaboration []Paragraph, annotations []Annotation) {
	if one != "" {
		b.WriteString("*" + string(one) + "*\n")
	}
	for _, p := range elaboration {
		b.WriteString(string(p))
		b.WriteString("\n\n")
	}
	for _, a := range annotations {
		b.WriteString(a.Markdown())
		b.WriteRune('\n')
	}
}

func (a Annotation) Markdown() string {
	label := a.Label
	if a.Emoji != "" {
		label = strings.TrimSpace(a.Emoji + " " + label)
	}
	return fmt.Sprintf("**%s:** %s", label, a.Content)
}

// Markdown renders the class with its cross references and attributes.
func (c *Class) Markdown(limit int) (string, bool) {
	var b strings.Builder
	b.WriteString("**" + c.Name + "**")
	if c.Kind != PlainClass {
		b.WriteString(" *(" + c.Kind.String() + ")*")
	}
	b.WriteRune('\n')
	writeIntro(&b, c.OneLiner, c.Elaboration, c.Annotations)

	refs := func(label string, rs []ClassRef) {
		if len(rs) == 0 {
			return
		}
		names := make([]string, len(rs))
		for i, r := range rs {
			names[i] = "`" + string(r) + "`"
		}
		fmt.Fprintf(&b, "**%s:** %s\n", label, strings.Join(names, ", "))
	}
	refs("Subtype of", c.SubtypeOf)
	refs("Based on", c.BasedOn)
	refs("Dependents", c.Dependents)
	if c.Plural != "" {
		fmt.Fprintf(&b, "**Plural:** %s\n", c.Plural)
	}
	if c.Abbreviation != "" {
		fmt.Fprintf(&b, "**Abbreviation:** %s\n", c.Abbreviation)
	}
	if c.Where != "" {
		fmt.Fprintf(&b, "**Where:** %s\n", c.Where)
	}

	var more bool
	for _, a := range c.Attributes {
		if b.Len() > limit {
			return b.String(), true
		}
		b.WriteString(bullet + a.line() + "\n")
	}
	for _, s := range c.Sections {
		if b.Len() > limit {
			more = true
			break
		}
		b.WriteRune('\n')
		md, m := s.Markdown(limit - b.Len())
		more = more || m
		b.WriteString(md)
	}
	return b.String(), more
}

func (s *AttributeSection) Markdown(limit int) (string, bool) {
	var b strings.Builder
	b.WriteString("__" + s.Name + "__")
	if s.Required {
		b.WriteString(" (required)")
	} else {
		b.WriteString(" (optional)")
	}
	b.WriteRune('\n')
	writeIntro(&b, s.OneLiner, s.Elaboration, s.Annotations)

	for _, a := range s.Attributes {
		if b.Len() > limit {
			return b.String(), true
		}
		b.WriteString(bullet + a.line() + "\n")
	}
	return b.String(), false
}

func (a *Attribute) Markdown(limit int) (string, bool) {
	var b strings.Builder
	b.WriteString(a.line() + "\n")
	for _, p := range a.Elaboration {
		if b.Len() > limit {
			return b.String(), true
		}
		b.WriteString(string(p))
		b.WriteString("\n\n")
	}
	for _, an := range a.Annotations {
		b.WriteString(an.Markdown())
		b.WriteRune('\n')
	}
	return b.String(), false
}

func (a *Attribute) line() string {
	s := "`" + a.Name + "`"
	if a.DataType != nil {
		s += " " + a.DataType.String()
	}
	if a.OneLiner != "" {
		s += ": " + string(a.OneLiner)
	}
	return s
}
