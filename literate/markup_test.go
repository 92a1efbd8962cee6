package literate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var markupCases = []struct {
	name  string
	input []string
	want  []string
}{
	{
		name: "headers",
		input: []string{
			"# Org - the organization model",
			"## Staffing",
			"_ Employee - a person who works here",
			"__ [Core] - required",
			"- [name] - full name (required String value)",
		},
		want: []string{
			"# Org - <<<the organization model>>> ; ",
			"## Staffing - <<<>>> ; ",
			"_ Employee - <<<a person who works here>>> ; ",
			"__ [Core] - <<<required>>> ; ",
			"- [name] - <<<full name>>> (required String value) ; ",
		},
	},
	{
		name: "elaboration",
		input: []string{
			"# Org - the model",
			"",
			"It describes the organization.",
			"It spans two lines.",
			"",
			"_ Employee",
		},
		want: []string{
			"# Org - <<<the model>>> ; ",
			"",
			"<<<It describes the organization.",
			"It spans two lines.>>> ; ",
			"",
			"_ Employee - <<<>>> ; ",
		},
	},
	{
		name: "header continued on the next line",
		input: []string{
			"# Org",
			"_ Employee - a person",
			"who works here",
		},
		want: []string{
			"# Org - <<<>>> ; ",
			"_ Employee - <<<a person",
			"who works here>>> ; ",
		},
	},
	{
		name: "annotations",
		input: []string{
			"# Org",
			"_ Employee",
			"Note: paid monthly",
			"on the first day",
			"SubtypeOf: Person",
		},
		want: []string{
			"# Org - <<<>>> ; ",
			"_ Employee - <<<>>> ; ",
			"Note: <<<paid monthly",
			"on the first day>>> ; ",
			"SubtypeOf: Person ; ",
		},
	},
	{
		name: "explicit span protects structure",
		input: []string{
			"# Org",
			"<<<Prose: with a colon",
			"- and a dash>>>",
		},
		want: []string{
			"# Org - <<<>>> ; ",
			"<<<Prose: with a colon",
			"- and a dash>>> ; ",
		},
	},
	{
		name: "sentinel",
		input: []string{
			"- [name] - full name",
			"=====",
			"Owner: HR department",
		},
		want: []string{
			"- [name] - <<<full name>>> ; ",
			"=====",
			"Owner: <<<HR department>>> ; ",
		},
	},
	{
		name: "prose ending in a semicolon",
		input: []string{
			"# Org",
			"",
			"It ends here ;",
		},
		want: []string{
			"# Org - <<<>>> ; ",
			"",
			"<<<It ends here ;>>> ; ",
		},
	},
	{
		name: "start marker in an annotation value",
		input: []string{
			"# Org",
			"note: use <<< carefully",
			"_ Employee",
		},
		want: []string{
			"# Org - <<<>>> ; ",
			"note: use <<< carefully",
			"_ Employee",
		},
	},
	{
		name: "unclosed span stays open",
		input: []string{
			"# Org",
			"<<<never closed",
			"more",
		},
		want: []string{
			"# Org - <<<>>> ; ",
			"<<<never closed",
			"more",
		},
	},
}

func TestMarkup(t *testing.T) {
	for _, c := range markupCases {
		t.Run(c.name, func(t *testing.T) {
			got := Markup(c.input)
			assert.Equal(t, c.want, got)
			assert.Len(t, got, len(c.input))
		})
	}
}

func TestMarkupIdempotent(t *testing.T) {
	for _, c := range markupCases {
		t.Run(c.name, func(t *testing.T) {
			once := Markup(c.input)
			assert.Equal(t, once, Markup(once))
		})
	}
}

func TestPreprocessorSideChannels(t *testing.T) {
	p := NewPreprocessor()
	for _, line := range []string{
		"# Org",
		"_ Employee",
		"Note: paid monthly",
		"on the first day",
		"SubtypeOf: Person",
	} {
		p.Feed(line)
	}
	p.Close()

	assert.Equal(t, []string{
		"# Org - <<<>>> ; ",
		"_ Employee - <<<>>> ; ",
	}, p.Headers())
	assert.Equal(t, []string{
		"Note: <<<paid monthly\non the first day>>> ; ",
		"SubtypeOf: Person ; ",
	}, p.Annotations())
}

func TestMarkupBlankLineEndsHeader(t *testing.T) {
	got := Markup([]string{
		"_ Employee - a person",
		"",
		"who works here",
	})
	assert.Equal(t, []string{
		"_ Employee - <<<a person>>> ; ",
		"",
		"<<<who works here>>> ; ",
	}, got)
}
