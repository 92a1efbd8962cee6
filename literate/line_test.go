package literate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		line string
		want Line
	}{
		{
			name: "empty",
			line: "",
			want: Line{Kind: BlankLine},
		},
		{
			name: "whitespace",
			line: " \t ",
			want: Line{Kind: BlankLine},
		},
		{
			name: "subject",
			line: "# Org - the organization model",
			want: Line{Kind: HeaderLine, Header: "# Org", OneLiner: "the organization model"},
		},
		{
			name: "subject without oneliner",
			line: "## Staffing",
			want: Line{Kind: HeaderLine, Header: "## Staffing"},
		},
		{
			name: "attribute with type",
			line: "- [name] - full name (required String value)",
			want: Line{Kind: HeaderLine, Header: "- [name]", OneLiner: "full name", Parenthetical: "required String value"},
		},
		{
			name: "value type",
			line: "_ ValueType: Money - an amount",
			want: Line{Kind: HeaderLine, Header: "_ ValueType: Money", OneLiner: "an amount"},
		},
		{
			name: "marked oneliner",
			line: "## Staffing - <<<the people - all of them>>>",
			want: Line{Kind: HeaderLine, Header: "## Staffing", OneLiner: "<<<the people - all of them>>>"},
		},
		{
			name: "marked oneliner with type",
			line: "- [boss] - <<<who (mostly) decides>>> (optional Employee reference)",
			want: Line{Kind: HeaderLine, Header: "- [boss]", OneLiner: "<<<who (mostly) decides>>>", Parenthetical: "optional Employee reference"},
		},
		{
			name: "annotation",
			line: "SubtypeOf: Manager, Director",
			want: Line{Kind: AnnotationLine, Label: "SubtypeOf", Value: "Manager, Director"},
		},
		{
			name: "annotation splits on first colon",
			line: "Note: see: the handbook",
			want: Line{Kind: AnnotationLine, Label: "Note", Value: "see: the handbook"},
		},
		{
			name: "text",
			line: "just some prose",
			want: Line{Kind: TextLine, Content: "just some prose"},
		},
		{
			name: "emphasis is not a class",
			line: "_emphasis_ is not a class",
			want: Line{Kind: TextLine, Content: "_emphasis_ is not a class"},
		},
		{
			name: "negative number is not an attribute",
			line: "-1 degrees: cold",
			want: Line{Kind: AnnotationLine, Label: "-1 degrees", Value: "cold"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Classify(c.line)
			assert.Equal(t, c.want, got)
			assert.Equal(t, got, Classify(c.line), "classification must not depend on earlier calls")
		})
	}
}

func TestCutSeparator(t *testing.T) {
	cases := []struct {
		line       string
		want       string
		terminated bool
	}{
		{"Owner: HR ; ", "Owner: HR", true},
		{"Owner: HR\t ; ", "Owner: HR", true},
		{"Owner: HR ;", "Owner: HR ;", false},
		{";", ";", false},
		{"a;b", "a;b", false},
		{"plain", "plain", false},
	}
	for _, c := range cases {
		got, terminated := cutSeparator(c.line)
		assert.Equal(t, c.want, got, c.line)
		assert.Equal(t, c.terminated, terminated, c.line)
	}
}

func TestIsSentinel(t *testing.T) {
	assert.True(t, isSentinel("====="))
	assert.True(t, isSentinel("  ========  "))
	assert.False(t, isSentinel("===="))
	assert.False(t, isSentinel("=====x"))
}
