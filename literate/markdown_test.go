package literate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassMarkdown(t *testing.T) {
	m, err := Parse(payroll + `
SubtypeOf: Document`)
	require.NoError(t, err)

	md, more := m.Class("Payslip").Markdown(1000)
	assert.False(t, more)
	assert.True(t, strings.HasPrefix(md, "**Payslip**\n*the monthly pay of an employee*\n"))
	assert.Contains(t, md, "**Subtype of:** `Document`")
	assert.Contains(t, md, bullet+"`amount` required Money value: gross pay")

	md, _ = m.Class("Employee").Markdown(1000)
	assert.Contains(t, md, "__Core__ (required)")
	assert.Contains(t, md, bullet+"`manager` optional Employee reference: the employee they report to")
}

func TestSubjectMarkdownLimit(t *testing.T) {
	m, err := Parse(payroll)
	require.NoError(t, err)

	md, more := m.Markdown(2000)
	assert.False(t, more)
	assert.True(t, strings.HasPrefix(md, "__**Org**__\n*the organization model*\n"))
	assert.Contains(t, md, "**Finance**")
	assert.Contains(t, md, bullet+"**Contractor**: a person hired for a project")

	short, more := m.Markdown(10)
	assert.True(t, more)
	assert.Less(t, len(short), len(md))
}

func TestAnnotationMarkdown(t *testing.T) {
	a := Annotation{Label: "caution", Content: "handle with care", Emoji: "⚠️"}
	assert.Equal(t, "**⚠️ caution:** handle with care", a.Markdown())
	a.Emoji = ""
	assert.Equal(t, "**caution:** handle with care", a.Markdown())
}
