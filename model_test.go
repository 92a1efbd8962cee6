package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DiscordGophers/dr-literate/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgModel = `# Org - the organization model
## Staffing - the people
_ Employee - a person who works here
__ [Core] - required
- [name] - full name (required String value)
_ Contractor - a person hired for a project
## Finance
_ Payslip - the monthly pay of an employee
- [amount] - gross pay (Money value)`

func testBot(t *testing.T) *botState {
	p := filepath.Join(t.TempDir(), "org.lm")
	require.NoError(t, os.WriteFile(p, []byte(orgModel), 0o644))

	doc, err := source.Load(p)
	require.NoError(t, err)

	b := &botState{library: source.NewLibrary()}
	b.library.Add(doc)
	return b
}

func TestModel(t *testing.T) {
	b := testBot(t)

	cases := []struct {
		name  string
		query string
		found bool
		title string
	}{
		{"class", "Employee", true, "Org: Staffing.Employee"},
		{"attribute in section", "employee.name", true, "Org: Staffing.Employee.name"},
		{"document prefix", "org/Payslip amount", true, "Org: Finance.Payslip.amount"},
		{"whole document", "org/", true, "Model Org"},
		{"single search result", "project", true, "Org: Staffing.Contractor"},
		{"several search results", "person", false, `Error: 2 matches for "person"`},
		{"unknown document", "shop/Order", false, "Error: Not Found"},
		{"unknown node", "Warehouse", false, "Error: Not Found"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			embed, found := b.model(c.query)
			assert.Equal(t, c.found, found)
			assert.Equal(t, c.title, embed.Title)
			assert.NotEmpty(t, embed.Description)
		})
	}
}

func TestModelEmbedContent(t *testing.T) {
	b := testBot(t)

	embed, found := b.model("Employee")
	require.True(t, found)
	assert.Contains(t, embed.Description, "`name` required String value: full name")
	assert.True(t, strings.HasSuffix(embed.Footer.Text, "org.lm"))
	assert.Empty(t, embed.URL)

	embed, _ = b.model("person")
	assert.Contains(t, embed.Description, "`org/Staffing.Contractor` class")
	assert.Contains(t, embed.Description, "`org/Staffing.Employee` class")
}

func TestModelSharedAttribute(t *testing.T) {
	doc, err := source.FromText("org.lm", `# Org
## Staffing
_ Employee - a person who works here
- [name] - full name (String value)
_ Department - a unit of the org
- [name] - what the unit is called (String value)`)
	require.NoError(t, err)

	b := &botState{library: source.NewLibrary()}
	b.library.Add(doc)

	embed, found := b.model("name")
	assert.False(t, found)
	assert.Equal(t, `Error: 2 matches for "name"`, embed.Title)
	assert.Contains(t, embed.Description, "`org/Staffing.Department.name` attribute")
	assert.Contains(t, embed.Description, "`org/Staffing.Employee.name` attribute")

	embed, found = b.model("department.name")
	assert.True(t, found)
	assert.Equal(t, "Org: Staffing.Department.name", embed.Title)
}

func TestModelAlias(t *testing.T) {
	b := testBot(t)
	b.cfg.Aliases = map[string]string{
		"emp":   "org/Staffing.Employee",
		"money": "org/Finance",
	}

	cases := []struct {
		query string
		want  string
	}{
		{"emp", "org/Staffing.Employee"},
		{"EMP.name", "org/Staffing.Employee.name"},
		{"emp name", "org/Staffing.Employee name"},
		{"money/Payslip", "org/Finance/Payslip"},
		{"employee", "employee"},
		{" other.emp ", "other.emp"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, b.expandAlias(c.query), c.query)
	}

	embed, found := b.model("emp.name")
	assert.True(t, found)
	assert.Equal(t, "Org: Staffing.Employee.name", embed.Title)
}
