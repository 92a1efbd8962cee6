package literate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payroll = `# Org - the organization model
## Staffing - the people
_ Employee - a person who works here
__ [Core] - required
- [name] - full name (required String value)
- [manager] - the employee they report to (optional Employee reference)
_ Contractor - a person hired for a project
## Finance
_ Payslip - the monthly pay of an employee
- [amount] - gross pay (Money value)`

func newTestIndex(t *testing.T) *Index {
	m, err := Parse(payroll)
	require.NoError(t, err)
	return NewIndex(m)
}

func TestNewIndex(t *testing.T) {
	ix := newTestIndex(t)

	// Org, Staffing, Employee, Core, name, manager, Contractor, Finance, Payslip, amount
	assert.Len(t, ix.Nodes, 10)
	assert.NotEmpty(t, ix.Keywords["person"])
	assert.Nil(t, ix.keywords)

	for _, n := range ix.Nodes {
		assert.Equal(t, len(n.Path), n.Depth)
		assert.Equal(t, n.Name, n.Path[len(n.Path)-1])
	}
}

func TestSearch(t *testing.T) {
	ix := newTestIndex(t)

	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "exact name",
			query: "employee",
			want:  []string{"Staffing.Employee"},
		},
		{
			name:  "exact title",
			query: "Employee.name",
			want:  []string{"Staffing.Employee.name"},
		},
		{
			name:  "keyword",
			query: "person",
			want:  []string{"Staffing.Contractor", "Staffing.Employee"},
		},
		{
			name:  "every word must match",
			query: "person project",
			want:  []string{"Staffing.Contractor"},
		},
		{
			name:  "names containing the query first",
			query: "pay",
			want:  []string{"Finance.Payslip", "Finance.Payslip.amount"},
		},
		{
			name:  "no match",
			query: "warehouse",
			want:  nil,
		},
		{
			name:  "empty",
			query: "  ",
			want:  nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got []string
			for _, n := range ix.Search(c.query) {
				got = append(got, n.Title())
			}
			assert.Equal(t, c.want, got)
		})
	}
}

func TestSearchSharedName(t *testing.T) {
	m, err := Parse(`# Org
## Staffing
_ Employee - a person who works here
- [name] - full name (String value)
_ Department - a unit of the org
- [name] - what the unit is called (String value)
- [head] - who leads it (Employee reference)`)
	require.NoError(t, err)
	ix := NewIndex(m)

	var got []string
	for _, n := range ix.Search("name") {
		got = append(got, n.Title())
	}
	assert.Equal(t, []string{"Staffing.Department.name", "Staffing.Employee.name"}, got)

	got = nil
	for _, n := range ix.Search("department.NAME") {
		got = append(got, n.Title())
	}
	assert.Equal(t, []string{"Staffing.Department.name"}, got)

	assert.True(t, IsExact(ix.Lookup("Employee", "name"), " Employee.Name "))
	assert.False(t, IsExact(ix.Lookup("Employee", "name"), "ployee.name"))
	assert.False(t, IsExact(ix.Lookup("Employee", "name"), ""))
}

func TestLookup(t *testing.T) {
	ix := newTestIndex(t)

	cases := []struct {
		name  string
		parts []string
		kind  NodeKind
		title string
	}{
		{"subject", []string{"staffing"}, SubjectNode, "Staffing"},
		{"class", []string{"Payslip"}, ClassNode, "Finance.Payslip"},
		{"class below subject", []string{"Staffing", "Employee"}, ClassNode, "Staffing.Employee"},
		{"attribute in section", []string{"Employee", "name"}, AttributeNode, "Staffing.Employee.name"},
		{"section", []string{"Employee", "core"}, SectionNode, "Staffing.Employee.Core"},
		{"full path", []string{"Staffing", "Employee", "manager"}, AttributeNode, "Staffing.Employee.manager"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n := ix.Lookup(c.parts...)
			require.NotNil(t, n)
			assert.Equal(t, c.kind, n.Kind)
			assert.Equal(t, c.title, n.Title())
		})
	}

	assert.Nil(t, ix.Lookup())
	assert.Nil(t, ix.Lookup("Employee", "salary"))
	assert.Nil(t, ix.Lookup("Warehouse"))
}
