package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
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

func writeModel(t *testing.T) string {
	p := filepath.Join(t.TempDir(), "org.lm")
	require.NoError(t, os.WriteFile(p, []byte(orgModel), 0o644))
	return p
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestMarkup(t *testing.T) {
	p := writeModel(t)

	out, err := run(t, "", "markup", p)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, strings.Count(orgModel, "\n")+1)
	assert.True(t, strings.HasPrefix(lines[0], "# Org"))

	again, err := run(t, out, "markup", "-")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestParseFormats(t *testing.T) {
	p := writeModel(t)

	t.Run("summary", func(t *testing.T) {
		out, err := run(t, "", "parse", p)
		require.NoError(t, err)
		assert.Contains(t, out, "Model Org")
		assert.Contains(t, out, "the organization model")
		assert.Contains(t, out, "3 subjects, 3 classes, 2 attributes")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "", "parse", "--format", "json", p)
		require.NoError(t, err)

		var m struct {
			Name     string `json:"name"`
			Subjects []struct {
				Name string `json:"name"`
			} `json:"subjects"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &m))
		assert.Equal(t, "Org", m.Name)
		require.Len(t, m.Subjects, 2)
		assert.Equal(t, "Finance", m.Subjects[1].Name)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "", "parse", "-f", "yaml", p)
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, yaml.Unmarshal([]byte(out), &m))
		assert.Equal(t, "Org", m["name"])
		assert.Equal(t, 1, m["level"])
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("LITMOD_FORMAT", "json")
		out, err := run(t, "", "parse", p)
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(out)))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := run(t, "", "parse", "-f", "xml", p)
		assert.EqualError(t, err, `unknown format "xml"`)
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, orgModel, "parse", "-")
		require.NoError(t, err)
		assert.Contains(t, out, "loaded from stdin")
	})
}

func TestParseError(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.lm")
	require.NoError(t, os.WriteFile(p, []byte("# Org\n### Too deep"), 0o644))

	_, err := run(t, "", "parse", p)
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	p := writeModel(t)

	cases := []struct {
		name  string
		args  []string
		lines []string
	}{
		{"exact", []string{"employee.name"}, []string{"Staffing.Employee.name"}},
		{"words", []string{"person"}, []string{"Staffing.Contractor", "Staffing.Employee"}},
		{"none", []string{"warehouse"}, []string{`no matches for "warehouse"`}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := run(t, "", append([]string{"search", p}, c.args...)...)
			require.NoError(t, err)

			got := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			require.Len(t, got, len(c.lines))
			for i, want := range c.lines {
				assert.Contains(t, got[i], want)
			}
		})
	}
}

func TestShow(t *testing.T) {
	p := writeModel(t)

	out, err := run(t, "", "show", "--style", "notty", p, "Employee")
	require.NoError(t, err)
	assert.Contains(t, out, "Employee")
	assert.Contains(t, out, "full name")

	out, err = run(t, "", "show", "--style", "notty", p)
	require.NoError(t, err)
	assert.Contains(t, out, "Payslip")

	_, err = run(t, "", "show", "--style", "notty", p, "Warehouse")
	assert.Error(t, err)
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 class", plural(1, "class"))
	assert.Equal(t, "0 classes", plural(0, "class"))
	assert.Equal(t, "1,200 attributes", plural(1200, "attribute"))
}
