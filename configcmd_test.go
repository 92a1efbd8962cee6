package main

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/json"
	"github.com/stretchr/testify/assert"
)

func stringOption(name, value string) discord.CommandInteractionOption {
	return discord.CommandInteractionOption{
		Type:  discord.StringOptionType,
		Name:  name,
		Value: json.Raw(`"` + value + `"`),
	}
}

func TestConfigAlias(t *testing.T) {
	b := &botState{}

	cases := []struct {
		name    string
		cmd     discord.CommandInteractionOption
		title   string
		changed bool
		aliases map[string]string
	}{
		{
			name: "add",
			cmd: discord.CommandInteractionOption{Name: "add", Options: []discord.CommandInteractionOption{
				stringOption("alias", "Emp"),
				stringOption("query", "org/Staffing.Employee"),
			}},
			title:   "Success",
			changed: true,
			aliases: map[string]string{"emp": "org/Staffing.Employee"},
		},
		{
			name: "illegal characters",
			cmd: discord.CommandInteractionOption{Name: "add", Options: []discord.CommandInteractionOption{
				stringOption("alias", "emp.name"),
				stringOption("query", "Employee.name"),
			}},
			title:   "Error",
			aliases: map[string]string{"emp": "org/Staffing.Employee"},
		},
		{
			name:    "list",
			cmd:     discord.CommandInteractionOption{Name: "list"},
			title:   "Aliases (1)",
			aliases: map[string]string{"emp": "org/Staffing.Employee"},
		},
		{
			name: "remove unknown",
			cmd: discord.CommandInteractionOption{Name: "remove", Options: []discord.CommandInteractionOption{
				stringOption("alias", "boss"),
			}},
			title:   "Error",
			aliases: map[string]string{"emp": "org/Staffing.Employee"},
		},
		{
			name: "remove",
			cmd: discord.CommandInteractionOption{Name: "remove", Options: []discord.CommandInteractionOption{
				stringOption("alias", "emp"),
			}},
			title:   "Success",
			changed: true,
			aliases: map[string]string{},
		},
	}

	// cases run in order, each on the aliases the previous one left
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			embed, changed := b.configAlias(c.cmd)
			assert.Equal(t, c.title, embed.Title)
			assert.Equal(t, c.changed, changed)
			assert.Equal(t, c.aliases, b.cfg.Aliases)
		})
	}

	embed, _ := b.configAlias(discord.CommandInteractionOption{Name: "list"})
	assert.Equal(t, "No aliases are configured.", embed.Description)
}

func TestAliasList(t *testing.T) {
	embed := aliasList(map[string]string{
		"pay": "org/Finance.Payslip",
		"emp": "org/Staffing.Employee",
	})
	assert.Equal(t, "Aliases (2)", embed.Title)
	assert.Equal(t, "`emp`: `org/Staffing.Employee`\n`pay`: `org/Finance.Payslip`", embed.Description)
}
