package main

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/DiscordGophers/dr-literate/source"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/rs/zerolog/log"
)

type botState struct {
	// mu guards cfg, which /config changes at runtime.
	mu      sync.Mutex
	cfg     configuration
	cfgPath string

	appID   discord.AppID
	state   *state.State
	client  *http.Client
	library *source.Library
}

func (b *botState) OnCommand(e *gateway.InteractionCreateEvent) {
	if e.GuildID != 0 && e.Member != nil {
		e.User = &e.Member.User
	}
	if e.User == nil {
		return
	}

	// ignore blacklisted users
	if b.ignored(discord.Snowflake(e.User.ID)) {
		log.Debug().Str("user", e.User.Tag()).Msg("ignoring interaction")
		return
	}

	switch data := e.Data.(type) {
	case *discord.CommandInteraction:
		switch data.Name {
		case "model":
			b.handleModel(e, data)
		case "info":
			b.handleInfo(e, data)
		case "config":
			b.handleConfig(e, data)
		}

	case discord.ComponentInteraction:
		if d, ok := lookupInteraction(string(data.ID())); ok {
			b.handleModelComponent(e, d)
		}
	}
}

func (b *botState) ignored(id discord.Snowflake) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.cfg.Ignored[id]
	return ok
}

func (b *botState) respond(e *gateway.InteractionCreateEvent, resp api.InteractionResponse) {
	if err := b.state.RespondInteraction(e.ID, e.Token, resp); err != nil {
		log.Error().Err(err).Str("user", e.User.Tag()).Msg("could not respond to interaction")
	}
}

// respondError answers with an embed only the caller can see.
func (b *botState) respondError(e *gateway.InteractionCreateEvent, embed discord.Embed) {
	b.respond(e, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Flags:  discord.EphemeralMessage,
			Embeds: &[]discord.Embed{embed},
		},
	})
}

func loadCommands(s *state.State, appID discord.AppID, update bool) error {
	if update {
		if _, err := s.BulkOverwriteCommands(appID, commands); err != nil {
			return fmt.Errorf("could not overwrite commands: %w", err)
		}
		log.Info().Int("commands", len(commands)).Msg("overwrote commands")
		return nil
	}

	registered, err := s.Commands(appID)
	if err != nil {
		return err
	}
	registeredMap := map[string]bool{}
	for _, c := range registered {
		registeredMap[c.Name] = true
	}

	for _, c := range commands {
		if registeredMap[c.Name] {
			log.Debug().Str("command", c.Name).Msg("command already registered")
			continue
		}
		if _, err := s.CreateCommand(appID, c); err != nil {
			var httperr *httputil.HTTPError
			if errors.As(err, &httperr) {
				log.Error().Bytes("body", httperr.Body).Msg("discord rejected command")
			}
			return fmt.Errorf("could not register: %s, %w", c.Name, err)
		}
		log.Info().Str("command", c.Name).Msg("created command")
	}
	return nil
}

var commands = []api.CreateCommandData{
	{
		Name:        "model",
		Description: "Look up a subject, class or attribute of a data model",
		Options: []discord.CommandOption{
			&discord.StringOption{
				OptionName:  "query",
				Description: "Query (i.e. Employee.name or org/Staffing)",
				Required:    true,
			},
		},
	},
	{
		Name:        "info",
		Description: "Generic Bot Info",
	},
	{
		Name:                     "config",
		Description:              "Configure the model bot",
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionManageGuild),
		Options: []discord.CommandOption{
			&discord.SubcommandOption{
				OptionName:  "reload",
				Description: "Reload every configured document now",
			},
			&discord.SubcommandGroupOption{
				OptionName:  "user",
				Description: "Manage user access to the bot",
				Subcommands: []*discord.SubcommandOption{
					{
						OptionName:  "ignore",
						Description: "Ignore commands and actions from a user",
						Options: []discord.CommandOptionValue{
							&discord.UserOption{
								OptionName:  "user",
								Description: "User to ignore",
								Required:    true,
							},
						},
					},
					{
						OptionName:  "unignore",
						Description: "Stop ignoring commands and actions from a user",
						Options: []discord.CommandOptionValue{
							&discord.UserOption{
								OptionName:  "user",
								Description: "User to unignore",
								Required:    true,
							},
						},
					},
					{
						OptionName:  "ignorelist",
						Description: "List all ignored users",
					},
				},
			},
			&discord.SubcommandGroupOption{
				OptionName:  "document",
				Description: "Manage model documents",
				Subcommands: []*discord.SubcommandOption{
					{
						OptionName:  "add",
						Description: "Load a document and keep it configured",
						Options: []discord.CommandOptionValue{
							&discord.StringOption{
								OptionName:  "location",
								Description: "File path or URL",
								Required:    true,
							},
						},
					},
					{
						OptionName:  "remove",
						Description: "Remove a document",
						Options: []discord.CommandOptionValue{
							&discord.StringOption{
								OptionName:  "name",
								Description: "Model name",
								Required:    true,
							},
						},
					},
					{
						OptionName:  "list",
						Description: "List all loaded documents",
					},
				},
			},
			&discord.SubcommandGroupOption{
				OptionName:  "alias",
				Description: "Configure /model aliases",
				Subcommands: []*discord.SubcommandOption{
					{
						OptionName:  "add",
						Description: "Add an alias",
						Options: []discord.CommandOptionValue{
							&discord.StringOption{
								OptionName:  "alias",
								Description: "Alias name",
								Required:    true,
							},
							&discord.StringOption{
								OptionName:  "query",
								Description: "Query the alias stands for (i.e. org/Staffing.Employee)",
								Required:    true,
							},
						},
					},
					{
						OptionName:  "remove",
						Description: "Remove an alias",
						Options: []discord.CommandOptionValue{
							&discord.StringOption{
								OptionName:  "alias",
								Description: "Alias name",
								Required:    true,
							},
						},
					},
					{
						OptionName:  "list",
						Description: "List all aliases",
					},
				},
			},
		},
	},
}
