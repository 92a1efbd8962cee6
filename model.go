package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/DiscordGophers/dr-literate/source"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/rs/zerolog/log"
)

const maxSuggestions = 10

var (
	docNotFound  = "Could not find a model named `%s`.\n\nUse `/config document list` to see the loaded models."
	nodeNotFound = "Could not find `%s`."
)

func (b *botState) handleModel(e *gateway.InteractionCreateEvent, d *discord.CommandInteraction) {
	// only arg and required, always present
	query := d.Options[0].String()

	log.Info().Str("user", e.User.Tag()).Str("query", query).Msg("used model")

	if len(query) < 2 || len(query) > 100 {
		b.respondError(e, failEmbed("Error", "Your query must be between 2 and 100 characters."))
		return
	}

	embed, found := b.model(query)
	if !found {
		b.respondError(e, embed)
		return
	}

	storeInteraction(&interactionData{
		id:      e.ID.String(),
		created: time.Now(),
		token:   e.Token,
		userID:  e.User.ID,
		query:   query,
	})

	b.respond(e, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Embeds: &[]discord.Embed{embed},
			Components: discord.ComponentsPtr(
				&discord.ActionRowComponent{buttonComponent(e.ID.String())},
			),
		},
	})
}

// model resolves a query against the library. It reports false along with
// an error embed when nothing matches exactly.
func (b *botState) model(query string) (discord.Embed, bool) {
	name, parts := parseQuery(b.expandAlias(query))
	if name != "" && b.library.Find(name) == nil {
		return failEmbed("Error: Not Found", fmt.Sprintf(docNotFound, name)), false
	}
	if len(parts) == 0 {
		if name == "" {
			return failEmbed("Error", "Your query is empty."), false
		}
		return documentEmbed(b.library.Find(name)), true
	}

	if doc, node := b.library.Lookup(name, parts...); node != nil {
		return nodeEmbed(doc, node), true
	}

	var results []source.Result
	for _, r := range b.library.Search(strings.Join(parts, " ")) {
		if name == "" || strings.EqualFold(r.Document.Name, name) {
			results = append(results, r)
		}
	}
	switch len(results) {
	case 0:
		return failEmbed("Error: Not Found", fmt.Sprintf(nodeNotFound, strings.Join(parts, "."))), false
	case 1:
		return nodeEmbed(results[0].Document, results[0].Node), true
	}
	return suggestEmbed(query, results, maxSuggestions), false
}

// expandAlias replaces a leading alias. With "emp" standing for
// "org/Staffing.Employee", "emp.name" reads "org/Staffing.Employee.name".
func (b *botState) expandAlias(query string) string {
	query = strings.TrimSpace(query)
	head, rest := query, ""
	if i := strings.IndexAny(query, "./ \t"); i >= 0 {
		head, rest = query[:i], query[i:]
	}

	b.mu.Lock()
	target, ok := b.cfg.Aliases[strings.ToLower(head)]
	b.mu.Unlock()
	if !ok {
		return query
	}
	return target + rest
}
