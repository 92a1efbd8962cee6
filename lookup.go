package main

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/rs/zerolog/log"
)

const interactionTTL = 5 * time.Minute

var notOwner = "Only the message sender can do this."

type interactionData struct {
	id      string
	created time.Time
	token   string
	userID  discord.UserID
	query   string
}

var (
	interactionMap = map[string]*interactionData{}
	mu             sync.Mutex
)

func storeInteraction(d *interactionData) {
	mu.Lock()
	interactionMap[d.id] = d
	mu.Unlock()
}

func lookupInteraction(id string) (*interactionData, bool) {
	mu.Lock()
	defer mu.Unlock()
	d, ok := interactionMap[id]
	return d, ok
}

func deleteInteraction(id string) {
	mu.Lock()
	delete(interactionMap, id)
	mu.Unlock()
}

// expiredInteractions removes and returns the interactions older than
// interactionTTL.
func expiredInteractions(now time.Time) []*interactionData {
	mu.Lock()
	defer mu.Unlock()

	var expired []*interactionData
	for id, data := range interactionMap {
		if !now.After(data.created.Add(interactionTTL)) {
			continue
		}
		delete(interactionMap, id)
		expired = append(expired, data)
	}
	return expired
}

// gcInteractionData removes the Hide button from lookups once their
// interaction token is about to expire.
func (b *botState) gcInteractionData(ctx context.Context) {
	mapTicker := time.NewTicker(interactionTTL)
	defer mapTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-mapTicker.C:
			for _, data := range expiredInteractions(now) {
				if data.token == "" {
					continue
				}
				_, err := b.state.EditInteractionResponse(b.appID, data.token, api.EditInteractionResponseData{
					Components: &discord.ContainerComponents{},
				})
				if err != nil {
					log.Debug().Err(err).Str("query", data.query).Msg("could not remove components")
				}
			}
		}
	}
}

func (b *botState) handleModelComponent(e *gateway.InteractionCreateEvent, data *interactionData) {
	log.Info().Str("user", e.User.Tag()).Str("query", data.query).Msg("used model component")

	if e.GuildID != discord.NullGuildID && e.User.ID != data.userID && !b.canHide(e) {
		b.respondError(e, failEmbed("Error", notOwner))
		return
	}

	deleteInteraction(data.id)

	embed, _ := b.model(data.query)
	embed.Description = ""
	embed.Fields = nil
	b.respond(e, api.InteractionResponse{
		Type: api.UpdateMessage,
		Data: &api.InteractionResponseData{
			Embeds:     &[]discord.Embed{embed},
			Components: &discord.ContainerComponents{},
		},
	})
}

// canHide reports whether the member holds a hide role or is an
// administrator.
func (b *botState) canHide(e *gateway.InteractionCreateEvent) bool {
	if e.Member == nil {
		return true
	}

	b.mu.Lock()
	for _, role := range e.Member.RoleIDs {
		if _, ok := b.cfg.Permissions.Hide[discord.Snowflake(role)]; ok {
			b.mu.Unlock()
			return true
		}
	}
	b.mu.Unlock()

	perms, err := b.state.Permissions(e.ChannelID, e.User.ID)
	if err != nil {
		return false
	}
	return perms.Has(discord.PermissionAdministrator)
}

func buttonComponent(id string) *discord.ButtonComponent {
	return &discord.ButtonComponent{
		CustomID: discord.ComponentID(id),
		Label:    "Hide",
		Emoji:    &discord.ComponentEmoji{Name: "🇽"},
		Style:    discord.SecondaryButtonStyle(),
	}
}

// parseQuery splits "org/Staffing.Employee" into the document name and
// the path below it. Spaces separate path parts like dots do.
func parseQuery(query string) (string, []string) {
	query = strings.TrimSpace(query)

	var doc string
	if i := strings.IndexByte(query, '/'); i >= 0 {
		doc, query = strings.TrimSpace(query[:i]), query[i+1:]
	}

	parts := strings.FieldsFunc(query, func(r rune) bool {
		return r == '.' || r == ' ' || r == '\t'
	})
	if len(parts) == 0 {
		parts = nil
	}
	return strings.ToLower(doc), parts
}
