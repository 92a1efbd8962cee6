package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/DiscordGophers/dr-literate/source"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

const loadTimeout = 30 * time.Second

func (b *botState) handleConfig(e *gateway.InteractionCreateEvent, d *discord.CommandInteraction) {
	// Loading documents may take longer than Discord waits for a response.
	b.respond(e, api.InteractionResponse{
		Type: api.DeferredMessageInteractionWithSource,
		Data: &api.InteractionResponseData{Flags: discord.EphemeralMessage},
	})

	// only arg and required, always present
	grp := d.Options[0]
	log.Info().Str("user", e.User.Tag()).Str("command", grp.Name).Msg("used config")

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	var embed discord.Embed
	var changed bool
	switch grp.Name {
	case "reload":
		embed = b.reload(ctx)
	case "user":
		embed, changed = b.configUser(e.GuildID, grp.Options[0])
	case "document":
		embed, changed = b.configDocument(ctx, grp.Options[0])
	case "alias":
		embed, changed = b.configAlias(grp.Options[0])
	}

	if changed {
		b.mu.Lock()
		err := saveConfig(b.cfgPath, b.cfg)
		b.mu.Unlock()
		if err != nil {
			log.Error().Err(err).Msg("could not save config")
			embed = failEmbed("Error", fmt.Sprintf("Could not save config: `%v`", err))
		}
	}

	if _, err := b.state.EditInteractionResponse(e.AppID, e.Token, api.EditInteractionResponseData{
		Embeds: &[]discord.Embed{embed},
	}); err != nil {
		log.Error().Err(err).Msg("could not send config response")
	}
}

func (b *botState) reload(ctx context.Context) discord.Embed {
	loaded, failed := b.loadDocuments(ctx)
	if len(failed) == 0 {
		return successEmbed(fmt.Sprintf("Reloaded %d documents.", loaded))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Reloaded %d documents, %d failed:\n", loaded, len(failed))
	for _, loc := range sortedKeys(failed) {
		fmt.Fprintf(&sb, "`%s`: %v\n", loc, failed[loc])
	}
	return failEmbed("Error", format(sb.String(), false))
}

func (b *botState) configUser(guild discord.GuildID, cmd discord.CommandInteractionOption) (discord.Embed, bool) {
	switch cmd.Name {
	case "ignore":
		user, _ := cmd.Options[0].SnowflakeValue()

		if ok := b.canIgnore(guild, user); !ok {
			return failEmbed("Error", fmt.Sprintf("You cannot ignore <@!%s>.", user)), false
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.cfg.Ignored[user]; ok {
			return failEmbed("Error", fmt.Sprintf("<@!%s> is already being ignored.", user)), false
		}
		b.cfg.Ignored[user] = struct{}{}
		return successEmbed(fmt.Sprintf("<@!%s> is now going to be ignored from all commands.", user)), true

	case "unignore":
		user, _ := cmd.Options[0].SnowflakeValue()

		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.cfg.Ignored[user]; !ok {
			return failEmbed("Error", fmt.Sprintf("<@!%s> is not being ignored.", user)), false
		}
		delete(b.cfg.Ignored, user)
		return successEmbed(fmt.Sprintf("<@!%s> is now unignored.", user)), true

	case "ignorelist":
		b.mu.Lock()
		defer b.mu.Unlock()
		return ignoreList(b.cfg.Ignored), false
	}
	return failEmbed("Error", "Unknown command."), false
}

func (b *botState) configDocument(ctx context.Context, cmd discord.CommandInteractionOption) (discord.Embed, bool) {
	switch cmd.Name {
	case "add":
		loc := strings.TrimSpace(cmd.Options[0].String())
		doc, err := source.Open(ctx, b.client, loc)
		if err != nil {
			return failEmbed("Error", format(fmt.Sprintf("Could not load `%s`:\n%v", loc, err), false)), false
		}
		b.library.Add(doc)

		b.mu.Lock()
		defer b.mu.Unlock()
		for _, l := range b.cfg.Documents {
			if l == loc {
				return successEmbed(fmt.Sprintf("Reloaded model **%s**.", doc.Name)), false
			}
		}
		b.cfg.Documents = append(b.cfg.Documents, loc)
		return successEmbed(fmt.Sprintf("Model **%s** is now available.", doc.Name)), true

	case "remove":
		name := cmd.Options[0].String()
		doc := b.library.Find(name)
		if doc == nil {
			return failEmbed("Error", fmt.Sprintf(docNotFound, name)), false
		}
		b.library.Remove(name)

		b.mu.Lock()
		defer b.mu.Unlock()
		docs := b.cfg.Documents[:0]
		for _, l := range b.cfg.Documents {
			if l != doc.Location {
				docs = append(docs, l)
			}
		}
		b.cfg.Documents = docs
		return successEmbed(fmt.Sprintf("Model **%s** has now been removed.", doc.Name)), true

	case "list":
		return documentList(b.library.Documents()), false
	}
	return failEmbed("Error", "Unknown command."), false
}

func (b *botState) configAlias(cmd discord.CommandInteractionOption) (discord.Embed, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch cmd.Name {
	case "add":
		alias := strings.ToLower(strings.TrimSpace(cmd.Options[0].String()))
		query := strings.TrimSpace(cmd.Options[1].String())

		if alias == "" || strings.ContainsAny(alias, " .@/") {
			return failEmbed("Error", "Your alias contains illegal characters."), false
		}
		if query == "" {
			return failEmbed("Error", "Your alias needs a query to point to."), false
		}
		if b.cfg.Aliases == nil {
			b.cfg.Aliases = map[string]string{}
		}
		b.cfg.Aliases[alias] = query
		return successEmbed(fmt.Sprintf("Querying **%s** will now look up `%s`.", alias, query)), true

	case "remove":
		alias := strings.ToLower(strings.TrimSpace(cmd.Options[0].String()))
		if _, ok := b.cfg.Aliases[alias]; !ok {
			return failEmbed("Error", fmt.Sprintf("`%s` is not an alias.", alias)), false
		}
		delete(b.cfg.Aliases, alias)
		return successEmbed(fmt.Sprintf("The `%s` alias has now been removed.", alias)), true

	case "list":
		return aliasList(b.cfg.Aliases), false
	}
	return failEmbed("Error", "Unknown command."), false
}

// canIgnore reports whether user holds none of the guild's protected roles.
func (b *botState) canIgnore(guild discord.GuildID, user discord.Snowflake) bool {
	m, err := b.state.Member(guild, discord.UserID(user))
	if err != nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, role := range m.RoleIDs {
		if _, ok := b.cfg.Permissions.Config[guild][discord.Snowflake(role)]; ok {
			return false
		}
	}
	return true
}

func successEmbed(description string) discord.Embed {
	return discord.Embed{
		Title:       "Success",
		Description: description,
		Color:       accentColor,
	}
}

func ignoreList(ignored snowflakeLookup) discord.Embed {
	if len(ignored) == 0 {
		return successEmbed("No users are being ignored.")
	}
	ids := make([]discord.Snowflake, 0, len(ignored))
	for id := range ignored {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "<@!%s>\n", id)
	}
	return discord.Embed{
		Title:       fmt.Sprintf("Ignored users (%d)", len(ids)),
		Description: format(sb.String(), false),
		Color:       accentColor,
	}
}

func aliasList(aliases map[string]string) discord.Embed {
	if len(aliases) == 0 {
		return successEmbed("No aliases are configured.")
	}
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "`%s`: `%s`\n", name, aliases[name])
	}
	return discord.Embed{
		Title:       fmt.Sprintf("Aliases (%d)", len(names)),
		Description: format(sb.String(), false),
		Color:       accentColor,
	}
}

func documentList(docs []*source.Document) discord.Embed {
	if len(docs) == 0 {
		return successEmbed("No models are loaded.")
	}

	var sb strings.Builder
	for _, d := range docs {
		fmt.Fprintf(&sb, "**%s** `%s`, loaded %s\n", d.Name, d.Location, humanize.Time(d.Loaded))
	}
	return discord.Embed{
		Title:       fmt.Sprintf("Models (%d)", len(docs)),
		Description: format(sb.String(), false),
		Color:       accentColor,
	}
}

func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
