package main

import (
	"bytes"
	"fmt"
	"runtime"
	"time"

	"github.com/DiscordGophers/dr-literate/literate"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/dustin/go-humanize"
)

var started = time.Now().Unix()

func (b *botState) handleInfo(e *gateway.InteractionCreateEvent, _ *discord.CommandInteraction) {
	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	var models, classes, attributes int
	for _, d := range b.library.Documents() {
		if d.Model == nil {
			continue
		}
		models++
		d.Model.Walk(func(s *literate.Subject) {
			classes += len(s.Classes)
			for _, c := range s.Classes {
				attributes += len(c.AllAttributes())
			}
		})
	}

	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "Go: %s\n", runtime.Version())
	fmt.Fprintf(buf, "Uptime: <t:%d:R>\n", started)
	fmt.Fprintf(buf, "Memory: %s / %s (alloc / sys)\n", humanize.Bytes(stats.Alloc), humanize.Bytes(stats.Sys))
	fmt.Fprintf(buf, "Concurrent Tasks: %s\n", humanize.Comma(int64(runtime.NumGoroutine())))
	fmt.Fprintf(buf, "Models: %s (%s classes, %s attributes)\n",
		humanize.Comma(int64(models)), humanize.Comma(int64(classes)), humanize.Comma(int64(attributes)))

	b.respond(e, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Flags: discord.EphemeralMessage,
			Embeds: &[]discord.Embed{{
				Title:       "Dr-Literate",
				Description: buf.String(),
				Color:       accentColor,
			}},
		},
	})
}
