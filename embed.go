package main

import (
	"fmt"
	"strings"

	"github.com/DiscordGophers/dr-literate/literate"
	"github.com/DiscordGophers/dr-literate/source"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
)

const (
	docLimit = 2800

	accentColor = 0x007D9C
)

func nodeEmbed(doc *source.Document, n *literate.Node) discord.Embed {
	md, more := n.Markdown(docLimit)
	return discord.Embed{
		Title:       fmt.Sprintf("%s: %s", doc.Name, n.Title()),
		URL:         linkOf(doc),
		Description: format(md, more),
		Color:       accentColor,
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("%s in %s", n.Kind, doc.Location),
		},
	}
}

func documentEmbed(doc *source.Document) discord.Embed {
	var classes, attributes int
	doc.Model.Walk(func(s *literate.Subject) {
		classes += len(s.Classes)
		for _, c := range s.Classes {
			attributes += len(c.AllAttributes())
		}
	})

	md, more := doc.Model.Markdown(docLimit)
	return discord.Embed{
		Title: "Model " + doc.Name,
		URL:   linkOf(doc),
		Description: fmt.Sprintf("**Classes:** %d\n**Attributes:** %d\n\n%s",
			classes, attributes, format(md, more)),
		Color: accentColor,
		Footer: &discord.EmbedFooter{
			Text: "Loaded " + humanize.Time(doc.Loaded),
		},
	}
}

func suggestEmbed(query string, results []source.Result, limit int) discord.Embed {
	var b strings.Builder
	for i, r := range results {
		if i == limit {
			fmt.Fprintf(&b, "*and %d more*\n", len(results)-limit)
			break
		}
		fmt.Fprintf(&b, "`%s/%s` %s\n", strings.ToLower(r.Document.Name), r.Node.Title(), r.Node.Kind)
	}
	return discord.Embed{
		Title:       fmt.Sprintf("Error: %d matches for %q", len(results), query),
		Description: "Try one of these:\n\n" + b.String(),
		Color:       0xEE0000,
	}
}

func failEmbed(title, description string) discord.Embed {
	return discord.Embed{
		Title:       title,
		Description: description,
		Color:       0xEE0000,
	}
}

func linkOf(doc *source.Document) string {
	if strings.HasPrefix(doc.Location, "https://") || strings.HasPrefix(doc.Location, "http://") {
		return doc.Location
	}
	return ""
}
