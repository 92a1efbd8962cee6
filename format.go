package main

import (
	"strings"
	"unicode/utf8"
)

// descriptionLimit is the most Discord accepts in an embed description.
const descriptionLimit = 4096

const omitted = "*More omitted, narrow the query to see the rest.*"

// format finishes Markdown for an embed. more marks content that was
// already left out by the renderer.
func format(md string, more bool) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return "*No description found*"
	}

	limit := descriptionLimit
	if more {
		limit -= len(omitted) + 2
	}
	if len(md) > limit {
		md = truncate(md, limit-len(omitted)-2)
		more = true
	}
	if more {
		md += "\n\n" + omitted
	}
	return md
}

// truncate cuts s to at most n bytes, preferring the last line break and
// never splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	if i := strings.LastIndexByte(s, '\n'); i > n/2 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
