package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		md   string
		more bool
		want string
	}{
		{"empty", "  ", false, "*No description found*"},
		{"short", "**Employee**\n", false, "**Employee**"},
		{"more", "**Employee**", true, "**Employee**\n\n" + omitted},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, format(c.md, c.more))
		})
	}
}

func TestFormatLong(t *testing.T) {
	line := strings.Repeat("é", 99) + "\n"
	md := strings.Repeat(line, 50)

	got := format(md, false)
	assert.LessOrEqual(t, len(got), descriptionLimit)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "\n\n"+omitted))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "first line", truncate("first line\nsecond line", 14))
	assert.Equal(t, "é", truncate("éé", 3))
}
