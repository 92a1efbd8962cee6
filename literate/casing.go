package literate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Casing turns free text into identifier tokens.
type Casing interface {
	UpperCamel(words string) string
	LowerCamel(words string) string
}

// DefaultCasing splits on anything that is not a letter or digit and
// joins the words in camel case, keeping the rest of each word as written.
var DefaultCasing Casing = camelCasing{}

type camelCasing struct{}

func (camelCasing) UpperCamel(words string) string {
	var b strings.Builder
	for _, w := range splitWords(words) {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

func (camelCasing) LowerCamel(words string) string {
	var b strings.Builder
	for i, w := range splitWords(words) {
		if i == 0 {
			b.WriteString(lowerFirst(w))
			continue
		}
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func upperFirst(w string) string {
	r, n := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + w[n:]
}

func lowerFirst(w string) string {
	r, n := utf8.DecodeRuneInString(w)
	return string(unicode.ToLower(r)) + w[n:]
}
