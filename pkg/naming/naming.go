// Package naming converts free-form user text into the identifiers used in
// generated modules.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeIdentifier strips runs of non-alphanumeric ASCII characters,
// upper-cases the first letter of every remaining token and concatenates
// them: "hero banner!!" becomes "HeroBanner". The rest of each token keeps its
// original casing.
func NormalizeIdentifier(raw string) string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return !isAlphanumeric(r)
	})

	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(Capitalize(token))
	}
	return b.String()
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Singular drops one trailing "s" from everything after the first character.
// Irregular plurals are not corrected: "categories" becomes "categorie".
func Singular(key string) string {
	_, size := utf8.DecodeRuneInString(key)
	if size >= len(key) {
		return key
	}
	return key[:size] + strings.TrimSuffix(key[size:], "s")
}

// ItemTypeName names the nested record declared for an item array field.
func ItemTypeName(component, key string) string {
	return component + Capitalize(Singular(key)) + "Item"
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
