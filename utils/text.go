// File: utils/text.go
package utils

import "strings"

// diacriticFold maps Slovene diacritics (and a few common Latin-1 neighbours)
// to their bare ASCII forms. Guests routinely type "soba", "čez" and "šč"
// without diacritics, so all matching runs over the folded form.
var diacriticFold = map[rune]rune{
	'č': 'c', 'Č': 'C',
	'š': 's', 'Š': 'S',
	'ž': 'z', 'Ž': 'Z',
	'ć': 'c', 'Ć': 'C',
	'đ': 'd', 'Đ': 'D',
	'ä': 'a', 'Ä': 'A',
	'ö': 'o', 'Ö': 'O',
	'ü': 'u', 'Ü': 'U',
	'é': 'e', 'É': 'E',
	'è': 'e', 'È': 'E',
	'á': 'a', 'Á': 'A',
	'í': 'i', 'Í': 'I',
	'ó': 'o', 'Ó': 'O',
	'ú': 'u', 'Ú': 'U',
}

// FoldDiacritics replaces diacritic letters with their ASCII base form.
func FoldDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if folded, ok := diacriticFold[r]; ok {
			b.WriteRune(folded)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeText lowercases, folds diacritics and collapses whitespace; the
// canonical form every matcher operates on.
func NormalizeText(s string) string {
	folded := FoldDiacritics(strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(folded), " ")
}

// Tokenize splits normalized text into bare word tokens, stripping common
// punctuation stuck to words.
func Tokenize(s string) []string {
	fields := strings.Fields(NormalizeText(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:()\"'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
