// Package textnorm normalizes free-text symptom descriptions before
// vectorization: lowercasing, list-separator cleanup, synonym
// expansion, and tokenization.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/sympmatch/sympmatch/internal/synonyms"
)

// Normalize lowercases text and replaces the list separators ";" and
// "," with single spaces. Other punctuation is left untouched; cleanup
// happens at tokenization. Pure function.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, ";", " ")
	s = strings.ReplaceAll(s, ",", " ")
	return s
}

// ExpandSynonyms replaces every variant present in text with its
// canonical term, walking the table in row order.
//
// Replacement is plain substring replacement, not word-boundary aware:
// a variant that happens to be a substring of a longer unrelated word
// is replaced too. That imprecision is deliberate; together with the
// ordered table it keeps expansion deterministic even when variant
// sets of different canonicals overlap.
func ExpandSynonyms(text string, table synonyms.Table) string {
	s := text
	for _, entry := range table {
		for _, variant := range entry.Variants {
			if variant == "" {
				continue
			}
			if strings.Contains(s, variant) {
				s = strings.ReplaceAll(s, variant, entry.Canonical)
			}
		}
	}
	return s
}

// Tokenize extracts maximal runs of Unicode letters, digits and
// underscores, lowercased, in left-to-right order. Empty input yields
// no tokens.
func Tokenize(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
