package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sympmatch/sympmatch/internal/synonyms"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Sneezing And COUGH", "sneezing and cough"},
		{"semicolons become spaces", "sneezing;cough;runny nose", "sneezing cough runny nose"},
		{"commas become spaces", "fever,chills", "fever chills"},
		{"other punctuation untouched", "it's bad. really!", "it's bad. really!"},
		{"mixed separators", "A;b,C", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestExpandSynonyms(t *testing.T) {
	table := synonyms.Table{
		{Canonical: "fever", Variants: []string{"high temperature", "pyrexia"}},
		{Canonical: "fatigue", Variants: []string{"tiredness", "exhaustion"}},
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no variants present", "sneezing and cough", "sneezing and cough"},
		{"single variant", "pyrexia since monday", "fever since monday"},
		{"multi word variant", "a high temperature and tiredness", "a fever and fatigue"},
		{"all occurrences replaced", "pyrexia then pyrexia again", "fever then fever again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandSynonyms(tt.in, table))
		})
	}
}

// Expansion is plain substring replacement without word boundaries.
// This locks the behavior in rather than silently fixing it.
func TestExpandSynonyms_SubstringInsideLongerWord(t *testing.T) {
	table := synonyms.Table{
		{Canonical: "pain", Variants: []string{"ache"}},
	}

	assert.Equal(t, "headpain and backpain", ExpandSynonyms("headache and backache", table))
}

func TestExpandSynonyms_TableOrderIsDeterministic(t *testing.T) {
	// Both entries carry the variant "temp"; the earlier entry masks
	// the later one.
	table := synonyms.Table{
		{Canonical: "fever", Variants: []string{"temp"}},
		{Canonical: "temperature", Variants: []string{"temp"}},
	}

	assert.Equal(t, "fever spike", ExpandSynonyms("temp spike", table))

	// Reversed, the first entry rewrites "temp" to "temperature", and
	// the second entry's variant then matches inside that replacement.
	// The cascade is part of the contract.
	reversed := synonyms.Table{table[1], table[0]}
	assert.Equal(t, "fevererature spike", ExpandSynonyms("temp spike", reversed))
}

func TestExpandSynonyms_EmptyTable(t *testing.T) {
	assert.Equal(t, "sore throat", ExpandSynonyms("sore throat", nil))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"simple words", "sneezing and cough", []string{"sneezing", "and", "cough"}},
		{"punctuation split", "it's bad. really!", []string{"it", "s", "bad", "really"}},
		{"digits and underscores kept", "type_2 diabetes 24h", []string{"type_2", "diabetes", "24h"}},
		{"lowercased", "Runny NOSE", []string{"runny", "nose"}},
		{"unicode letters", "fiévre élevée", []string{"fiévre", "élevée"}},
		{"only separators", "-- !! ..", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}
