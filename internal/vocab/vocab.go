// Package vocab holds the fitted vocabulary and the fuzzy spell
// corrector that maps unknown query tokens onto it.
package vocab

import "sort"

// Set is a vocabulary of known tokens.
type Set struct {
	members map[string]struct{}
}

// NewSet creates an empty vocabulary.
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Add inserts a single token.
func (s *Set) Add(token string) {
	if token == "" {
		return
	}
	s.members[token] = struct{}{}
}

// AddTokens inserts all tokens.
func (s *Set) AddTokens(tokens []string) {
	for _, t := range tokens {
		s.Add(t)
	}
}

// Contains reports whether token is in the vocabulary.
func (s *Set) Contains(token string) bool {
	_, ok := s.members[token]
	return ok
}

// Len returns the vocabulary size.
func (s *Set) Len() int {
	return len(s.members)
}

// Snapshot returns the vocabulary as a sorted slice. The sort order
// makes fuzzy-correction tie-breaks deterministic across runs.
func (s *Set) Snapshot() []string {
	out := make([]string, 0, len(s.members))
	for t := range s.members {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
