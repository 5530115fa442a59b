package vocab

// minCorrectionRatio is the minimum normalized similarity a candidate
// must reach before an unknown token is replaced by it. Below the
// cutoff the original token is kept unchanged.
const minCorrectionRatio = 0.7

// Corrector fuzzy-corrects unknown tokens against a vocabulary
// snapshot. Build one per fitted index; candidate order is the sorted
// snapshot, so repeated corrections are deterministic.
type Corrector struct {
	set        *Set
	candidates []string
}

// NewCorrector creates a corrector over the given vocabulary.
func NewCorrector(set *Set) *Corrector {
	return &Corrector{
		set:        set,
		candidates: set.Snapshot(),
	}
}

// CorrectAndDedup corrects each token against the vocabulary and
// removes duplicates while preserving first-seen order.
//
// Tokens already in the vocabulary pass through unchanged. For unknown
// tokens the single best candidate by Levenshtein ratio is accepted
// when its similarity is at least 0.7; otherwise the token is kept.
// With an empty vocabulary every token passes through unmodified.
func (c *Corrector) CorrectAndDedup(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, t := range tokens {
		if t == "" {
			continue
		}
		corrected := t
		if !c.set.Contains(t) && len(c.candidates) > 0 {
			if best, ok := c.closest(t); ok {
				corrected = best
			}
		}
		if _, dup := seen[corrected]; dup {
			continue
		}
		seen[corrected] = struct{}{}
		out = append(out, corrected)
	}
	return out
}

// closest returns the candidate with the highest similarity ratio to
// token, if that ratio clears the acceptance cutoff. Ties keep the
// earlier (lexicographically smaller) candidate.
func (c *Corrector) closest(token string) (string, bool) {
	best := ""
	bestRatio := 0.0
	for _, cand := range c.candidates {
		if r := Ratio(token, cand); r > bestRatio {
			best = cand
			bestRatio = r
		}
	}
	if bestRatio >= minCorrectionRatio {
		return best, true
	}
	return "", false
}

// Ratio is a normalized edit similarity in [0,1]: 1 minus the
// Levenshtein distance over the longer rune length. Two empty strings
// are identical (ratio 1).
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes edit distance with a single-row DP table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur := row[j]
			row[j] = min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = cur
		}
	}
	return row[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
