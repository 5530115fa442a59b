package corpus

import (
	"math"
	"sort"

	"github.com/sympmatch/sympmatch/internal/textnorm"
)

// Vectorizer is a fitted TF-IDF model over unigram and bigram features
// of the expanded symptom texts. Feature columns are assigned in
// sorted n-gram order so fitting the same corpus always produces the
// same model.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// FitVectorizer fits a TF-IDF model over the documents and returns it
// together with the document-term matrix, one L2-normalized row per
// document. An empty document list yields an empty model.
func FitVectorizer(docs []string) (*Vectorizer, [][]float64) {
	grams := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		grams[i] = featureGrams(doc)
		seen := make(map[string]struct{}, len(grams[i]))
		for _, g := range grams[i] {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				df[g]++
			}
		}
	}

	features := make([]string, 0, len(df))
	for g := range df {
		features = append(features, g)
	}
	sort.Strings(features)

	v := &Vectorizer{
		vocabulary: make(map[string]int, len(features)),
		idf:        make([]float64, len(features)),
	}
	n := float64(len(docs))
	for col, g := range features {
		v.vocabulary[g] = col
		// Smoothed IDF: every term behaves as if seen in one extra
		// document, so no weight is ever zero or divides by zero.
		v.idf[col] = math.Log((1+n)/(1+float64(df[g]))) + 1
	}

	matrix := make([][]float64, len(docs))
	for i := range docs {
		matrix[i] = v.vectorize(grams[i])
	}
	return v, matrix
}

// Transform maps a query onto the fitted feature space. N-grams that
// were never seen at fit time contribute zero weight; they are not
// added to the vocabulary.
func (v *Vectorizer) Transform(text string) []float64 {
	return v.vectorize(featureGrams(text))
}

// Features returns the number of fitted feature columns.
func (v *Vectorizer) Features() int {
	return len(v.vocabulary)
}

// vectorize builds an L2-normalized TF-IDF vector from raw n-grams.
func (v *Vectorizer) vectorize(grams []string) []float64 {
	vec := make([]float64, len(v.vocabulary))
	for _, g := range grams {
		if col, ok := v.vocabulary[g]; ok {
			vec[col] += v.idf[col]
		}
	}
	normalize(vec)
	return vec
}

// Cosine returns the cosine similarity of two vectors in [0,1].
// A zero vector is similar to nothing.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Min(1, math.Max(0, sim))
}

// featureGrams produces the unigram+bigram features of a text:
// tokens of at least two runes with English stopwords removed, plus
// bigrams of adjacent surviving tokens.
func featureGrams(text string) []string {
	var tokens []string
	for _, t := range textnorm.Tokenize(text) {
		if len([]rune(t)) < 2 || isStopWord(t) {
			continue
		}
		tokens = append(tokens, t)
	}

	grams := make([]string, 0, 2*len(tokens))
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}

// normalize scales a vector to unit L2 length in place. Zero vectors
// stay zero.
func normalize(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}
