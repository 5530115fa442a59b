package corpus

import (
	"os"
	"time"

	"github.com/sympmatch/sympmatch/internal/synonyms"
	"github.com/sympmatch/sympmatch/internal/textnorm"
	"github.com/sympmatch/sympmatch/internal/vocab"
)

// Index is a fully fitted corpus index. It is immutable once built and
// replaced wholesale on reload: Matrix[i] always derives from
// Records[i] and ExpandedTexts[i], and consumers can never observe a
// matrix fit against one corpus paired with another corpus's records.
type Index struct {
	// Records are the raw corpus rows in file order.
	Records []Record

	// ExpandedTexts holds each row's normalized, synonym-expanded
	// symptom text.
	ExpandedTexts []string

	// Vocabulary collects tokens of all expanded texts plus all
	// synonym canonicals and variants, for fuzzy query correction.
	Vocabulary *vocab.Set

	// Corrector is the spell corrector bound to Vocabulary.
	Corrector *vocab.Corrector

	// Vectorizer is the fitted TF-IDF model; Matrix is the
	// document-term matrix, one row per record.
	Vectorizer *Vectorizer
	Matrix     [][]float64

	// Synonyms is the table the texts were expanded with.
	Synonyms synonyms.Table

	// SourcePath and SourceModTime identify the corpus file state the
	// index was fit from, for change detection.
	SourcePath    string
	SourceModTime time.Time

	// Generation is a monotonically increasing fit counter assigned by
	// the owning service.
	Generation uint64
}

// Fit builds a complete Index from the corpus file, reloading the
// synonym table from synonymsPath (an absent table is fine). It either
// fully succeeds or returns an error leaving no partial state behind.
func Fit(corpusPath, synonymsPath string) (*Index, error) {
	records, err := Load(corpusPath)
	if err != nil {
		return nil, err
	}

	table, err := synonyms.Load(synonymsPath)
	if err != nil {
		return nil, err
	}

	expanded := make([]string, len(records))
	for i, rec := range records {
		expanded[i] = textnorm.ExpandSynonyms(textnorm.Normalize(rec.Symptoms), table)
	}

	vocabulary := vocab.NewSet()
	for _, text := range expanded {
		vocabulary.AddTokens(textnorm.Tokenize(text))
	}
	for _, entry := range table {
		vocabulary.AddTokens(textnorm.Tokenize(entry.Canonical))
		for _, variant := range entry.Variants {
			vocabulary.AddTokens(textnorm.Tokenize(variant))
		}
	}

	vectorizer, matrix := FitVectorizer(expanded)

	idx := &Index{
		Records:       records,
		ExpandedTexts: expanded,
		Vocabulary:    vocabulary,
		Corrector:     vocab.NewCorrector(vocabulary),
		Vectorizer:    vectorizer,
		Matrix:        matrix,
		Synonyms:      table,
		SourcePath:    corpusPath,
	}
	if info, err := os.Stat(corpusPath); err == nil {
		idx.SourceModTime = info.ModTime()
	}
	return idx, nil
}
