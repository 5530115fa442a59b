// Package matcher ranks diseases against free-text symptom queries.
//
// The fitted index is held behind an atomic pointer: a fit builds the
// entire new index before a single reference swap, so concurrent
// readers observe either the old or the new index, never a half-built
// one. Reload failures never propagate to read paths; the previous
// index keeps serving.
package matcher

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/sympmatch/sympmatch/internal/corpus"
	symerrors "github.com/sympmatch/sympmatch/internal/errors"
	"github.com/sympmatch/sympmatch/internal/textnorm"
)

// DefaultSynonymsPath is the well-known location of the synonym table,
// reloaded on every fit.
const DefaultSynonymsPath = "data/symptoms_synonyms.csv"

const defaultCacheSize = 256

// Result is one ranked match for a query. Transient, never persisted.
type Result struct {
	Disease string `json:"disease"`
	// Score is the cosine similarity in [0,1].
	Score float64 `json:"score"`
	Tips  string  `json:"tips"`
	// MatchedKeywords are the query tokens that also occur in the
	// disease's expanded symptom text, sorted ascending.
	MatchedKeywords []string `json:"matched_keywords"`
}

// NameHit is one disease row returned by name lookup.
type NameHit struct {
	Disease  string `json:"disease"`
	Symptoms string `json:"symptoms"`
	Tips     string `json:"tips"`
}

// Service owns the fitted index and answers match and lookup queries.
// The zero value is not usable; construct with New.
type Service struct {
	log          *slog.Logger
	synonymsPath string

	idx     atomic.Pointer[corpus.Index]
	gen     atomic.Uint64
	fitMu   sync.Mutex
	reloads singleflight.Group
	cache   *lru.Cache[string, []Result]
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithSynonymsPath overrides the synonym table location.
func WithSynonymsPath(path string) Option {
	return func(s *Service) {
		s.synonymsPath = path
	}
}

// New creates an unfitted Service. Queries fail until Fit succeeds.
func New(opts ...Option) *Service {
	s := &Service{
		log:          slog.Default(),
		synonymsPath: DefaultSynonymsPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	cache, err := lru.New[string, []Result](defaultCacheSize)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(err)
	}
	s.cache = cache
	return s
}

// Fit builds a new index from the corpus file and atomically replaces
// the current one. On failure the previous index, if any, keeps
// serving. Concurrent fits are serialized.
func (s *Service) Fit(corpusPath string) error {
	s.fitMu.Lock()
	defer s.fitMu.Unlock()

	idx, err := corpus.Fit(corpusPath, s.synonymsPath)
	if err != nil {
		return err
	}
	idx.Generation = s.gen.Add(1)
	s.idx.Store(idx)

	s.log.Info("corpus fitted",
		slog.String("path", corpusPath),
		slog.Int("diseases", len(idx.Records)),
		slog.Int("features", idx.Vectorizer.Features()),
		slog.Uint64("generation", idx.Generation))
	return nil
}

// Ready reports whether a fitted index is available.
func (s *Service) Ready() bool {
	return s.idx.Load() != nil
}

// Match returns up to topK diseases ranked by descending cosine
// similarity against the query, dropping results scoring below
// threshold (a score exactly at the threshold is kept). An empty
// result set is not an error.
func (s *Service) Match(query string, topK int, threshold float64) ([]Result, error) {
	s.MaybeReload()

	idx := s.idx.Load()
	if idx == nil {
		return nil, symerrors.New(symerrors.ErrCodeNotFitted, "matcher not fitted: call Fit first", nil)
	}

	key := fmt.Sprintf("%d|%d|%g|%s", idx.Generation, topK, threshold, query)
	if cached, ok := s.cache.Get(key); ok {
		return cloneResults(cached), nil
	}

	corrected := s.correctQuery(query, idx)
	queryVec := idx.Vectorizer.Transform(strings.Join(corrected, " "))

	sims := make([]float64, len(idx.Matrix))
	for i, row := range idx.Matrix {
		sims[i] = corpus.Cosine(queryVec, row)
	}

	order := make([]int, len(sims))
	for i := range order {
		order[i] = i
	}
	// Ties keep corpus row order.
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	if topK < 0 {
		topK = 0
	}
	if topK > len(order) {
		topK = len(order)
	}

	queryTokens := make(map[string]struct{}, len(corrected))
	for _, t := range corrected {
		queryTokens[t] = struct{}{}
	}

	results := make([]Result, 0, topK)
	for _, row := range order[:topK] {
		if sims[row] < threshold {
			continue
		}
		results = append(results, Result{
			Disease:         idx.Records[row].Disease,
			Score:           sims[row],
			Tips:            idx.Records[row].Tips,
			MatchedKeywords: matchedKeywords(queryTokens, idx.ExpandedTexts[row]),
		})
	}

	s.cache.Add(key, cloneResults(results))
	return results, nil
}

// FindByName looks up disease rows by name. With exact set, names must
// match the full string case-insensitively and duplicate rows are all
// returned; otherwise a case-insensitive substring search is performed
// and results are de-duplicated by disease name, first occurrence
// winning. Both modes preserve corpus row order and cap at limit.
func (s *Service) FindByName(name string, exact bool, limit int) ([]NameHit, error) {
	s.MaybeReload()

	idx := s.idx.Load()
	if idx == nil {
		return nil, symerrors.New(symerrors.ErrCodeNotFitted, "matcher not fitted: call Fit first", nil)
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	if limit < 0 {
		limit = 0
	}

	var hits []NameHit
	seen := make(map[string]struct{})
	for _, rec := range idx.Records {
		if len(hits) >= limit {
			break
		}
		lower := strings.ToLower(rec.Disease)
		if exact {
			if lower != needle {
				continue
			}
		} else {
			if !strings.Contains(lower, needle) {
				continue
			}
			if _, dup := seen[rec.Disease]; dup {
				continue
			}
			seen[rec.Disease] = struct{}{}
		}
		hits = append(hits, NameHit{Disease: rec.Disease, Symptoms: rec.Symptoms, Tips: rec.Tips})
	}
	return hits, nil
}

// correctQuery runs the query-side text pipeline: normalize, expand
// synonyms, tokenize, fuzzy-correct and dedup.
func (s *Service) correctQuery(query string, idx *corpus.Index) []string {
	expanded := textnorm.ExpandSynonyms(textnorm.Normalize(query), idx.Synonyms)
	return idx.Corrector.CorrectAndDedup(textnorm.Tokenize(expanded))
}

// matchedKeywords intersects the corrected-query token set with the
// tokens of a row's expanded symptom text, sorted ascending.
func matchedKeywords(queryTokens map[string]struct{}, expandedText string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range textnorm.Tokenize(expandedText) {
		if _, inQuery := queryTokens[t]; !inQuery {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// cloneResults deep-copies results so cached entries never share
// keyword slices with what callers receive.
func cloneResults(in []Result) []Result {
	out := make([]Result, len(in))
	copy(out, in)
	for i := range out {
		if in[i].MatchedKeywords == nil {
			continue
		}
		kw := make([]string, len(in[i].MatchedKeywords))
		copy(kw, in[i].MatchedKeywords)
		out[i].MatchedKeywords = kw
	}
	return out
}
