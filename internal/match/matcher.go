package match

import (
	"foraymatch/internal/taxon"
	"foraymatch/internal/textutil"
)

// Result is the outcome of one best-match lookup. Record is nil when the
// bucket was empty or no candidate scored above zero; Score is then 0 and
// Explanation empty.
type Result struct {
	Record      *taxon.ReferenceRecord
	Score       int
	Explanation string
}

// Matcher resolves queries against an Index, memoizing results per
// (query, source) pair so strings repeated across specimens are scored
// once.
type Matcher struct {
	index *Index
	cache *resultCache
}

// NewMatcher wraps the index with a memo cache of the given capacity;
// capacity <= 0 selects DefaultCacheCapacity.
func NewMatcher(index *Index, cacheCapacity int) *Matcher {
	return &Matcher{
		index: index,
		cache: newResultCache(cacheCapacity),
	}
}

// Best returns the single best-scoring reference row for the query.
//
// The query's bucket is scanned in insertion order. For each candidate the
// query is scored against the taxon name and the current name (empty
// columns score 0); within one candidate the taxon score wins ties between
// the two columns. Across candidates only a strictly higher score replaces
// the running best, so the earliest row reaching the top score is kept.
// An empty query returns a zero Result without touching the index.
func (m *Matcher) Best(query string, source Source) Result {
	q := taxon.Normalize(query)
	if q == "" {
		return Result{}
	}

	key := cacheKey{query: q, source: source}
	if res, ok := m.cache.get(key); ok {
		return res
	}

	res := m.scan(q, source)
	m.cache.put(key, res)
	return res
}

func (m *Matcher) scan(query string, source Source) Result {
	var best Result
	for _, cand := range m.index.BucketFor(query) {
		var scoreTaxon, scoreUpdated int
		if cand.TaxonName != "" {
			scoreTaxon = textutil.Ratio(query, cand.TaxonName)
		}
		if cand.CurrentName != "" {
			scoreUpdated = textutil.Ratio(query, cand.CurrentName)
		}

		score, field := scoreTaxon, FieldTaxon
		if scoreUpdated > scoreTaxon {
			score, field = scoreUpdated, FieldUpdated
		}
		if score > best.Score {
			record := cand.Record
			best = Result{
				Record:      &record,
				Score:       score,
				Explanation: explanation(source, field),
			}
		}
	}
	return best
}

// CacheLen reports how many distinct (query, source) results are memoized.
func (m *Matcher) CacheLen() int {
	return m.cache.len()
}
