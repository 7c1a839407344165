package match

import (
	"strings"
	"unicode/utf8"

	"foraymatch/internal/taxon"
)

// SentinelKey collects reference rows whose names are all empty.
const SentinelKey = "#"

// Candidate is one indexed reference row with its two scoreable name
// columns pre-normalized.
type Candidate struct {
	TaxonName   string
	CurrentName string
	Record      taxon.ReferenceRecord
}

// Bucketer derives partition keys for reference rows and queries.
// Implementations must be deterministic; the same row or query always maps
// to the same key.
type Bucketer interface {
	// RowKey returns the bucket key for a reference row's normalized names.
	RowKey(taxonName, currentName string) string
	// QueryKey returns the bucket key a query string should be looked up in.
	QueryKey(query string) string
}

// FirstLetterBucketer keys rows on the uppercased first letter of the
// preferred name, falling back to the taxon name, then the current name,
// then SentinelKey.
type FirstLetterBucketer struct{}

func (FirstLetterBucketer) RowKey(taxonName, currentName string) string {
	for _, s := range []string{taxon.PreferredName(taxonName, currentName), taxonName, currentName} {
		if key := firstLetterKey(s); key != "" {
			return key
		}
	}
	return SentinelKey
}

func (FirstLetterBucketer) QueryKey(query string) string {
	if key := firstLetterKey(query); key != "" {
		return key
	}
	return SentinelKey
}

func firstLetterKey(s string) string {
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return strings.ToUpper(string(r))
}

// Index partitions reference rows into buckets so a lookup only scans rows
// sharing the query's key. Insertion order within a bucket is preserved;
// the matcher's tie-break depends on it.
type Index struct {
	bucketer Bucketer
	buckets  map[string][]Candidate
	size     int
}

// NewIndex builds an index over the reference rows using the provided
// bucketer. A nil bucketer defaults to FirstLetterBucketer.
func NewIndex(records []taxon.ReferenceRecord, bucketer Bucketer) *Index {
	if bucketer == nil {
		bucketer = FirstLetterBucketer{}
	}
	idx := &Index{
		bucketer: bucketer,
		buckets:  make(map[string][]Candidate),
	}
	for _, rec := range records {
		taxonName := taxon.Normalize(rec.TaxonName)
		currentName := taxon.Normalize(rec.CurrentName)
		key := bucketer.RowKey(taxonName, currentName)
		idx.buckets[key] = append(idx.buckets[key], Candidate{
			TaxonName:   taxonName,
			CurrentName: currentName,
			Record:      rec,
		})
		idx.size++
	}
	return idx
}

// BucketFor returns the candidates sharing the query's bucket key, or nil
// when the key was never seen.
func (idx *Index) BucketFor(query string) []Candidate {
	return idx.buckets[idx.bucketer.QueryKey(query)]
}

// Len reports the total number of indexed rows.
func (idx *Index) Len() int {
	return idx.size
}

// Buckets reports the number of distinct bucket keys.
func (idx *Index) Buckets() int {
	return len(idx.buckets)
}
