package store

import (
	"context"
	"fmt"

	"foraymatch/internal/pipeline"
)

// CategoryCount pairs a mismatch category with its row count.
type CategoryCount struct {
	Category pipeline.Category
	Count    int
}

// BandCount pairs a similarity band label with its row count. Bands cover
// the best score of each mismatched specimen; "no match" counts rows whose
// winning score was 0.
type BandCount struct {
	Label string
	Count int
}

// Summary aggregates the persisted state for reporting.
type Summary struct {
	SpecimenCount      int
	ReferenceCount     int
	PerfectMatches     int
	PerfectMycoMatches int
	Mismatches         int
	Categories         []CategoryCount
	SimilarityBands    []BandCount
	LastRun            *RunInfo
}

var categoryOrder = []pipeline.Category{
	pipeline.CategoryOrgConfMatch,
	pipeline.CategoryOrgForayMatch,
	pipeline.CategoryConfForayMatch,
	pipeline.CategoryAllDifferent,
}

// similarityBands mirrors the review UI's filter buckets over the best
// per-specimen score.
var similarityBands = []struct {
	label string
	where string
}{
	{"100", "best = 100"},
	{"90-100", "best >= 90 AND best < 100"},
	{"80-90", "best >= 80 AND best < 90"},
	{"70-80", "best >= 70 AND best < 80"},
	{"50-70", "best >= 50 AND best < 70"},
	{"<50", "best < 50 AND mycobank_id IS NOT NULL"},
	{"no match", "mycobank_id IS NULL"},
}

// Summarize computes the report aggregates in one pass over the result
// tables.
func (s *Store) Summarize(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	var err error

	if summary.SpecimenCount, err = s.CountSpecimens(ctx); err != nil {
		return nil, err
	}
	if summary.ReferenceCount, err = s.CountReferences(ctx); err != nil {
		return nil, err
	}
	if summary.PerfectMatches, err = s.countRows(ctx, "perfect_matches"); err != nil {
		return nil, err
	}
	if summary.PerfectMycoMatches, err = s.countRows(ctx, "perfect_mycobank_matches"); err != nil {
		return nil, err
	}
	if summary.Mismatches, err = s.countRows(ctx, "mismatch_explanations"); err != nil {
		return nil, err
	}

	for _, category := range categoryOrder {
		var count int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM mismatch_explanations WHERE category = ?", string(category),
		).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("count category %s: %w", category, err)
		}
		summary.Categories = append(summary.Categories, CategoryCount{Category: category, Count: count})
	}

	for _, band := range similarityBands {
		var count int
		query := fmt.Sprintf(
			`SELECT COUNT(1) FROM (
                SELECT MAX(org_score, conf_score, foray_score) AS best, mycobank_id
                FROM mismatch_scores
             ) WHERE %s`, band.where)
		if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("count band %q: %w", band.label, err)
		}
		summary.SimilarityBands = append(summary.SimilarityBands, BandCount{Label: band.label, Count: count})
	}

	if summary.LastRun, err = s.LastRun(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}
