package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foraymatch/internal/pipeline"
)

// RunInfo describes one persisted matching run.
type RunInfo struct {
	RunID          string
	StartedAt      time.Time
	FinishedAt     time.Time
	SpecimenCount  int
	ReferenceCount int
	Workers        int
}

// SaveResults replaces the four result tables with the given run's output
// and records the run metadata, all in one transaction.
func (s *Store) SaveResults(ctx context.Context, results *pipeline.Results, info RunInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin results tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{
		"perfect_matches", "mismatch_explanations", "perfect_mycobank_matches", "mismatch_scores",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, pm := range results.PerfectMatches {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO perfect_matches (foray_id, name) VALUES (?, ?)",
			pm.ForayID, pm.Name,
		); err != nil {
			return fmt.Errorf("insert perfect match %q: %w", pm.ForayID, err)
		}
	}

	for _, mm := range results.Mismatches {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mismatch_explanations (foray_id, org_entry, conf_name, foray_name, category)
             VALUES (?, ?, ?, ?, ?)`,
			mm.ForayID, mm.OrgEntry, mm.ConfName, mm.ForayName, string(mm.Category),
		); err != nil {
			return fmt.Errorf("insert mismatch %q: %w", mm.ForayID, err)
		}
	}

	for _, ref := range results.PerfectReferenceMatches {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO perfect_mycobank_matches (foray_id, mycobank_id, mycobank_name) VALUES (?, ?, ?)",
			ref.ForayID, ref.MycoBankID, ref.MycoBankName,
		); err != nil {
			return fmt.Errorf("insert reference match %q: %w", ref.ForayID, err)
		}
	}

	for _, score := range results.MismatchScores {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mismatch_scores
             (foray_id, org_score, conf_score, foray_score, mycobank_id, mycobank_name, explanation)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			score.ForayID, score.OrgScore, score.ConfScore, score.ForayScore,
			nullableString(score.MycoBankID), nullableString(score.MycoBankName), nullableString(score.Explanation),
		); err != nil {
			return fmt.Errorf("insert mismatch score %q: %w", score.ForayID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, finished_at, specimen_count, reference_count, workers)
         VALUES (?, ?, ?, ?, ?, ?)`,
		info.RunID,
		info.StartedAt.UTC().Format(time.RFC3339Nano),
		info.FinishedAt.UTC().Format(time.RFC3339Nano),
		info.SpecimenCount,
		info.ReferenceCount,
		info.Workers,
	); err != nil {
		return fmt.Errorf("insert run %q: %w", info.RunID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}
	return nil
}

// LastRun returns the most recently finished run, or nil when no run has
// been persisted.
func (s *Store) LastRun(ctx context.Context) (*RunInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, started_at, finished_at, specimen_count, reference_count, workers
         FROM runs ORDER BY finished_at DESC LIMIT 1`)

	var info RunInfo
	var started, finished string
	err := row.Scan(&info.RunID, &started, &finished, &info.SpecimenCount, &info.ReferenceCount, &info.Workers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query last run: %w", err)
	}

	if info.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parse run start: %w", err)
	}
	if info.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("parse run finish: %w", err)
	}
	return &info, nil
}
