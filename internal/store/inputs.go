package store

import (
	"context"
	"fmt"

	"foraymatch/internal/taxon"
)

// ReplaceSpecimens swaps the persisted specimen rows for the given set.
func (s *Store) ReplaceSpecimens(ctx context.Context, specimens []taxon.SpecimenRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin specimens tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM foray_specimens"); err != nil {
		return fmt.Errorf("clear specimens: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO foray_specimens (foray_id, org_entry, conf_name, foray_name) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare specimen insert: %w", err)
	}
	defer stmt.Close()

	for _, spec := range specimens {
		if _, err := stmt.ExecContext(ctx,
			taxon.Normalize(spec.ForayID),
			taxon.Normalize(spec.OrgEntry),
			taxon.Normalize(spec.ConfName),
			taxon.Normalize(spec.ForayName),
		); err != nil {
			return fmt.Errorf("insert specimen %q: %w", spec.ForayID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit specimens: %w", err)
	}
	return nil
}

// ReplaceReferences swaps the persisted MycoBank rows for the given set.
func (s *Store) ReplaceReferences(ctx context.Context, references []taxon.ReferenceRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin references tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM mycobank_records"); err != nil {
		return fmt.Errorf("clear references: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO mycobank_records (mycobank_id, taxon_name, current_name, authors, year, hyperlink)
         VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare reference insert: %w", err)
	}
	defer stmt.Close()

	for _, ref := range references {
		if _, err := stmt.ExecContext(ctx,
			taxon.Normalize(ref.MycoBankID),
			taxon.Normalize(ref.TaxonName),
			taxon.Normalize(ref.CurrentName),
			taxon.Normalize(ref.Authors),
			taxon.Normalize(ref.Year),
			taxon.Normalize(ref.Hyperlink),
		); err != nil {
			return fmt.Errorf("insert reference %q: %w", ref.MycoBankID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit references: %w", err)
	}
	return nil
}

// CountSpecimens reports the persisted specimen rows.
func (s *Store) CountSpecimens(ctx context.Context) (int, error) {
	return s.countRows(ctx, "foray_specimens")
}

// CountReferences reports the persisted MycoBank rows.
func (s *Store) CountReferences(ctx context.Context) (int, error) {
	return s.countRows(ctx, "mycobank_records")
}

func (s *Store) countRows(ctx context.Context, table string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// Specimens returns every persisted specimen row ordered by id.
func (s *Store) Specimens(ctx context.Context) ([]taxon.SpecimenRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT foray_id, org_entry, conf_name, foray_name FROM foray_specimens ORDER BY foray_id")
	if err != nil {
		return nil, fmt.Errorf("query specimens: %w", err)
	}
	defer rows.Close()

	var specimens []taxon.SpecimenRecord
	for rows.Next() {
		var spec taxon.SpecimenRecord
		if err := rows.Scan(&spec.ForayID, &spec.OrgEntry, &spec.ConfName, &spec.ForayName); err != nil {
			return nil, fmt.Errorf("scan specimen: %w", err)
		}
		specimens = append(specimens, spec)
	}
	return specimens, rows.Err()
}

// References returns every persisted MycoBank row ordered by id.
func (s *Store) References(ctx context.Context) ([]taxon.ReferenceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT mycobank_id, taxon_name, current_name, authors, year, hyperlink
         FROM mycobank_records ORDER BY mycobank_id`)
	if err != nil {
		return nil, fmt.Errorf("query references: %w", err)
	}
	defer rows.Close()

	var references []taxon.ReferenceRecord
	for rows.Next() {
		var ref taxon.ReferenceRecord
		if err := rows.Scan(&ref.MycoBankID, &ref.TaxonName, &ref.CurrentName, &ref.Authors, &ref.Year, &ref.Hyperlink); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		references = append(references, ref)
	}
	return references, rows.Err()
}
