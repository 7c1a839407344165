package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"foraymatch/internal/taxon"
)

// ReadReferences loads the MycoBank reference list at path.
func ReadReferences(path string) ([]taxon.ReferenceRecord, error) {
	reader, closer, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return parseReferences(reader)
}

// ParseReferences reads reference rows from an already-decoded CSV stream.
func ParseReferences(r io.Reader) ([]taxon.ReferenceRecord, error) {
	return parseReferences(newCSVReader(r))
}

func parseReferences(reader *csv.Reader) ([]taxon.ReferenceRecord, error) {
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("mycobank csv: empty file")
		}
		return nil, fmt.Errorf("mycobank csv: read header: %w", err)
	}

	cols := indexColumns(header, map[string]func(string) bool{
		"id":           anyOf(exactly("mycobank #"), containsAll("mycobank", "id")),
		"taxon_name":   exactly("taxon name"),
		"current_name": containsAll("current name"),
		"authors":      exactly("authors"),
		"year":         containsAll("year"),
		"hyperlink":    exactly("hyperlink"),
	})
	if missing := cols.missing("id", "taxon_name"); len(missing) > 0 {
		return nil, fmt.Errorf("mycobank csv: missing columns %v", missing)
	}

	var references []taxon.ReferenceRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mycobank csv: line %d: %w", line, err)
		}

		id := cols.field(row, "id")
		if id == "" {
			continue
		}
		references = append(references, taxon.ReferenceRecord{
			MycoBankID:  id,
			TaxonName:   cols.field(row, "taxon_name"),
			CurrentName: cols.field(row, "current_name"),
			Authors:     cols.field(row, "authors"),
			Year:        cols.field(row, "year"),
			Hyperlink:   cols.field(row, "hyperlink"),
		})
	}
	return references, nil
}
