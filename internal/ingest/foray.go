package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"foraymatch/internal/taxon"
)

// ReadSpecimens loads the ForayNL specimen export at path.
func ReadSpecimens(path string) ([]taxon.SpecimenRecord, error) {
	reader, closer, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return parseSpecimens(reader)
}

// ParseSpecimens reads specimen rows from an already-decoded CSV stream.
func ParseSpecimens(r io.Reader) ([]taxon.SpecimenRecord, error) {
	return parseSpecimens(newCSVReader(r))
}

func parseSpecimens(reader *csv.Reader) ([]taxon.SpecimenRecord, error) {
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("specimen csv: empty file")
		}
		return nil, fmt.Errorf("specimen csv: read header: %w", err)
	}

	cols := indexColumns(header, map[string]func(string) bool{
		"id":         anyOf(exactly("id"), containsAll("foray", "id")),
		"org_entry":  containsAll("genus_and_species_org_entry"),
		"conf_name":  containsAll("genus_and_species_conf"),
		"foray_name": containsAll("genus_and_species_foray_name"),
	})
	if missing := cols.missing("id", "org_entry", "conf_name", "foray_name"); len(missing) > 0 {
		return nil, fmt.Errorf("specimen csv: missing columns %v", missing)
	}

	var specimens []taxon.SpecimenRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("specimen csv: line %d: %w", line, err)
		}

		id := cols.field(row, "id")
		if id == "" {
			continue
		}
		specimens = append(specimens, taxon.SpecimenRecord{
			ForayID:   id,
			OrgEntry:  cols.field(row, "org_entry"),
			ConfName:  cols.field(row, "conf_name"),
			ForayName: cols.field(row, "foray_name"),
		})
	}
	return specimens, nil
}
