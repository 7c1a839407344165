package taxon

import "strings"

// SpecimenRecord is one field observation from a foray, carrying up to three
// independently transcribed genus-and-species strings. Records are immutable
// once loaded.
type SpecimenRecord struct {
	ForayID   string
	OrgEntry  string
	ConfName  string
	ForayName string
}

// ReferenceRecord is one canonical MycoBank row. CurrentName is empty when
// the taxon name is still the accepted one.
type ReferenceRecord struct {
	MycoBankID  string
	TaxonName   string
	CurrentName string
	Authors     string
	Year        string
	Hyperlink   string
}

// PreferredName returns the record's current name when present, else its
// taxon name.
func (r ReferenceRecord) PreferredName() string {
	return PreferredName(r.TaxonName, r.CurrentName)
}

// Normalize trims leading and trailing whitespace. Absent values normalize
// to the empty string; case is never folded.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// PreferredName returns the normalized current name when non-empty, falling
// back to the normalized taxon name.
func PreferredName(taxonName, currentName string) string {
	if current := Normalize(currentName); current != "" {
		return current
	}
	return Normalize(taxonName)
}
