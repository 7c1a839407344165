package pipeline

import "time"

// Category describes how a mismatched specimen's three name variants
// partially agree.
type Category string

const (
	CategoryOrgConfMatch   Category = "ORG_CONF_MATCH"
	CategoryOrgForayMatch  Category = "ORG_FORAY_MATCH"
	CategoryConfForayMatch Category = "CONF_FORAY_MATCH"
	CategoryAllDifferent   Category = "ALL_DIFFERENT"
)

// PerfectMatch records a specimen whose three variants are identical.
type PerfectMatch struct {
	ForayID string
	Name    string
}

// MismatchExplanation records a specimen whose variants disagree, with the
// three names and the agreement category.
type MismatchExplanation struct {
	ForayID   string
	OrgEntry  string
	ConfName  string
	ForayName string
	Category  Category
}

// PerfectReferenceMatch records an exact (score 100) MycoBank hit for a
// perfect-match specimen.
type PerfectReferenceMatch struct {
	ForayID      string
	MycoBankID   string
	MycoBankName string
}

// MismatchScore records the three per-variant similarity scores for a
// mismatched specimen plus the chosen top candidate. The MycoBank fields
// are empty when the winning score is 0.
type MismatchScore struct {
	ForayID      string
	OrgScore     int
	ConfScore    int
	ForayScore   int
	MycoBankID   string
	MycoBankName string
	Explanation  string
}

// Results aggregates the four output collections of one matching run.
// Ordering within each collection follows unit completion, not input order.
type Results struct {
	RunID                   string
	Elapsed                 time.Duration
	PerfectMatches          []PerfectMatch
	Mismatches              []MismatchExplanation
	PerfectReferenceMatches []PerfectReferenceMatch
	MismatchScores          []MismatchScore
}

// Total reports the number of classified specimens.
func (r *Results) Total() int {
	return len(r.PerfectMatches) + len(r.Mismatches)
}
