package match

import (
	"testing"

	"foraymatch/internal/taxon"
)

func TestFirstLetterBucketerRowKey(t *testing.T) {
	tests := []struct {
		name    string
		taxon   string
		current string
		want    string
	}{
		{"preferred is current", "Boletus edulis", "Amanita muscaria", "A"},
		{"preferred falls back to taxon", "Boletus edulis", "", "B"},
		{"lowercase uppercased", "boletus edulis", "", "B"},
		{"accented first rune", "Ágaricus", "", "Á"},
		{"all empty sentinel", "", "", SentinelKey},
	}

	var b FirstLetterBucketer
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.RowKey(tt.taxon, tt.current); got != tt.want {
				t.Errorf("RowKey(%q, %q) = %q, want %q", tt.taxon, tt.current, got, tt.want)
			}
		})
	}
}

func TestFirstLetterBucketerQueryKey(t *testing.T) {
	var b FirstLetterBucketer
	if got := b.QueryKey("amanita"); got != "A" {
		t.Errorf("QueryKey(amanita) = %q, want A", got)
	}
	if got := b.QueryKey(""); got != SentinelKey {
		t.Errorf("QueryKey(empty) = %q, want sentinel", got)
	}
}

func TestNewIndexPreservesInsertionOrder(t *testing.T) {
	records := []taxon.ReferenceRecord{
		{MycoBankID: "MB1", TaxonName: "Amanita muscaria"},
		{MycoBankID: "MB2", TaxonName: "Boletus edulis"},
		{MycoBankID: "MB3", TaxonName: "Amanita pantherina"},
		{MycoBankID: "MB4", TaxonName: "amanita rubescens"},
	}

	idx := NewIndex(records, nil)
	if idx.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", idx.Len())
	}
	if idx.Buckets() != 2 {
		t.Fatalf("Buckets() = %d, want 2", idx.Buckets())
	}

	bucket := idx.BucketFor("Amanita")
	want := []string{"MB1", "MB3", "MB4"}
	if len(bucket) != len(want) {
		t.Fatalf("bucket size = %d, want %d", len(bucket), len(want))
	}
	for i, id := range want {
		if bucket[i].Record.MycoBankID != id {
			t.Errorf("bucket[%d] = %s, want %s", i, bucket[i].Record.MycoBankID, id)
		}
	}
}

func TestBucketForUnseenKey(t *testing.T) {
	idx := NewIndex([]taxon.ReferenceRecord{{MycoBankID: "MB1", TaxonName: "Amanita"}}, nil)
	if got := idx.BucketFor("Zelleromyces"); got != nil {
		t.Errorf("BucketFor(unseen letter) = %v, want nil", got)
	}
}

func TestNewIndexNormalizesNames(t *testing.T) {
	idx := NewIndex([]taxon.ReferenceRecord{
		{MycoBankID: "MB1", TaxonName: "  Amanita muscaria  ", CurrentName: " "},
	}, nil)
	bucket := idx.BucketFor("Amanita")
	if len(bucket) != 1 {
		t.Fatalf("bucket size = %d, want 1", len(bucket))
	}
	if bucket[0].TaxonName != "Amanita muscaria" {
		t.Errorf("TaxonName = %q, want trimmed", bucket[0].TaxonName)
	}
	if bucket[0].CurrentName != "" {
		t.Errorf("CurrentName = %q, want empty", bucket[0].CurrentName)
	}
}

func TestNewIndexSentinelBucket(t *testing.T) {
	idx := NewIndex([]taxon.ReferenceRecord{{MycoBankID: "MB9"}}, nil)
	bucket := idx.BucketFor("")
	if len(bucket) != 1 || bucket[0].Record.MycoBankID != "MB9" {
		t.Fatalf("sentinel bucket = %v, want the nameless row", bucket)
	}
}

// prefixBucketer keys on the first two letters, exercising the pluggable
// bucketing seam.
type prefixBucketer struct{}

func (prefixBucketer) RowKey(taxonName, currentName string) string {
	return prefixKey(taxon.PreferredName(taxonName, currentName))
}

func (prefixBucketer) QueryKey(query string) string { return prefixKey(query) }

func prefixKey(s string) string {
	if len(s) < 2 {
		return SentinelKey
	}
	return s[:2]
}

func TestNewIndexCustomBucketer(t *testing.T) {
	records := []taxon.ReferenceRecord{
		{MycoBankID: "MB1", TaxonName: "Amanita muscaria"},
		{MycoBankID: "MB2", TaxonName: "Armillaria mellea"},
	}
	idx := NewIndex(records, prefixBucketer{})

	bucket := idx.BucketFor("Amanita")
	if len(bucket) != 1 || bucket[0].Record.MycoBankID != "MB1" {
		t.Fatalf("Am bucket = %v, want only MB1", bucket)
	}
}
