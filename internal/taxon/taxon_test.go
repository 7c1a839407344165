package taxon

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  Amanita muscaria  ", "Amanita muscaria"},
		{"preserves case", "MixEd CaSe", "MixEd CaSe"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"interior punctuation kept", "Boletus cf. edulis", "Boletus cf. edulis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreferredName(t *testing.T) {
	tests := []struct {
		name    string
		taxon   string
		current string
		want    string
	}{
		{"prefers current", "Boletus edulis", "Boletus reticulatus", "Boletus reticulatus"},
		{"falls back to taxon", "Boletus edulis", "", "Boletus edulis"},
		{"whitespace current falls back", "Boletus edulis", "   ", "Boletus edulis"},
		{"current only", "", "Boletus reticulatus", "Boletus reticulatus"},
		{"both empty", "", "", ""},
		{"trims both", " Amanita ", " Amanita muscaria ", "Amanita muscaria"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreferredName(tt.taxon, tt.current); got != tt.want {
				t.Errorf("PreferredName(%q, %q) = %q, want %q", tt.taxon, tt.current, got, tt.want)
			}
		})
	}
}

func TestReferenceRecordPreferredName(t *testing.T) {
	rec := ReferenceRecord{MycoBankID: "MB100", TaxonName: "Agaricus campestris", CurrentName: ""}
	if got := rec.PreferredName(); got != "Agaricus campestris" {
		t.Errorf("PreferredName() = %q, want taxon name", got)
	}

	rec.CurrentName = "Agaricus bisporus"
	if got := rec.PreferredName(); got != "Agaricus bisporus" {
		t.Errorf("PreferredName() = %q, want current name", got)
	}
}
