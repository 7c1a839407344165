package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"foraymatch/internal/pipeline"
	"foraymatch/internal/store"
	"foraymatch/internal/taxon"
	"foraymatch/internal/testsupport"
)

func sampleResults() *pipeline.Results {
	return &pipeline.Results{
		RunID: "run-1",
		PerfectMatches: []pipeline.PerfectMatch{
			{ForayID: "F001", Name: "Amanita muscaria"},
		},
		Mismatches: []pipeline.MismatchExplanation{
			{ForayID: "F002", OrgEntry: "a", ConfName: "a", ForayName: "b", Category: pipeline.CategoryOrgConfMatch},
			{ForayID: "F003", OrgEntry: "a", ConfName: "b", ForayName: "c", Category: pipeline.CategoryAllDifferent},
		},
		PerfectReferenceMatches: []pipeline.PerfectReferenceMatch{
			{ForayID: "F001", MycoBankID: "MB1", MycoBankName: "Amanita muscaria"},
		},
		MismatchScores: []pipeline.MismatchScore{
			{ForayID: "F002", OrgScore: 95, ConfScore: 95, ForayScore: 80, MycoBankID: "MB2", MycoBankName: "x", Explanation: "ORG → TAXON"},
			{ForayID: "F003"},
		},
	}
}

func sampleRunInfo() store.RunInfo {
	now := time.Now().UTC()
	return store.RunInfo{
		RunID:          "run-1",
		StartedAt:      now.Add(-time.Minute),
		FinishedAt:     now,
		SpecimenCount:  3,
		ReferenceCount: 2,
		Workers:        4,
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	count, err := st.CountSpecimens(context.Background())
	if err != nil {
		t.Fatalf("CountSpecimens failed: %v", err)
	}
	if count != 0 {
		t.Errorf("fresh database has %d specimens", count)
	}
}

func TestReplaceSpecimensRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	specimens := []taxon.SpecimenRecord{
		{ForayID: "F001", OrgEntry: " Amanita muscaria ", ConfName: "Amanita muscaria", ForayName: "Amanita muscaria"},
		{ForayID: "F002", OrgEntry: "Boletus edulis"},
	}
	if err := st.ReplaceSpecimens(ctx, specimens); err != nil {
		t.Fatalf("ReplaceSpecimens failed: %v", err)
	}

	got, err := st.Specimens(ctx)
	if err != nil {
		t.Fatalf("Specimens failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d specimens, want 2", len(got))
	}
	if got[0].OrgEntry != "Amanita muscaria" {
		t.Errorf("org entry not normalized: %q", got[0].OrgEntry)
	}

	// Replacing again swaps, not appends.
	if err := st.ReplaceSpecimens(ctx, specimens[:1]); err != nil {
		t.Fatalf("second ReplaceSpecimens failed: %v", err)
	}
	count, err := st.CountSpecimens(ctx)
	if err != nil {
		t.Fatalf("CountSpecimens failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count after replace = %d, want 1", count)
	}
}

func TestReplaceReferencesRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	references := []taxon.ReferenceRecord{
		{MycoBankID: "MB1", TaxonName: "Agaricus campestris", Authors: "L.", Year: "1753"},
	}
	if err := st.ReplaceReferences(ctx, references); err != nil {
		t.Fatalf("ReplaceReferences failed: %v", err)
	}

	got, err := st.References(ctx)
	if err != nil {
		t.Fatalf("References failed: %v", err)
	}
	if len(got) != 1 || got[0].Authors != "L." || got[0].Year != "1753" {
		t.Errorf("references = %+v", got)
	}
}

func TestSaveResultsAndSummarize(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := st.SaveResults(ctx, sampleResults(), sampleRunInfo()); err != nil {
		t.Fatalf("SaveResults failed: %v", err)
	}

	summary, err := st.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.PerfectMatches != 1 || summary.Mismatches != 2 || summary.PerfectMycoMatches != 1 {
		t.Errorf("summary counts = %+v", summary)
	}

	categories := make(map[pipeline.Category]int)
	for _, cc := range summary.Categories {
		categories[cc.Category] = cc.Count
	}
	if categories[pipeline.CategoryOrgConfMatch] != 1 || categories[pipeline.CategoryAllDifferent] != 1 {
		t.Errorf("category counts = %v", categories)
	}

	bands := make(map[string]int)
	for _, band := range summary.SimilarityBands {
		bands[band.Label] = band.Count
	}
	// F002 best score 95 lands in 90-100; F003 has no candidate.
	if bands["90-100"] != 1 {
		t.Errorf("band 90-100 = %d, want 1", bands["90-100"])
	}
	if bands["no match"] != 1 {
		t.Errorf("band no match = %d, want 1", bands["no match"])
	}

	if summary.LastRun == nil || summary.LastRun.RunID != "run-1" || summary.LastRun.Workers != 4 {
		t.Errorf("last run = %+v", summary.LastRun)
	}
}

func TestSaveResultsReplacesPreviousRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := st.SaveResults(ctx, sampleResults(), sampleRunInfo()); err != nil {
		t.Fatalf("first SaveResults failed: %v", err)
	}

	second := &pipeline.Results{
		RunID:          "run-2",
		PerfectMatches: []pipeline.PerfectMatch{{ForayID: "F009", Name: "Russula emetica"}},
	}
	info := sampleRunInfo()
	info.RunID = "run-2"
	info.FinishedAt = info.FinishedAt.Add(time.Minute)
	if err := st.SaveResults(ctx, second, info); err != nil {
		t.Fatalf("second SaveResults failed: %v", err)
	}

	summary, err := st.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.PerfectMatches != 1 || summary.Mismatches != 0 {
		t.Errorf("old results survived replace: %+v", summary)
	}
	if summary.LastRun == nil || summary.LastRun.RunID != "run-2" {
		t.Errorf("last run = %+v, want run-2", summary.LastRun)
	}
}

func TestLastRunEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	info, err := st.LastRun(context.Background())
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if info != nil {
		t.Errorf("LastRun on empty db = %+v, want nil", info)
	}
}

func TestAcquireRunLockExcludes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	release, err := st.AcquireRunLock()
	if err != nil {
		t.Fatalf("AcquireRunLock failed: %v", err)
	}
	defer release()

	if _, err := st.AcquireRunLock(); !errors.Is(err, store.ErrRunActive) {
		t.Errorf("second lock err = %v, want ErrRunActive", err)
	}
}
