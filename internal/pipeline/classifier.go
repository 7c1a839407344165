package pipeline

import (
	"sync"

	"foraymatch/internal/match"
	"foraymatch/internal/taxon"
)

// unitResult is everything one specimen contributes to the output
// collections. Exactly one of perfect and mismatch is set.
type unitResult struct {
	perfect    *PerfectMatch
	perfectRef *PerfectReferenceMatch
	mismatch   *MismatchExplanation
	score      *MismatchScore
}

// classify resolves a single specimen. The three per-variant lookups of a
// mismatched specimen run concurrently and are joined before the winner is
// selected.
func classify(m *match.Matcher, spec taxon.SpecimenRecord) unitResult {
	id := taxon.Normalize(spec.ForayID)
	org := taxon.Normalize(spec.OrgEntry)
	conf := taxon.Normalize(spec.ConfName)
	foray := taxon.Normalize(spec.ForayName)

	if org == conf && conf == foray {
		unit := unitResult{perfect: &PerfectMatch{ForayID: id, Name: org}}
		if res := m.Best(org, match.SourceForay); res.Record != nil && res.Score == 100 {
			unit.perfectRef = &PerfectReferenceMatch{
				ForayID:      id,
				MycoBankID:   res.Record.MycoBankID,
				MycoBankName: res.Record.PreferredName(),
			}
		}
		return unit
	}

	category := CategoryAllDifferent
	switch {
	case org == conf:
		category = CategoryOrgConfMatch
	case org == foray:
		category = CategoryOrgForayMatch
	case conf == foray:
		category = CategoryConfForayMatch
	}

	unit := unitResult{mismatch: &MismatchExplanation{
		ForayID:   id,
		OrgEntry:  org,
		ConfName:  conf,
		ForayName: foray,
		Category:  category,
	}}

	var orgRes, confRes, forayRes match.Result
	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); orgRes = m.Best(org, match.SourceOrg) }()
	go func() { defer wg.Done(); confRes = m.Best(conf, match.SourceConf) }()
	go func() { defer wg.Done(); forayRes = m.Best(foray, match.SourceForay) }()
	wg.Wait()

	// First maximal score wins; evaluation order org, conf, foray.
	best := orgRes
	if confRes.Score > best.Score {
		best = confRes
	}
	if forayRes.Score > best.Score {
		best = forayRes
	}

	score := &MismatchScore{
		ForayID:    id,
		OrgScore:   orgRes.Score,
		ConfScore:  confRes.Score,
		ForayScore: forayRes.Score,
	}
	if best.Record != nil && best.Score > 0 {
		score.MycoBankID = best.Record.MycoBankID
		score.MycoBankName = best.Record.PreferredName()
		score.Explanation = best.Explanation
	}
	unit.score = score
	return unit
}
