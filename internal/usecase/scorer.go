package usecase

import (
	"math"
	"strings"

	"github.com/basketbridge/backend/internal/domain"
)

// Name sub-score weights. An exact normalized match overrides both.
const (
	tokenOverlapWeight  = 60.0
	sequenceRatioWeight = 35.0
)

// Unit sub-score values by relative deviation, plus penalties.
const (
	unitCloseBonus              = 15.0 // deviation <= 10%
	unitReasonableBonus         = 8.0  // deviation <= 25%
	unitFarBonus                = 2.0  // deviation <= 50%
	unitVeryFarPenalty          = -10.0
	unitMismatchPenalty         = -20.0
	missingCandidateUnitPenalty = -6.0
)

// Brand, availability and tie-break sub-scores.
const (
	brandMatchBonus      = 10.0
	brandMismatchPenalty = -6.0
	unavailablePenalty   = -25.0
	bonusTiebreak        = 2.0
)

// scoreCandidate combines the five sub-scores into a single total clamped to
// [0, 100] with a full breakdown for explainability.
func scoreCandidate(item domain.Item, candidate domain.Candidate, settings domain.MatchSettings) domain.ScoredCandidate {
	nameScore, nameMeta := scoreNameSimilarity(item.Name, candidate.Name)
	unitScore, unitReason := scoreUnitCompatibility(item, candidate)
	brandScore, brandReason := scoreBrandCompatibility(item, candidate)
	availabilityScore, availabilityReason := scoreAvailability(candidate)
	bonusScore, bonusReason := scoreBonusTiebreak(candidate, settings)

	total := nameScore + unitScore + brandScore + availabilityScore + bonusScore
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return domain.ScoredCandidate{
		Candidate: candidate,
		Score:     round2(total),
		Breakdown: domain.ScoreBreakdown{
			Name:               round2(nameScore),
			Unit:               round2(unitScore),
			Brand:              round2(brandScore),
			Availability:       round2(availabilityScore),
			BonusTiebreak:      round2(bonusScore),
			NameMeta:           nameMeta,
			UnitReason:         unitReason,
			BrandReason:        brandReason,
			AvailabilityReason: availabilityReason,
			BonusReason:        bonusReason,
		},
	}
}

// scoreNameSimilarity blends token-set overlap (Jaccard) with a
// character-level sequence ratio. Equal normalized strings always score 100.
func scoreNameSimilarity(queryName, candidateName string) (float64, domain.NameMeta) {
	qNorm := normalizeText(queryName)
	cNorm := normalizeText(candidateName)

	if qNorm == "" || cNorm == "" {
		return 0, domain.NameMeta{}
	}

	exact := qNorm == cNorm

	qTokens := tokenSet(queryName)
	cTokens := tokenSet(candidateName)
	overlap := jaccard(qTokens, cTokens)
	ratio := sequenceRatio(qNorm, cNorm)

	score := overlap*tokenOverlapWeight + ratio*sequenceRatioWeight
	if exact {
		score = 100
	}

	return score, domain.NameMeta{
		TokenOverlap:  round3(overlap),
		SequenceRatio: round3(ratio),
		Exact:         exact,
	}
}

// scoreUnitCompatibility compares parsed unit hints. A missing hint on the
// query side is neutral; absence of data never penalizes the query.
func scoreUnitCompatibility(item domain.Item, candidate domain.Candidate) (float64, string) {
	queryHint := parseUnitHint(item.UnitHint, item.Name)
	candidateHint := parseUnitHint(candidate.UnitSize, candidate.Name)

	if queryHint == nil {
		return 0, "no_query_unit_hint"
	}
	if candidateHint == nil {
		return missingCandidateUnitPenalty, "missing_candidate_unit"
	}
	if queryHint.Unit != candidateHint.Unit {
		return unitMismatchPenalty, "unit_mismatch"
	}
	if queryHint.Value <= 0 {
		return 0, "invalid_query_unit"
	}

	deviation := math.Abs(candidateHint.Value-queryHint.Value) / queryHint.Value
	switch {
	case deviation <= 0.10:
		return unitCloseBonus, "unit_close"
	case deviation <= 0.25:
		return unitReasonableBonus, "unit_reasonable"
	case deviation <= 0.50:
		return unitFarBonus, "unit_far"
	default:
		return unitVeryFarPenalty, "unit_very_far"
	}
}

// scoreBrandCompatibility checks the normalized brand hint against the
// candidate's name and brand as a substring.
func scoreBrandCompatibility(item domain.Item, candidate domain.Candidate) (float64, string) {
	if item.Brand == "" {
		return 0, "no_brand_hint"
	}

	brandNorm := normalizeText(item.Brand)
	candName := normalizeText(candidate.Name)
	candBrand := normalizeText(candidate.Brand)

	if brandNorm != "" && (strings.Contains(candName, brandNorm) || strings.Contains(candBrand, brandNorm)) {
		return brandMatchBonus, "brand_match"
	}
	return brandMismatchPenalty, "brand_mismatch"
}

// scoreAvailability penalizes only an explicit "not available". Unknown
// availability is neutral.
func scoreAvailability(candidate domain.Candidate) (float64, string) {
	if candidate.Unavailable() {
		return unavailablePenalty, "not_available"
	}
	return 0, "available_or_unknown"
}

func scoreBonusTiebreak(candidate domain.Candidate, settings domain.MatchSettings) (float64, string) {
	if !settings.PreferBonusTiebreak {
		return 0, "bonus_tiebreak_disabled"
	}
	if candidate.IsBonus {
		return bonusTiebreak, "bonus_tiebreak"
	}
	return 0, "no_bonus"
}

// jaccard is |intersection| / |union| over two token sets.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if b[tok] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// sequenceRatio is a character-level similarity in [0, 1] derived from edit
// distance over the normalized strings.
func sequenceRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(ra, rb))/float64(longest)
}

// levenshteinDistance uses two rows instead of the full matrix.
func levenshteinDistance(r1, r2 []rune) int {
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	n := len(r2)
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
