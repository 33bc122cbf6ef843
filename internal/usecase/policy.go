package usecase

import (
	"sort"

	"github.com/basketbridge/backend/internal/domain"
)

// decide ranks scored candidates and classifies the outcome into a confidence
// tier. Sorting is stable so equal scores keep encounter order. Only
// resolved=true outcomes are eligible for caching and cart actions.
func decide(scored []domain.ScoredCandidate, settings domain.MatchSettings) domain.Resolution {
	if len(scored) == 0 {
		return domain.Resolution{
			Resolved:     false,
			Confidence:   domain.ConfidenceLow,
			Score:        0,
			ScoreGap:     0,
			Selected:     nil,
			Alternatives: []domain.ScoredCandidate{},
			Reason:       domain.ReasonNoCandidates,
		}
	}

	ranked := make([]domain.ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	top := ranked[0]
	secondScore := 0.0
	if len(ranked) > 1 {
		secondScore = ranked[1].Score
	}
	gap := round2(top.Score - secondScore)

	var (
		confidence domain.Confidence
		resolved   bool
		reason     string
	)
	switch {
	case top.Score >= settings.AutoAcceptScore && gap >= settings.MinScoreGap:
		confidence = domain.ConfidenceHigh
		resolved = true
		reason = domain.ReasonHighConfidence
	case top.Score >= settings.AutoAcceptScore:
		confidence = domain.ConfidenceMedium
		reason = domain.ReasonScoreGapTooSmall
	case top.Score >= settings.AutoAcceptScore-10:
		confidence = domain.ConfidenceMedium
		reason = domain.ReasonScoreBelowAccept
	default:
		confidence = domain.ConfidenceLow
		reason = domain.ReasonLowScore
	}

	maxAlt := settings.MaxAlternatives
	if maxAlt < 0 {
		maxAlt = 0
	}
	end := 1 + maxAlt
	if end > len(ranked) {
		end = len(ranked)
	}
	alternatives := make([]domain.ScoredCandidate, end-1)
	copy(alternatives, ranked[1:end])

	return domain.Resolution{
		Resolved:     resolved,
		Confidence:   confidence,
		Score:        top.Score,
		ScoreGap:     gap,
		Selected:     &top,
		Alternatives: alternatives,
		Reason:       reason,
	}
}
