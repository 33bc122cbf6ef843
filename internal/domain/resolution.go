package domain

// Confidence classifies how reliable a resolution is. The set is closed:
// switch statements over Confidence should cover every constant below.
type Confidence string

const (
	ConfidenceManual     Confidence = "manual"
	ConfidenceHighCached Confidence = "high_cached"
	ConfidenceHigh       Confidence = "high"
	ConfidenceMedium     Confidence = "medium"
	ConfidenceLow        Confidence = "low"
)

// Machine-readable resolution reasons.
const (
	ReasonManualID            = "manual_id"
	ReasonCacheHit            = "cache_hit"
	ReasonHighConfidence      = "high_confidence"
	ReasonScoreGapTooSmall    = "score_gap_too_small"
	ReasonScoreBelowAccept    = "score_below_auto_accept"
	ReasonLowScore            = "low_score"
	ReasonNoCandidates        = "no_candidates"
	ReasonMissingQuery        = "missing_query"
)

// NameMeta explains the name sub-score.
type NameMeta struct {
	TokenOverlap  float64 `json:"token_overlap"`
	SequenceRatio float64 `json:"sequence_ratio"`
	Exact         bool    `json:"exact"`
}

// ScoreBreakdown records every sub-score and its qualitative reason. It is
// always produced, even for a zero or all-negative total.
type ScoreBreakdown struct {
	Name               float64  `json:"name"`
	Unit               float64  `json:"unit"`
	Brand              float64  `json:"brand"`
	Availability       float64  `json:"availability"`
	BonusTiebreak      float64  `json:"bonus_tiebreak"`
	NameMeta           NameMeta `json:"name_meta"`
	UnitReason         string   `json:"unit_reason"`
	BrandReason        string   `json:"brand_reason"`
	AvailabilityReason string   `json:"availability_reason"`
	BonusReason        string   `json:"bonus_reason"`
}

// ScoredCandidate is a candidate with its clamped total score and breakdown.
type ScoredCandidate struct {
	Candidate
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"score_breakdown"`
}

// Resolution is the outcome of matching one item against one catalog.
type Resolution struct {
	Resolved     bool              `json:"resolved"`
	Confidence   Confidence        `json:"confidence"`
	Score        float64           `json:"score"`
	ScoreGap     float64           `json:"score_gap"`
	Selected     *ScoredCandidate  `json:"selected"`
	Alternatives []ScoredCandidate `json:"alternatives"`
	Reason       string            `json:"reason"`
	FromCache    bool              `json:"from_cache"`
}
