package domain

// MatchSettings are the knobs the matcher ran with. They are echoed into the
// batch report so a result can be interpreted without the config that
// produced it.
type MatchSettings struct {
	SearchLimit         int     `json:"search_limit"`
	AutoAcceptScore     float64 `json:"auto_accept_score"`
	MinScoreGap         float64 `json:"min_score_gap"`
	PreferBonusTiebreak bool    `json:"prefer_bonus_tiebreak"`
	CacheTTLDays        int     `json:"cache_ttl_days"`
	MaxAlternatives     int     `json:"max_alternatives"`
}

// ItemResult is the full per-item detail: one Resolution per catalog.
type ItemResult struct {
	Input    Item                  `json:"input"`
	CacheKey string                `json:"cache_key"`
	Resolved bool                  `json:"resolved"`
	Matches  map[string]Resolution `json:"matches"`
}

// UnresolvedItem summarizes why an item did not fully resolve.
type UnresolvedItem struct {
	Name       string                `json:"name"`
	Qty        int                   `json:"qty"`
	Confidence map[string]Confidence `json:"confidence"`
	Reason     map[string]string     `json:"reason"`
}

// MatchSummary holds batch-level counts. CacheHits counts each catalog hit
// independently, so an item served from cache on both sides contributes 2.
type MatchSummary struct {
	Total      int `json:"total"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
	CacheHits  int `json:"cache_hits"`
}

// MatchReport is the structured outcome of one batch match.
type MatchReport struct {
	Settings        MatchSettings    `json:"settings"`
	Summary         MatchSummary     `json:"summary"`
	Items           []ItemResult     `json:"items"`
	ResolvedItems   []PurchaseRecord `json:"resolved_items"`
	UnresolvedItems []UnresolvedItem `json:"unresolved_items"`
}
