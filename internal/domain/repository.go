package domain

import "context"

// Catalog defines the search capability of one product source.
type Catalog interface {
	// ID identifies the catalog ("ah", "picnic").
	ID() string
	// Search returns up to limit candidates for a free-text query. Zero
	// results is an empty slice, not an error.
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
}

// CartLine is one planned cart addition.
type CartLine struct {
	ID   string `json:"id"`
	Qty  int    `json:"qty"`
	Name string `json:"name,omitempty"`
}

// CartSummary carries a catalog's current cart totals. Totals are kept raw
// (string or numeric, as the catalog returned them) for the checkout
// comparison to interpret.
type CartSummary struct {
	TotalRaw    any `json:"total"`
	DiscountRaw any `json:"discount,omitempty"`
	ItemCount   int `json:"item_count"`
}

// CartClient defines the mutating and cart-reading capabilities of one
// catalog. The matcher never calls these; resolved=true is the caller's
// precondition gate.
type CartClient interface {
	ID() string
	AddItems(ctx context.Context, lines []CartLine) error
	FetchCart(ctx context.Context) (CartSummary, error)
}

// MatchCacheStore persists accepted matches across runs. Load degrades to an
// empty mapping on a missing or corrupt store; Save overwrites the whole
// store best-effort.
type MatchCacheStore interface {
	Load() map[string]CacheEntry
	Save(entries map[string]CacheEntry) error
}
