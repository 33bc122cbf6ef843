package domain

// Catalog identifiers for the two supported product sources.
const (
	CatalogAH     = "ah"
	CatalogPicnic = "picnic"
)

// Candidate is a product record returned by a catalog search. Availability is
// tri-state: nil means the catalog did not report it, and absence of data must
// not count against the candidate.
type Candidate struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Brand          string   `json:"brand,omitempty"`
	UnitSize       string   `json:"unit_size,omitempty"`
	Available      *bool    `json:"available"`
	IsBonus        bool     `json:"is_bonus"`
	PriceNow       *float64 `json:"price_now,omitempty"`
	PriceWas       *float64 `json:"price_was,omitempty"`
	BonusMechanism string   `json:"bonus_mechanism,omitempty"`
}

// Unavailable reports whether the catalog explicitly marked the candidate as
// not orderable. Unknown availability returns false.
func (c Candidate) Unavailable() bool {
	return c.Available != nil && !*c.Available
}
