package picnic

import (
	"encoding/json"

	"github.com/basketbridge/backend/internal/domain"
)

type searchResponse struct {
	Products []picnicProduct `json:"products"`
}

// picnicProduct is the storefront's raw product shape. Prices are integer
// cents.
type picnicProduct struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Available *bool  `json:"available"`
	Price     *int   `json:"price"`
}

type cartResponse struct {
	TotalPrice any               `json:"totalPrice"`
	ItemCount  *int              `json:"itemCount"`
	Items      []json.RawMessage `json:"items"`
}

// mapProduct converts a raw storefront product to a domain candidate. The
// storefront reports no brand and no promotions.
func mapProduct(p picnicProduct) domain.Candidate {
	candidate := domain.Candidate{
		ID:        p.ID,
		Name:      p.Name,
		UnitSize:  p.Unit,
		Available: p.Available,
	}
	if p.Price != nil {
		price := float64(*p.Price) / 100
		candidate.PriceNow = &price
	}
	return candidate
}
