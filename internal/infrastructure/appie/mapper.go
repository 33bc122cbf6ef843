package appie

import (
	"encoding/json"

	"github.com/basketbridge/backend/internal/domain"
)

// ahProduct is the gateway's raw product shape. Ids arrive as JSON numbers.
type ahProduct struct {
	ID             json.Number `json:"id"`
	Title          string      `json:"title"`
	Brand          string      `json:"brand"`
	UnitSize       string      `json:"unitSize"`
	Price          *ahPrice    `json:"price"`
	IsOrderable    *bool       `json:"isOrderable"`
	IsAvailable    *bool       `json:"isAvailable"`
	IsBonus        bool        `json:"isBonus"`
	BonusMechanism string      `json:"bonusMechanism"`
}

type ahPrice struct {
	Now      *float64 `json:"now"`
	Was      *float64 `json:"was"`
	UnitSize string   `json:"unitSize"`
}

// ahOrder is the raw order payload. Totals can be numbers or formatted
// strings; they stay raw for the checkout comparison to parse.
type ahOrder struct {
	TotalPrice    any               `json:"totalPrice"`
	TotalDiscount any               `json:"totalDiscount"`
	TotalCount    *int              `json:"totalCount"`
	Items         []json.RawMessage `json:"items"`
}

// mapProduct converts a raw gateway product to a domain candidate.
// isOrderable is authoritative for availability; isAvailable is the fallback.
func mapProduct(p ahProduct) domain.Candidate {
	candidate := domain.Candidate{
		ID:             p.ID.String(),
		Name:           p.Title,
		Brand:          p.Brand,
		UnitSize:       p.UnitSize,
		IsBonus:        p.IsBonus,
		BonusMechanism: p.BonusMechanism,
	}

	if p.IsOrderable != nil {
		candidate.Available = p.IsOrderable
	} else {
		candidate.Available = p.IsAvailable
	}

	if candidate.UnitSize == "" && p.Price != nil {
		candidate.UnitSize = p.Price.UnitSize
	}
	if p.Price != nil {
		candidate.PriceNow = p.Price.Now
		candidate.PriceWas = p.Price.Was
	}

	return candidate
}
