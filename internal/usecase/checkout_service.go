package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/basketbridge/backend/internal/domain"
)

// Picnic numeric totals can be reported in cents or whole euros.
const (
	PriceUnitCents = "cents"
	PriceUnitEuros = "eur"
)

var moneyJunkRegex = regexp.MustCompile(`[^0-9,.-]`)

// StoreTotals is one catalog's side of the checkout comparison.
type StoreTotals struct {
	Total     float64 `json:"total"`
	Discount  float64 `json:"discount"`
	ItemCount int     `json:"item_count"`
}

// CompareReport recommends the cheaper catalog for the current carts.
type CompareReport struct {
	Stores         map[string]StoreTotals `json:"stores"`
	PicnicUnit     string                 `json:"picnic_unit_assumption"`
	Recommendation string                 `json:"recommendation"`
	Savings        float64                `json:"savings"`
}

// CheckoutService compares the two catalogs' current cart totals.
type CheckoutService struct {
	ah         domain.CartClient
	picnic     domain.CartClient
	picnicUnit string
}

// NewCheckoutService creates a checkout comparison over both cart clients.
// picnicUnit defaults to cents.
func NewCheckoutService(ah, picnic domain.CartClient, picnicUnit string) *CheckoutService {
	if picnicUnit != PriceUnitEuros {
		picnicUnit = PriceUnitCents
	}
	return &CheckoutService{ah: ah, picnic: picnic, picnicUnit: picnicUnit}
}

// Compare fetches both carts and builds the totals report. The unit override
// applies to this call only; empty keeps the configured default.
func (s *CheckoutService) Compare(ctx context.Context, picnicUnit string) (*CompareReport, error) {
	if picnicUnit == "" {
		picnicUnit = s.picnicUnit
	}
	if picnicUnit != PriceUnitCents && picnicUnit != PriceUnitEuros {
		return nil, fmt.Errorf("%w: picnic unit %q", domain.ErrInvalidRequest, picnicUnit)
	}

	ahCart, err := s.ah.FetchCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s fetch cart: %w", s.ah.ID(), err)
	}
	picnicCart, err := s.picnic.FetchCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s fetch cart: %w", s.picnic.ID(), err)
	}

	return buildCompareReport(ahCart, picnicCart, picnicUnit), nil
}

func buildCompareReport(ah, picnic domain.CartSummary, picnicUnit string) *CompareReport {
	ahTotal := ParseMoney(ah.TotalRaw)
	picnicTotal := parsePicnicTotal(picnic.TotalRaw, picnicUnit)

	recommendation := "either"
	savings := 0.0
	switch {
	case ahTotal < picnicTotal:
		recommendation = domain.CatalogAH
		savings = picnicTotal - ahTotal
	case picnicTotal < ahTotal:
		recommendation = domain.CatalogPicnic
		savings = ahTotal - picnicTotal
	}

	return &CompareReport{
		Stores: map[string]StoreTotals{
			domain.CatalogAH: {
				Total:     round2(ahTotal),
				Discount:  round2(ParseMoney(ah.DiscountRaw)),
				ItemCount: ah.ItemCount,
			},
			domain.CatalogPicnic: {
				Total:     round2(picnicTotal),
				ItemCount: picnic.ItemCount,
			},
		},
		PicnicUnit:     picnicUnit,
		Recommendation: recommendation,
		Savings:        round2(savings),
	}
}

// ParseMoney extracts a euro amount from a raw total. Numeric values pass
// through; strings tolerate currency markers and both European and US
// thousands/decimal conventions ("EUR 1.234,56", "1,234.56", "12,34").
func ParseMoney(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		return parseMoneyString(v)
	default:
		return parseMoneyString(fmt.Sprintf("%v", v))
	}
}

func parseMoneyString(value string) float64 {
	s := strings.TrimSpace(value)
	s = strings.ReplaceAll(s, "EUR", "")
	s = strings.ReplaceAll(s, "€", "")
	s = moneyJunkRegex.ReplaceAllString(strings.TrimSpace(s), "")
	if s == "" {
		return 0
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		// European convention: dot groups thousands, comma is the decimal
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case comma >= 0 && dot >= 0:
		// US convention: comma groups thousands
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return amount
}

// parsePicnicTotal interprets numeric Picnic totals per the configured unit;
// string totals are parsed as money directly.
func parsePicnicTotal(value any, unit string) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		if unit == PriceUnitCents {
			return v / 100
		}
		return v
	case int:
		if unit == PriceUnitCents {
			return float64(v) / 100
		}
		return float64(v)
	default:
		return ParseMoney(value)
	}
}
