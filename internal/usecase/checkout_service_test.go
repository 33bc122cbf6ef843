package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/basketbridge/backend/internal/domain"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"nil", nil, 0},
		{"float passthrough", 12.5, 12.5},
		{"int passthrough", 15, 15},
		{"plain decimal", "12.34", 12.34},
		{"comma decimal", "12,34", 12.34},
		{"euro prefix", "€ 12,34", 12.34},
		{"currency code", "EUR 12,34", 12.34},
		{"european thousands", "EUR 1.234,56", 1234.56},
		{"us thousands", "1,234.56", 1234.56},
		{"empty string", "", 0},
		{"garbage", "n/a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMoney(tt.input); got != tt.want {
				t.Errorf("ParseMoney(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePicnicTotal(t *testing.T) {
	tests := []struct {
		name  string
		input any
		unit  string
		want  float64
	}{
		{"cents float", 1234.0, PriceUnitCents, 12.34},
		{"cents int", 1500, PriceUnitCents, 15},
		{"euros float", 12.5, PriceUnitEuros, 12.5},
		{"string ignores unit", "12,34", PriceUnitCents, 12.34},
		{"nil", nil, PriceUnitCents, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsePicnicTotal(tt.input, tt.unit); got != tt.want {
				t.Errorf("parsePicnicTotal(%v, %s) = %v, want %v", tt.input, tt.unit, got, tt.want)
			}
		})
	}
}

func newTestCheckout(ah, picnic *fakeCartClient, unit string) *CheckoutService {
	return NewCheckoutService(ah, picnic, unit)
}

func TestCompareRecommendsCheaperStore(t *testing.T) {
	ah := &fakeCartClient{id: domain.CatalogAH, summary: domain.CartSummary{
		TotalRaw:    15.0,
		DiscountRaw: 1.5,
		ItemCount:   4,
	}}
	picnic := &fakeCartClient{id: domain.CatalogPicnic, summary: domain.CartSummary{
		TotalRaw:  1234.0, // cents
		ItemCount: 3,
	}}
	svc := newTestCheckout(ah, picnic, PriceUnitCents)

	report, err := svc.Compare(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Recommendation != domain.CatalogPicnic {
		t.Errorf("recommendation = %q, want picnic", report.Recommendation)
	}
	if report.Savings != 2.66 {
		t.Errorf("savings = %v, want 2.66", report.Savings)
	}
	if report.Stores[domain.CatalogAH].Total != 15 || report.Stores[domain.CatalogAH].Discount != 1.5 {
		t.Errorf("ah totals = %+v", report.Stores[domain.CatalogAH])
	}
	if report.Stores[domain.CatalogPicnic].Total != 12.34 {
		t.Errorf("picnic total = %v, want 12.34", report.Stores[domain.CatalogPicnic].Total)
	}
}

func TestCompareEqualTotals(t *testing.T) {
	ah := &fakeCartClient{id: domain.CatalogAH, summary: domain.CartSummary{TotalRaw: 10.0}}
	picnic := &fakeCartClient{id: domain.CatalogPicnic, summary: domain.CartSummary{TotalRaw: 10.0}}
	svc := newTestCheckout(ah, picnic, PriceUnitEuros)

	report, err := svc.Compare(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Recommendation != "either" || report.Savings != 0 {
		t.Errorf("report = %+v, want either with zero savings", report)
	}
}

func TestCompareUnitOverride(t *testing.T) {
	ah := &fakeCartClient{id: domain.CatalogAH, summary: domain.CartSummary{TotalRaw: 15.0}}
	picnic := &fakeCartClient{id: domain.CatalogPicnic, summary: domain.CartSummary{TotalRaw: 12.5}}
	svc := newTestCheckout(ah, picnic, PriceUnitCents)

	report, err := svc.Compare(context.Background(), PriceUnitEuros)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.PicnicUnit != PriceUnitEuros {
		t.Errorf("unit = %q, want eur", report.PicnicUnit)
	}
	if report.Stores[domain.CatalogPicnic].Total != 12.5 {
		t.Errorf("picnic total = %v, want 12.5", report.Stores[domain.CatalogPicnic].Total)
	}
}

func TestCompareInvalidUnit(t *testing.T) {
	svc := newTestCheckout(&fakeCartClient{id: domain.CatalogAH}, &fakeCartClient{id: domain.CatalogPicnic}, PriceUnitCents)

	_, err := svc.Compare(context.Background(), "pounds")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestCompareFetchErrorCarriesCatalogID(t *testing.T) {
	ah := &fakeCartClient{id: domain.CatalogAH, fetchErr: errors.New("timeout")}
	svc := newTestCheckout(ah, &fakeCartClient{id: domain.CatalogPicnic}, PriceUnitCents)

	_, err := svc.Compare(context.Background(), "")
	if err == nil || err.Error() != "ah fetch cart: timeout" {
		t.Errorf("err = %v", err)
	}
}
