package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Item is a normalized grocery input item. Immutable once handed to the matcher.
type Item struct {
	Name      string            `json:"name"`
	Qty       int               `json:"qty"`
	Brand     string            `json:"brand,omitempty"`
	UnitHint  string            `json:"unit_hint,omitempty"`
	ManualIDs map[string]string `json:"manual_ids,omitempty"` // catalog id -> pre-resolved product id
}

// ItemInput is the wire shape of an incoming item. Field aliases from older
// payloads (quantity, unit, size, *_product_id) are accepted and folded into
// the canonical form by Normalize.
type ItemInput struct {
	Name            string `json:"name"`
	Qty             any    `json:"qty,omitempty"`
	Quantity        any    `json:"quantity,omitempty"`
	Brand           string `json:"brand,omitempty"`
	Unit            string `json:"unit,omitempty"`
	UnitHint        string `json:"unit_hint,omitempty"`
	Size            string `json:"size,omitempty"`
	AHID            any    `json:"ah_id,omitempty"`
	AHProductID     any    `json:"ah_product_id,omitempty"`
	PicnicID        any    `json:"picnic_id,omitempty"`
	PicnicProductID any    `json:"picnic_product_id,omitempty"`
}

// Normalize folds an ItemInput into a canonical Item. Invalid or missing
// quantities default to 1; manual ids are keyed by catalog id.
func (in ItemInput) Normalize() Item {
	item := Item{
		Name:     strings.TrimSpace(in.Name),
		Qty:      coerceQty(firstNonNil(in.Qty, in.Quantity)),
		Brand:    strings.TrimSpace(in.Brand),
		UnitHint: strings.TrimSpace(firstNonEmpty(in.Unit, in.UnitHint, in.Size)),
	}

	if id := coerceID(firstNonNil(in.AHID, in.AHProductID)); id != "" {
		item.setManualID(CatalogAH, id)
	}
	if id := coerceID(firstNonNil(in.PicnicID, in.PicnicProductID)); id != "" {
		item.setManualID(CatalogPicnic, id)
	}

	return item
}

// ManualID returns the pre-resolved product id for a catalog, if any.
func (i Item) ManualID(catalog string) string {
	return i.ManualIDs[catalog]
}

func (i *Item) setManualID(catalog, id string) {
	if i.ManualIDs == nil {
		i.ManualIDs = make(map[string]string)
	}
	i.ManualIDs[catalog] = id
}

func firstNonNil(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// coerceQty accepts the numeric and string encodings seen in item payloads.
func coerceQty(value any) int {
	qty := 1
	switch v := value.(type) {
	case int:
		qty = v
	case float64:
		qty = int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			qty = n
		}
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

// coerceID renders a product id field as a string. JSON numbers arrive as
// float64; whole values must not pick up a decimal point.
func coerceID(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// PurchaseRecord is the canonical purchase for a fully resolved item.
type PurchaseRecord struct {
	Name string            `json:"name"`
	Qty  int               `json:"qty"`
	IDs  map[string]string `json:"ids"` // catalog id -> product id
}
