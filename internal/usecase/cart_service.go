package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/basketbridge/backend/internal/domain"
)

// SkippedItem is an input that could not be planned into any cart.
type SkippedItem struct {
	Reason string      `json:"reason"`
	Item   domain.Item `json:"item"`
}

// CartResult reports planned and applied cart additions per catalog.
type CartResult struct {
	DryRun  bool                         `json:"dry_run"`
	Planned map[string][]domain.CartLine `json:"planned"`
	Skipped []SkippedItem                `json:"skipped,omitempty"`
	Added   map[string]int               `json:"added,omitempty"`
}

// CartService plans and applies cart additions. It only acts on fully
// resolved purchases or explicit manual ids; resolution is the caller's gate,
// confirmation is enforced here.
type CartService struct {
	carts []domain.CartClient
}

// NewCartService creates a cart service over the given cart clients.
func NewCartService(carts []domain.CartClient) *CartService {
	return &CartService{carts: carts}
}

// PlanPurchases aggregates purchase records into per-catalog batches:
// quantities summed per product id, lines ordered by id for deterministic
// output.
func (s *CartService) PlanPurchases(records []domain.PurchaseRecord) map[string][]domain.CartLine {
	type lineAgg struct {
		qty  int
		name string
	}
	agg := make(map[string]map[string]*lineAgg)

	for _, record := range records {
		for catalogID, productID := range record.IDs {
			if productID == "" {
				continue
			}
			if agg[catalogID] == nil {
				agg[catalogID] = make(map[string]*lineAgg)
			}
			line := agg[catalogID][productID]
			if line == nil {
				line = &lineAgg{}
				agg[catalogID][productID] = line
			}
			line.qty += record.Qty
			if record.Name != "" {
				line.name = record.Name
			}
		}
	}

	planned := make(map[string][]domain.CartLine, len(agg))
	for catalogID, lines := range agg {
		ids := make([]string, 0, len(lines))
		for id := range lines {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		batch := make([]domain.CartLine, 0, len(ids))
		for _, id := range ids {
			batch = append(batch, domain.CartLine{ID: id, Qty: lines[id].qty, Name: lines[id].name})
		}
		planned[catalogID] = batch
	}
	return planned
}

// PlanManual builds batches from items carrying manual ids. Items without any
// manual id are skipped, not failed.
func (s *CartService) PlanManual(items []domain.Item) (map[string][]domain.CartLine, []SkippedItem) {
	records := make([]domain.PurchaseRecord, 0, len(items))
	var skipped []SkippedItem

	for _, item := range items {
		if len(item.ManualIDs) == 0 {
			skipped = append(skipped, SkippedItem{Reason: "missing manual product ids", Item: item})
			continue
		}
		records = append(records, domain.PurchaseRecord{
			Name: item.Name,
			Qty:  item.Qty,
			IDs:  item.ManualIDs,
		})
	}
	return s.PlanPurchases(records), skipped
}

// Apply executes a plan against the cart clients. A dry run returns the plan
// untouched; a real run requires confirm. Failures carry the catalog identity
// and abort remaining batches.
func (s *CartService) Apply(ctx context.Context, planned map[string][]domain.CartLine, skipped []SkippedItem, confirm, dryRun bool) (*CartResult, error) {
	if !confirm && !dryRun {
		return nil, domain.ErrConfirmationRequired
	}

	result := &CartResult{
		DryRun:  dryRun,
		Planned: planned,
		Skipped: skipped,
	}
	if dryRun {
		return result, nil
	}

	result.Added = make(map[string]int, len(s.carts))
	for _, cart := range s.carts {
		lines := planned[cart.ID()]
		if len(lines) == 0 {
			result.Added[cart.ID()] = 0
			continue
		}
		if err := cart.AddItems(ctx, lines); err != nil {
			return nil, fmt.Errorf("%s add items: %w", cart.ID(), err)
		}
		result.Added[cart.ID()] = len(lines)
	}
	return result, nil
}
