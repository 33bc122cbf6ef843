package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/basketbridge/backend/internal/domain"
)

// MatcherConfig holds configuration for the matcher service.
type MatcherConfig struct {
	Settings           domain.MatchSettings
	EnableDebugLogging bool
}

// MatcherService resolves items against every configured catalog, consulting
// manual overrides and the match cache before searching.
type MatcherService struct {
	catalogs []domain.Catalog
	cache    domain.MatchCacheStore
	settings domain.MatchSettings
	debug    bool
	now      func() time.Time
}

// DefaultMatchSettings returns the documented defaults.
func DefaultMatchSettings() domain.MatchSettings {
	return domain.MatchSettings{
		SearchLimit:         8,
		AutoAcceptScore:     72,
		MinScoreGap:         8,
		PreferBonusTiebreak: true,
		CacheTTLDays:        21,
		MaxAlternatives:     3,
	}
}

// NewMatcherService creates a matcher over the given catalogs and cache
// store. Zero-valued numeric settings fall back to the defaults.
func NewMatcherService(catalogs []domain.Catalog, cache domain.MatchCacheStore, config MatcherConfig) *MatcherService {
	settings := config.Settings
	defaults := DefaultMatchSettings()
	if settings.SearchLimit <= 0 {
		settings.SearchLimit = defaults.SearchLimit
	}
	if settings.AutoAcceptScore <= 0 {
		settings.AutoAcceptScore = defaults.AutoAcceptScore
	}
	if settings.MinScoreGap <= 0 {
		settings.MinScoreGap = defaults.MinScoreGap
	}
	if settings.CacheTTLDays <= 0 {
		settings.CacheTTLDays = defaults.CacheTTLDays
	}
	if settings.MaxAlternatives <= 0 {
		settings.MaxAlternatives = defaults.MaxAlternatives
	}

	return &MatcherService{
		catalogs: catalogs,
		cache:    cache,
		settings: settings,
		debug:    config.EnableDebugLogging,
		now:      time.Now,
	}
}

// MatchOptions are per-batch overrides.
type MatchOptions struct {
	NoCache             bool
	SearchLimitOverride int
}

// MatchItems resolves a batch of items against every catalog and aggregates
// the per-item, per-catalog outcomes. A catalog failure aborts the batch and
// surfaces to the caller; matching ambiguity does not.
func (s *MatcherService) MatchItems(ctx context.Context, items []domain.Item, opts MatchOptions) (*domain.MatchReport, error) {
	settings := s.settings
	if opts.SearchLimitOverride > 0 {
		settings.SearchLimit = opts.SearchLimitOverride
	}

	allowCache := !opts.NoCache && s.cache != nil
	entries := map[string]domain.CacheEntry{}
	if allowCache {
		entries = s.cache.Load()
	}

	report := &domain.MatchReport{
		Settings:        settings,
		Items:           make([]domain.ItemResult, 0, len(items)),
		ResolvedItems:   []domain.PurchaseRecord{},
		UnresolvedItems: []domain.UnresolvedItem{},
	}
	dirty := false

	for _, item := range items {
		key := cacheKeyForItem(item)
		var cached *domain.CacheEntry
		if entry, ok := entries[key]; ok {
			cached = &entry
		}

		matches := make(map[string]domain.Resolution, len(s.catalogs))
		resolved := true
		for _, catalog := range s.catalogs {
			match, err := s.resolveCatalogMatch(ctx, catalog, item, settings, cached, allowCache)
			if err != nil {
				return nil, err
			}
			matches[catalog.ID()] = match
			if match.FromCache {
				report.Summary.CacheHits++
			}
			if !match.Resolved {
				resolved = false
			}
		}

		report.Items = append(report.Items, domain.ItemResult{
			Input:    item,
			CacheKey: key,
			Resolved: resolved,
			Matches:  matches,
		})

		if resolved {
			record := domain.PurchaseRecord{
				Name: item.Name,
				Qty:  item.Qty,
				IDs:  make(map[string]string, len(matches)),
			}
			for catalogID, match := range matches {
				record.IDs[catalogID] = match.Selected.ID
			}
			report.ResolvedItems = append(report.ResolvedItems, record)

			if allowCache && key != "" && allFreshlyResolved(matches) {
				entries[key] = s.newCacheEntry(matches)
				dirty = true
			}
		} else {
			unresolved := domain.UnresolvedItem{
				Name:       item.Name,
				Qty:        item.Qty,
				Confidence: make(map[string]domain.Confidence, len(matches)),
				Reason:     make(map[string]string, len(matches)),
			}
			for catalogID, match := range matches {
				unresolved.Confidence[catalogID] = match.Confidence
				unresolved.Reason[catalogID] = match.Reason
			}
			report.UnresolvedItems = append(report.UnresolvedItems, unresolved)
		}
	}

	report.Summary.Total = len(items)
	report.Summary.Resolved = len(report.ResolvedItems)
	report.Summary.Unresolved = len(report.UnresolvedItems)

	if allowCache && dirty {
		if err := s.cache.Save(entries); err != nil {
			// Best-effort persistence: a failed save never invalidates the
			// match results that produced it.
			log.Printf("[CACHE] save failed: %v", err)
		}
	}

	return report, nil
}

// resolveCatalogMatch resolves one item against one catalog: manual override,
// then cache, then search + score + decide.
func (s *MatcherService) resolveCatalogMatch(
	ctx context.Context,
	catalog domain.Catalog,
	item domain.Item,
	settings domain.MatchSettings,
	cached *domain.CacheEntry,
	allowCache bool,
) (domain.Resolution, error) {
	if manualID := item.ManualID(catalog.ID()); manualID != "" {
		return domain.Resolution{
			Resolved:   true,
			Confidence: domain.ConfidenceManual,
			Score:      100,
			ScoreGap:   100,
			Reason:     domain.ReasonManualID,
			Selected: &domain.ScoredCandidate{
				Candidate: domain.Candidate{ID: manualID},
				Score:     100,
			},
			Alternatives: []domain.ScoredCandidate{},
		}, nil
	}

	if allowCache && cached != nil && cached.IsValid(s.now(), settings.CacheTTLDays) {
		if cachedID := cached.ID(catalog.ID()); cachedID != "" {
			if s.debug {
				log.Printf("[MATCH] %s cache hit for %q", catalog.ID(), item.Name)
			}
			return domain.Resolution{
				Resolved:   true,
				Confidence: domain.ConfidenceHighCached,
				Score:      95,
				ScoreGap:   95,
				Reason:     domain.ReasonCacheHit,
				Selected: &domain.ScoredCandidate{
					Candidate: domain.Candidate{ID: cachedID, Name: cached.Name(catalog.ID())},
					Score:     95,
				},
				Alternatives: []domain.ScoredCandidate{},
				FromCache:    true,
			}, nil
		}
	}

	if item.Name == "" {
		return domain.Resolution{
			Resolved:     false,
			Confidence:   domain.ConfidenceLow,
			Reason:       domain.ReasonMissingQuery,
			Alternatives: []domain.ScoredCandidate{},
		}, nil
	}

	candidates, err := catalog.Search(ctx, item.Name, settings.SearchLimit)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("%s search %q: %w", catalog.ID(), item.Name, err)
	}

	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, scoreCandidate(item, candidate, settings))
	}

	decision := decide(scored, settings)
	if s.debug {
		log.Printf("[MATCH] %s %q: %d candidates, confidence=%s score=%.1f gap=%.1f",
			catalog.ID(), item.Name, len(candidates), decision.Confidence, decision.Score, decision.ScoreGap)
	}
	return decision, nil
}

// allFreshlyResolved reports whether every catalog resolved via a fresh
// search. Manual and cached resolutions never refresh the cache entry.
func allFreshlyResolved(matches map[string]domain.Resolution) bool {
	for _, match := range matches {
		if match.Confidence != domain.ConfidenceHigh {
			return false
		}
	}
	return len(matches) > 0
}

func (s *MatcherService) newCacheEntry(matches map[string]domain.Resolution) domain.CacheEntry {
	entry := domain.CacheEntry{
		IDs:       make(map[string]string, len(matches)),
		Names:     make(map[string]string, len(matches)),
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	}
	for catalogID, match := range matches {
		entry.IDs[catalogID] = match.Selected.ID
		if match.Selected.Name != "" {
			entry.Names[catalogID] = match.Selected.Name
		}
	}
	return entry
}

// cacheKeyForItem derives the normalized identity key: name|brand|unit with
// leading and trailing separators stripped. Two items with the same
// normalized identity share a cache slot regardless of surface text.
func cacheKeyForItem(item domain.Item) string {
	key := strings.Join([]string{
		normalizeText(item.Name),
		normalizeText(item.Brand),
		normalizeText(item.UnitHint),
	}, "|")
	return strings.Trim(key, "|")
}
