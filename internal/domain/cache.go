package domain

import "time"

// CacheEntry is a previously accepted dual-catalog match, keyed externally by
// the normalized item identity. UpdatedAt is kept as the stored string so a
// malformed timestamp can be detected at validity-check time instead of
// failing the whole cache load.
type CacheEntry struct {
	IDs       map[string]string `json:"ids"`
	Names     map[string]string `json:"names,omitempty"`
	UpdatedAt string            `json:"updated_at"`
}

// IsValid reports whether the entry is still within its TTL. Missing or
// unparsable timestamps are invalid; an entry exactly at the boundary is
// still valid.
func (e CacheEntry) IsValid(now time.Time, ttlDays int) bool {
	if e.UpdatedAt == "" {
		return false
	}
	updated, err := time.Parse(time.RFC3339, e.UpdatedAt)
	if err != nil {
		return false
	}
	maxAge := time.Duration(ttlDays) * 24 * time.Hour
	return now.UTC().Sub(updated.UTC()) <= maxAge
}

// ID returns the cached product id for a catalog, if any.
func (e CacheEntry) ID(catalog string) string {
	return e.IDs[catalog]
}

// Name returns the cached product name for a catalog, if any.
func (e CacheEntry) Name(catalog string) string {
	return e.Names[catalog]
}
