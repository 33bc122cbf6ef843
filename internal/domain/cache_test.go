package domain

import (
	"testing"
	"time"
)

func TestCacheEntryIsValid(t *testing.T) {
	now := time.Date(2025, 6, 22, 12, 0, 0, 0, time.UTC)
	stamp := func(t time.Time) string { return t.Format(time.RFC3339) }

	tests := []struct {
		name      string
		updatedAt string
		ttlDays   int
		want      bool
	}{
		{"fresh entry", stamp(now.AddDate(0, 0, -1)), 21, true},
		{"exactly at the boundary", stamp(now.AddDate(0, 0, -21)), 21, true},
		{"one second past the boundary", stamp(now.AddDate(0, 0, -21).Add(-time.Second)), 21, false},
		{"long expired", stamp(now.AddDate(0, 0, -60)), 21, false},
		{"zero ttl, written now", stamp(now), 0, true},
		{"zero ttl, written earlier", stamp(now.Add(-time.Minute)), 0, false},
		{"missing timestamp", "", 21, false},
		{"unparsable timestamp", "yesterday-ish", 21, false},
		{"non-utc offset compares correctly", now.Add(-time.Hour).In(time.FixedZone("CEST", 2*3600)).Format(time.RFC3339), 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := CacheEntry{UpdatedAt: tt.updatedAt}
			if got := entry.IsValid(now, tt.ttlDays); got != tt.want {
				t.Errorf("IsValid(%q, ttl=%d) = %v, want %v", tt.updatedAt, tt.ttlDays, got, tt.want)
			}
		})
	}
}

func TestCacheEntryAccessors(t *testing.T) {
	entry := CacheEntry{
		IDs:   map[string]string{CatalogAH: "wi1"},
		Names: map[string]string{CatalogAH: "Halfvolle melk"},
	}

	if entry.ID(CatalogAH) != "wi1" {
		t.Errorf("ID = %q", entry.ID(CatalogAH))
	}
	if entry.Name(CatalogAH) != "Halfvolle melk" {
		t.Errorf("Name = %q", entry.Name(CatalogAH))
	}
	if entry.ID(CatalogPicnic) != "" || entry.Name(CatalogPicnic) != "" {
		t.Error("missing catalog must return empty strings")
	}
}
