package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/basketbridge/backend/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match-cache.json")
	store := NewFileStore(path)

	entries := map[string]domain.CacheEntry{
		"halfvolle melk": {
			IDs:       map[string]string{domain.CatalogAH: "wi1", domain.CatalogPicnic: "p1"},
			Names:     map[string]string{domain.CatalogAH: "Halfvolle melk"},
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}

	if err := store.Save(entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := store.Load()
	if len(loaded) != 1 {
		t.Fatalf("loaded %d entries, want 1", len(loaded))
	}
	entry := loaded["halfvolle melk"]
	if entry.ID(domain.CatalogAH) != "wi1" || entry.ID(domain.CatalogPicnic) != "p1" {
		t.Errorf("entry ids = %v", entry.IDs)
	}
	if entry.Name(domain.CatalogAH) != "Halfvolle melk" {
		t.Errorf("entry names = %v", entry.Names)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))

	loaded := store.Load()
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("loaded = %v, want empty map", loaded)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match-cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	loaded := store.Load()
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("loaded = %v, want empty map on corrupt file", loaded)
	}
}

func TestFileStoreEmptyItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match-cache.json")
	if err := os.WriteFile(path, []byte(`{"items": null}`), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	if loaded := store.Load(); loaded == nil {
		t.Error("nil items must load as empty map")
	}
}

func TestFileStoreDisabled(t *testing.T) {
	store := NewFileStore("")

	if err := store.Save(map[string]domain.CacheEntry{"k": {}}); err != nil {
		t.Errorf("save with empty path must be a no-op, got %v", err)
	}
	if loaded := store.Load(); len(loaded) != 0 {
		t.Errorf("loaded = %v, want empty", loaded)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match-cache.json")
	store := NewFileStore(path)

	if err := store.Save(map[string]domain.CacheEntry{
		"melk":  {IDs: map[string]string{domain.CatalogAH: "wi1"}},
		"brood": {IDs: map[string]string{domain.CatalogAH: "wi2"}},
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(map[string]domain.CacheEntry{
		"melk": {IDs: map[string]string{domain.CatalogAH: "wi9"}},
	}); err != nil {
		t.Fatal(err)
	}

	loaded := store.Load()
	if len(loaded) != 1 {
		t.Fatalf("loaded %d entries, want 1 after overwrite", len(loaded))
	}
	if loaded["melk"].ID(domain.CatalogAH) != "wi9" {
		t.Errorf("entry = %v", loaded["melk"])
	}
}
