package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/basketbridge/backend/internal/domain"
)

// storeFile is the on-disk shape of the match cache.
type storeFile struct {
	Items map[string]domain.CacheEntry `json:"items"`
}

// FileStore persists the match cache as a single JSON file. An empty path
// disables persistence: loads are empty and saves are no-ops.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

// NewFileStore creates a file-backed match cache store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the cache file. A missing or corrupt file degrades to an empty
// mapping, never an error; a cold start is always acceptable.
func (s *FileStore) Load() map[string]domain.CacheEntry {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.path == "" {
		return map[string]domain.CacheEntry{}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[CACHE] read %s: %v", s.path, err)
		}
		return map[string]domain.CacheEntry{}
	}

	var store storeFile
	if err := json.Unmarshal(data, &store); err != nil {
		log.Printf("[CACHE] corrupt cache file %s: %v", s.path, err)
		return map[string]domain.CacheEntry{}
	}
	if store.Items == nil {
		return map[string]domain.CacheEntry{}
	}
	return store.Items
}

// Save overwrites the whole cache file with the given entries.
func (s *FileStore) Save(entries map[string]domain.CacheEntry) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(storeFile{Items: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode match cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write match cache %s: %w", s.path, err)
	}
	return nil
}
