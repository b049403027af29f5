package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cached model lists go stale after this long
const ModelCacheTTL = 24 * time.Hour

type ModelCacheEntry struct {
	Models    []string  `json:"models"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// per-provider cache of available model identifiers
type ModelCache map[string]ModelCacheEntry

func LoadModelCache(dir string) (ModelCache, error) {
	data, err := os.ReadFile(filepath.Join(dir, "models.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ModelCache{}, nil
		}
		return nil, fmt.Errorf("failed to read model cache: %w", err)
	}

	var cache ModelCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("failed to parse model cache: %w", err)
	}
	return cache, nil
}

func SaveModelCache(dir string, cache ModelCache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "models.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write model cache: %w", err)
	}
	return nil
}

// Fresh returns the cached model list for a provider if it is younger than
// the freshness threshold.
func (c ModelCache) Fresh(provider string) ([]string, bool) {
	entry, ok := c[provider]
	if !ok {
		return nil, false
	}
	if time.Since(entry.FetchedAt) > ModelCacheTTL {
		return nil, false
	}
	return entry.Models, true
}

// Put records a freshly fetched model list for a provider.
func (c ModelCache) Put(provider string, models []string) {
	c[provider] = ModelCacheEntry{
		Models:    models,
		FetchedAt: time.Now().UTC(),
	}
}
