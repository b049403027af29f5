package config

import (
	"testing"
	"time"
)

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	want := Settings{
		Provider:     "openrouter",
		BaseURL:      "https://openrouter.ai/api/v1",
		Model:        "google/gemini-2.5-flash",
		CaptionModel: "google/gemini-2.5-flash",
		DocModel:     "anthropic/claude-sonnet-4.5",
	}

	if err := SaveSettings(dir, want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := LoadSettings(dir)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	got, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got.Provider != "gemini" {
		t.Errorf("default provider = %q, want %q", got.Provider, "gemini")
	}
}

func TestModelCacheFreshness(t *testing.T) {
	dir := t.TempDir()

	cache := ModelCache{}
	cache.Put("gemini", []string{"gemini-2.5-flash", "gemini-2.5-pro"})
	cache["openai"] = ModelCacheEntry{
		Models:    []string{"gpt-4o"},
		FetchedAt: time.Now().Add(-25 * time.Hour),
	}

	if err := SaveModelCache(dir, cache); err != nil {
		t.Fatalf("SaveModelCache failed: %v", err)
	}

	loaded, err := LoadModelCache(dir)
	if err != nil {
		t.Fatalf("LoadModelCache failed: %v", err)
	}

	if models, ok := loaded.Fresh("gemini"); !ok || len(models) != 2 {
		t.Errorf("recent entry should be fresh, got %v %v", models, ok)
	}
	if _, ok := loaded.Fresh("openai"); ok {
		t.Error("entry older than 24h must be stale")
	}
	if _, ok := loaded.Fresh("anthropic"); ok {
		t.Error("unknown provider must not be fresh")
	}
}

func TestLoadModelCacheMissingFile(t *testing.T) {
	cache, err := LoadModelCache(t.TempDir())
	if err != nil {
		t.Fatalf("LoadModelCache failed: %v", err)
	}
	if len(cache) != 0 {
		t.Errorf("expected empty cache, got %v", cache)
	}
}

func TestEnvKeyName(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"gemini", "GEMINI_API_KEY"},
		{"openai", "OPENAI_API_KEY"},
		{"anthropic", "ANTHROPIC_API_KEY"},
		{"openrouter", "OPENROUTER_API_KEY"},
	}
	for _, tt := range tests {
		if got := envKeyName(tt.provider); got != tt.want {
			t.Errorf("envKeyName(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
