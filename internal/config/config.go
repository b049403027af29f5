package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const keyringService = "screendoc"

// persisted provider configuration. API keys live in the OS keyring, never in
// this file.
type Settings struct {
	Provider     string `json:"provider"`
	BaseURL      string `json:"baseUrl,omitempty"`
	Model        string `json:"model,omitempty"`
	CaptionModel string `json:"captionModel,omitempty"`
	DocModel     string `json:"docModel,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{Provider: "gemini"}
}

// Dir returns the per-user config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	dir := filepath.Join(base, "screendoc")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// LoadSettings reads settings from dir, returning defaults when no settings
// file exists yet.
func LoadSettings(dir string) (Settings, error) {
	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.Provider == "" {
		s.Provider = DefaultSettings().Provider
	}
	return s, nil
}

func SaveSettings(dir string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// APIKey resolves the key for a provider: OS keyring first, then the
// provider's environment variable. Keys are supplied by the user only.
func APIKey(provider string) (string, error) {
	if key, err := keyring.Get(keyringService, provider); err == nil && key != "" {
		return key, nil
	}

	if key := os.Getenv(envKeyName(provider)); key != "" {
		return key, nil
	}

	return "", fmt.Errorf(
		"no API key for provider %s: run 'screendoc config set-key %s' or set %s",
		provider, provider, envKeyName(provider),
	)
}

// SetAPIKey stores a key in the OS keyring.
func SetAPIKey(provider, key string) error {
	if err := keyring.Set(keyringService, provider, key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

func envKeyName(provider string) string {
	return strings.ToUpper(provider) + "_API_KEY"
}
