package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/b08x/ScreenDoc/internal/config"
	"github.com/b08x/ScreenDoc/internal/llm"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persisted settings and API keys",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Persist a setting",
	Long: `Persist a default setting. Keys:

  provider       default provider (gemini, openai, anthropic, mistral, openrouter, ollama)
  base-url       base URL override for OpenAI-compatible providers
  model          default model for all stages
  caption-model  model override for the captioning stage
  doc-model      model override for document generation

Examples:
  screendoc config set provider openrouter
  screendoc config set model google/gemini-2.5-flash`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [provider] [api_key]",
	Short: "Store a provider API key in the system keyring",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSetKey,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	configDir, err := config.Dir()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(configDir)
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", configDir)
	fmt.Printf("  provider:      %s\n", settings.Provider)
	fmt.Printf("  base-url:      %s\n", orUnset(settings.BaseURL))
	fmt.Printf("  model:         %s\n", orUnset(settings.Model))
	fmt.Printf("  caption-model: %s\n", orUnset(settings.CaptionModel))
	fmt.Printf("  doc-model:     %s\n", orUnset(settings.DocModel))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	configDir, err := config.Dir()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(configDir)
	if err != nil {
		return err
	}

	switch key {
	case "provider":
		if _, ok := llm.ParseProvider(value); !ok {
			return fmt.Errorf(
				"unsupported provider %q: use gemini, openai, anthropic, mistral, openrouter, or ollama",
				value,
			)
		}
		settings.Provider = value
	case "base-url":
		settings.BaseURL = value
	case "model":
		settings.Model = value
	case "caption-model":
		settings.CaptionModel = value
	case "doc-model":
		settings.DocModel = value
	default:
		return fmt.Errorf(
			"unknown setting %q: use provider, base-url, model, caption-model, or doc-model",
			key,
		)
	}

	if err := config.SaveSettings(configDir, settings); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigSetKey(_ *cobra.Command, args []string) error {
	providerStr, apiKey := args[0], args[1]

	provider, ok := llm.ParseProvider(providerStr)
	if !ok {
		return fmt.Errorf(
			"unsupported provider %q: use gemini, openai, anthropic, mistral, openrouter, or ollama",
			providerStr,
		)
	}

	if err := config.SetAPIKey(string(provider), apiKey); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}
	fmt.Printf("API key stored for %s\n", provider)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
