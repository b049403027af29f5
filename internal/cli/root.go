package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/b08x/ScreenDoc/internal/config"
	"github.com/b08x/ScreenDoc/internal/doc"
	"github.com/b08x/ScreenDoc/internal/llm"
	"github.com/b08x/ScreenDoc/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "screendoc",
	Short: "Turn screen recordings into technical documentation with AI",
	Long: `ScreenDoc turns a screen recording into technical documentation using
multimodal AI: step-by-step guides, knowledge-base articles, slide decks,
or flowcharts.

It transcribes and captions the recording, generates a document with inline
screenshot markers, extracts the referenced frames, and exports subtitle
tracks, RTF documents, JSON snapshots, and zip bundles.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file or directory path")
	rootCmd.PersistentFlags().
		String("provider", "", "LLM provider (gemini, openai, anthropic, mistral, openrouter, ollama)")
	rootCmd.PersistentFlags().
		StringP("api-key", "k", "", "API key (or store one with 'screendoc config set-key')")
	rootCmd.PersistentFlags().
		String("base-url", "", "Base URL for self-hosted or OpenAI-compatible providers")
	rootCmd.PersistentFlags().String("model", "", "Model identifier")
}

// resolveSettings merges persisted settings with command-line overrides.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	dir, err := config.Dir()
	if err != nil {
		return config.Settings{}, err
	}

	settings, err := config.LoadSettings(dir)
	if err != nil {
		return config.Settings{}, err
	}

	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		settings.Provider = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		settings.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		settings.Model = v
	}

	return settings, nil
}

// resolveClient builds the provider client for a command.
func resolveClient(
	ctx context.Context,
	cmd *cobra.Command,
	userCtx doc.UserContext,
) (llm.Client, llm.Provider, error) {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return nil, "", err
	}

	provider, ok := llm.ParseProvider(settings.Provider)
	if !ok {
		return nil, "", fmt.Errorf(
			"unsupported provider %q: use gemini, openai, anthropic, mistral, openrouter, or ollama",
			settings.Provider,
		)
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey, err = config.APIKey(string(provider))
		if err != nil && provider != llm.ProviderOllama {
			return nil, "", err
		}
	}

	client, err := llm.Factory(ctx, provider, apiKey, llm.Options{
		Model:        settings.Model,
		CaptionModel: settings.CaptionModel,
		DocModel:     settings.DocModel,
		BaseURL:      settings.BaseURL,
		UserContext:  userCtx,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s client: %w", provider, err)
	}

	return client, provider, nil
}
