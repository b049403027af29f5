package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/b08x/ScreenDoc/internal/config"
	"github.com/b08x/ScreenDoc/internal/doc"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available from the configured provider",
	Long: `Query the configured provider for its available models. Results are
cached for a day; pass --refresh to bypass the cache.

Examples:
  screendoc models
  screendoc models --provider openrouter
  screendoc models --refresh`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().
		Bool("refresh", false, "Ignore the cached list and query the provider")
}

func runModels(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	client, provider, err := resolveClient(ctx, cmd, doc.UserContext{})
	if err != nil {
		return err
	}

	configDir, err := config.Dir()
	if err != nil {
		return err
	}
	cache, err := config.LoadModelCache(configDir)
	if err != nil {
		logger.Warnw("Failed to load model cache", "error", err.Error())
		cache = config.ModelCache{}
	}

	refresh, _ := cmd.Flags().GetBool("refresh")
	if !refresh {
		if models, ok := cache.Fresh(string(provider)); ok {
			printModels(string(provider), models, true)
			return nil
		}
	}

	models, err := client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	cache.Put(string(provider), models)
	if err := config.SaveModelCache(configDir, cache); err != nil {
		logger.Warnw("Failed to save model cache", "error", err.Error())
	}

	printModels(string(provider), models, false)
	return nil
}

func printModels(provider string, models []string, cached bool) {
	source := "live"
	if cached {
		source = "cached"
	}
	fmt.Printf("Models for %s (%s):\n", provider, source)
	for _, m := range models {
		fmt.Printf("  %s\n", m)
	}
}
