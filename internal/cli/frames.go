package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/b08x/ScreenDoc/internal/doc"
	"github.com/b08x/ScreenDoc/internal/video"
)

var framesCmd = &cobra.Command{
	Use:   "frames [video_file] [document_file]",
	Short: "Extract the frames a generated document references",
	Long: `Scan a generated markdown document for image markers, extract the
matching frames from the recording, and rewrite the document to reference the
extracted files. The rewritten document and its images land next to each other
in the output directory.

Examples:
  screendoc frames demo.mp4 guide.md
  screendoc frames demo.mp4 guide.md -o demo-docs`,
	Args: cobra.ExactArgs(2),
	RunE: runFrames,
}

func init() {
	rootCmd.AddCommand(framesCmd)
}

func runFrames(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	docPath := args[1]
	ctx := context.Background()

	if err := video.ValidateInput(videoPath, 0); err != nil {
		return err
	}

	content, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	document := doc.Document{Format: doc.FormatGuide, Content: string(content)}
	placeholders := doc.FindPlaceholders(document)
	if len(placeholders) == 0 {
		fmt.Println("No image markers found")
		return nil
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "-docs"
	}
	if err := os.MkdirAll(filepath.Join(outputDir, "images"), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.Infow("Extracting frames",
		"input", videoPath,
		"markers", len(placeholders),
	)

	resolved, _, skipped := extractPlaceholderFrames(
		ctx, document, videoPath, filepath.Join(outputDir, "images"),
	)

	outPath := filepath.Join(outputDir, filepath.Base(docPath))
	if err := os.WriteFile(outPath, []byte(resolved.Content), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	fmt.Printf("Document written: %s\n", outPath)
	fmt.Printf("  Images: %d\n", len(placeholders)-len(skipped))
	if len(skipped) > 0 {
		fmt.Printf("  Skipped images: %d\n", len(skipped))
	}
	return nil
}
