package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/b08x/ScreenDoc/internal/doc"
	"github.com/b08x/ScreenDoc/internal/export"
	"github.com/b08x/ScreenDoc/internal/llm"
	"github.com/b08x/ScreenDoc/internal/video"
)

var captionCmd = &cobra.Command{
	Use:   "caption [video_file]",
	Short: "Caption the on-screen actions in a screen recording",
	Long: `Produce timecoded captions describing the visual activity in a
recording and write them as JSON. Use --merge to fold the captions into an
existing transcript snapshot so the pair can be exported together.

Examples:
  screendoc caption demo.mp4
  screendoc caption demo.mp4 --merge demo.transcript.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCaption,
}

func init() {
	rootCmd.AddCommand(captionCmd)

	captionCmd.Flags().
		String("merge", "", "Transcript snapshot to merge the captions into")
}

func runCaption(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := context.Background()

	if err := video.ValidateInput(videoPath, 0); err != nil {
		return err
	}

	client, provider, err := resolveClient(ctx, cmd, doc.UserContext{})
	if err != nil {
		return err
	}

	input := llm.VideoInput{
		Path:     videoPath,
		MIMEType: video.MIMEType(videoPath),
	}

	logger.Infow("Captioning", "input", videoPath, "provider", string(provider))

	var result *llm.CaptionResult
	err = runWithProgress(ctx, "Captioning", func() error {
		var err error
		result, err = client.Caption(ctx, input)
		return err
	})
	if err != nil {
		return err
	}

	var segments []doc.Segment
	mergePath, _ := cmd.Flags().GetString("merge")
	if mergePath != "" {
		data, err := os.ReadFile(mergePath)
		if err != nil {
			return fmt.Errorf("failed to read transcript snapshot: %w", err)
		}
		snapshot, err := export.ParseSnapshot(data)
		if err != nil {
			return err
		}
		segments = snapshot.DiarizedTranscript
	}

	var output []byte
	if mergePath != "" {
		output, err = export.Snapshot(segments, result.Timecodes)
	} else {
		output, err = json.MarshalIndent(result.Timecodes, "", "  ")
	}
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	switch {
	case outputPath != "":
	case mergePath != "":
		outputPath = mergePath
	default:
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".captions.json"
	}
	if err := os.WriteFile(outputPath, output, 0644); err != nil {
		return fmt.Errorf("failed to write captions: %w", err)
	}

	fmt.Printf("Captions written: %s (%d captions)\n", outputPath, len(result.Timecodes))
	return nil
}
