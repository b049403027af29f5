package cli

import (
	"context"
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

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [video_file]",
	Short: "Transcribe the speech in a screen recording",
	Long: `Produce a diarized transcript of the spoken audio in a recording and
write it as JSON. The output can be fed back into 'screendoc export'.

Examples:
  screendoc transcribe demo.mp4
  screendoc transcribe demo.mp4 -o transcript.json --provider gemini`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
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

	logger.Infow("Transcribing", "input", videoPath, "provider", string(provider))

	var result *llm.TranscriptResult
	err = runWithProgress(ctx, "Transcribing", func() error {
		var err error
		result, err = client.Transcribe(ctx, input)
		return err
	})
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	snapshot, err := export.Snapshot(result.Transcript, nil)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".transcript.json"
	}
	if err := os.WriteFile(outputPath, snapshot, 0644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	fmt.Printf("Transcript written: %s (%d segments)\n", outputPath, len(result.Transcript))
	return nil
}
