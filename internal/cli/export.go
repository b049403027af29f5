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
)

var exportCmd = &cobra.Command{
	Use:   "export [session_file]",
	Short: "Re-export a saved session in another format",
	Long: `Load a session manifest written by 'screendoc generate' and re-export
it without calling any provider. Formats:

  md   the generated document as plain markdown (or .mmd for diagrams)
  rtf  the document converted to rich text
  ass  the transcript and captions as a styled subtitle track
  json the raw transcript and caption snapshot
  zip  a bundle with the document, subtitles, snapshot, and manifest

Examples:
  screendoc export session.json --format rtf
  screendoc export session.json --format zip -o bundle.zip
  screendoc export session.json --format zip --video demo.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().
		StringP("format", "f", "md", "Export target (md, rtf, ass, json, zip)")
	exportCmd.Flags().
		String("video", "", "Original video for frame extraction and zip bundling")
}

func runExport(cmd *cobra.Command, args []string) error {
	sessionPath := args[0]

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}
	session, err := doc.ParseSession(data)
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("format")
	videoPath, _ := cmd.Flags().GetString("video")
	outputPath, _ := cmd.Flags().GetString("output")
	base := strings.TrimSuffix(sessionPath, filepath.Ext(sessionPath))

	switch target {
	case "md":
		document := session.Document()
		if outputPath == "" {
			outputPath = base + document.Format.FileExtension()
		}
		return writeExport(outputPath, []byte(document.Content))

	case "rtf":
		if outputPath == "" {
			outputPath = base + ".rtf"
		}
		return writeExport(outputPath, []byte(export.RichText(session.Document())))

	case "ass":
		if outputPath == "" {
			outputPath = base + ".ass"
		}
		track := export.SubtitleTrack(
			session.RawData.DiarizedTranscript,
			session.RawData.TimecodedCaptions,
		)
		return writeExport(outputPath, []byte(track))

	case "json":
		if outputPath == "" {
			outputPath = base + ".snapshot.json"
		}
		snapshot, err := export.Snapshot(
			session.RawData.DiarizedTranscript,
			session.RawData.TimecodedCaptions,
		)
		if err != nil {
			return err
		}
		return writeExport(outputPath, snapshot)

	case "zip":
		if outputPath == "" {
			outputPath = base + ".zip"
		}
		return exportBundle(context.Background(), session, videoPath, outputPath)

	default:
		return fmt.Errorf("unsupported export target %q: use md, rtf, ass, json, or zip", target)
	}
}

func writeExport(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Export written: %s\n", path)
	return nil
}

func exportBundle(ctx context.Context, session doc.Session, videoPath, outputPath string) error {
	document := session.Document()
	input := export.ArchiveInput{
		Document:         document,
		Session:          session,
		IncludeSubtitles: true,
	}

	// with the source video on hand, the document's image markers can be
	// resolved to real frames before bundling
	var skipped []doc.Placeholder
	if videoPath != "" {
		tempDir, err := os.MkdirTemp("", "screendoc-*")
		if err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
		defer os.RemoveAll(tempDir)

		var frames []export.Frame
		input.Document, frames, skipped = extractPlaceholderFrames(ctx, document, videoPath, tempDir)
		input.Frames = frames

		videoData, err := os.ReadFile(videoPath)
		if err != nil {
			return fmt.Errorf("failed to read video for bundling: %w", err)
		}
		input.VideoName = filepath.Base(videoPath)
		input.Video = videoData
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer out.Close()

	result, err := export.Archive(out, input)
	if err != nil {
		return fmt.Errorf("failed to build archive: %w", err)
	}

	fmt.Printf("Bundle written: %s (%d entries)\n", outputPath, len(result.Entries))
	if n := len(skipped) + len(result.SkippedFrames); n > 0 {
		fmt.Printf("  Skipped images: %d\n", n)
	}
	return nil
}
