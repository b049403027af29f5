package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/b08x/ScreenDoc/internal/doc"
	"github.com/b08x/ScreenDoc/internal/export"
	"github.com/b08x/ScreenDoc/internal/llm"
	"github.com/b08x/ScreenDoc/internal/timecode"
	"github.com/b08x/ScreenDoc/internal/video"
)

var generateCmd = &cobra.Command{
	Use:   "generate [video_file]",
	Short: "Generate documentation from a screen recording",
	Long: `Run the full pipeline on a screen recording: transcribe the speech,
caption the on-screen actions, generate a document in the chosen format,
extract the frames the document references, and write the results.

If captioning fails, the rest of the pipeline still runs; rerun
'screendoc caption' later to retry just that stage.

Formats: guide (step-by-step), article (knowledge base), slides
(markdown deck), diagram (Mermaid flowchart).

Examples:
  screendoc generate demo.mp4
  screendoc generate demo.mp4 --format slides --describe "billing setup walkthrough"
  screendoc generate demo.mp4 --format guide --zip --include-video
  screendoc generate demo.webm --provider openrouter --model google/gemini-2.5-flash`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		StringP("format", "f", "guide", "Output document format (guide, article, slides, diagram)")
	generateCmd.Flags().
		String("describe", "", "Short description of what the recording shows")
	generateCmd.Flags().
		String("prompt", "", "Extra instructions passed to the model")
	generateCmd.Flags().
		Bool("skip-captions", false, "Skip the captioning stage")
	generateCmd.Flags().
		Bool("zip", false, "Write a single zip bundle instead of a directory")
	generateCmd.Flags().
		Bool("include-video", false, "Include the original video in the zip bundle")
	generateCmd.Flags().
		Int64("max-size", 0, "Maximum input size in megabytes (0 = default limit)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	ctx := context.Background()

	maxMB, _ := cmd.Flags().GetInt64("max-size")
	if err := video.ValidateInput(videoPath, maxMB<<20); err != nil {
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format, ok := doc.ParseFormat(formatStr)
	if !ok {
		return fmt.Errorf("unsupported format %q: use guide, article, slides, or diagram", formatStr)
	}

	describe, _ := cmd.Flags().GetString("describe")
	userPrompt, _ := cmd.Flags().GetString("prompt")
	skipCaptions, _ := cmd.Flags().GetBool("skip-captions")
	asZip, _ := cmd.Flags().GetBool("zip")
	includeVideo, _ := cmd.Flags().GetBool("include-video")
	outputPath, _ := cmd.Flags().GetString("output")

	userCtx := doc.UserContext{
		VideoDescription: describe,
		UserPrompt:       userPrompt,
	}

	client, provider, err := resolveClient(ctx, cmd, userCtx)
	if err != nil {
		return err
	}

	input := llm.VideoInput{
		Path:     videoPath,
		MIMEType: video.MIMEType(videoPath),
	}

	logger.Infow("Starting documentation pipeline",
		"input", videoPath,
		"format", string(format),
		"provider", string(provider),
	)

	var transcript *llm.TranscriptResult
	err = runWithProgress(ctx, "Transcribing", func() error {
		var err error
		transcript, err = client.Transcribe(ctx, input)
		return err
	})
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	logger.Infow("Transcription complete", "segments", len(transcript.Transcript))

	// captioning is retryable on its own; a failure here never aborts the run
	var captions []doc.Caption
	if !skipCaptions {
		var captionResult *llm.CaptionResult
		err = runWithProgress(ctx, "Captioning", func() error {
			var err error
			captionResult, err = client.Caption(ctx, input)
			return err
		})
		if err != nil {
			if errors.Is(err, llm.ErrCaptionStage) {
				logger.Warnw("Captioning failed; continuing without captions",
					"error", err.Error(),
					"retry", "screendoc caption "+videoPath,
				)
			} else {
				return err
			}
		} else {
			captions = captionResult.Timecodes
			logger.Infow("Captioning complete", "captions", len(captions))
		}
	}

	var document *doc.Document
	err = runWithProgress(ctx, "Generating document", func() error {
		var err error
		document, err = client.GenerateDocument(ctx, input, format, transcript.Transcript)
		return err
	})
	if err != nil {
		return err
	}

	session := doc.NewSession(userCtx, transcript.Transcript, captions, doc.GeneratedOutput{
		Format:  format,
		Content: document.Content,
	})

	if asZip {
		if outputPath == "" {
			outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".zip"
		}
		return writeBundle(ctx, *document, session, videoPath, outputPath, includeVideo)
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "-docs"
	}
	return writeOutputDir(ctx, *document, session, videoPath, outputPath)
}

// extractPlaceholderFrames pulls one frame per image marker and rewrites the
// document to reference the extracted files. Failed extractions leave their
// marker in place.
func extractPlaceholderFrames(
	ctx context.Context,
	document doc.Document,
	videoPath string,
	workDir string,
) (doc.Document, []export.Frame, []doc.Placeholder) {
	placeholders := doc.FindPlaceholders(document)
	if len(placeholders) == 0 {
		return document, nil, nil
	}

	// markers past the end of the recording clamp to the final second
	var maxSeconds float64
	if duration, err := video.Duration(videoPath); err == nil {
		maxSeconds = duration.Seconds() - 1
	}

	requests := make([]video.FrameRequest, len(placeholders))
	for i, p := range placeholders {
		seconds := timecode.ParseSeconds(p.Timecode)
		if maxSeconds > 0 && seconds > maxSeconds {
			seconds = maxSeconds
		}
		requests[i] = video.FrameRequest{
			Index:   i,
			Seconds: seconds,
			Name:    fmt.Sprintf("image-%d.png", i+1),
		}
	}

	results := video.ExtractFrames(ctx, videoPath, requests, workDir)

	var frames []export.Frame
	next := 0
	resolved, skipped := doc.ResolveAll(document, func(p doc.Placeholder) (string, error) {
		result := results[next]
		next++
		if result.Err != nil {
			return "", result.Err
		}
		frames = append(frames, export.Frame{
			Name: result.Request.Name,
			Data: result.Data,
		})
		return fmt.Sprintf("![%s](images/%s)", p.Description, result.Request.Name), nil
	})

	for _, p := range skipped {
		logger.Warnw("Frame extraction failed; marker left unresolved",
			"description", p.Description,
			"timecode", p.Timecode,
		)
	}

	return resolved, frames, skipped
}

func writeBundle(
	ctx context.Context,
	document doc.Document,
	session doc.Session,
	videoPath, outputPath string,
	includeVideo bool,
) error {
	tempDir, err := os.MkdirTemp("", "screendoc-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	resolved, frames, skipped := extractPlaceholderFrames(ctx, document, videoPath, tempDir)

	input := export.ArchiveInput{
		Document:         resolved,
		Session:          session,
		Frames:           frames,
		IncludeSubtitles: true,
	}
	if includeVideo {
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

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Bundle written: %s\n", absOutput)
	fmt.Printf("  Entries: %d\n", len(result.Entries))
	if n := len(skipped) + len(result.SkippedFrames); n > 0 {
		fmt.Printf("  Skipped images: %d\n", n)
	}

	return nil
}

func writeOutputDir(
	ctx context.Context,
	document doc.Document,
	session doc.Session,
	videoPath, outputDir string,
) error {
	if err := os.MkdirAll(filepath.Join(outputDir, "images"), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// frames land directly under images/, so the in-memory copies are unused
	resolved, _, skipped := extractPlaceholderFrames(
		ctx, document, videoPath, filepath.Join(outputDir, "images"),
	)

	docName := string(resolved.Format) + resolved.Format.FileExtension()
	if err := os.WriteFile(filepath.Join(outputDir, docName), []byte(resolved.Content), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	track := export.SubtitleTrack(
		session.RawData.DiarizedTranscript,
		session.RawData.TimecodedCaptions,
	)
	if err := os.WriteFile(filepath.Join(outputDir, "transcript.ass"), []byte(track), 0644); err != nil {
		return fmt.Errorf("failed to write subtitle track: %w", err)
	}

	snapshot, err := export.Snapshot(
		session.RawData.DiarizedTranscript,
		session.RawData.TimecodedCaptions,
	)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "transcript.json"), snapshot, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	manifest, err := session.MarshalIndented()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outputDir, "session.json"), manifest, 0644); err != nil {
		return fmt.Errorf("failed to write session manifest: %w", err)
	}

	absOutput, _ := filepath.Abs(outputDir)
	fmt.Printf("Documentation written: %s\n", absOutput)
	fmt.Printf("  Document: %s\n", docName)
	fmt.Printf("  Images: %d\n", len(doc.FindPlaceholders(document))-len(skipped))
	if len(skipped) > 0 {
		fmt.Printf("  Skipped images: %d\n", len(skipped))
	}

	return nil
}
