package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/b08x/ScreenDoc/internal/ffmpeg"
)

// default ceiling for input recordings; oversized files are rejected before
// any processing begins
const DefaultMaxBytes = 2 << 30

var videoMIMETypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

// ValidateInput rejects non-video and oversized files. maxBytes <= 0 uses
// the default ceiling.
func ValidateInput(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("expected a video file, got a directory: %s", path)
	}

	if _, ok := videoMIMETypes[strings.ToLower(filepath.Ext(path))]; !ok {
		return fmt.Errorf(
			"unsupported file type %s: expected a video file (mp4, webm, mov, mkv, avi)",
			filepath.Ext(path),
		)
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if info.Size() > maxBytes {
		return fmt.Errorf(
			"file too large: %d bytes exceeds the %d byte limit",
			info.Size(),
			maxBytes,
		)
	}

	return nil
}

// MIMEType reports the MIME type for a video file by extension.
func MIMEType(path string) string {
	if mime, ok := videoMIMETypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration reports the playing time of a video file.
func Duration(path string) (time.Duration, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", path)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var seconds float64
	if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &seconds); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// ExtractFrame writes the frame at the given offset as a PNG.
func ExtractFrame(
	ctx context.Context,
	videoPath string,
	seconds float64,
	outputPath string,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	err = ffmpeg.Input(videoPath, ffmpeg.KwArgs{"ss": seconds}).
		Output(outputPath, ffmpeg.KwArgs{
			"vframes": 1,
			"y":       "",
		}).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg frame extraction failed: %w", err)
	}

	return nil
}

// one frame to extract
type FrameRequest struct {
	Index   int
	Seconds float64
	Name    string
}

// outcome of one extraction; Data is nil when Err is set
type FrameResult struct {
	Request FrameRequest
	Data    []byte
	Err     error
}

// ExtractFrames extracts every requested frame concurrently and waits for
// the whole batch. A failed extraction is captured per item and never aborts
// the batch.
func ExtractFrames(
	ctx context.Context,
	videoPath string,
	requests []FrameRequest,
	workDir string,
) []FrameResult {
	results := make([]FrameResult, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req FrameRequest) {
			defer wg.Done()

			framePath := filepath.Join(workDir, req.Name)
			if err := ExtractFrame(ctx, videoPath, req.Seconds, framePath); err != nil {
				results[i] = FrameResult{Request: req, Err: err}
				return
			}

			data, err := os.ReadFile(framePath)
			if err != nil {
				results[i] = FrameResult{Request: req, Err: fmt.Errorf("failed to read frame: %w", err)}
				return
			}

			results[i] = FrameResult{Request: req, Data: data}
		}(i, req)
	}
	wg.Wait()

	return results
}
