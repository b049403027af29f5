package export

import (
	"archive/zip"
	"fmt"
	"io"
	"path"

	"github.com/b08x/ScreenDoc/internal/doc"
)

// one extracted frame destined for the images/ prefix
type Frame struct {
	Name string
	Data []byte
}

// everything the archive builder needs; Document must already have its
// placeholders substituted
type ArchiveInput struct {
	Document         doc.Document
	Session          doc.Session
	Frames           []Frame
	VideoName        string
	Video            []byte
	IncludeSubtitles bool
}

// what actually made it into the archive
type ArchiveResult struct {
	Entries       []string
	SkippedFrames []string
}

// Archive writes a zip bundle: the document under a filename keyed by its
// format, one image entry per extracted frame (never for diagram documents),
// optionally the original video and subtitle exports, and the session
// manifest. Individual missing assets are skipped and reported; only a zip
// write failure aborts.
func Archive(w io.Writer, in ArchiveInput) (*ArchiveResult, error) {
	zw := zip.NewWriter(w)
	result := &ArchiveResult{}

	docName := string(in.Document.Format) + in.Document.Format.FileExtension()
	if err := writeEntry(zw, docName, []byte(in.Document.Content)); err != nil {
		return nil, err
	}
	result.Entries = append(result.Entries, docName)

	if in.Document.Format != doc.FormatDiagram {
		for _, frame := range in.Frames {
			if len(frame.Data) == 0 {
				result.SkippedFrames = append(result.SkippedFrames, frame.Name)
				continue
			}
			name := path.Join("images", frame.Name)
			if err := writeEntry(zw, name, frame.Data); err != nil {
				return nil, err
			}
			result.Entries = append(result.Entries, name)
		}
	}

	if in.VideoName != "" && len(in.Video) > 0 {
		name := path.Join("video", path.Base(in.VideoName))
		if err := writeEntry(zw, name, in.Video); err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, name)
	}

	if in.IncludeSubtitles {
		track := SubtitleTrack(
			in.Session.RawData.DiarizedTranscript,
			in.Session.RawData.TimecodedCaptions,
		)
		if err := writeEntry(zw, "subtitles/transcript.ass", []byte(track)); err != nil {
			return nil, err
		}
		result.Entries = append(result.Entries, "subtitles/transcript.ass")

		snapshot, err := Snapshot(
			in.Session.RawData.DiarizedTranscript,
			in.Session.RawData.TimecodedCaptions,
		)
		if err == nil {
			if err := writeEntry(zw, "subtitles/transcript.json", snapshot); err != nil {
				return nil, err
			}
			result.Entries = append(result.Entries, "subtitles/transcript.json")
		}
	}

	manifest, err := in.Session.MarshalIndented()
	if err != nil {
		return nil, err
	}
	if err := writeEntry(zw, "session.json", manifest); err != nil {
		return nil, err
	}
	result.Entries = append(result.Entries, "session.json")

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return result, nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", name, err)
	}
	if _, err := entry.Write(data); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", name, err)
	}
	return nil
}
