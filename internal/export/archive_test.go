package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/b08x/ScreenDoc/internal/doc"
)

func testSession(format doc.Format, content string) doc.Session {
	return doc.NewSession(
		doc.UserContext{VideoDescription: "demo recording", UserPrompt: "document it"},
		[]doc.Segment{
			{Speaker: "Speaker 1", StartTime: "00:00:00.000", EndTime: "00:00:02.000", Text: "Hello"},
		},
		[]doc.Caption{
			{StartTime: "00:00:01.000", EndTime: "00:00:01.500", Text: "wave"},
		},
		doc.GeneratedOutput{Format: format, Content: content},
	)
}

func entryNames(t *testing.T, data []byte) map[string]bool {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	return names
}

func TestArchiveGuideBundle(t *testing.T) {
	var buf bytes.Buffer

	result, err := Archive(&buf, ArchiveInput{
		Document:         doc.Document{Format: doc.FormatGuide, Content: "# Guide\n![gear](images/image-1.png)"},
		Session:          testSession(doc.FormatGuide, "# Guide"),
		Frames:           []Frame{{Name: "image-1.png", Data: []byte{0x89, 'P', 'N', 'G'}}},
		VideoName:        "recording.mp4",
		Video:            []byte("fake video bytes"),
		IncludeSubtitles: true,
	})
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	names := entryNames(t, buf.Bytes())
	for _, want := range []string{
		"guide.md",
		"images/image-1.png",
		"video/recording.mp4",
		"subtitles/transcript.ass",
		"subtitles/transcript.json",
		"session.json",
	} {
		if !names[want] {
			t.Errorf("missing archive entry %q (have %v)", want, result.Entries)
		}
	}
}

func TestArchiveDiagramNeverIncludesImages(t *testing.T) {
	var buf bytes.Buffer

	// marker-shaped text in a diagram must not produce image entries
	_, err := Archive(&buf, ArchiveInput{
		Document: doc.Document{
			Format:  doc.FormatDiagram,
			Content: "flowchart TD\nA[Image: shape at 00:00:01.000] --> B",
		},
		Session: testSession(doc.FormatDiagram, "flowchart TD"),
		Frames:  []Frame{{Name: "image-1.png", Data: []byte{1, 2, 3}}},
	})
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	for name := range entryNames(t, buf.Bytes()) {
		if len(name) > 7 && name[:7] == "images/" {
			t.Errorf("diagram archive must not contain %q", name)
		}
	}

	names := entryNames(t, buf.Bytes())
	if !names["diagram.mmd"] {
		t.Errorf("diagram document entry missing; have %v", names)
	}
}

func TestArchiveSkipsEmptyFrames(t *testing.T) {
	var buf bytes.Buffer

	result, err := Archive(&buf, ArchiveInput{
		Document: doc.Document{Format: doc.FormatGuide, Content: "# G"},
		Session:  testSession(doc.FormatGuide, "# G"),
		Frames: []Frame{
			{Name: "image-1.png", Data: []byte{1}},
			{Name: "image-2.png", Data: nil},
		},
	})
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	if len(result.SkippedFrames) != 1 || result.SkippedFrames[0] != "image-2.png" {
		t.Errorf("expected image-2.png skipped, got %v", result.SkippedFrames)
	}

	names := entryNames(t, buf.Bytes())
	if !names["images/image-1.png"] || names["images/image-2.png"] {
		t.Errorf("unexpected entries: %v", names)
	}
}

func TestArchiveSessionManifestRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	session := testSession(doc.FormatArticle, "# Article")
	_, err := Archive(&buf, ArchiveInput{
		Document: doc.Document{Format: doc.FormatArticle, Content: "# Article"},
		Session:  session,
	})
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}

	for _, f := range zr.File {
		if f.Name != "session.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open session.json: %v", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read session.json: %v", err)
		}

		parsed, err := doc.ParseSession(data)
		if err != nil {
			t.Fatalf("failed to parse session manifest: %v", err)
		}
		if parsed.UserContext.VideoDescription != "demo recording" {
			t.Errorf("user context lost: %+v", parsed.UserContext)
		}
		if parsed.GeneratedOutput.Format != doc.FormatArticle {
			t.Errorf("format lost: %+v", parsed.GeneratedOutput)
		}
		if len(parsed.RawData.DiarizedTranscript) != 1 {
			t.Errorf("raw data lost: %+v", parsed.RawData)
		}
		return
	}

	t.Fatal("session.json not found in archive")
}
