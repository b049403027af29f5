package export

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/b08x/ScreenDoc/internal/doc"
)

func TestSnapshotRoundTrip(t *testing.T) {
	segments := []doc.Segment{
		{Speaker: "Speaker 1", StartTime: "00:00:00.000", EndTime: "00:00:02.000", Text: "Hello"},
		{Speaker: "Speaker 2", StartTime: "00:00:02.000", EndTime: "00:00:04.000", Text: "Hi\nthere"},
	}
	captions := []doc.Caption{
		{StartTime: "00:00:01.000", EndTime: "00:00:01.500", Text: "wave"},
	}

	data, err := Snapshot(segments, captions)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	decoded, err := ParseSnapshot(data)
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}

	if !reflect.DeepEqual(decoded.DiarizedTranscript, segments) {
		t.Errorf("segments not reconstructed: %+v", decoded.DiarizedTranscript)
	}
	if !reflect.DeepEqual(decoded.AVCaptions, captions) {
		t.Errorf("captions not reconstructed: %+v", decoded.AVCaptions)
	}

	// idempotent under decode/re-encode
	reencoded, err := Snapshot(decoded.DiarizedTranscript, decoded.AVCaptions)
	if err != nil {
		t.Fatalf("re-encode failed: %v", err)
	}
	if !bytes.Equal(data, reencoded) {
		t.Errorf("re-encoded snapshot differs from original")
	}
}

func TestSnapshotEmptyInputs(t *testing.T) {
	data, err := Snapshot(nil, nil)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	decoded, err := ParseSnapshot(data)
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}
	if len(decoded.DiarizedTranscript) != 0 || len(decoded.AVCaptions) != 0 {
		t.Errorf("expected empty records, got %+v", decoded)
	}
}
