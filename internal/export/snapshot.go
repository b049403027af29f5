package export

import (
	"encoding/json"
	"fmt"

	"github.com/b08x/ScreenDoc/internal/doc"
)

// lossless structural dump of the raw records
type SnapshotData struct {
	DiarizedTranscript []doc.Segment `json:"diarizedTranscript"`
	AVCaptions         []doc.Caption `json:"avCaptions"`
}

// Snapshot serializes segments and captions as pretty printed JSON. Decoding
// the output and re-encoding it produces byte-identical text.
func Snapshot(segments []doc.Segment, captions []doc.Caption) ([]byte, error) {
	if segments == nil {
		segments = []doc.Segment{}
	}
	if captions == nil {
		captions = []doc.Caption{}
	}

	data, err := json.MarshalIndent(SnapshotData{
		DiarizedTranscript: segments,
		AVCaptions:         captions,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return data, nil
}

// ParseSnapshot decodes a snapshot file back into records.
func ParseSnapshot(data []byte) (SnapshotData, error) {
	var snap SnapshotData
	if err := json.Unmarshal(data, &snap); err != nil {
		return SnapshotData{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.DiarizedTranscript == nil {
		snap.DiarizedTranscript = []doc.Segment{}
	}
	if snap.AVCaptions == nil {
		snap.AVCaptions = []doc.Caption{}
	}
	return snap, nil
}
