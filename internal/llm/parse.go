package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/b08x/ScreenDoc/internal/doc"
	"github.com/b08x/ScreenDoc/internal/timecode"
)

// wire shapes the providers are instructed to return
type wireSegment struct {
	Speaker   string `json:"speaker"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Text      string `json:"text"`
}

type wireCaption struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Text      string `json:"text"`
}

// removes markdown code fences from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	blockRegex := regexp.MustCompile("```(?:json|markdown|mermaid)?\\s*")
	s = blockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	s = strings.TrimSpace(s)

	return s
}

// extractTranscript pulls a diarized transcript out of free-form response
// text. The first JSON value that is, or wraps, a valid segment array wins;
// timecodes are normalized to HH:MM:SS.mmm.
func extractTranscript(text string) ([]doc.Segment, error) {
	var wire []wireSegment
	found := scanJSONValues(text, func(raw json.RawMessage) bool {
		w, ok := tryWireSegments(raw)
		if ok {
			wire = w
		}
		return ok
	})
	if !found {
		return nil, fmt.Errorf("no valid transcript JSON found in response")
	}

	segments := make([]doc.Segment, 0, len(wire))
	for _, ws := range wire {
		segments = append(segments, doc.Segment{
			Speaker:   strings.TrimSpace(ws.Speaker),
			StartTime: timecode.Normalize(ws.StartTime),
			EndTime:   timecode.Normalize(ws.EndTime),
			Text:      strings.TrimSpace(ws.Text),
		})
	}
	return segments, nil
}

// extractCaptions pulls timecoded captions out of free-form response text.
func extractCaptions(text string) ([]doc.Caption, error) {
	var wire []wireCaption
	found := scanJSONValues(text, func(raw json.RawMessage) bool {
		w, ok := tryWireCaptions(raw)
		if ok {
			wire = w
		}
		return ok
	})
	if !found {
		return nil, fmt.Errorf("no valid caption JSON found in response")
	}

	captions := make([]doc.Caption, 0, len(wire))
	for _, wc := range wire {
		captions = append(captions, doc.Caption{
			StartTime: timecode.Normalize(wc.StartTime),
			EndTime:   timecode.Normalize(wc.EndTime),
			Text:      strings.TrimSpace(wc.Text),
		})
	}
	return captions, nil
}

// walks the text, decoding each candidate JSON value and handing it to try
// until one is accepted
func scanJSONValues(text string, try func(json.RawMessage) bool) bool {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if try(raw) {
			return true
		}
	}
	return false
}

func tryWireSegments(raw json.RawMessage) ([]wireSegment, bool) {
	var wire []wireSegment
	if err := json.Unmarshal(raw, &wire); err == nil && validTranscript(wire) {
		return wire, true
	}

	return probeWrapper(raw, []string{"transcript", "segments", "data"}, tryWireSegments)
}

func tryWireCaptions(raw json.RawMessage) ([]wireCaption, bool) {
	var wire []wireCaption
	if err := json.Unmarshal(raw, &wire); err == nil && validCaptions(wire) {
		return wire, true
	}

	return probeWrapper(raw, []string{"timecodes", "captions", "data"}, tryWireCaptions)
}

// looks inside a wrapper object: well-known keys first, then every field,
// recursing into nested objects
func probeWrapper[T any](
	raw json.RawMessage,
	keys []string,
	try func(json.RawMessage) ([]T, bool),
) ([]T, bool) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	for _, key := range keys {
		if field, ok := wrapper[key]; ok {
			if result, ok := try(field); ok {
				return result, true
			}
		}
	}

	for _, field := range wrapper {
		if result, ok := try(field); ok {
			return result, true
		}
	}

	return nil, false
}

func validTranscript(segments []wireSegment) bool {
	for _, s := range segments {
		if s.Text != "" || s.StartTime != "" || s.EndTime != "" {
			return true
		}
	}
	return false
}

func validCaptions(captions []wireCaption) bool {
	for _, c := range captions {
		if c.Text != "" || c.StartTime != "" || c.EndTime != "" {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
