package doc

import (
	"encoding/json"
	"fmt"
	"time"
)

// user supplied context for a working session
type UserContext struct {
	VideoDescription string `json:"videoDescription"`
	UserPrompt       string `json:"userPrompt"`
}

// model-produced records before document generation
type RawData struct {
	DiarizedTranscript []Segment `json:"diarizedTranscript"`
	TimecodedCaptions  []Caption `json:"timecodedCaptions"`
}

// format tag plus document text
type GeneratedOutput struct {
	Format  Format `json:"format"`
	Content string `json:"content"`
}

// Session is the complete exportable state of one working session. It is
// assembled fresh at export time and has no identity beyond that.
type Session struct {
	UserContext     UserContext     `json:"userContext"`
	RawData         RawData         `json:"rawData"`
	GeneratedOutput GeneratedOutput `json:"generatedOutput"`
	Timestamp       string          `json:"timestamp"`
}

// NewSession bundles the current state with an ISO-8601 timestamp.
func NewSession(
	userCtx UserContext,
	segments []Segment,
	captions []Caption,
	output GeneratedOutput,
) Session {
	return Session{
		UserContext: userCtx,
		RawData: RawData{
			DiarizedTranscript: segments,
			TimecodedCaptions:  captions,
		},
		GeneratedOutput: output,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}

// MarshalIndented renders the session manifest as pretty printed JSON.
func (s Session) MarshalIndented() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

// ParseSession decodes a session manifest.
func ParseSession(data []byte) (Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("failed to parse session: %w", err)
	}
	return s, nil
}

// Document reconstructs the generated document from a session.
func (s Session) Document() Document {
	return Document{
		Format:  s.GeneratedOutput.Format,
		Content: s.GeneratedOutput.Content,
	}
}
