package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/b08x/ScreenDoc/internal/doc"
)

// BuildTranscriptPrompt creates the diarized-transcription instruction.
func BuildTranscriptPrompt(userCtx doc.UserContext) string {
	var sb strings.Builder

	sb.WriteString("Generate a diarized transcript of the speech in this screen recording. ")
	sb.WriteString("Attribute each spoken span to a speaker label such as \"Speaker 1\". ")
	sb.WriteString("Format your response as a JSON array of objects with 'speaker', ")
	sb.WriteString("'startTime', 'endTime', and 'text' fields, where the timecodes use ")
	sb.WriteString("the form HH:MM:SS.mmm. ")

	writeUserContext(&sb, userCtx)

	sb.WriteString("Return ONLY the JSON array, no other text or markdown formatting.")

	return sb.String()
}

// BuildCaptionPrompt creates the visual-captioning instruction.
func BuildCaptionPrompt(userCtx doc.UserContext) string {
	var sb strings.Builder

	sb.WriteString("Watch this screen recording and describe the on-screen actions as short ")
	sb.WriteString("captions. Format your response as a JSON array of objects with ")
	sb.WriteString("'startTime', 'endTime', and 'text' fields, where the timecodes use ")
	sb.WriteString("the form HH:MM:SS.mmm and each caption covers one visible action. ")

	writeUserContext(&sb, userCtx)

	sb.WriteString("Return ONLY the JSON array, no other text or markdown formatting.")

	return sb.String()
}

// BuildDocumentPrompt creates the document-generation instruction for one of
// the four output formats. Guide, article, and slides documents reference
// screenshots through the image marker grammar; diagram output is raw Mermaid
// with no markers.
func BuildDocumentPrompt(
	format doc.Format,
	transcript []doc.Segment,
	userCtx doc.UserContext,
) string {
	var sb strings.Builder

	switch format {
	case doc.FormatGuide:
		sb.WriteString("Write a step-by-step guide for the workflow shown in this screen recording, ")
		sb.WriteString("in Markdown, with numbered steps under clear headings. ")
	case doc.FormatArticle:
		sb.WriteString("Write a knowledge-base article explaining the workflow shown in this ")
		sb.WriteString("screen recording, in Markdown, with an introduction, body sections, and a summary. ")
	case doc.FormatSlides:
		sb.WriteString("Write a slide deck covering the workflow shown in this screen recording, ")
		sb.WriteString("in Markdown, separating slides with a line containing only '---'. ")
	case doc.FormatDiagram:
		sb.WriteString("Write a Mermaid flowchart describing the workflow shown in this screen ")
		sb.WriteString("recording. Return only raw Mermaid syntax starting with 'flowchart'. ")
	}

	if format != doc.FormatDiagram {
		sb.WriteString("Where a screenshot would help, insert a marker on its own line using ")
		sb.WriteString("EXACTLY this form: [Image: <short description> at <HH:MM:SS.mmm>] ")
		sb.WriteString("where the timecode points at the moment to capture. ")
	}

	writeUserContext(&sb, userCtx)

	if len(transcript) > 0 {
		sb.WriteString("\nTranscript of the recording:\n")
		transcriptJSON, _ := json.MarshalIndent(transcript, "", "  ")
		sb.Write(transcriptJSON)
		sb.WriteString("\n")
	}

	sb.WriteString("\nReturn ONLY the document text, no surrounding explanation.")

	return sb.String()
}

func writeUserContext(sb *strings.Builder, userCtx doc.UserContext) {
	if userCtx.VideoDescription != "" {
		sb.WriteString(fmt.Sprintf("The recording shows: %s. ", userCtx.VideoDescription))
	}
	if userCtx.UserPrompt != "" {
		sb.WriteString(userCtx.UserPrompt)
		sb.WriteString(" ")
	}
}
