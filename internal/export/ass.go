package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/b08x/ScreenDoc/internal/doc"
	"github.com/b08x/ScreenDoc/internal/timecode"
)

const (
	assTitle    = "ScreenDoc Transcript"
	assFontName = "Arial"
	assFontSize = 20
)

// primary colours assigned to speaker styles, first-seen order, round-robin
var speakerPalette = []string{
	"&H00FFFF00", // cyan
	"&H0000FFFF", // yellow
	"&H00FF00FF", // magenta
	"&H0000FF00", // green
	"&H00FF8080", // light blue
	"&H008080FF", // salmon
}

type assEvent struct {
	start float64
	end   float64
	style string
	text  string
}

// SubtitleTrack renders diarized segments and narrator captions as one ASS
// subtitle file. Events are merged chronologically by numeric start time
// (raw timecode strings are never compared), entries missing either timecode
// are dropped, and each distinct speaker gets its own style.
func SubtitleTrack(segments []doc.Segment, captions []doc.Caption) string {
	var events []assEvent
	var speakerOrder []string
	seenSpeakers := make(map[string]bool)

	for _, seg := range segments {
		if seg.StartTime == "" || seg.EndTime == "" {
			continue
		}
		style := styleName(seg.Speaker)
		if !seenSpeakers[style] {
			seenSpeakers[style] = true
			speakerOrder = append(speakerOrder, style)
		}
		events = append(events, assEvent{
			start: timecode.ParseSeconds(seg.StartTime),
			end:   timecode.ParseSeconds(seg.EndTime),
			style: style,
			text:  seg.Text,
		})
	}

	for _, cap := range captions {
		if cap.StartTime == "" || cap.EndTime == "" {
			continue
		}
		events = append(events, assEvent{
			start: timecode.ParseSeconds(cap.StartTime),
			end:   timecode.ParseSeconds(cap.EndTime),
			style: "Narrator",
			text:  cap.Text,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].start < events[j].start
	})

	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", assTitle))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(styleLine("Default", "&H00FFFFFF", false))
	sb.WriteString(styleLine("Narrator", "&H00D0D0D0", true))
	for i, speaker := range speakerOrder {
		colour := speakerPalette[i%len(speakerPalette)]
		sb.WriteString(styleLine(speaker, colour, false))
	}
	sb.WriteString("\n")

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, ev := range events {
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			timecode.FormatSubtitleSeconds(ev.start),
			timecode.FormatSubtitleSeconds(ev.end),
			ev.style,
			escapeASSText(ev.text)))
	}

	return sb.String()
}

// commas delimit fields in ASS, so a style name must never contain one
func styleName(speaker string) string {
	name := strings.ReplaceAll(speaker, ",", "")
	name = strings.TrimSpace(name)
	if name == "" {
		return "Default"
	}
	return name
}

func styleLine(name, colour string, italic bool) string {
	italicFlag := 0
	if italic {
		italicFlag = 1
	}
	return fmt.Sprintf("Style: %s,%s,%d,%s,&H000000FF,&H00000000,&H00000000,0,%d,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n",
		name, assFontName, assFontSize, colour, italicFlag)
}

func escapeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", "\\N")
}
