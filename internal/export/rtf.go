package export

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/b08x/ScreenDoc/internal/doc"
)

// half-point font sizes for the three heading levels and body text
const (
	rtfHeading1Size = 48
	rtfHeading2Size = 36
	rtfHeading3Size = 28
	rtfBodySize     = 24
)

var (
	orderedListRegexp = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	boldRegexp        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRegexp      = regexp.MustCompile(`\*(.+?)\*`)
	// matches a line consisting solely of one image marker
	imageLineRegexp = regexp.MustCompile(`^(?i)\[image:\s*(.+?)\s+at\s+[\d:.]+\]$`)
)

// RichText converts a constrained-Markdown document to RTF. Each line is
// classified in priority order: slide separator, heading, unordered list,
// ordered list, image caption, plain paragraph; inline emphasis markers are
// resolved after block classification. Format-sensitive characters are
// escaped before any markup is layered on top.
func RichText(d doc.Document) string {
	var sb strings.Builder

	sb.WriteString(`{\rtf1\ansi\ansicpg1252\deff0{\fonttbl{\f0\fswiss Helvetica;}}`)
	sb.WriteString("\n")

	for _, rawLine := range strings.Split(d.Content, "\n") {
		line := escapeRTF(rawLine)
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "---" && d.Format == doc.FormatSlides:
			sb.WriteString("\\page\n")

		case strings.HasPrefix(trimmed, "### "):
			writeHeading(&sb, strings.TrimPrefix(trimmed, "### "), rtfHeading3Size)

		case strings.HasPrefix(trimmed, "## "):
			writeHeading(&sb, strings.TrimPrefix(trimmed, "## "), rtfHeading2Size)

		case strings.HasPrefix(trimmed, "# "):
			writeHeading(&sb, strings.TrimPrefix(trimmed, "# "), rtfHeading1Size)

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			item := applyInlineMarkup(trimmed[2:])
			sb.WriteString(`\pard\fi-360\li720\fs` + strconv.Itoa(rtfBodySize) +
				` \bullet\tab ` + item + `\par` + "\n")

		case orderedListRegexp.MatchString(trimmed):
			m := orderedListRegexp.FindStringSubmatch(trimmed)
			item := applyInlineMarkup(m[2])
			sb.WriteString(`\pard\fi-360\li720\fs` + strconv.Itoa(rtfBodySize) +
				` ` + m[1] + `.\tab ` + item + `\par` + "\n")

		case imageLineRegexp.MatchString(trimmed):
			// timecode is dropped; only the caption survives
			m := imageLineRegexp.FindStringSubmatch(trimmed)
			sb.WriteString(`\pard\qc\fs` + strconv.Itoa(rtfBodySize) +
				` {\i ` + strings.TrimSpace(m[1]) + `}\par` + "\n")

		case trimmed == "":
			sb.WriteString(`\pard\fs` + strconv.Itoa(rtfBodySize) + ` \par` + "\n")

		default:
			sb.WriteString(`\pard\fs` + strconv.Itoa(rtfBodySize) + ` ` +
				applyInlineMarkup(trimmed) + `\par` + "\n")
		}
	}

	sb.WriteString("}\n")

	return sb.String()
}

func writeHeading(sb *strings.Builder, text string, size int) {
	sb.WriteString(`\pard\fs` + strconv.Itoa(size) + ` {\b ` +
		applyInlineMarkup(text) + `}\par` + "\n")
}

// backslash and braces are RTF control characters and must be escaped before
// any control words are written around the text
func escapeRTF(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `{`, `\{`)
	s = strings.ReplaceAll(s, `}`, `\}`)
	return s
}

func applyInlineMarkup(s string) string {
	s = boldRegexp.ReplaceAllString(s, `{\b ${1}}`)
	s = italicRegexp.ReplaceAllString(s, `{\i ${1}}`)
	return s
}

