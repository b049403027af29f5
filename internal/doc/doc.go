package doc

// single speaker-attributed span of the transcript
type Segment struct {
	Speaker   string `json:"speaker"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Text      string `json:"text"`
}

// narrative caption with no speaker attribution
type Caption struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Text      string `json:"text"`
}

// output format of a generated document
type Format string

const (
	FormatGuide   Format = "guide"
	FormatArticle Format = "article"
	FormatSlides  Format = "slides"
	FormatDiagram Format = "diagram"
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatGuide, FormatArticle, FormatSlides, FormatDiagram:
		return Format(s), true
	default:
		return "", false
	}
}

// FileExtension returns the document file extension for a format. Diagram
// documents are raw Mermaid.
func (f Format) FileExtension() string {
	if f == FormatDiagram {
		return ".mmd"
	}
	return ".md"
}

// generated document text tagged with its format
type Document struct {
	Format  Format `json:"format"`
	Content string `json:"content"`
}
