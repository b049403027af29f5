package export

import (
	"strings"
	"testing"

	"github.com/b08x/ScreenDoc/internal/doc"
)

func TestRichTextGuideScenario(t *testing.T) {
	d := doc.Document{
		Format:  doc.FormatGuide,
		Content: "# Title\n- step one\n[Image: gear icon at 00:00:05.000]\n",
	}

	rtf := RichText(d)

	heading := strings.Index(rtf, `{\b Title}`)
	bullet := strings.Index(rtf, `\bullet\tab step one`)
	caption := strings.Index(rtf, `\qc`)

	if heading == -1 {
		t.Fatalf("missing bold heading block:\n%s", rtf)
	}
	if bullet == -1 {
		t.Fatalf("missing bulleted paragraph:\n%s", rtf)
	}
	if caption == -1 || !strings.Contains(rtf, `{\i gear icon}`) {
		t.Fatalf("missing centered italic image caption:\n%s", rtf)
	}
	if !(heading < bullet && bullet < caption) {
		t.Errorf("blocks out of order: heading=%d bullet=%d caption=%d", heading, bullet, caption)
	}
	if strings.Contains(rtf, "00:00:05.000") {
		t.Errorf("image caption must lose its timecode:\n%s", rtf)
	}
}

func TestRichTextEscapesControlCharacters(t *testing.T) {
	d := doc.Document{
		Format:  doc.FormatArticle,
		Content: `type Foo struct { Bar string \ }`,
	}

	rtf := RichText(d)

	if !strings.Contains(rtf, `\{`) || !strings.Contains(rtf, `\}`) || !strings.Contains(rtf, `\\`) {
		t.Errorf("control characters not escaped:\n%s", rtf)
	}
}

func TestRichTextPageBreaksOnlyForSlides(t *testing.T) {
	content := "slide one\n---\nslide two"

	slides := RichText(doc.Document{Format: doc.FormatSlides, Content: content})
	if !strings.Contains(slides, `\page`) {
		t.Errorf("slides document missing page break:\n%s", slides)
	}

	article := RichText(doc.Document{Format: doc.FormatArticle, Content: content})
	if strings.Contains(article, `\page`) {
		t.Errorf("non-slides document must not emit page breaks:\n%s", article)
	}
}

func TestRichTextHeadingLevels(t *testing.T) {
	d := doc.Document{
		Format:  doc.FormatArticle,
		Content: "# One\n## Two\n### Three",
	}

	rtf := RichText(d)

	for _, want := range []string{`\fs48 {\b One}`, `\fs36 {\b Two}`, `\fs28 {\b Three}`} {
		if !strings.Contains(rtf, want) {
			t.Errorf("missing %q in:\n%s", want, rtf)
		}
	}
}

func TestRichTextOrderedListKeepsLiteralNumber(t *testing.T) {
	d := doc.Document{
		Format:  doc.FormatGuide,
		Content: "7. seventh step",
	}

	rtf := RichText(d)

	if !strings.Contains(rtf, `7.\tab seventh step`) {
		t.Errorf("ordered list should reuse the captured number:\n%s", rtf)
	}
}

func TestRichTextInlineEmphasis(t *testing.T) {
	d := doc.Document{
		Format:  doc.FormatArticle,
		Content: "Press **Save** to keep *all* changes",
	}

	rtf := RichText(d)

	if !strings.Contains(rtf, `{\b Save}`) {
		t.Errorf("bold emphasis not applied:\n%s", rtf)
	}
	if !strings.Contains(rtf, `{\i all}`) {
		t.Errorf("italic emphasis not applied:\n%s", rtf)
	}
}

func TestRichTextWrapsDocument(t *testing.T) {
	rtf := RichText(doc.Document{Format: doc.FormatGuide, Content: "hello"})

	if !strings.HasPrefix(rtf, `{\rtf1`) {
		t.Errorf("missing RTF header: %q", rtf[:20])
	}
	if !strings.HasSuffix(strings.TrimSpace(rtf), "}") {
		t.Errorf("missing RTF footer")
	}
}
