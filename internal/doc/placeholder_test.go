package doc

import (
	"fmt"
	"testing"
)

func TestFindPlaceholders(t *testing.T) {
	tests := []struct {
		name      string
		document  Document
		wantCount int
	}{
		{
			name:      "no placeholders",
			document:  Document{Format: FormatGuide, Content: "# Title\n\nJust text."},
			wantCount: 0,
		},
		{
			name: "single placeholder",
			document: Document{
				Format:  FormatGuide,
				Content: "Step one.\n[Image: login screen at 00:00:12.345]\nStep two.",
			},
			wantCount: 1,
		},
		{
			name: "multiple placeholders in order",
			document: Document{
				Format: FormatArticle,
				Content: "[Image: first at 00:00:01.000] middle " +
					"[Image: second at 00:00:02.000]",
			},
			wantCount: 2,
		},
		{
			name: "case insensitive at keyword",
			document: Document{
				Format:  FormatSlides,
				Content: "[Image: settings panel AT 00:01:00.000]",
			},
			wantCount: 1,
		},
		{
			name: "diagram format never matches",
			document: Document{
				Format:  FormatDiagram,
				Content: "flowchart TD\nA[Image: shape at 00:00:01.000] --> B",
			},
			wantCount: 0,
		},
		{
			name: "marker without timecode is not matched",
			document: Document{
				Format:  FormatGuide,
				Content: "[Image: orphan marker]",
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindPlaceholders(tt.document)
			if len(got) != tt.wantCount {
				t.Errorf("got %d placeholders, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestFindPlaceholdersFields(t *testing.T) {
	d := Document{
		Format:  FormatGuide,
		Content: "intro [Image: login screen at 00:00:12.345] outro",
	}

	got := FindPlaceholders(d)
	if len(got) != 1 {
		t.Fatalf("expected 1 placeholder, got %d", len(got))
	}

	p := got[0]
	if p.Description != "login screen" {
		t.Errorf("description = %q, want %q", p.Description, "login screen")
	}
	if p.Timecode != "00:00:12.345" {
		t.Errorf("timecode = %q, want %q", p.Timecode, "00:00:12.345")
	}
	if p.Match != "[Image: login screen at 00:00:12.345]" {
		t.Errorf("match = %q", p.Match)
	}
	if p.Offset != len("intro ") {
		t.Errorf("offset = %d, want %d", p.Offset, len("intro "))
	}
}

func TestSubstitute(t *testing.T) {
	d := Document{
		Format:  FormatGuide,
		Content: "a [Image: x at 00:00:01.000] b",
	}

	placeholders := FindPlaceholders(d)
	if len(placeholders) != 1 {
		t.Fatalf("expected 1 placeholder, got %d", len(placeholders))
	}

	got := Substitute(d, placeholders[0], "![x](images/image-1.png)")
	want := "a ![x](images/image-1.png) b"
	if got.Content != want {
		t.Errorf("content = %q, want %q", got.Content, want)
	}
}

func TestResolveAllDuplicateMarkers(t *testing.T) {
	// byte-identical markers must each resolve to a distinct asset
	marker := "[Image: gear icon at 00:00:05.000]"
	d := Document{
		Format:  FormatGuide,
		Content: marker + "\nsome text\n" + marker,
	}

	n := 0
	got, skipped := ResolveAll(d, func(p Placeholder) (string, error) {
		n++
		return fmt.Sprintf("![%s](images/image-%d.png)", p.Description, n), nil
	})

	if len(skipped) != 0 {
		t.Fatalf("expected no skipped placeholders, got %d", len(skipped))
	}
	want := "![gear icon](images/image-1.png)\nsome text\n![gear icon](images/image-2.png)"
	if got.Content != want {
		t.Errorf("content = %q, want %q", got.Content, want)
	}
}

func TestResolveAllPartialFailure(t *testing.T) {
	d := Document{
		Format: FormatGuide,
		Content: "[Image: ok at 00:00:01.000]\n" +
			"[Image: broken at 00:00:02.000]\n" +
			"[Image: also ok at 00:00:03.000]",
	}

	got, skipped := ResolveAll(d, func(p Placeholder) (string, error) {
		if p.Description == "broken" {
			return "", fmt.Errorf("frame extraction failed")
		}
		return "(resolved)", nil
	})

	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped placeholder, got %d", len(skipped))
	}
	if skipped[0].Description != "broken" {
		t.Errorf("skipped description = %q, want %q", skipped[0].Description, "broken")
	}

	want := "(resolved)\n[Image: broken at 00:00:02.000]\n(resolved)"
	if got.Content != want {
		t.Errorf("content = %q, want %q", got.Content, want)
	}
}
