package doc

import (
	"regexp"
	"sort"
	"strings"
)

// image marker found in a generated document. Offset is the byte position of
// the match, so two markers with identical text stay distinguishable.
type Placeholder struct {
	Match       string
	Description string
	Timecode    string
	Offset      int
}

// grammar every exporter relies on: description first, literal "at", then a
// timecode of digits, colons, and dots
var placeholderRegexp = regexp.MustCompile(`(?i)\[image:\s*(.+?)\s+at\s+([\d:.]+)\]`)

// FindPlaceholders scans a document left to right for image markers of the
// form "[Image: <description> at <timecode>]" and returns them in document
// order. Diagram documents never carry placeholders and always yield nil.
func FindPlaceholders(d Document) []Placeholder {
	if d.Format == FormatDiagram {
		return nil
	}

	matches := placeholderRegexp.FindAllStringSubmatchIndex(d.Content, -1)
	if len(matches) == 0 {
		return nil
	}

	placeholders := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		placeholders = append(placeholders, Placeholder{
			Match:       d.Content[m[0]:m[1]],
			Description: strings.TrimSpace(d.Content[m[2]:m[3]]),
			Timecode:    d.Content[m[4]:m[5]],
			Offset:      m[0],
		})
	}

	return placeholders
}

// Substitute replaces a single placeholder with replacement text. The splice
// is addressed by the recorded offset, not by literal text search, so only
// the intended occurrence changes.
func Substitute(d Document, p Placeholder, replacement string) Document {
	if p.Offset < 0 || p.Offset+len(p.Match) > len(d.Content) {
		return d
	}
	if d.Content[p.Offset:p.Offset+len(p.Match)] != p.Match {
		return d
	}

	d.Content = d.Content[:p.Offset] + replacement + d.Content[p.Offset+len(p.Match):]
	return d
}

// ResolveAll rewrites every placeholder in one ordered pass. The resolve
// callback returns the replacement text for a placeholder; if it fails, the
// marker is left in place and the placeholder is reported as skipped. The
// output is built with a single splice over the original document so
// byte-identical markers each resolve independently.
func ResolveAll(
	d Document,
	resolve func(p Placeholder) (string, error),
) (Document, []Placeholder) {
	placeholders := FindPlaceholders(d)
	if len(placeholders) == 0 {
		return d, nil
	}

	sort.SliceStable(placeholders, func(i, j int) bool {
		return placeholders[i].Offset < placeholders[j].Offset
	})

	var sb strings.Builder
	var skipped []Placeholder
	last := 0

	for _, p := range placeholders {
		sb.WriteString(d.Content[last:p.Offset])

		replacement, err := resolve(p)
		if err != nil {
			sb.WriteString(p.Match)
			skipped = append(skipped, p)
		} else {
			sb.WriteString(replacement)
		}

		last = p.Offset + len(p.Match)
	}
	sb.WriteString(d.Content[last:])

	d.Content = sb.String()
	return d, skipped
}
