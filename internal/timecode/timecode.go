package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseSeconds converts a timecode string to seconds. It accepts one, two, or
// three colon separated groups (SS.mmm, MM:SS.mmm, H:MM:SS.mmm), the last
// group optionally carrying a decimal fraction. Malformed or missing groups
// coerce to zero; the function never fails, so hand-edited timecodes stay
// non-fatal downstream.
func ParseSeconds(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	groups := strings.Split(s, ":")

	// last group holds whole seconds plus an optional fraction
	last := groups[len(groups)-1]
	secParts := strings.SplitN(last, ".", 2)

	seconds := coerceFloat(secParts[0])
	var fraction float64
	if len(secParts) == 2 && secParts[1] != "" {
		fraction = coerceFloat("0." + secParts[1])
	}

	var hours, minutes float64
	switch len(groups) {
	case 3:
		hours = coerceFloat(groups[0])
		minutes = coerceFloat(groups[1])
	case 2:
		minutes = coerceFloat(groups[0])
	}

	return hours*3600 + minutes*60 + seconds + fraction
}

// FormatSubtitle converts a timecode string into the ASS timestamp form
// H:MM:SS.cc (hours unpadded, centisecond precision). Missing or empty input
// yields "0:00:00.00"; inputs with fewer than three groups are treated as
// having zero hours.
func FormatSubtitle(s string) string {
	return FormatSubtitleSeconds(ParseSeconds(s))
}

// FormatSubtitleSeconds renders a seconds value as H:MM:SS.cc.
func FormatSubtitleSeconds(sec float64) string {
	if sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		sec = 0
	}

	totalCentis := int64(math.Round(sec * 100))
	hours := totalCentis / 360000
	minutes := (totalCentis / 6000) % 60
	seconds := (totalCentis / 100) % 60
	centis := totalCentis % 100

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// FormatSeconds renders a seconds value in the canonical zero padded
// HH:MM:SS.mmm form used throughout the data model.
func FormatSeconds(sec float64) string {
	if sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		sec = 0
	}

	totalMillis := int64(math.Round(sec * 1000))
	hours := totalMillis / 3600000
	minutes := (totalMillis / 60000) % 60
	seconds := (totalMillis / 1000) % 60
	millis := totalMillis % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// Normalize rewrites any parseable timecode into the canonical HH:MM:SS.mmm
// form. User-edited timecodes are normalized before they are persisted or
// sorted.
func Normalize(s string) string {
	return FormatSeconds(ParseSeconds(s))
}

func coerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
