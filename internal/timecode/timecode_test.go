package timecode

import (
	"math"
	"testing"
)

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"hours minutes seconds millis", "01:02:03.450", 3723.45},
		{"minutes seconds millis", "02:03.450", 123.45},
		{"seconds only", "45", 45},
		{"seconds with fraction", "12.5", 12.5},
		{"empty string", "", 0},
		{"whitespace only", "   ", 0},
		{"zero timecode", "00:00:00.000", 0},
		{"unpadded groups", "1:2:3", 3723},
		{"missing fraction", "00:01:30", 90},
		{"trailing dot", "00:00:05.", 5},
		{"out of range minutes accepted", "00:90:00.000", 5400},
		{"non numeric group coerces to zero", "xx:10:00", 600},
		{"garbage input", "not a timecode", 0},
		{"negative-looking input", "-:-:-", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSeconds(tt.input)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseSeconds(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSecondsIsTotal(t *testing.T) {
	inputs := []string{
		"", ":", "::", ":::", "...", "a:b:c.d", "1e99:2:3",
		"\x00", "：１２", "12:,:34", ".", "Inf", "NaN",
	}
	for _, in := range inputs {
		got := ParseSeconds(in)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("ParseSeconds(%q) = %v, want finite", in, got)
		}
	}
}

func TestFormatSubtitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical", "00:00:12.345", "0:00:12.35"},
		{"one hour", "01:02:03.450", "1:02:03.45"},
		{"empty input", "", "0:00:00.00"},
		{"two groups promoted", "02:03.450", "0:02:03.45"},
		{"single group promoted", "59", "0:00:59.00"},
		{"centisecond rounding", "00:00:01.005", "0:00:01.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSubtitle(tt.input); got != tt.want {
				t.Errorf("FormatSubtitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatSubtitleRoundTrip(t *testing.T) {
	// round-trips with ParseSeconds up to centisecond precision
	timecodes := []string{
		"00:00:00.000",
		"00:00:12.345",
		"01:02:03.450",
		"10:59:59.990",
		"00:01:00.010",
	}
	for _, tc := range timecodes {
		orig := ParseSeconds(tc)
		back := ParseSeconds(FormatSubtitle(tc))
		if math.Abs(back-orig) >= 0.01 {
			t.Errorf("round trip %q: |%v - %v| >= 0.01", tc, back, orig)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1:2:3.45", "01:02:03.450"},
		{"90", "00:01:30.000"},
		{"02:03.450", "00:02:03.450"},
		{"", "00:00:00.000"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
