package attendance

import (
	"testing"

	"github.com/trezcool/recordsync/core/clock"
)

func TestClassify(t *testing.T) {
	const start, end = "08:00 AM", "03:00 PM"

	tests := []struct {
		name       string
		timeIn     string
		start, end string
		grace      int
		want       Status
	}{
		{name: "empty time in", timeIn: "", start: start, end: end, grace: 15, want: StatusLate},
		{name: "blank time in", timeIn: "   ", start: start, end: end, grace: 15, want: StatusLate},
		{name: "garbage time in", timeIn: "soon", start: start, end: end, grace: 15, want: StatusLate},
		{name: "unparsable start", timeIn: "7:30 AM", start: "eight", end: end, grace: 15, want: StatusLate},
		{name: "unparsable end", timeIn: "7:30 AM", start: start, end: "", grace: 15, want: StatusLate},
		{name: "early", timeIn: "7:58 AM", start: start, end: end, grace: 15, want: StatusPresent},
		{name: "exactly at start", timeIn: "8:00 AM", start: start, end: end, grace: 0, want: StatusPresent},
		{name: "exactly at grace limit", timeIn: "8:15 AM", start: start, end: end, grace: 15, want: StatusPresent},
		{name: "one minute past grace", timeIn: "8:16 AM", start: start, end: end, grace: 15, want: StatusLate},
		{name: "default classify grace limit", timeIn: "8:05 AM", start: start, end: end, grace: DefaultClassifyGrace, want: StatusPresent},
		{name: "past default classify grace", timeIn: "8:06 AM", start: start, end: end, grace: DefaultClassifyGrace, want: StatusLate},
		{name: "late in class", timeIn: "8:20 AM", start: start, end: end, grace: 15, want: StatusLate},
		{name: "exactly at end", timeIn: "3:00 PM", start: start, end: end, grace: 15, want: StatusLate},
		{name: "after end", timeIn: "3:05 PM", start: start, end: end, grace: 15, want: StatusLate},
		{name: "after end inside long grace", timeIn: "9:30 AM", start: start, end: "09:00 AM", grace: 120, want: StatusLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.timeIn, tt.start, tt.end, tt.grace); got != tt.want {
				t.Errorf("Classify(%q, %q, %q, %d) = %v, want %v", tt.timeIn, tt.start, tt.end, tt.grace, got, tt.want)
			}
		})
	}
}

func TestClassify_EarlyIsAlwaysPresent(t *testing.T) {
	for m := 0; m < 8*60; m += 7 {
		timeIn := clockString(m)
		if got := Classify(timeIn, "08:00 AM", "03:00 PM", 0); got != StatusPresent {
			t.Fatalf("Classify(%q) = %v, want Present", timeIn, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]Status{
		"present":   StatusPresent,
		" Present ": StatusPresent,
		"LATE":      StatusLate,
		"late":      StatusLate,
		"absent":    Status("Absent"),
		"":          Status(""),
	}
	for raw, want := range tests {
		if got := Normalize(raw); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestProfileImagePath(t *testing.T) {
	if got := ProfileImagePath("Ana Cruz"); got != "assets/profiles/AnaCruz.jpeg" {
		t.Errorf("ProfileImagePath() = %q", got)
	}
}

func clockString(minutes int) string {
	return clock.New(0, 0).Add(minutes).String()
}
