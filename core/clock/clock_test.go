package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   TimeOfDay
		wantOk bool
	}{
		{name: "empty", in: ""},
		{name: "blank", in: "   "},
		{name: "garbage", in: "lol"},
		{name: "24h clock", in: "15:05"},
		{name: "hour out of range", in: "13:00 PM"},
		{name: "hour zero", in: "0:30 AM"},
		{name: "missing meridiem space", in: "8:00AM"},
		{name: "padded morning", in: "08:00 AM", want: New(8, 0), wantOk: true},
		{name: "unpadded morning", in: "7:58 AM", want: New(7, 58), wantOk: true},
		{name: "afternoon", in: "3:05 PM", want: New(15, 5), wantOk: true},
		{name: "noon", in: "12:00 PM", want: New(12, 0), wantOk: true},
		{name: "midnight", in: "12:00 AM", want: New(0, 0), wantOk: true},
		{name: "lowercase meridiem", in: "8:20 am", want: New(8, 20), wantOk: true},
		{name: "surrounding space", in: "  8:20 AM ", want: New(8, 20), wantOk: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if ok != tt.wantOk {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeOfDay_Format(t *testing.T) {
	assert.Equal(t, "3:05 PM", New(15, 5).String())
	assert.Equal(t, "03:05 PM", New(15, 5).Padded())
	assert.Equal(t, "12:00 AM", New(0, 0).String())
	assert.Equal(t, "09:00 AM", MustParse("8:00 AM").Add(60).Padded())
}

func TestTimeOfDay_Add(t *testing.T) {
	assert.Equal(t, New(8, 15), AddGrace(New(8, 0), 15))
	assert.Equal(t, New(0, 10), New(23, 55).Add(15), "wraps past midnight")
	assert.Equal(t, New(23, 50), New(0, 5).Add(-15), "wraps before midnight")
}

func TestInWindow(t *testing.T) {
	tests := []struct {
		t, start, end string
		want          bool
	}{
		{"8:00 AM", "8:00 AM", "3:00 PM", true},
		{"3:00 PM", "8:00 AM", "3:00 PM", true},
		{"11:30 AM", "8:00 AM", "3:00 PM", true},
		{"7:59 AM", "8:00 AM", "3:00 PM", false},
		{"3:01 PM", "8:00 AM", "3:00 PM", false},
		{"", "8:00 AM", "3:00 PM", false},
		{"9:00 AM", "", "3:00 PM", false},
		{"9:00 AM", "8:00 AM", "later", false},
	}
	for _, tt := range tests {
		t.Run(tt.t+" in "+tt.start+"-"+tt.end, func(t *testing.T) {
			if got := InWindow(tt.t, tt.start, tt.end); got != tt.want {
				t.Errorf("InWindow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatNow(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 3, 4, h, m, 12, 0, time.Local) }
	assert.Equal(t, "7:58 AM", FormatNow(at(7, 58)))
	assert.Equal(t, "3:05 PM", FormatNow(at(15, 5)))
	assert.Equal(t, "12:30 PM", FormatNow(at(12, 30)))
}
