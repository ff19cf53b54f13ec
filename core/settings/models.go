package settings

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/clock"
)

const (
	DefaultClassStartTime       = "08:00 AM"
	DefaultClassDurationMinutes = 60
	// DefaultClassEnd is used when the class start cannot be parsed.
	DefaultClassEnd = "03:00 PM"
)

// Settings is the process-wide configuration edited from the settings screen.
// Zero values mean "not set".
type Settings struct {
	ClassStartTime       string `json:"class_start_time" mapstructure:"class_start_time" validate:"omitempty,clocktime"`
	ClassDurationMinutes int    `json:"class_duration_minutes" mapstructure:"class_duration_minutes" validate:"omitempty,min=1,max=1440"`
}

// WithDefaults fills unset fields with their documented defaults.
func (s Settings) WithDefaults() Settings {
	if s.ClassStartTime == "" {
		s.ClassStartTime = DefaultClassStartTime
	}
	if s.ClassDurationMinutes <= 0 {
		s.ClassDurationMinutes = DefaultClassDurationMinutes
	}
	return s
}

// ResolveSchedule returns the class window to classify against.
// A blank classStart falls back to the persisted start time, then to the default.
// A blank classEnd is derived as start + duration when the start parses,
// DefaultClassEnd otherwise.
func (s Settings) ResolveSchedule(classStart, classEnd string) (start, end string) {
	s = s.WithDefaults()
	start = core.CleanString(classStart)
	if start == "" {
		start = s.ClassStartTime
	}
	end = core.CleanString(classEnd)
	if end != "" {
		return start, end
	}
	if st, ok := clock.Parse(start); ok {
		return start, st.Add(s.ClassDurationMinutes).Padded()
	}
	return start, DefaultClassEnd
}

func (s *Settings) Validate(validate *validator.Validate) error {
	s.ClassStartTime = core.CleanString(s.ClassStartTime)
	return validate.Struct(s)
}
