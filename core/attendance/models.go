package attendance

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/recordsync/core"
)

// Status is the attendance label of a record.
// Only Present and Late are produced by the classifier; a record may also carry
// "" (never classified) or whatever label a scanner reported.
type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
)

// Normalize trims and capitalizes a raw status token: " present " -> "Present".
// Unknown tokens pass through capitalized.
func Normalize(raw string) Status {
	return Status(core.Capitalize(core.CleanString(raw)))
}

// IsAttended reports whether s counts towards ClassesAttended.
func (s Status) IsAttended() bool {
	return s == StatusPresent || s == StatusLate
}

// Record is one student's attendance for the current session.
type Record struct {
	ID              string `json:"id" validate:"notblank"`
	Name            string `json:"name"`
	Status          Status `json:"status"`
	ClassesAttended int    `json:"classes_attended" validate:"gte=0"`
	TimeIn          string `json:"time_in"`
	TimeOut         string `json:"time_out"`
	ImgPath         string `json:"img_path"`
}

// HasTimeIn reports whether the record was scanned in during this session.
func (r Record) HasTimeIn() bool {
	return strings.TrimSpace(r.TimeIn) != ""
}

// ProfileImagePath returns the conventional profile picture location for a student.
func ProfileImagePath(name string) string {
	return "assets/profiles/" + strings.ReplaceAll(name, " ", "") + ".jpeg"
}

// ScanEvent is one check-in/check-out signal from a scanner.
type ScanEvent struct {
	ID     string `json:"id" validate:"notblank"`
	Name   string `json:"name" validate:"notblank"`
	Status string `json:"status"`
}

func (se *ScanEvent) Validate(validate *validator.Validate) error {
	se.ID = core.CleanString(se.ID)
	se.Name = core.CleanString(se.Name)
	se.Status = core.CleanString(se.Status)
	return validate.Struct(se)
}

// Schedule is the class window records are classified against.
type Schedule struct {
	Start        string `json:"class_start"`
	End          string `json:"class_end"`
	GraceMinutes int    `json:"grace_minutes"`
}

// NewSchedule returns a Schedule using DefaultRecomputeGrace unless a grace is given.
func NewSchedule(start, end string, grace ...int) Schedule {
	g := DefaultRecomputeGrace
	if len(grace) > 0 {
		g = grace[0]
	}
	return Schedule{Start: start, End: end, GraceMinutes: g}
}

type (
	StatusChange struct {
		Old Status `json:"old"`
		New Status `json:"new"`
	}

	// RecordError is a recompute failure isolated to one record.
	RecordError struct {
		Row     int    `json:"row"` // 1-based position in the record set
		ID      string `json:"id"`
		Message string `json:"error"`
	}

	RecomputeResult struct {
		Updated int                     `json:"updated"`
		Changed map[string]StatusChange `json:"changed"`
		Errors  []RecordError           `json:"errors"`
	}
)

func (re RecordError) Error() string {
	return fmt.Sprintf("row %d (%q): %s", re.Row, re.ID, re.Message)
}
