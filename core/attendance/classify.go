package attendance

import "github.com/trezcool/recordsync/core/clock"

const (
	// DefaultClassifyGrace is the grace period of a one-off classification.
	DefaultClassifyGrace = 5
	// DefaultRecomputeGrace is the grace period of a recompute pass.
	DefaultRecomputeGrace = 15
)

// Classify decides whether a check-in at timeIn is on time for the class
// running from classStart to classEnd. It never fails: anything that cannot be
// parsed is Late, as is a check-in after the class ended.
func Classify(timeIn, classStart, classEnd string, graceMinutes int) Status {
	in, ok := clock.Parse(timeIn)
	if !ok {
		return StatusLate
	}
	start, okStart := clock.Parse(classStart)
	end, okEnd := clock.Parse(classEnd)
	if !(okStart && okEnd) {
		return StatusLate
	}
	if in.After(end) {
		return StatusLate
	}
	if !in.After(clock.AddGrace(start, graceMinutes)) {
		return StatusPresent
	}
	return StatusLate
}
