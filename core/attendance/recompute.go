package attendance

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Recompute reclassifies every record against `sched` and saves the set once.
// A record that moves from a non-attended status to Present/Late gains one class;
// a record that was already Present/Late never does, so repeating a pass is harmless.
// Invalid records are reported in RecomputeResult.Errors and left as they are.
func (svc *service) Recompute(ctx context.Context, sched Schedule) (RecomputeResult, error) {
	res := RecomputeResult{
		Changed: make(map[string]StatusChange),
		Errors:  make([]RecordError, 0),
	}

	records := svc.repo.LoadAll(ctx)
	if len(records) == 0 {
		return res, nil
	}

	for i := range records {
		rec := &records[i]
		if err := svc.validate.Struct(rec); err != nil {
			res.Errors = append(res.Errors, RecordError{Row: i + 1, ID: rec.ID, Message: err.Error()})
			continue
		}

		oldStatus := Status(strings.TrimSpace(string(rec.Status)))
		newStatus := Classify(rec.TimeIn, sched.Start, sched.End, sched.GraceMinutes)
		if newStatus.IsAttended() && !oldStatus.IsAttended() {
			rec.ClassesAttended++
		}
		rec.Status = newStatus
		res.Changed[rec.ID] = StatusChange{Old: oldStatus, New: newStatus}
		res.Updated++
	}

	if err := svc.repo.SaveAll(ctx, records); err != nil {
		return res, errors.Wrap(err, "saving recomputed records")
	}

	for _, rErr := range res.Errors {
		svc.logger.Warn("record skipped during recompute", rErr)
	}
	svc.logger.Info("statuses recomputed", map[string]interface{}{
		"class_start": sched.Start,
		"class_end":   sched.End,
		"grace":       sched.GraceMinutes,
		"updated":     res.Updated,
		"errors":      len(res.Errors),
	})
	return res, nil
}

// RecomputeFromSettings runs Recompute with the schedule resolved from the persisted settings.
// See settings.Settings.ResolveSchedule for how blank arguments are filled in.
func (svc *service) RecomputeFromSettings(ctx context.Context, classStart, classEnd string) (RecomputeResult, error) {
	start, end := svc.settingsRepo.Read(ctx).ResolveSchedule(classStart, classEnd)
	return svc.Recompute(ctx, NewSchedule(start, end))
}
