package attendance

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/clock"
	"github.com/trezcool/recordsync/core/settings"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("attendance record not found")

	suggestCutoff = .6
)

type (
	// Repository is the record store. Implementations rewrite the whole set on every save;
	// concurrent writers from separate processes are not coordinated.
	Repository interface {
		// LoadAll returns every record in store order. It never fails: a missing or
		// unreadable store is logged and yields an empty set.
		LoadAll(ctx context.Context) []Record
		// SaveAll atomically replaces the store content with `records`.
		SaveAll(ctx context.Context, records []Record) error
		// Clear empties the store, keeping its schema, and returns how many records it held.
		Clear(ctx context.Context) (int, error)
	}

	Service interface {
		UpsertScan(ctx context.Context, ev ScanEvent) (Record, error)
		QueryAll(ctx context.Context) []Record
		GetByName(ctx context.Context, name string) (Record, error)
		SuggestNames(ctx context.Context, name string, n int) []string
		Recompute(ctx context.Context, sched Schedule) (RecomputeResult, error)
		RecomputeFromSettings(ctx context.Context, classStart, classEnd string) (RecomputeResult, error)
		Clear(ctx context.Context) (int, error)
	}

	service struct {
		repo         Repository
		settingsRepo settings.Repository
		validate     *validator.Validate
		logger       core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(
	repo Repository,
	settingsRepo settings.Repository,
	validate *validator.Validate,
	logger core.Logger,
) Service {
	return &service{
		repo:         repo,
		settingsRepo: settingsRepo,
		validate:     validate,
		logger:       logger,
	}
}

// UpsertScan records a scan event.
// The first scan of a session stamps TimeIn and takes the scanner's status label as is;
// ClassesAttended only moves when that label is Present. Later scans only stamp TimeOut.
// The label is not checked against the schedule here: Recompute reclassifies from TimeIn,
// so the two paths can disagree until the next recompute.
func (svc *service) UpsertScan(ctx context.Context, ev ScanEvent) (Record, error) {
	if err := ev.Validate(svc.validate); err != nil {
		return Record{}, err
	}

	records := svc.repo.LoadAll(ctx)
	now := clock.FormatNow(NowFunc())
	status := Normalize(ev.Status)

	idx := -1
	for i := range records {
		if core.CleanString(records[i].ID) == ev.ID {
			idx = i
			break
		}
	}

	switch {
	case idx < 0:
		rec := Record{
			ID:      ev.ID,
			Name:    ev.Name,
			Status:  status,
			TimeIn:  now,
			ImgPath: ProfileImagePath(ev.Name),
		}
		if status == StatusPresent {
			rec.ClassesAttended = 1
		}
		records = append(records, rec)
		idx = len(records) - 1
	case !records[idx].HasTimeIn():
		records[idx].TimeIn = now
		records[idx].Status = status
		if status == StatusPresent {
			records[idx].ClassesAttended++
		}
	default:
		records[idx].TimeOut = now
	}

	rec := records[idx]
	if err := svc.repo.SaveAll(ctx, records); err != nil {
		return rec, pkgerrors.Wrap(err, "saving attendance records")
	}
	svc.logger.Info("scan recorded", map[string]interface{}{
		"id":       rec.ID,
		"status":   string(rec.Status),
		"time_in":  rec.TimeIn,
		"time_out": rec.TimeOut,
	})
	return rec, nil
}

func (svc *service) QueryAll(ctx context.Context) []Record {
	return svc.repo.LoadAll(ctx)
}

// GetByName does a trimmed, case-insensitive match on Record.Name.
func (svc *service) GetByName(ctx context.Context, name string) (Record, error) {
	name = core.CleanString(name)
	for _, rec := range svc.repo.LoadAll(ctx) {
		if strings.EqualFold(core.CleanString(rec.Name), name) {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

// SuggestNames returns up to n record names resembling `name`, best match first.
func (svc *service) SuggestNames(ctx context.Context, name string, n int) []string {
	target := strings.Split(core.CleanString(name, true /* lower */), "")

	type match struct {
		name  string
		ratio float64
	}
	matches := make([]match, 0)
	for _, rec := range svc.repo.LoadAll(ctx) {
		cand := strings.Split(core.CleanString(rec.Name, true /* lower */), "")
		m := difflib.NewMatcher(target, cand)
		if m.QuickRatio() < suggestCutoff {
			continue
		}
		if r := m.Ratio(); r >= suggestCutoff {
			matches = append(matches, match{name: rec.Name, ratio: r})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })

	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.name)
	}
	return names
}

// Clear empties the record set (logout). Settings are left untouched.
func (svc *service) Clear(ctx context.Context) (int, error) {
	n, err := svc.repo.Clear(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "clearing attendance records")
	}
	svc.logger.Info("attendance records cleared", map[string]interface{}{"records_deleted": n})
	return n, nil
}
