package settings

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type (
	Repository interface {
		// Read returns the persisted settings. A missing or unreadable store yields zero Settings.
		Read(ctx context.Context) Settings
		Write(ctx context.Context, s Settings) error
	}

	Service interface {
		// Get returns the persisted settings with defaults applied.
		Get(ctx context.Context) Settings
		// Update validates `upd` and persists its set fields over the current ones.
		Update(ctx context.Context, upd Settings) (Settings, error)
	}

	service struct {
		repo     Repository
		validate *validator.Validate
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *validator.Validate) Service {
	return &service{repo: repo, validate: validate}
}

func (svc *service) Get(ctx context.Context) Settings {
	return svc.repo.Read(ctx).WithDefaults()
}

func (svc *service) Update(ctx context.Context, upd Settings) (Settings, error) {
	if err := upd.Validate(svc.validate); err != nil {
		return Settings{}, err
	}

	current := svc.repo.Read(ctx)
	if upd.ClassStartTime != "" {
		current.ClassStartTime = upd.ClassStartTime
	}
	if upd.ClassDurationMinutes > 0 {
		current.ClassDurationMinutes = upd.ClassDurationMinutes
	}
	if err := svc.repo.Write(ctx, current); err != nil {
		return Settings{}, errors.Wrap(err, "writing settings")
	}
	return current.WithDefaults(), nil
}
