package inmemdb

import (
	"context"

	"github.com/trezcool/recordsync/core/settings"
)

type settingsRepository struct {
	db *settingsTable
}

var _ settings.Repository = (*settingsRepository)(nil)

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db.settings}
}

func (repo *settingsRepository) Read(_ context.Context) settings.Settings {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.row
}

func (repo *settingsRepository) Write(_ context.Context, s settings.Settings) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.row = s
	return nil
}
