// Package shared builds the dependencies both apps run on.
package shared

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/core/settings"
	"github.com/trezcool/recordsync/storage/csvstore"
	"github.com/trezcool/recordsync/storage/database"
	"github.com/trezcool/recordsync/storage/database/postgres"
	"github.com/trezcool/recordsync/storage/settingsfile"
)

// Storage holds the configured stores. DB is nil unless records live in postgres.
type Storage struct {
	Records  attendance.Repository
	Settings *settingsfile.Store
	DB       *sqlx.DB
}

// OpenStorage opens the record store selected by conf.Storage.
// Settings always live in the settings file, next to the records file.
func OpenStorage(ctx context.Context, conf *core.Config, logger core.Logger) (*Storage, error) {
	st := &Storage{Settings: settingsfile.New(conf.SettingsPath(), logger)}

	switch conf.Storage {
	case core.StoragePostgres:
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return nil, errors.Wrap(err, "creating database")
		}
		db, err := database.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		st.DB = db
		st.Records = postgresdb.NewRecordRepository(db, logger)
	default:
		store := csvstore.New(conf.RecordsPath(), logger)
		if err := store.Init(); err != nil {
			return nil, errors.Wrap(err, "initializing records file")
		}
		st.Records = store
	}
	return st, nil
}

func (st *Storage) Close() error {
	if st.DB == nil {
		return nil
	}
	return st.DB.Close()
}

// Services are the domain services over a Storage.
type Services struct {
	Attendance attendance.Service
	Settings   settings.Service
}

func NewServices(st *Storage, validate *validator.Validate, logger core.Logger) Services {
	return Services{
		Attendance: attendance.NewService(st.Records, st.Settings, validate, logger),
		Settings:   settings.NewService(st.Settings, validate),
	}
}
