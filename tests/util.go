package testutil

import (
	"context"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/core/settings"
	"github.com/trezcool/recordsync/services/logger"
	"github.com/trezcool/recordsync/storage/database/inmem"
)

// Stack is an in-memory service stack for tests.
type Stack struct {
	Validate    *validator.Validate
	Translator  ut.Translator
	Records     attendance.Repository
	Settings    settings.Repository
	Attendance  attendance.Service
	SettingsSvc settings.Service
	Logger      core.Logger
}

func NewStack(t *testing.T) *Stack {
	t.Helper()
	db, err := inmemdb.Open()
	require.NoError(t, err)

	validate, translator := core.NewValidator()
	logger := logsvc.NewNopLogger()
	records := inmemdb.NewRecordRepository(db)
	settingsRepo := inmemdb.NewSettingsRepository(db)
	return &Stack{
		Validate:    validate,
		Translator:  translator,
		Records:     records,
		Settings:    settingsRepo,
		Attendance:  attendance.NewService(records, settingsRepo, validate, logger),
		SettingsSvc: settings.NewService(settingsRepo, validate),
		Logger:      logger,
	}
}

// SaveRecords replaces the store content with `records`.
func SaveRecords(t *testing.T, repo attendance.Repository, records ...attendance.Record) {
	t.Helper()
	if err := repo.SaveAll(context.Background(), records); err != nil {
		t.Fatalf("SaveRecords() failed: %v", err)
	}
}
