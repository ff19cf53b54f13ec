package settings_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/settings"
	"github.com/trezcool/recordsync/storage/database/inmem"
)

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	db, err := inmemdb.Open()
	require.NoError(t, err)
	repo := inmemdb.NewSettingsRepository(db)
	validate, _ := core.NewValidator()
	svc := settings.NewService(repo, validate)

	assert.Equal(t, settings.Settings{ClassStartTime: "08:00 AM", ClassDurationMinutes: 60}, svc.Get(ctx))

	got, err := svc.Update(ctx, settings.Settings{ClassStartTime: " 07:30 AM "})
	require.NoError(t, err)
	assert.Equal(t, settings.Settings{ClassStartTime: "07:30 AM", ClassDurationMinutes: 60}, got)
	assert.Equal(t, settings.Settings{ClassStartTime: "07:30 AM"}, repo.Read(ctx), "defaults are not persisted")

	got, err = svc.Update(ctx, settings.Settings{ClassDurationMinutes: 90})
	require.NoError(t, err)
	assert.Equal(t, settings.Settings{ClassStartTime: "07:30 AM", ClassDurationMinutes: 90}, got)

	tests := []struct {
		name string
		upd  settings.Settings
	}{
		{name: "bad start time", upd: settings.Settings{ClassStartTime: "half past eight"}},
		{name: "duration too long", upd: settings.Settings{ClassDurationMinutes: 2000}},
		{name: "negative duration", upd: settings.Settings{ClassDurationMinutes: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tt.upd)
			var vErrs validator.ValidationErrors
			assert.ErrorAs(t, err, &vErrs)
		})
	}
	assert.Equal(t, settings.Settings{ClassStartTime: "07:30 AM", ClassDurationMinutes: 90}, repo.Read(ctx))
}
