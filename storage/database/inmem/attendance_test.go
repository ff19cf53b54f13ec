package inmemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/recordsync/core/attendance"
	"github.com/trezcool/recordsync/core/settings"
)

func TestRecordRepository(t *testing.T) {
	ctx := context.Background()
	db, err := Open()
	require.NoError(t, err)
	repo := NewRecordRepository(db)

	records := []attendance.Record{{ID: "00-001", Name: "Ana Cruz"}, {ID: "00-002", Name: "Ben Reyes"}}
	require.NoError(t, repo.SaveAll(ctx, records))

	records[0].Name = "changed after save"
	loaded := repo.LoadAll(ctx)
	assert.Equal(t, "Ana Cruz", loaded[0].Name, "saved rows are copies")

	loaded[1].Name = "changed after load"
	assert.Equal(t, "Ben Reyes", repo.LoadAll(ctx)[1].Name, "loaded rows are copies")

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, repo.LoadAll(ctx))
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	db, _ := Open()
	repo := NewSettingsRepository(db)

	assert.Equal(t, settings.Settings{}, repo.Read(ctx))
	require.NoError(t, repo.Write(ctx, settings.Settings{ClassDurationMinutes: 40}))
	assert.Equal(t, settings.Settings{ClassDurationMinutes: 40}, repo.Read(ctx))
}
