package settingsfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/recordsync/core/settings"
	"github.com/trezcool/recordsync/services/logger"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	store := New(path, logsvc.NewNopLogger())

	assert.Equal(t, settings.Settings{}, store.Read(ctx), "missing file")

	want := settings.Settings{ClassStartTime: "09:30 AM", ClassDurationMinutes: 90}
	require.NoError(t, store.Write(ctx, want))
	assert.Equal(t, want, store.Read(ctx))

	want = settings.Settings{ClassStartTime: "10:00 AM"}
	require.NoError(t, store.Write(ctx, want))
	assert.Equal(t, want, store.Read(ctx))
}

func TestStore_Read(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    settings.Settings
	}{
		{name: "full", content: `{"class_start_time": "07:45 AM", "class_duration_minutes": 50}`, want: settings.Settings{ClassStartTime: "07:45 AM", ClassDurationMinutes: 50}},
		{name: "partial", content: `{"class_duration_minutes": 45}`, want: settings.Settings{ClassDurationMinutes: 45}},
		{name: "unknown keys ignored", content: `{"theme": "dark"}`, want: settings.Settings{}},
		{name: "malformed", content: `{"class_start_time": `, want: settings.Settings{}},
		{name: "wrong type", content: `{"class_duration_minutes": "a while"}`, want: settings.Settings{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			assert.Equal(t, tt.want, New(path, logsvc.NewNopLogger()).Read(context.Background()))
		})
	}
}

func TestStore_Write_Error(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := New(filepath.Join(blocker, "settings.json"), logsvc.NewNopLogger())
	assert.Error(t, store.Write(context.Background(), settings.Settings{ClassDurationMinutes: 30}))
}
