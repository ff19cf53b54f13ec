package dig_container

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/recordsync/apps/api/echo"
	"github.com/trezcool/recordsync/apps/shared"
	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/services/schedwatch"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	c := NewWithConfig(func() (*core.Config, error) {
		return &core.Config{
			Env:          "TEST",
			Debug:        true,
			TestMode:     true,
			DataDir:      dir,
			RecordsFile:  "Students_Data.csv",
			SettingsFile: "settings.json",
			Storage:      core.StorageCSV,
			Server:       core.ServerConfig{Address: "127.0.0.1:0", DisableReqLogs: true},
		}, nil
	})

	err := c.Invoke(func(st *shared.Storage, server *echoapi.Server, watcher *schedwatch.Watcher) {
		assert.NotNil(t, server)
		assert.NotNil(t, watcher)
		assert.Nil(t, st.DB)
		assert.Equal(t, filepath.Join(dir, "settings.json"), st.Settings.Path())
	})
	require.NoError(t, err)
}
