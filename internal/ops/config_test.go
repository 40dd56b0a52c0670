package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
	assert.Equal(t, 300*time.Millisecond, loaded.GUIThrottle)
	assert.Equal(t, []string{"TRSY1", "TRSY2", "TRSY3"}, loaded.Books)
	assert.Equal(t, int64(10_000_000), loaded.LotSize)
	assert.Equal(t, 100.0, loaded.QuotePrice)
	assert.False(t, loaded.DisableGUI)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"dataDir": "records",
		"outDir": "results",
		"books": ["A", "B"],
		"guiThrottleMs": 500,
		"disableGui": true,
		"lotSize": 5000000,
		"quotePrice": 99.5,
		"paceRecordsPerSec": 1000,
		"snapshotPath": "results/snap.json"
	}`)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "records", loaded.DataDir)
	assert.Equal(t, "results", loaded.OutDir)
	assert.Equal(t, []string{"A", "B"}, loaded.Books)
	assert.Equal(t, 500*time.Millisecond, loaded.GUIThrottle)
	assert.True(t, loaded.DisableGUI)
	assert.Equal(t, int64(5_000_000), loaded.LotSize)
	assert.Equal(t, 99.5, loaded.QuotePrice)
	assert.Equal(t, 1000.0, loaded.PaceRecordsPerSec)
	assert.Equal(t, "results/snap.json", loaded.SnapshotPath)
	assert.Nil(t, loaded.Postgres)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `{"dataDir": "records"}`)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "records", loaded.DataDir)
	assert.Equal(t, Default().OutDir, loaded.OutDir)
	assert.Equal(t, Default().Books, loaded.Books)
	assert.Equal(t, Default().GUIThrottle, loaded.GUIThrottle)
}

func TestLoadPostgresBlock(t *testing.T) {
	path := writeConfig(t, `{
		"postgres": {"host": "db", "port": 5432, "user": "desk", "database": "history"}
	}`)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded.Postgres)
	assert.Equal(t, "db", loaded.Postgres.Host)
	assert.Equal(t, 5432, loaded.Postgres.Port)
	assert.Equal(t, "history", loaded.Postgres.Database)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	_, err := Load(writeConfig(t, `{"books": [""]}`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `{"postgres": {"host": "db"}}`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `not json`))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
