package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()

	t.Run("full file", func(t *testing.T) {
		path := filepath.Join(dir, "full.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
host: db.internal
port: 3307
user: reader
password: secret
database: stock
refresh: true
tables: [daily, weekly]
conditions:
  GLOBAL: trade_date > 20230101
  weekly: code = 'AAA'
`), 0o600))

		opts, err := LoadOptions(path)
		require.NoError(t, err)
		assert.Equal(t, Options{
			Driver:   DriverMysql,
			Host:     "db.internal",
			Port:     3307,
			User:     "reader",
			Password: "secret",
			Database: "stock",
			Charset:  "utf8mb4",
			Refresh:  true,
			Tables:   []string{"daily", "weekly"},
			Conditions: map[string]string{
				GlobalCondition: "trade_date > 20230101",
				"weekly":        "code = 'AAA'",
			},
		}, opts)
	})

	t.Run("defaults per driver", func(t *testing.T) {
		path := filepath.Join(dir, "pg.yaml")
		require.NoError(t, os.WriteFile(path, []byte("driver: postgres\nhost: pg\nuser: u\ndatabase: d\n"), 0o600))

		opts, err := LoadOptions(path)
		require.NoError(t, err)
		assert.Equal(t, 5432, opts.Port)
		assert.Nil(t, opts.Tables)
		assert.True(t, opts.wildcard())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadOptions(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: [1"), 0o600))
		_, err := LoadOptions(path)
		assert.Error(t, err)
	})
}

func TestOptions_Wildcard(t *testing.T) {
	assert.True(t, Options{}.wildcard())
	assert.True(t, Options{Tables: []string{"a", AllTables}}.wildcard())
	assert.False(t, Options{Tables: []string{"a"}}.wildcard())
	assert.False(t, Options{Tables: []string{}}.wildcard())
}
