package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMysqlDsn(t *testing.T) {
	opts := Options{Host: "10.0.0.1", Port: 3307, User: "reader", Password: "p@ss", Database: "stock", Charset: "utf8mb4"}

	cfg, err := mysql.ParseDSN(mysqlDsn(opts))
	require.NoError(t, err)
	assert.Equal(t, "reader", cfg.User)
	assert.Equal(t, "p@ss", cfg.Passwd)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "10.0.0.1:3307", cfg.Addr)
	assert.Equal(t, "stock", cfg.DBName)
	assert.True(t, cfg.ParseTime)
}

func TestPostgresDsn(t *testing.T) {
	dsn := postgresDsn(Options{Host: "pg", Port: 5432, User: "u", Password: "p w", Database: "d"})
	assert.Equal(t, "postgres://u:p%20w@pg:5432/d", dsn)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "`daily`", backtickQuote("daily"))
	assert.Equal(t, "`we``ird`", backtickQuote("we`ird"))
	assert.Equal(t, `"daily"`, doubleQuote("daily"))
}

func TestSelectSql(t *testing.T) {
	mysqlClient := &SQLClient{dialect: dialects[DriverMysql]}
	assert.Equal(t, "SELECT * FROM `daily`", selectSql(mysqlClient, "daily", ""))
	assert.Equal(t, "SELECT * FROM `daily` WHERE trade_date > 20230101", selectSql(mysqlClient, "daily", "trade_date > 20230101"))
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stock.db")
		c, err := Connect(ctx, Options{Driver: DriverSqlite, Database: path})
		require.NoError(t, err)
		defer func() {
			_ = c.Close()
		}()

		_, err = c.DB().ExecContext(ctx, "CREATE TABLE daily (id INTEGER)")
		require.NoError(t, err)
		tables, err := c.Tables(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"daily"}, tables)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := Connect(ctx, Options{Driver: "oracle", Database: "d"})
		assert.ErrorIs(t, err, ErrDriverUnsupported)
	})

	t.Run("unsupported driver client", func(t *testing.T) {
		_, err := NewSQLClient(nil, "oracle", "d")
		assert.ErrorIs(t, err, ErrDriverUnsupported)
	})

	t.Run("not connected", func(t *testing.T) {
		c := &SQLClient{dialect: dialects[DriverSqlite]}
		_, err := c.Tables(ctx)
		assert.ErrorIs(t, err, ErrNotConnected)
		_, err = c.Query(ctx, "SELECT 1")
		assert.ErrorIs(t, err, ErrNotConnected)
		assert.NoError(t, c.Close())
	})
}

func TestLoader_ReadDataSqliteFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stock.db")

	c, err := Connect(ctx, Options{Driver: DriverSqlite, Database: path})
	require.NoError(t, err)
	for _, stmt := range []string{"CREATE TABLE daily (id INTEGER, code TEXT)", "INSERT INTO daily VALUES (1, 'AAA')"} {
		_, err = c.DB().ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	require.NoError(t, c.Close())

	l, err := New(Options{Driver: DriverSqlite, Database: path}, WithCache(NewCache()), WithProgress(NopProgress{}))
	require.NoError(t, err)
	defer func() {
		_ = l.Close()
	}()

	require.NoError(t, l.ReadData(ctx))
	assert.Equal(t, []string{"daily"}, l.Tables())
	f, err := l.Frame("daily")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1), "AAA"}}, f.Rows)
}
