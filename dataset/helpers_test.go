package dataset

import (
	"bytes"
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// openSqlite returns an in-memory sqlite database holding daily, weekly
// and users.
func openSqlite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	for _, stmt := range []string{
		"CREATE TABLE daily (trade_date INTEGER NOT NULL, code TEXT NOT NULL, close REAL)",
		"INSERT INTO daily VALUES (20230101, 'AAA', 10.5), (20230102, 'AAA', 11.0), (20230103, 'BBB', NULL)",
		"CREATE TABLE weekly (trade_date INTEGER NOT NULL, code TEXT NOT NULL, volume INTEGER)",
		"INSERT INTO weekly VALUES (20230106, 'AAA', 100), (20230113, 'BBB', 200)",
		"CREATE TABLE users (user_id INTEGER PRIMARY KEY, name VARCHAR(32))",
		"INSERT INTO users VALUES (1, 'han'), (2, 'john')",
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return db
}

// countingClient records every statement passed to Query.
type countingClient struct {
	Client

	mu      sync.Mutex
	queries []string
	failOn  string
	failErr error
	closed  bool
}

func newCountingClient(t *testing.T, db *sql.DB) *countingClient {
	t.Helper()
	c, err := NewSQLClient(db, DriverSqlite, "main")
	require.NoError(t, err)
	return &countingClient{Client: c}
}

func (c *countingClient) Query(ctx context.Context, query string) (*Frame, error) {
	c.mu.Lock()
	c.queries = append(c.queries, query)
	c.mu.Unlock()
	if c.failOn != "" && c.failOn == query {
		return nil, c.failErr
	}
	return c.Client.Query(ctx, query)
}

// Close marks the client closed; the database is closed by the test cleanup.
func (c *countingClient) Close() error {
	c.closed = true
	return nil
}

func (c *countingClient) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func testOptions(fns ...func(*Options)) Options {
	opts := Options{Driver: DriverSqlite, Database: "main"}
	for _, fn := range fns {
		fn(&opts)
	}
	return opts
}

// newTestLoader builds a loader over client with an isolated cache and a
// logger writing into the returned buffer.
func newTestLoader(t *testing.T, client Client, cache *Cache, opts Options) (*Loader, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(opts,
		WithClient(client),
		WithCache(cache),
		WithProgress(NopProgress{}),
		WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)
	return l, &buf
}
