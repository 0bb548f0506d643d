package dataset

import (
	"context"
	"database/sql"
	"strings"
)

// Client is the database collaborator a Loader reads through.
type Client interface {
	Database() string
	// Tables lists the tables of Database in backend order.
	Tables(ctx context.Context) ([]string, error)
	// Query runs a raw statement and materializes every row.
	Query(ctx context.Context, query string) (*Frame, error)
	// Quote quotes an identifier for use in a statement.
	Quote(identifier string) string
	Close() error
}

// SQLClient is a Client over database/sql.
type SQLClient struct {
	db       *sql.DB
	dialect  dialect
	database string
}

func (c *SQLClient) DB() *sql.DB {
	return c.db
}

func (c *SQLClient) Database() string {
	return c.database
}

func (c *SQLClient) Quote(identifier string) string {
	return c.dialect.quote(identifier)
}

func (c *SQLClient) Tables(ctx context.Context) ([]string, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	rows, err := c.db.QueryContext(ctx, c.dialect.tablesSql)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanFirstColumn(rows)
}

func (c *SQLClient) Query(ctx context.Context, query string) (*Frame, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	f, err := scanFrame(rows)
	if err != nil {
		return nil, err
	}
	f.Sql = query
	return f, nil
}

func (c *SQLClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// scanFirstColumn collects the first column of every row as a string.
func scanFirstColumn(rows *sql.Rows) ([]string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	ret := make([]string, 0)
	addrs := make([]any, len(columns))
	for k := range columns {
		var temp any
		addrs[k] = &temp
	}
	for rows.Next() {
		if err := rows.Scan(addrs...); err != nil {
			return nil, err
		}
		switch v := (*(addrs[0].(*any))).(type) {
		case []byte:
			ret = append(ret, string(v))
		case string:
			ret = append(ret, v)
		}
	}
	return ret, rows.Err()
}

// selectSql builds the statement loading one table, with the WHERE clause
// omitted when condition is empty.
func selectSql(c Client, table, condition string) string {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(c.Quote(table))
	if condition != "" {
		b.WriteString(" WHERE ")
		b.WriteString(condition)
	}
	return b.String()
}

var _ Client = (*SQLClient)(nil)
