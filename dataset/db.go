package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// dialect holds what differs between backends: driver name, dsn, the
// table catalog query and identifier quoting.
type dialect struct {
	driverName string
	dsn        func(o Options) string
	tablesSql  string
	quote      func(identifier string) string
}

var dialects = map[string]dialect{
	DriverMysql: {
		driverName: "mysql",
		dsn:        mysqlDsn,
		tablesSql:  "SHOW TABLES",
		quote:      backtickQuote,
	},
	DriverPostgres: {
		driverName: "pgx",
		dsn:        postgresDsn,
		tablesSql: "SELECT table_name FROM information_schema.tables " +
			"WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name",
		quote: doubleQuote,
	},
	DriverSqlite: {
		driverName: "sqlite",
		dsn:        func(o Options) string { return o.Database },
		tablesSql:  "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
		quote:      doubleQuote,
	},
}

func mysqlDsn(o Options) string {
	cfg := mysql.NewConfig()
	cfg.User = o.User
	cfg.Passwd = o.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
	cfg.DBName = o.Database
	cfg.ParseTime = true
	if o.Charset != "" {
		cfg.Params = map[string]string{"charset": o.Charset}
	}
	return cfg.FormatDSN()
}

func postgresDsn(o Options) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(o.User, o.Password),
		Host:   net.JoinHostPort(o.Host, strconv.Itoa(o.Port)),
		Path:   "/" + o.Database,
	}
	return u.String()
}

func backtickQuote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

func doubleQuote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

func OpenMysql(dataSourceName string) (*sql.DB, error) {
	return sql.Open("mysql", dataSourceName)
}

func Open(driverName, dataSourceName string) (*sql.DB, error) {
	return sql.Open(driverName, dataSourceName)
}

// Connect opens the database described by opts and pings it, so
// unreachable hosts, bad credentials and unknown databases fail here.
func Connect(ctx context.Context, opts Options) (*SQLClient, error) {
	opts.SetDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	d := dialects[opts.Driver]

	db, err := Open(d.driverName, d.dsn(opts))
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLClient(db, opts.Driver, opts.Database)
}

// NewSQLClient wraps an already opened db. driver selects the dialect.
func NewSQLClient(db *sql.DB, driver, database string) (*SQLClient, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDriverUnsupported, driver)
	}
	return &SQLClient{db: db, dialect: d, database: database}, nil
}
