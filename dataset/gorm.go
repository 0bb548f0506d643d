package dataset

import (
	"context"
	"fmt"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormClient is a Client over a gorm connection to mysql.
type GormClient struct {
	db       *gorm.DB
	database string
}

// OpenGorm connects through gorm. Only the mysql driver is supported.
func OpenGorm(ctx context.Context, opts Options) (*GormClient, error) {
	opts.SetDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Driver != DriverMysql {
		return nil, fmt.Errorf("%w: gorm client needs %s, got %q", ErrDriverUnsupported, DriverMysql, opts.Driver)
	}

	db, err := gorm.Open(gormmysql.Open(mysqlDsn(opts)), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, err
	}
	c := NewGormClient(db, opts.Database)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func NewGormClient(db *gorm.DB, database string) *GormClient {
	return &GormClient{db: db, database: database}
}

func (c *GormClient) Database() string {
	return c.database
}

func (c *GormClient) Quote(identifier string) string {
	return backtickQuote(identifier)
}

func (c *GormClient) Tables(ctx context.Context) ([]string, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	return c.db.WithContext(ctx).Migrator().GetTables()
}

func (c *GormClient) Query(ctx context.Context, query string) (*Frame, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	rows, err := c.db.WithContext(ctx).Raw(query).Rows()
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

func (c *GormClient) Close() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DialGorm is a Dialer reading through gorm.
func DialGorm(ctx context.Context, opts Options) (Client, error) {
	return OpenGorm(ctx, opts)
}

var _ Client = (*GormClient)(nil)
