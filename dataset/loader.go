package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Dialer connects a Loader to its database on first use.
type Dialer func(ctx context.Context, opts Options) (Client, error)

// Option customizes a Loader.
type Option func(*Loader)

// WithClient makes the loader read through c instead of dialing. The
// loader does not close c.
func WithClient(c Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

func WithDialer(d Dialer) Option {
	return func(l *Loader) {
		l.dial = d
	}
}

// WithCache isolates the loader from the process wide cache.
func WithCache(c *Cache) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

func WithProgress(p Progress) Option {
	return func(l *Loader) {
		l.progress = p
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// Loader loads tables of one database into Frames, reusing frames cached
// under the same (database, table, condition).
//
// Frames served from the cache are shared with every other loader using
// the same cache. Copy them (Frames.Clone) before modifying.
type Loader struct {
	opts     Options
	client   Client
	dialed   bool
	dial     Dialer
	cache    *Cache
	progress Progress
	log      zerolog.Logger

	tables []string
	frames Frames
}

// New records the configuration of a loader. It performs no I/O and does
// not touch the cache.
func New(opts Options, fns ...Option) (*Loader, error) {
	opts.SetDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Tables != nil {
		opts.Tables = append([]string(nil), opts.Tables...)
	}
	conditions := make(map[string]string, len(opts.Conditions))
	for k, v := range opts.Conditions {
		conditions[k] = v
	}
	opts.Conditions = conditions

	l := &Loader{
		opts:     opts,
		dial:     dialSQL,
		cache:    DefaultCache(),
		progress: NewBarProgress(os.Stderr),
		log:      Logger(),
		frames:   make(Frames),
	}
	for _, fn := range fns {
		fn(l)
	}
	return l, nil
}

func dialSQL(ctx context.Context, opts Options) (Client, error) {
	return Connect(ctx, opts)
}

func (l *Loader) Options() Options {
	return l.opts
}

func (l *Loader) connect(ctx context.Context) (Client, error) {
	if l.client != nil {
		return l.client, nil
	}
	c, err := l.dial(ctx, l.opts)
	if err != nil {
		return nil, err
	}
	l.client, l.dialed = c, true
	return c, nil
}

// ListTables returns the full table catalog of the configured database.
func (l *Loader) ListTables(ctx context.Context) ([]string, error) {
	c, err := l.connect(ctx)
	if err != nil {
		return nil, err
	}
	return c.Tables(ctx)
}

// PrintAllTables writes every table name to w, one per line.
func (l *Loader) PrintAllTables(ctx context.Context, w io.Writer) error {
	tables, err := l.ListTables(ctx)
	if err != nil {
		return err
	}
	for _, t := range tables {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}

// ReadData loads every target table, from the cache when an entry for the
// same (database, table, condition) exists and from the database
// otherwise. A refreshing loader clears the whole cache first.
//
// The first client error is returned as is; frames loaded before it stay
// available through Frames.
func (l *Loader) ReadData(ctx context.Context) error {
	log := l.log.With().
		Str("cycle", ulid.Make().String()).
		Str("database", l.opts.Database).
		Logger()

	if l.opts.Refresh {
		l.cache.Clear()
		log.Debug().Msg("cache cleared")
	}

	client, err := l.connect(ctx)
	if err != nil {
		return err
	}
	tables, err := l.resolveTables(ctx, client, log)
	if err != nil {
		return err
	}
	if stray := strayConditions(l.opts.Conditions, tables); len(stray) > 0 {
		log.Warn().Strs("tables", stray).Msg("conditions for tables that are not loaded are ignored")
	}

	l.tables = tables
	l.frames = make(Frames, len(tables))

	l.progress.Start(len(tables))
	defer l.progress.Finish()

	queried := 0
	for _, table := range tables {
		condition := resolveCondition(l.opts.Conditions, table)

		f, ok := l.cache.Lookup(l.opts.Database, table, condition)
		if !ok {
			f, err = client.Query(ctx, selectSql(client, table, condition))
			if err != nil {
				return err
			}
			f.Table = table
			l.cache.Store(l.opts.Database, table, condition, f)
			queried++
		}
		log.Debug().Str("table", table).Str("condition", condition).Bool("cached", ok).Int("rows", f.Len()).Msg("table loaded")

		l.frames[table] = f
		l.progress.Tick(table)
	}

	log.Info().Int("tables", len(tables)).Int("queried", queried).Msg("read data")
	return nil
}

// resolveTables returns the catalog for a wildcard request, otherwise the
// requested tables that exist, in request order.
func (l *Loader) resolveTables(ctx context.Context, client Client, log zerolog.Logger) ([]string, error) {
	catalog, err := client.Tables(ctx)
	if err != nil {
		return nil, err
	}
	if l.opts.wildcard() {
		return catalog, nil
	}

	tables := make([]string, 0, len(l.opts.Tables))
	var missing []string
	for _, t := range sliceUnique(l.opts.Tables) {
		if sliceContain(catalog, t) {
			tables = append(tables, t)
		} else {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		log.Warn().Strs("tables", missing).Msgf("%v not found in %q", missing, l.opts.Database)
	}
	return tables, nil
}

// Tables returns the resolved target tables of the last ReadData, or nil
// before it ran.
func (l *Loader) Tables() []string {
	return l.tables
}

// Frames returns the frames loaded by the last ReadData.
func (l *Loader) Frames() Frames {
	return l.frames
}

func (l *Loader) Frame(table string) (*Frame, error) {
	f, ok := l.frames[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotLoaded, table)
	}
	return f, nil
}

// Close closes the client the loader dialed itself. Clients passed with
// WithClient are left open.
func (l *Loader) Close() error {
	if !l.dialed || l.client == nil {
		return nil
	}
	err := l.client.Close()
	l.client, l.dialed = nil, false
	return err
}
