// Package cli implements the dsload command line.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/folospace/go-mysql-dataset/dataset"
)

// rootFlags holds the connection flags shared by every subcommand.
type rootFlags struct {
	config   string
	driver   string
	host     string
	port     int
	user     string
	password string
	database string
	logLevel string
}

// NewRootCmd creates the dsload command with its subcommands.
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "dsload",
		Short:         "Load database tables into memory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lvl, err := zerolog.ParseLevel(flags.logLevel)
			if err != nil {
				lvl = zerolog.InfoLevel
			}
			dataset.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
				Level(lvl).
				With().
				Timestamp().
				Logger())
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "yaml file with connection options")
	pf.StringVar(&flags.driver, "driver", dataset.DriverMysql, "database driver: mysql, postgres or sqlite")
	pf.StringVar(&flags.host, "host", "", "database host")
	pf.IntVar(&flags.port, "port", 0, "database port (driver default when 0)")
	pf.StringVarP(&flags.user, "user", "u", "", "database user")
	pf.StringVarP(&flags.password, "password", "p", "", "database password, MYSQL_PWD when empty")
	pf.StringVarP(&flags.database, "database", "d", "", "database name (file path for sqlite)")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	cmd.AddCommand(newTablesCmd(&flags), newLoadCmd(&flags), newStructCmd(&flags))
	return cmd
}

// options merges the config file with the flags set on the command line.
func (f *rootFlags) options(cmd *cobra.Command) (dataset.Options, error) {
	var opts dataset.Options
	if f.config != "" {
		var err error
		if opts, err = dataset.LoadOptions(f.config); err != nil {
			return opts, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("driver") || opts.Driver == "" {
		opts.Driver = f.driver
	}
	if changed("host") || opts.Host == "" {
		opts.Host = f.host
	}
	if changed("port") {
		opts.Port = f.port
	}
	if changed("user") || opts.User == "" {
		opts.User = f.user
	}
	if changed("password") || opts.Password == "" {
		opts.Password = f.password
	}
	if opts.Password == "" {
		opts.Password = os.Getenv("MYSQL_PWD")
	}
	if changed("database") || opts.Database == "" {
		opts.Database = f.database
	}
	opts.SetDefaults()
	return opts, nil
}

// Execute runs the dsload command and exits non zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
