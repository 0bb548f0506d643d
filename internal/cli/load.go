package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/folospace/go-mysql-dataset/dataset"
)

type loadFlags struct {
	tables   []string
	where    []string
	global   string
	refresh  bool
	client   string
	arrowDir string
	quiet    bool
}

func newLoadCmd(root *rootFlags) *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load tables and print a summary",
		Example: `  # every table of shop
  dsload load -u root -d shop --host 127.0.0.1

  # two tables, orders filtered, everything else since 2023
  dsload load -d shop --table users --table orders \
    --where "orders=amount > 100" --global "created_at >= '2023-01-01'"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := root.options(cmd)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			return runLoad(cmd, opts, flags)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&flags.tables, "table", "t", nil, "table to load, repeatable (default all tables)")
	f.StringArrayVarP(&flags.where, "where", "w", nil, "table=condition, repeatable")
	f.StringVarP(&flags.global, "global", "g", "", "condition for tables without their own")
	f.BoolVar(&flags.refresh, "refresh", false, "clear the cache before loading")
	f.StringVar(&flags.client, "client", "sql", "database client: sql or gorm")
	f.StringVar(&flags.arrowDir, "arrow-dir", "", "write one <table>.arrow file per table into this directory")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

// apply copies the load flags into opts, keeping values from the config
// file for flags that were not given.
func (f loadFlags) apply(cmd *cobra.Command, opts *dataset.Options) error {
	changed := cmd.Flags().Changed
	if changed("table") {
		opts.Tables = f.tables
	}
	if changed("refresh") {
		opts.Refresh = f.refresh
	}
	if opts.Conditions == nil {
		opts.Conditions = make(map[string]string)
	}
	for _, w := range f.where {
		table, condition, ok := strings.Cut(w, "=")
		if !ok || strings.TrimSpace(table) == "" {
			return fmt.Errorf("--where %q: want table=condition", w)
		}
		opts.Conditions[strings.TrimSpace(table)] = condition
	}
	if changed("global") {
		opts.Conditions[dataset.GlobalCondition] = f.global
	}
	return nil
}

func runLoad(cmd *cobra.Command, opts dataset.Options, flags loadFlags) error {
	var fns []dataset.Option
	switch flags.client {
	case "sql":
	case "gorm":
		fns = append(fns, dataset.WithDialer(dataset.DialGorm))
	default:
		return fmt.Errorf("--client %q: want sql or gorm", flags.client)
	}
	if flags.quiet {
		fns = append(fns, dataset.WithProgress(dataset.NopProgress{}))
	} else {
		fns = append(fns, dataset.WithProgress(dataset.NewBarProgress(cmd.ErrOrStderr())))
	}

	l, err := dataset.New(opts, fns...)
	if err != nil {
		return err
	}
	defer func() {
		_ = l.Close()
	}()

	if err := l.ReadData(cmd.Context()); err != nil {
		return err
	}
	if err := writeSummary(cmd, l); err != nil {
		return err
	}
	if flags.arrowDir != "" {
		return writeArrowFiles(flags.arrowDir, l)
	}
	return nil
}

func writeSummary(cmd *cobra.Command, l *dataset.Loader) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TABLE\tROWS\tCOLUMNS")
	for _, t := range l.Tables() {
		f, err := l.Frame(t)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", t, humanize.Comma(int64(f.Len())), len(f.Columns))
	}
	return tw.Flush()
}

func writeArrowFiles(dir string, l *dataset.Loader) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	for _, t := range l.Tables() {
		f, err := l.Frame(t)
		if err != nil {
			return err
		}
		if err := writeArrowFile(filepath.Join(dir, t+".arrow"), f); err != nil {
			return err
		}
	}
	return nil
}

func writeArrowFile(path string, f *dataset.Frame) error {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := dataset.WriteArrow(file, f); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
