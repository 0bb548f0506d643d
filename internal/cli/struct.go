package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/folospace/go-mysql-dataset/dataset"
)

func newStructCmd(root *rootFlags) *cobra.Command {
	var table, name string

	cmd := &cobra.Command{
		Use:   "struct",
		Short: "Print a Go struct matching a table's columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := root.options(cmd)
			if err != nil {
				return err
			}
			//columns only
			opts.Tables = []string{table}
			opts.Conditions = map[string]string{table: "1 = 0"}

			l, err := dataset.New(opts,
				dataset.WithCache(dataset.NewCache()),
				dataset.WithProgress(dataset.NopProgress{}))
			if err != nil {
				return err
			}
			defer func() {
				_ = l.Close()
			}()

			if err := l.ReadData(cmd.Context()); err != nil {
				return err
			}
			f, err := l.Frame(table)
			if err != nil {
				return err
			}
			if name == "" {
				name = table
			}
			src, err := dataset.GenerateStruct(name, f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), src)
			return err
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "table to describe")
	cmd.Flags().StringVar(&name, "name", "", "struct name (default the table name)")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}
