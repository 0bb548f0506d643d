package cli

import (
	"github.com/spf13/cobra"

	"github.com/folospace/go-mysql-dataset/dataset"
)

func newTablesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print every table of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			l, err := dataset.New(opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = l.Close()
			}()
			return l.PrintAllTables(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
