package cli

import (
	"github.com/spf13/cobra"

	"geoaccess/pkg/access"
)

func newQueryCmd(flags *rootFlags) *cobra.Command {
	var (
		columns []string
		where   string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "query <file> <table>",
		Short: "Query a table with optional projection, filter and limit",
		Long: `Query a table and print the result.

The --where expression uses a Python-like syntax over column names:

  geoaccess query assay.mdb collar --where "block == 'NORTH'" --limit 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(flags, args[0])
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			var opts []access.QueryOption
			if len(columns) > 0 {
				opts = append(opts, access.WithColumns(columns...))
			}
			if where != "" {
				opts = append(opts, access.WithWhere(where))
			}
			if limit > 0 {
				opts = append(opts, access.WithLimit(limit))
			}

			rs, err := db.Query(cmd.Context(), args[1], opts...)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), flags.output, rs)
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to select (default: all)")
	cmd.Flags().StringVar(&where, "where", "", "Row filter expression")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows (0 = no limit)")

	return cmd
}
