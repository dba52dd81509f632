package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"geoaccess/internal/domain"
)

func newTablesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tables <file>",
		Short: "List the user tables in the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(flags, args[0])
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			tables, err := db.Tables(cmd.Context())
			if err != nil {
				return err
			}

			if flags.output == "json" {
				return printJSON(cmd.OutOrStdout(), tables)
			}
			for _, t := range tables {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func newDescribeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file> <table>",
		Short: "Show the column names and inferred types of a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(flags, args[0])
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			info, err := db.TableInfo(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			if flags.output == "json" {
				return printJSON(cmd.OutOrStdout(), info)
			}
			rs := &domain.ResultSet{Columns: []string{"column", "type", "nullable"}}
			for _, c := range info.Columns {
				rs.Rows = append(rs.Rows, []any{c.Name, string(c.Type), c.Nullable})
			}
			return printResult(cmd.OutOrStdout(), flags.output, rs)
		},
	}
}

func newCountCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "count <file> <table>",
		Short: "Count the rows in a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(flags, args[0])
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			count, err := db.Count(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			if flags.output == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]int{"count": count})
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
}
