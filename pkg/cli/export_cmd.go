package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"geoaccess/pkg/access"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var (
		out     string
		format  string
		columns []string
		where   string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "export <file> <table>",
		Short: "Export a table to a CSV or XLSX file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(out), ".")
			}

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

			switch strings.ToLower(format) {
			case "csv":
				err = db.ExportCSV(cmd.Context(), args[1], out, opts...)
			case "xlsx":
				err = db.ExportXLSX(cmd.Context(), args[1], out, opts...)
			default:
				return fmt.Errorf("unsupported export format %q (want csv or xlsx)", format)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[1], out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination file (required)")
	cmd.Flags().StringVar(&format, "format", "", "Export format, csv or xlsx (default: by extension)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to export (default: all)")
	cmd.Flags().StringVar(&where, "where", "", "Row filter expression")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows (0 = no limit)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newSnapshotCmd(flags *rootFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "snapshot <file> [tables...]",
		Short: "Copy tables into a SQLite file for downstream analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}

			db, err := openDatabase(flags, args[0])
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			if err := db.ExportSQLite(cmd.Context(), out, args[1:]...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination SQLite file (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
