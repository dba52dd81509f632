// Package cli implements the geoaccess command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"geoaccess/internal/config"
	"geoaccess/pkg/access"
)

var version = "dev"

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// rootFlags holds the global flags shared by every command.
type rootFlags struct {
	backend      string
	mdbtoolsPath string
	timeout      time.Duration
	logLevel     string
	output       string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "geoaccess",
		Short:         "Read legacy Access database files",
		Long:          "Query, inspect and export tables from legacy Microsoft Access files (.mdb, .accdb).",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			// Precedence: flag > env > default.
			if !cmd.Flags().Changed("backend") && cfg.Backend != "" {
				flags.backend = cfg.Backend
			}
			if !cmd.Flags().Changed("mdbtools-path") && cfg.MdbtoolsPath != "" {
				flags.mdbtoolsPath = cfg.MdbtoolsPath
			}
			if !cmd.Flags().Changed("timeout") {
				flags.timeout = cfg.Timeout
			}
			if !cmd.Flags().Changed("log-level") {
				flags.logLevel = cfg.LogLevel
			}
			return nil
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags(), flags)

	rootCmd.AddCommand(
		newTablesCmd(flags),
		newDescribeCmd(flags),
		newCountCmd(flags),
		newQueryCmd(flags),
		newExportCmd(flags),
		newSnapshotCmd(flags),
		newHoleCmd(flags),
	)

	return rootCmd
}

func addGlobalFlags(pf *pflag.FlagSet, flags *rootFlags) {
	pf.StringVar(&flags.backend, "backend", "", "Force a delegate backend (mdbtools, odbc)")
	pf.StringVar(&flags.mdbtoolsPath, "mdbtools-path", "", "Directory holding the mdbtools binaries")
	pf.DurationVar(&flags.timeout, "timeout", 2*time.Minute, "Per-operation delegate timeout")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVarP(&flags.output, "output", "o", "table", "Output format (table, csv, json)")
}

// openDatabase opens the Access file per the global flags.
func openDatabase(flags *rootFlags, path string) (*access.Database, error) {
	cfg := &config.Config{LogLevel: flags.logLevel}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	opts := []access.Option{
		access.WithTimeout(flags.timeout),
		access.WithLogger(logger),
	}
	if flags.backend != "" {
		opts = append(opts, access.WithBackend(flags.backend))
	}
	if flags.mdbtoolsPath != "" {
		opts = append(opts, access.WithMdbtoolsDir(flags.mdbtoolsPath))
	}
	return access.Open(path, opts...)
}
