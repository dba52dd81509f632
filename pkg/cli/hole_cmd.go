package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"geoaccess/pkg/geology"
)

func newHoleCmd(flags *rootFlags) *cobra.Command {
	var (
		out     string
		profile string
	)

	cmd := &cobra.Command{
		Use:   "hole <file> <hole-id>",
		Short: "Export all data for one drill hole as CSV files",
		Long: `Export the collar, survey and lithology data recorded against a drill
hole into a directory of CSV files. Table and column names can be remapped
with a YAML profile for projects that diverge from the standard layout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := geology.DefaultProfile()
			if profile == "" {
				profile = os.Getenv("GEOACCESS_PROFILE")
			}
			if profile != "" {
				loaded, err := geology.LoadProfile(profile)
				if err != nil {
					return err
				}
				p = loaded
			}

			db, err := openDatabase(flags, args[0])
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			geo := geology.WrapWithProfile(db, p)
			if err := geo.ExportHole(cmd.Context(), args[1], out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hole %s exported to %s\n", args[1], out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", ".", "Destination directory")
	cmd.Flags().StringVar(&profile, "profile", "", "YAML table-name profile")

	return cmd
}
