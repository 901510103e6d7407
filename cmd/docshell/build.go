package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newBuildCmd(c *cli) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out != "" {
				c.site.OutputDir = out
			}
			app := c.app()
			defer app.Close()

			report, err := app.Build(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d pages (%d files) to %s in %s\n",
				report.Pages, len(report.Files), report.OutputDir, report.Duration.Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (overrides output_dir)")
	return cmd
}
