package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/docshell/theme"
)

func newCheckCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve the theme fragments and report where each key came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := c.app()
			cfg, err := app.Resolve(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			sources := app.Sources()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tFRAGMENT\tSOURCE")
			for _, key := range theme.Keys {
				idx, ok := cfg.Provenance[key]
				if !ok {
					fmt.Fprintf(tw, "%s\t-\t(unset)\n", key)
					continue
				}
				src := "?"
				if idx < len(sources) {
					src = sources[idx]
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", key, idx, src)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, "theme configuration OK")
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resolved configuration as JSON")
	return cmd
}
