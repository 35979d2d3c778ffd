package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"catalogadmin.cl/app/internal/config"
)

func newSectionsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List the configured product sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secs, err := config.LoadSections(file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(secs.Items) == 0 {
				fmt.Fprintf(out, "no sections in %s: any section slug is accepted\n", file)
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tLABEL")
			for _, s := range secs.Items {
				fmt.Fprintf(tw, "%s\t%s\n", s.Slug, s.Label)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", defaults().SectionsFile, "sections YAML file")
	return cmd
}
