package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

func newMapsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "maps",
		Short: "List the selectable maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, flags, func(svc maps.MapService) error {
				list := svc.ListMaps(cmd.Context())
				if flags.json {
					return printJSON(cmd.OutOrStdout(), list)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tYEARS\tPERIOD")
				for _, m := range list {
					fmt.Fprintf(w, "%s\t%s\t%d-%d\t%s\n", m.ID, m.Name, m.MinYear, m.MaxYear, m.Period)
				}
				return w.Flush()
			})
		},
	}
}
