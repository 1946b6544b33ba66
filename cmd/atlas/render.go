package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

func newRenderCmd(flags *globalFlags) *cobra.Command {
	var (
		mapID    string
		year     int
		selected string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Resolve the active objects of a map at a year",
		Long: "Prints every object active in the given year with its display name, colour, " +
			"icon and label visibility. Without --year the map's first year is used.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := maps.RenderInput{SelectedID: selected}
			if cmd.Flags().Changed("year") {
				input.Year = &year
			}
			return withService(cmd, flags, func(svc maps.MapService) error {
				return runRender(cmd, flags, svc, mapID, input)
			})
		},
	}

	cmd.Flags().StringVarP(&mapID, "map", "m", "", "Map ID (required)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Query year, clamped to the map's range")
	cmd.Flags().StringVarP(&selected, "selected", "s", "", "Object ID to render as selected")
	_ = cmd.MarkFlagRequired("map")

	return cmd
}

func runRender(cmd *cobra.Command, flags *globalFlags, svc maps.MapService, mapID string, input maps.RenderInput) error {
	state, err := svc.RenderState(cmd.Context(), mapID, input)
	if err != nil {
		return err
	}
	if flags.json {
		return printJSON(cmd.OutOrStdout(), state)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s at %d: %d active objects, center %.4f,%.4f zoom %d\n",
		state.MapID, state.Year, len(state.Markers),
		state.Viewport.CenterLat, state.Viewport.CenterLng, state.Viewport.Zoom)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tICON\tLABEL")
	for _, m := range state.Markers {
		label := "shown"
		if !m.ShowLabel {
			label = "hidden"
		}
		name := m.DisplayName
		if m.Selected {
			name += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID, name, describeColor(m.Color), m.Icon.Kind, label)
	}
	return w.Flush()
}
