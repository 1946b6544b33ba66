package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/atlas/internal/plugins/maps"
)

func newEventsCmd(flags *globalFlags) *cobra.Command {
	var (
		mapID    string
		category string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List a map's events in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := maps.EventQuery{Mode: maps.FilterAll}
			if category != "" {
				query = maps.EventQuery{Mode: maps.FilterCategory, Category: category}
			}
			return withService(cmd, flags, func(svc maps.MapService) error {
				events, err := svc.EventList(cmd.Context(), mapID, query)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), events)
				}
				return printEvents(cmd.OutOrStdout(), events)
			})
		},
	}

	cmd.Flags().StringVarP(&mapID, "map", "m", "", "Map ID (required)")
	cmd.Flags().StringVar(&category, "category", "", "Only list events of this category")
	_ = cmd.MarkFlagRequired("map")

	return cmd
}

func newRelatedCmd(flags *globalFlags) *cobra.Command {
	var mapID, objectID string

	cmd := &cobra.Command{
		Use:   "related",
		Short: "List the events anchored to an object",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, flags, func(svc maps.MapService) error {
				events, err := svc.RelatedEvents(cmd.Context(), mapID, objectID)
				if err != nil {
					return err
				}
				if flags.json {
					return printJSON(cmd.OutOrStdout(), events)
				}
				if len(events) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No related events.")
					return nil
				}
				return printEvents(cmd.OutOrStdout(), events)
			})
		},
	}

	cmd.Flags().StringVarP(&mapID, "map", "m", "", "Map ID (required)")
	cmd.Flags().StringVarP(&objectID, "object", "o", "", "Object ID (required)")
	_ = cmd.MarkFlagRequired("map")
	_ = cmd.MarkFlagRequired("object")

	return cmd
}

func printEvents(out io.Writer, events []maps.Event) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tID\tCATEGORY\tOBJECTS\tTITLE")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.Date, e.ID, e.Category, describeAnchors(e.ObjectID), e.Title)
	}
	return w.Flush()
}
