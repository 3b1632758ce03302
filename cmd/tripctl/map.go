package main

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/advice"
	"github.com/pkordes/trip-planner/internal/mapview"
)

func newMapCmd(a *app) *cobra.Command {
	var geojson bool
	cmd := &cobra.Command{
		Use:   "map <trip>",
		Short: "Print the map markers and route of a trip as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.resolveTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view := mapview.Derive(t.Itinerary)
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			if geojson {
				return enc.Encode(mapview.GeoJSON(view))
			}
			return enc.Encode(view)
		},
	}
	cmd.Flags().BoolVar(&geojson, "geojson", false, "Print a GeoJSON FeatureCollection")
	return cmd
}

func newAdviceCmd(a *app) *cobra.Command {
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "advice <location> <activity>",
		Short: "Suggest a rain-day plan",
		Args:  cobra.ExactArgs(2),
		// Advice needs no store.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := advice.NewMockPlanner(delay).GenerateRainPlan(cmd.Context(), args[0], strings.ToLower(args[1]))
			if err != nil {
				return err
			}
			a.printf("%s\n", plan)
			return nil
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", advice.DefaultDelay, "Simulated generation time")
	return cmd
}
