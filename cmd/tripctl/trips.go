package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
)

const dateLayout = "2006-01-02"

func newTripsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List, inspect, create and delete trips",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List trips, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trips, err := a.tripService().List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tDATES\tUPDATED")
			for _, t := range trips {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s..%s\t%s\n",
					t.ID, t.Title, t.Category, t.Status,
					t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout),
					t.LastUpdated.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}

	show := &cobra.Command{
		Use:   "show <trip>",
		Short: "Print a trip as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.resolveTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(t)
		},
	}

	var title, category, status, start, end string
	create := &cobra.Command{
		Use:   "new",
		Short: "Create a trip from the default document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var p domain.TripPatch
			if cmd.Flags().Changed("title") {
				p.Title = &title
			}
			if cmd.Flags().Changed("category") {
				p.Category = &category
			}
			if cmd.Flags().Changed("status") {
				s := domain.TripStatus(status)
				p.Status = &s
			}
			var err error
			if p.StartDate, err = parseDateFlag("start", start); err != nil {
				return err
			}
			if p.EndDate, err = parseDateFlag("end", end); err != nil {
				return err
			}

			t, err := a.tripService().Create(cmd.Context(), p)
			if err != nil {
				return err
			}
			a.printf("created trip %s %q\n", t.ID, t.Title)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "Trip title")
	create.Flags().StringVar(&category, "category", "", "hiking, cycling, camping or travel")
	create.Flags().StringVar(&status, "status", "", "planning, active or done")
	create.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	create.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")

	remove := &cobra.Command{
		Use:   "rm <trip>",
		Short: "Delete a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.resolveTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !a.confirm(fmt.Sprintf("Delete trip %q?", t.Title)) {
				a.printf("cancelled\n")
				return nil
			}
			if err := a.tripService().Delete(cmd.Context(), t.ID); err != nil {
				return err
			}
			a.printf("deleted trip %s\n", t.ID)
			return nil
		},
	}

	cmd.AddCommand(list, show, create, remove)
	return cmd
}

func parseDateFlag(name, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s must be YYYY-MM-DD, got %q", domain.ErrValidation, name, v)
	}
	return &t, nil
}
