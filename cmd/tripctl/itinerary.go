package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// edit loads a trip into an editor wired to the interactive prompt, runs fn
// and saves once. fn reports whether anything changed; a declined prompt
// leaves the store untouched.
func (a *app) edit(ctx context.Context, ref string, fn func(*itinerary.Editor) (bool, error)) error {
	t, err := a.resolveTrip(ctx, ref)
	if err != nil {
		return err
	}
	ed := itinerary.NewEditor(t, a.confirm)
	changed, err := fn(ed)
	if err != nil {
		return err
	}
	if !changed {
		a.printf("cancelled\n")
		return nil
	}
	if _, err := ed.Save(ctx, a.trips); err != nil {
		return err
	}
	return nil
}

func requireDay(ed *itinerary.Editor, id string) error {
	if !slices.ContainsFunc(ed.Days(), func(d domain.Day) bool { return d.ID == id }) {
		return fmt.Errorf("day %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func newDayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Edit the days of a trip's itinerary",
	}

	var title string
	add := &cobra.Command{
		Use:   "add <trip>",
		Short: "Append an empty day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(ed *itinerary.Editor) (bool, error) {
				d := ed.AddDay()
				if title != "" {
					if err := ed.UpdateField(d.ID, itinerary.FieldTitle, title); err != nil {
						return false, err
					}
				}
				a.printf("added day %s\n", d.ID)
				return true, nil
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "Title of the new day")

	remove := &cobra.Command{
		Use:   "rm <trip> <day>",
		Short: "Delete a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(ed *itinerary.Editor) (bool, error) {
				if err := requireDay(ed, args[1]); err != nil {
					return false, err
				}
				return ed.RemoveDay(args[1]), nil
			})
		},
	}

	dup := &cobra.Command{
		Use:   "dup <trip> <day>",
		Short: "Duplicate a day directly after itself",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(ed *itinerary.Editor) (bool, error) {
				d, err := ed.DuplicateDay(args[1])
				if err != nil {
					return false, err
				}
				a.printf("added day %s %q\n", d.ID, d.Title)
				return true, nil
			})
		},
	}

	move := &cobra.Command{
		Use:   "move <trip> <day> <target-day>",
		Short: "Move a day to the position of another day",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(ed *itinerary.Editor) (bool, error) {
				for _, id := range args[1:] {
					if err := requireDay(ed, id); err != nil {
						return false, err
					}
				}
				ed.Reorder(args[1], args[2])
				return true, nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status <trip> <day> <todo|active|done>",
		Short: "Set a day's status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(ed *itinerary.Editor) (bool, error) {
				return true, ed.SetStatus(args[1], domain.DayStatus(args[2]))
			})
		},
	}

	set := &cobra.Command{
		Use:   "set <trip> <day> <title|content|image> <value>",
		Short: "Set a day field; an empty image value removes the image",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(ed *itinerary.Editor) (bool, error) {
				return true, ed.UpdateField(args[1], args[2], args[3])
			})
		},
	}

	cmd.AddCommand(add, remove, dup, move, status, set)
	return cmd
}

func newEventCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Edit the events of a day",
	}

	var at, title, location, typ string
	add := &cobra.Command{
		Use:   "add <trip> <day>",
		Short: "Add an event to a day",
		Long: `Add an event to a day. --location accepts a place name with optional
coordinates, e.g. "Paiyun Lodge (23.47, 120.95)".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(ed *itinerary.Editor) (bool, error) {
				ev, err := ed.AddEvent(args[1])
				if err != nil {
					return false, err
				}
				fields := []struct{ flag, field, value string }{
					{"time", itinerary.EventFieldTime, at},
					{"title", itinerary.EventFieldTitle, title},
					{"location", itinerary.EventFieldLocation, location},
					{"type", itinerary.EventFieldType, typ},
				}
				for _, f := range fields {
					if !cmd.Flags().Changed(f.flag) {
						continue
					}
					if err := ed.UpdateEvent(args[1], ev.ID, f.field, f.value); err != nil {
						return false, err
					}
				}
				a.printf("added event %s\n", ev.ID)
				return true, nil
			})
		},
	}
	add.Flags().StringVar(&at, "time", "", "Start time (HH:MM)")
	add.Flags().StringVar(&title, "title", "", "Event title")
	add.Flags().StringVar(&location, "location", "", "Place, optionally with (lat, lng)")
	add.Flags().StringVar(&typ, "type", "", "activity, transport, meal or lodging")

	set := &cobra.Command{
		Use:   "set <trip> <day> <event> <time|title|location|type> <value>",
		Short: "Set one field of an event",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(ed *itinerary.Editor) (bool, error) {
				return true, ed.UpdateEvent(args[1], args[2], args[3], args[4])
			})
		},
	}

	remove := &cobra.Command{
		Use:   "rm <trip> <day> <event>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd.Context(), args[0], func(ed *itinerary.Editor) (bool, error) {
				return ed.DeleteEvent(args[1], args[2])
			})
		},
	}

	cmd.AddCommand(add, set, remove)
	return cmd
}
