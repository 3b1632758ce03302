package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

func newGearCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gear",
		Short: "Manage a trip's gear checklist",
	}

	templates := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in checklist templates",
		Args:  cobra.NoArgs,
		// The catalog is built in; no store is needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			for _, t := range a.gearService().Templates() {
				a.printf("%-10s %s\n", t.Key, t.Label)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <trip>",
		Short: "Print the checklist with its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.resolveTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			list, err := a.gearService().Get(cmd.Context(), t.ID)
			if err != nil {
				return err
			}
			a.printGear(list)
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <trip> <template>",
		Short: "Merge a template into the checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.resolveTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			list, err := a.gearService().ImportTemplate(cmd.Context(), t.ID, args[1])
			if err != nil {
				return err
			}
			a.printGear(list)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <trip> <category#> <item#>",
		Short: "Check or uncheck an item (numbers as shown by gear show)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := position(args[1])
			if err != nil {
				return err
			}
			item, err := position(args[2])
			if err != nil {
				return err
			}
			t, err := a.resolveTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			list, err := a.gearService().Toggle(cmd.Context(), t.ID, cat, item)
			if err != nil {
				return err
			}
			a.printGear(list)
			return nil
		},
	}

	cmd.AddCommand(templates, show, importCmd, toggle)
	return cmd
}

// position turns a 1-based number from the listing into an index.
func position(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a list number", domain.ErrValidation, s)
	}
	return n - 1, nil
}

func (a *app) printGear(list service.GearList) {
	a.printf("progress: %d%%\n", list.Progress)
	for i, c := range list.Categories {
		a.printf("%d. %s\n", i+1, c.Name)
		for j, it := range c.Items {
			mark := " "
			if it.Checked {
				mark = "x"
			}
			a.printf("   %d. [%s] %s\n", j+1, mark, it.Name)
		}
	}
}
