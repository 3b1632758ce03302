// Command tripctl edits trips directly against the store, without the API
// server. Destructive commands ask for confirmation unless --yes is given.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gear"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// app is the state shared by every subcommand. Tests fill in trips
// themselves so no store is opened.
type app struct {
	trips      repo.TripRepo
	closeStore func()

	in      *bufio.Reader
	out     io.Writer
	log     *slog.Logger
	yes     bool
	verbose bool
}

func main() {
	a := &app{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	if err := a.execute(context.Background(), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// execute runs one command line and closes the store afterwards, whether
// or not the command failed.
func (a *app) execute(ctx context.Context, args []string) error {
	defer func() {
		if a.closeStore != nil {
			a.closeStore()
			a.closeStore = nil
		}
	}()
	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tripctl",
		Short: "Plan trips from the terminal",
		Long: `tripctl reads and edits trips in the configured store.

The store is chosen with STORE_DRIVER (postgres or mongo) plus DATABASE_URL
or MONGO_URI, read from the environment or a .env file.

A trip argument is a trip id or "latest".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "Do not ask before destructive changes")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log store activity to stderr")

	root.AddCommand(
		newTripsCmd(a),
		newDayCmd(a),
		newEventCmd(a),
		newGearCmd(a),
		newMapCmd(a),
		newAdviceCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	if a.log == nil {
		a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	if a.trips != nil {
		return nil
	}

	_ = godotenv.Load()
	cfg, err := config.LoadStore()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	trips, closeFn, err := repo.Open(ctx, cfg, a.log)
	if err != nil {
		return err
	}
	a.trips, a.closeStore = trips, closeFn
	return nil
}

// confirm is the interactive itinerary.ConfirmFunc.
func (a *app) confirm(prompt string) bool {
	if a.yes {
		return true
	}
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (a *app) tripService() *service.TripService {
	return service.NewTripService(a.trips)
}

func (a *app) gearService() *service.GearService {
	return service.NewGearService(a.trips, gear.DefaultCatalog())
}

// resolveTrip loads the trip named by ref: an id or "latest".
func (a *app) resolveTrip(ctx context.Context, ref string) (domain.Trip, error) {
	if ref == "latest" {
		return a.tripService().Latest(ctx)
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%w: %q is not a trip id", domain.ErrValidation, ref)
	}
	return a.tripService().GetByID(ctx, id)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
