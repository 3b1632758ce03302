package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ItineraryService loads a trip into an itinerary editor, runs edits
// against it and saves the result with a single merge-write.
type ItineraryService struct {
	repo repo.TripRepo
}

// NewItineraryService constructs an ItineraryService.
func NewItineraryService(r repo.TripRepo) *ItineraryService {
	return &ItineraryService{repo: r}
}

// Get returns the stored day sequence of a trip. With sorted set, each day's
// events are returned in time order; the stored order is unchanged.
func (s *ItineraryService) Get(ctx context.Context, id uuid.UUID, sorted bool) ([]domain.Day, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}
	if sorted {
		return itinerary.WithSortedEvents(t.Itinerary), nil
	}
	return t.Itinerary, nil
}

// Apply replays cmds in order and saves once. If any command fails nothing
// is written.
func (s *ItineraryService) Apply(ctx context.Context, id uuid.UUID, cmds []itinerary.Command) (domain.Trip, error) {
	ed, err := s.open(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.Apply: %w", err)
	}
	for i, c := range cmds {
		if err := ed.Apply(c); err != nil {
			return domain.Trip{}, fmt.Errorf("service.ItineraryService.Apply: command %d (%s): %w", i, c.Op, err)
		}
	}
	return s.save(ctx, ed)
}

// Replace stores days as the trip's whole itinerary.
func (s *ItineraryService) Replace(ctx context.Context, id uuid.UUID, days []domain.Day) (domain.Trip, error) {
	ed, err := s.open(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.Replace: %w", err)
	}
	if err := ed.Replace(days); err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService.Replace: %w", err)
	}
	return s.save(ctx, ed)
}

func (s *ItineraryService) open(ctx context.Context, id uuid.UUID) (*itinerary.Editor, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return itinerary.NewEditor(t, nil), nil
}

func (s *ItineraryService) save(ctx context.Context, ed *itinerary.Editor) (domain.Trip, error) {
	t, err := ed.Save(ctx, s.repo)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ItineraryService: %w", err)
	}
	return t, nil
}
