// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No queries live here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gear"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/repo"
)

// TripService implements trip-level operations: listing, creation and
// metadata edits. Itinerary and gear edits have their own services.
type TripService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r, now: func() time.Time { return time.Now().UTC() }}
}

// List returns all trips, most recently updated first.
// Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ListPaged returns one page of trips and the total count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	start, end := p.Bounds(len(trips))
	return trips[start:end], len(trips), nil
}

// Latest returns the most recently updated trip, the one a fresh dashboard
// opens. Returns domain.ErrNotFound when there are no trips.
func (s *TripService) Latest(ctx context.Context) (domain.Trip, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Latest: %w", err)
	}
	if len(trips) == 0 {
		return domain.Trip{}, fmt.Errorf("service.TripService.Latest: %w", domain.ErrNotFound)
	}
	return trips[0], nil
}

// GetByID returns a single trip.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return t, nil
}

// Create starts a trip from the defaults, overlays the fields present in p
// and performs the schema-complete first save.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, p domain.TripPatch) (domain.Trip, error) {
	title := ""
	if p.Title != nil {
		title = strings.TrimSpace(*p.Title)
		p.Title = &title
	}
	base := domain.NewTrip(title)
	if p.Title != nil && title == "" {
		p.Title = nil
	}
	// A single date sent on its own sets both ends of the range.
	switch {
	case p.StartDate != nil && p.EndDate == nil:
		p.EndDate = p.StartDate
	case p.EndDate != nil && p.StartDate == nil:
		p.StartDate = p.EndDate
	}

	if err := validateMeta(p, base); err != nil {
		return domain.Trip{}, err
	}
	if p.Itinerary != nil {
		if err := itinerary.Validate(*p.Itinerary); err != nil {
			return domain.Trip{}, err
		}
	}
	if p.GearList != nil {
		if err := gear.Validate(*p.GearList); err != nil {
			return domain.Trip{}, err
		}
	}
	p.LastUpdated = nil

	ed := itinerary.NewEditor(p.Apply(base), nil)
	t, err := ed.Save(ctx, s.repo)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return t, nil
}

// Update merge-writes trip metadata. Itinerary and gear list fields in p are
// ignored. Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	p.Itinerary = nil
	p.GearList = nil
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		p.Title = &title
	}
	if err := validateMeta(p, current); err != nil {
		return domain.Trip{}, err
	}

	now := s.now()
	p.LastUpdated = &now
	if _, err := s.repo.Upsert(ctx, id, p); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return p.Apply(current), nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateMeta checks the metadata fields of p as they would land on current.
func validateMeta(p domain.TripPatch, current domain.Trip) error {
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if p.Category != nil && !domain.ValidCategory(*p.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *p.Category)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *p.Status)
	}
	merged := p.Apply(current)
	if !merged.StartDate.IsZero() && !merged.EndDate.IsZero() && merged.EndDate.Before(merged.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}
