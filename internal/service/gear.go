package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gear"
	"github.com/pkordes/trip-planner/internal/repo"
)

// GearList is a trip's checklist together with its completion percentage.
type GearList struct {
	Categories []domain.GearCategory `json:"categories"`
	Progress   int                   `json:"progress"`
}

func gearList(c *gear.Checklist) GearList {
	return GearList{Categories: c.Categories(), Progress: c.Progress()}
}

// GearService edits the gear checklist of stored trips.
type GearService struct {
	repo    repo.TripRepo
	catalog *gear.Catalog
}

// NewGearService constructs a GearService using catalog for template imports.
func NewGearService(r repo.TripRepo, catalog *gear.Catalog) *GearService {
	return &GearService{repo: r, catalog: catalog}
}

// Templates lists the importable templates in catalog order.
func (s *GearService) Templates() []domain.GearTemplate {
	return s.catalog.List()
}

// Get returns the checklist of a trip.
func (s *GearService) Get(ctx context.Context, id uuid.UUID) (GearList, error) {
	c, err := s.open(ctx, id)
	if err != nil {
		return GearList{}, fmt.Errorf("service.GearService.Get: %w", err)
	}
	return gearList(c), nil
}

// ImportTemplate merges the template named key into the trip's checklist.
// Returns domain.ErrNotFound for an unknown trip or template.
func (s *GearService) ImportTemplate(ctx context.Context, id uuid.UUID, key string) (GearList, error) {
	return s.edit(ctx, id, "ImportTemplate", func(c *gear.Checklist) error {
		return c.ImportTemplate(key)
	})
}

// Toggle flips the checked state of one item, addressed by position.
func (s *GearService) Toggle(ctx context.Context, id uuid.UUID, categoryIndex, itemIndex int) (GearList, error) {
	return s.edit(ctx, id, "Toggle", func(c *gear.Checklist) error {
		return c.ToggleItem(categoryIndex, itemIndex)
	})
}

// Replace stores categories as the trip's whole checklist.
func (s *GearService) Replace(ctx context.Context, id uuid.UUID, categories []domain.GearCategory) (GearList, error) {
	return s.edit(ctx, id, "Replace", func(c *gear.Checklist) error {
		return c.Replace(categories)
	})
}

func (s *GearService) edit(ctx context.Context, id uuid.UUID, op string, fn func(*gear.Checklist) error) (GearList, error) {
	c, err := s.open(ctx, id)
	if err != nil {
		return GearList{}, fmt.Errorf("service.GearService.%s: %w", op, err)
	}
	if err := fn(c); err != nil {
		return GearList{}, fmt.Errorf("service.GearService.%s: %w", op, err)
	}
	if err := c.Save(ctx, s.repo); err != nil {
		return GearList{}, fmt.Errorf("service.GearService.%s: %w", op, err)
	}
	return gearList(c), nil
}

func (s *GearService) open(ctx context.Context, id uuid.UUID) (*gear.Checklist, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return gear.NewChecklist(t.ID, t.GearList, s.catalog), nil
}
