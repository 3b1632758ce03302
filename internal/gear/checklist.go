package gear

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Saver is the write side of the trip store. repo.TripRepo satisfies it.
type Saver interface {
	Upsert(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (uuid.UUID, error)
}

// Checklist is the in-memory gear list of one trip.
type Checklist struct {
	tripID     uuid.UUID
	categories []domain.GearCategory
	catalog    *Catalog
}

// NewChecklist starts editing the gear list of the trip with the given id.
func NewChecklist(tripID uuid.UUID, categories []domain.GearCategory, catalog *Catalog) *Checklist {
	return &Checklist{
		tripID:     tripID,
		categories: cloneCategories(categories),
		catalog:    catalog,
	}
}

// Categories returns a copy of the current list.
func (c *Checklist) Categories() []domain.GearCategory {
	return cloneCategories(c.categories)
}

// ImportTemplate merges a built-in template into the list. A category whose
// name already exists only receives the items whose names it lacks;
// otherwise the whole category is appended with a fresh id. Importing the
// same template again adds nothing.
func (c *Checklist) ImportTemplate(key string) error {
	tpl, ok := c.catalog.Lookup(key)
	if !ok {
		return fmt.Errorf("gear.Checklist.ImportTemplate: template %q: %w", key, domain.ErrNotFound)
	}

	for _, incoming := range tpl.Categories {
		i := slices.IndexFunc(c.categories, func(cat domain.GearCategory) bool {
			return cat.Name == incoming.Name
		})
		if i < 0 {
			incoming.ID = uuid.NewString()
			if incoming.Items == nil {
				incoming.Items = []domain.GearItem{}
			}
			c.categories = append(c.categories, incoming)
			continue
		}
		c.categories[i].Items = mergeItems(c.categories[i].Items, incoming.Items)
	}
	return nil
}

// mergeItems appends the items of add whose names are not in existing.
// An appended item whose id collides with one already present gets a
// fresh id.
func mergeItems(existing, add []domain.GearItem) []domain.GearItem {
	names := make(map[string]struct{}, len(existing))
	ids := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		names[it.Name] = struct{}{}
		ids[it.ID] = struct{}{}
	}
	for _, it := range add {
		if _, dup := names[it.Name]; dup {
			continue
		}
		if _, clash := ids[it.ID]; clash || it.ID == "" {
			it.ID = uuid.NewString()
		}
		names[it.Name] = struct{}{}
		ids[it.ID] = struct{}{}
		existing = append(existing, it)
	}
	return existing
}

// ToggleItem flips the checked flag of the item at the given position.
func (c *Checklist) ToggleItem(categoryIndex, itemIndex int) error {
	if categoryIndex < 0 || categoryIndex >= len(c.categories) {
		return fmt.Errorf("%w: category index %d out of range", domain.ErrValidation, categoryIndex)
	}
	items := c.categories[categoryIndex].Items
	if itemIndex < 0 || itemIndex >= len(items) {
		return fmt.Errorf("%w: item index %d out of range", domain.ErrValidation, itemIndex)
	}
	items[itemIndex].Checked = !items[itemIndex].Checked
	return nil
}

// Progress returns the percentage of checked items, rounded to the nearest
// integer. An empty list is 0%.
func (c *Checklist) Progress() int {
	return Progress(c.categories)
}

// Progress computes the checked percentage of a gear list.
func Progress(categories []domain.GearCategory) int {
	var total, checked int
	for _, cat := range categories {
		for _, it := range cat.Items {
			total++
			if it.Checked {
				checked++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(checked) / float64(total)))
}

// Replace swaps the whole list, as when a client sends its local state.
// Category and item ids must be present and unique within their parent.
func (c *Checklist) Replace(categories []domain.GearCategory) error {
	if err := Validate(categories); err != nil {
		return err
	}
	c.categories = cloneCategories(categories)
	return nil
}

// Validate checks that ids are present and unique within their parent.
func Validate(categories []domain.GearCategory) error {
	seen := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		if cat.ID == "" {
			return fmt.Errorf("%w: category %q has no id", domain.ErrValidation, cat.Name)
		}
		if _, dup := seen[cat.ID]; dup {
			return fmt.Errorf("%w: duplicate category id %q", domain.ErrValidation, cat.ID)
		}
		seen[cat.ID] = struct{}{}

		items := make(map[string]struct{}, len(cat.Items))
		for _, it := range cat.Items {
			if it.ID == "" {
				return fmt.Errorf("%w: item %q has no id", domain.ErrValidation, it.Name)
			}
			if _, dup := items[it.ID]; dup {
				return fmt.Errorf("%w: duplicate item id %q in category %q", domain.ErrValidation, it.ID, cat.ID)
			}
			items[it.ID] = struct{}{}
		}
	}
	return nil
}

// Save merge-writes only the gear list. A trip that was never saved has no
// id to merge into, so the save is refused before any store call.
func (c *Checklist) Save(ctx context.Context, s Saver) error {
	if c.tripID == uuid.Nil {
		return fmt.Errorf("gear.Checklist.Save: no trip to save to, create the trip first: %w", domain.ErrPrecondition)
	}
	list := c.Categories()
	now := time.Now().UTC()
	if _, err := s.Upsert(ctx, c.tripID, domain.TripPatch{GearList: &list, LastUpdated: &now}); err != nil {
		return fmt.Errorf("gear.Checklist.Save: %w", err)
	}
	return nil
}

func cloneCategories(cats []domain.GearCategory) []domain.GearCategory {
	out := make([]domain.GearCategory, len(cats))
	for i, cat := range cats {
		cat.Items = slices.Clone(cat.Items)
		if cat.Items == nil {
			cat.Items = []domain.GearItem{}
		}
		out[i] = cat
	}
	return out
}
