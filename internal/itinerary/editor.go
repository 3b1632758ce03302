// Package itinerary implements the in-memory itinerary editor: an ordered
// list of days, each with timed events, that is mutated locally and then
// merge-written to the trip store in one save.
//
// An Editor is owned by a single caller (one HTTP request or one CLI
// invocation) and is not safe for concurrent use.
package itinerary

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// CopySuffix is appended to the title of a duplicated day.
const CopySuffix = " (copy)"

// ConfirmFunc asks the user to confirm a destructive operation.
// It returns false when the user declines.
type ConfirmFunc func(prompt string) bool

// Saver is the write side of the trip store the editor depends on.
// repo.TripRepo satisfies it.
type Saver interface {
	Upsert(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (uuid.UUID, error)
}

// Editor holds a trip's itinerary while it is being edited.
type Editor struct {
	trip    domain.Trip
	days    []domain.Day
	confirm ConfirmFunc
	now     func() time.Time
}

// NewEditor starts editing the itinerary of trip. The trip is kept as the
// cached metadata merged into the first write when it has no id yet.
// A nil confirm treats every destructive operation as confirmed.
func NewEditor(trip domain.Trip, confirm ConfirmFunc) *Editor {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &Editor{
		trip:    trip,
		days:    cloneDays(trip.Itinerary),
		confirm: confirm,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Days returns a copy of the current day sequence.
func (e *Editor) Days() []domain.Day {
	return cloneDays(e.days)
}

// TripID returns the id of the trip being edited, uuid.Nil before the first save.
func (e *Editor) TripID() uuid.UUID {
	return e.trip.ID
}

// Trip returns the cached trip with the current itinerary applied.
func (e *Editor) Trip() domain.Trip {
	t := e.trip
	t.Itinerary = e.Days()
	return t
}

// AddDay appends an empty day and returns it.
func (e *Editor) AddDay() domain.Day {
	d := domain.Day{
		ID:     newID(),
		Status: domain.DayTodo,
		Events: []domain.Event{},
	}
	e.days = append(e.days, d)
	return d
}

// RemoveDay deletes the day with the given id after confirmation.
// It reports whether a day was removed; an unknown id is a no-op.
func (e *Editor) RemoveDay(id string) bool {
	i := e.dayIndex(id)
	if i < 0 {
		return false
	}
	if !e.confirm(fmt.Sprintf("Delete day %q?", e.days[i].Title)) {
		return false
	}
	e.days = slices.Delete(e.days, i, i+1)
	return true
}

// DuplicateDay inserts a copy of the day directly after its source.
// The copy gets a fresh id, fresh event ids, status todo and a title
// suffixed with CopySuffix.
func (e *Editor) DuplicateDay(id string) (domain.Day, error) {
	i := e.dayIndex(id)
	if i < 0 {
		return domain.Day{}, fmt.Errorf("itinerary.Editor.DuplicateDay: day %s: %w", id, domain.ErrNotFound)
	}
	clone := cloneDay(e.days[i])
	clone.ID = newID()
	clone.Title += CopySuffix
	clone.Status = domain.DayTodo
	for j := range clone.Events {
		clone.Events[j].ID = newID()
	}
	e.days = slices.Insert(e.days, i+1, clone)
	return cloneDay(clone), nil
}

// Reorder moves the day fromID to the position currently held by toID,
// shifting the days in between. Equal or unknown ids are a no-op.
func (e *Editor) Reorder(fromID, toID string) {
	if fromID == toID {
		return
	}
	from, to := e.dayIndex(fromID), e.dayIndex(toID)
	if from < 0 || to < 0 {
		return
	}
	e.Move(from, to)
}

// Move relocates the day at index from to index to.
// Out-of-range indexes are a no-op.
func (e *Editor) Move(from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(e.days) || to >= len(e.days) {
		return
	}
	e.days = arrayMove(e.days, from, to)
}

// SetStatus changes the status of one day.
func (e *Editor) SetStatus(id string, status domain.DayStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown day status %q", domain.ErrValidation, status)
	}
	d, err := e.day(id)
	if err != nil {
		return fmt.Errorf("itinerary.Editor.SetStatus: %w", err)
	}
	d.Status = status
	return nil
}

// Day fields accepted by UpdateField.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldImage   = "image"
)

// UpdateField sets one free-text field of a day. Setting image to the empty
// string removes the day's image.
func (e *Editor) UpdateField(id, field, value string) error {
	d, err := e.day(id)
	if err != nil {
		return fmt.Errorf("itinerary.Editor.UpdateField: %w", err)
	}
	switch field {
	case FieldTitle:
		d.Title = value
	case FieldContent:
		d.Content = value
	case FieldImage:
		d.Image = value
	case "status":
		return e.SetStatus(id, domain.DayStatus(value))
	default:
		return fmt.Errorf("%w: unknown day field %q", domain.ErrValidation, field)
	}
	return nil
}

// Save writes the itinerary as a partial document. A trip that has never
// been saved gets its full cached metadata merged in so the first write is
// schema-complete. On success the store-assigned id is adopted; on failure
// the in-memory state is left as it was.
func (e *Editor) Save(ctx context.Context, s Saver) (domain.Trip, error) {
	days := e.Days()
	now := e.now()

	patch := domain.TripPatch{Itinerary: &days, LastUpdated: &now}
	if e.trip.IsNew() {
		patch = domain.FullPatch(e.trip)
		patch.Itinerary = &days
		patch.LastUpdated = &now
	}

	id, err := s.Upsert(ctx, e.trip.ID, patch)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("itinerary.Editor.Save: %w", err)
	}

	e.trip = patch.Apply(e.trip)
	e.trip.ID = id
	return e.Trip(), nil
}

func (e *Editor) dayIndex(id string) int {
	return slices.IndexFunc(e.days, func(d domain.Day) bool { return d.ID == id })
}

// day returns a pointer into e.days so callers can mutate in place.
func (e *Editor) day(id string) (*domain.Day, error) {
	i := e.dayIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("day %s: %w", id, domain.ErrNotFound)
	}
	return &e.days[i], nil
}

// arrayMove returns s with the element at from moved to to.
func arrayMove[T any](s []T, from, to int) []T {
	v := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, v)
}

func cloneDays(days []domain.Day) []domain.Day {
	out := make([]domain.Day, len(days))
	for i, d := range days {
		out[i] = cloneDay(d)
	}
	return out
}

func cloneDay(d domain.Day) domain.Day {
	events := make([]domain.Event, len(d.Events))
	for i, ev := range d.Events {
		events[i] = cloneEvent(ev)
	}
	d.Events = events
	return d
}

func cloneEvent(ev domain.Event) domain.Event {
	if ev.Location.Lat != nil {
		lat := *ev.Location.Lat
		ev.Location.Lat = &lat
	}
	if ev.Location.Lng != nil {
		lng := *ev.Location.Lng
		ev.Location.Lng = &lng
	}
	return ev
}

func newID() string {
	return uuid.NewString()
}
