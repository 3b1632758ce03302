package itinerary

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DefaultEventTime is the time given to a newly added event.
const DefaultEventTime = "09:00"

// Event fields accepted by UpdateEvent.
const (
	EventFieldTime     = "time"
	EventFieldTitle    = "title"
	EventFieldLocation = "location"
	EventFieldType     = "type"
)

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidTime reports whether s is a zero-padded 24h "HH:MM" time.
func ValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// AddEvent appends an empty activity at DefaultEventTime to the day.
func (e *Editor) AddEvent(dayID string) (domain.Event, error) {
	d, err := e.day(dayID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("itinerary.Editor.AddEvent: %w", err)
	}
	ev := domain.Event{
		ID:   newID(),
		Time: DefaultEventTime,
		Type: domain.EventActivity,
	}
	d.Events = append(d.Events, ev)
	return ev, nil
}

// UpdateEvent sets one field of an event. The location field is parsed with
// ParseLocation so typed coordinates become lat/lng.
func (e *Editor) UpdateEvent(dayID, eventID, field, value string) error {
	d, err := e.day(dayID)
	if err != nil {
		return fmt.Errorf("itinerary.Editor.UpdateEvent: %w", err)
	}
	i := eventIndex(d.Events, eventID)
	if i < 0 {
		return fmt.Errorf("itinerary.Editor.UpdateEvent: event %s: %w", eventID, domain.ErrNotFound)
	}
	ev := &d.Events[i]

	switch field {
	case EventFieldTime:
		if !ValidTime(value) {
			return fmt.Errorf("%w: time must be HH:MM, got %q", domain.ErrValidation, value)
		}
		ev.Time = value
	case EventFieldTitle:
		ev.Title = value
	case EventFieldLocation:
		ev.Location = ParseLocation(value, ev.Location)
	case EventFieldType:
		t := domain.EventType(value)
		if !t.Valid() {
			return fmt.Errorf("%w: unknown event type %q", domain.ErrValidation, value)
		}
		ev.Type = t
	default:
		return fmt.Errorf("%w: unknown event field %q", domain.ErrValidation, field)
	}
	return nil
}

// DeleteEvent removes an event from a day after confirmation.
// It reports whether the event was removed.
func (e *Editor) DeleteEvent(dayID, eventID string) (bool, error) {
	d, err := e.day(dayID)
	if err != nil {
		return false, fmt.Errorf("itinerary.Editor.DeleteEvent: %w", err)
	}
	i := eventIndex(d.Events, eventID)
	if i < 0 {
		return false, nil
	}
	if !e.confirm(fmt.Sprintf("Delete event %q?", d.Events[i].Title)) {
		return false, nil
	}
	d.Events = slices.Delete(d.Events, i, i+1)
	return true, nil
}

// SortedEvents returns the day's events ordered by time. Times are
// zero-padded so a string compare is chronological; ties keep their
// stored order.
func SortedEvents(d domain.Day) []domain.Event {
	out := slices.Clone(d.Events)
	slices.SortStableFunc(out, func(a, b domain.Event) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return out
}

// WithSortedEvents returns copies of days whose events are ordered by time,
// the way they are displayed.
func WithSortedEvents(days []domain.Day) []domain.Day {
	out := make([]domain.Day, len(days))
	for i, d := range days {
		d.Events = SortedEvents(d)
		out[i] = d
	}
	return out
}

func eventIndex(events []domain.Event, id string) int {
	return slices.IndexFunc(events, func(ev domain.Event) bool { return ev.ID == id })
}
