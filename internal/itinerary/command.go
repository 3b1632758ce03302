package itinerary

import (
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Op names an editor operation carried by a Command.
type Op string

const (
	OpAddDay       Op = "addDay"
	OpRemoveDay    Op = "removeDay"
	OpDuplicateDay Op = "duplicateDay"
	OpReorder      Op = "reorder"
	OpSetStatus    Op = "setStatus"
	OpUpdateField  Op = "updateField"
	OpAddEvent     Op = "addEvent"
	OpUpdateEvent  Op = "updateEvent"
	OpDeleteEvent  Op = "deleteEvent"
)

// Command is a serialisable editor operation, so a batch of edits made by
// a client can be replayed on the server before a single save.
//
// Field use per op:
//
//	addDay                              -
//	removeDay, duplicateDay             DayID
//	reorder                             DayID (from), TargetID (to)
//	setStatus                           DayID, Value
//	updateField                         DayID, Field, Value
//	addEvent                            DayID
//	updateEvent                         DayID, EventID, Field, Value
//	deleteEvent                         DayID, EventID
type Command struct {
	Op       Op     `json:"op" validate:"required,oneof=addDay removeDay duplicateDay reorder setStatus updateField addEvent updateEvent deleteEvent"`
	DayID    string `json:"dayId,omitempty"`
	TargetID string `json:"targetId,omitempty"`
	EventID  string `json:"eventId,omitempty"`
	Field    string `json:"field,omitempty"`
	Value    string `json:"value,omitempty"`
}

// Apply runs one command against the editor.
func (e *Editor) Apply(c Command) error {
	switch c.Op {
	case OpAddDay:
		e.AddDay()
	case OpRemoveDay:
		e.RemoveDay(c.DayID)
	case OpDuplicateDay:
		_, err := e.DuplicateDay(c.DayID)
		return err
	case OpReorder:
		e.Reorder(c.DayID, c.TargetID)
	case OpSetStatus:
		return e.SetStatus(c.DayID, domain.DayStatus(c.Value))
	case OpUpdateField:
		return e.UpdateField(c.DayID, c.Field, c.Value)
	case OpAddEvent:
		_, err := e.AddEvent(c.DayID)
		return err
	case OpUpdateEvent:
		return e.UpdateEvent(c.DayID, c.EventID, c.Field, c.Value)
	case OpDeleteEvent:
		_, err := e.DeleteEvent(c.DayID, c.EventID)
		return err
	default:
		return fmt.Errorf("%w: unknown op %q", domain.ErrValidation, c.Op)
	}
	return nil
}

// Validate checks a whole day sequence supplied by a client: ids present and
// unique within their parent, known statuses and event types, HH:MM times.
func Validate(days []domain.Day) error {
	seenDays := make(map[string]struct{}, len(days))
	for i, d := range days {
		if d.ID == "" {
			return fmt.Errorf("%w: day %d has no id", domain.ErrValidation, i+1)
		}
		if _, dup := seenDays[d.ID]; dup {
			return fmt.Errorf("%w: duplicate day id %q", domain.ErrValidation, d.ID)
		}
		seenDays[d.ID] = struct{}{}
		if !d.Status.Valid() {
			return fmt.Errorf("%w: day %q has unknown status %q", domain.ErrValidation, d.ID, d.Status)
		}

		seenEvents := make(map[string]struct{}, len(d.Events))
		for _, ev := range d.Events {
			if ev.ID == "" {
				return fmt.Errorf("%w: day %q has an event with no id", domain.ErrValidation, d.ID)
			}
			if _, dup := seenEvents[ev.ID]; dup {
				return fmt.Errorf("%w: duplicate event id %q in day %q", domain.ErrValidation, ev.ID, d.ID)
			}
			seenEvents[ev.ID] = struct{}{}
			if !ValidTime(ev.Time) {
				return fmt.Errorf("%w: event %q time must be HH:MM", domain.ErrValidation, ev.ID)
			}
			if !ev.Type.Valid() {
				return fmt.Errorf("%w: event %q has unknown type %q", domain.ErrValidation, ev.ID, ev.Type)
			}
		}
	}
	return nil
}

// Replace swaps the whole day sequence, as when a client sends its local
// editor state. The days must pass Validate. Nil event lists are stored
// as empty lists.
func (e *Editor) Replace(days []domain.Day) error {
	if err := Validate(days); err != nil {
		return err
	}
	e.days = cloneDays(days)
	return nil
}
