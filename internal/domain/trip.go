// Package domain contains the core data types for the trip planner.
// This package depends only on uuid and is imported by every other
// internal package (repo, service, handler, the editors).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a whole trip.
type TripStatus string

const (
	TripPlanning TripStatus = "planning"
	TripActive   TripStatus = "active"
	TripDone     TripStatus = "done"
)

// Valid reports whether s is one of the known trip statuses.
func (s TripStatus) Valid() bool {
	switch s {
	case TripPlanning, TripActive, TripDone:
		return true
	}
	return false
}

// Trip categories understood by the dashboard and the advice service.
const (
	CategoryHiking  = "hiking"
	CategoryCycling = "cycling"
	CategoryCamping = "camping"
	CategoryTravel  = "travel"
)

// ValidCategory reports whether c is a known trip category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryHiking, CategoryCycling, CategoryCamping, CategoryTravel:
		return true
	}
	return false
}

// Passwords holds the per-trip shared secrets shown to admins.
type Passwords struct {
	Admin       string `json:"admin_pwd" bson:"admin_pwd"`
	Participant string `json:"participant_pwd" bson:"participant_pwd"`
	Viewer      string `json:"viewer_pwd" bson:"viewer_pwd"`
}

// Trip is the top-level planning document covering a multi-day outing.
// ID is uuid.Nil until the trip has been saved for the first time.
type Trip struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	Status      TripStatus     `json:"status"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     time.Time      `json:"endDate"`
	Passwords   Passwords      `json:"passwords"`
	IsPrivate   bool           `json:"is_private"`
	Itinerary   []Day          `json:"itinerary"`
	GearList    []GearCategory `json:"gearList"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// IsNew reports whether the trip has never been persisted.
func (t Trip) IsNew() bool {
	return t.ID == uuid.Nil
}

// DefaultTitle is used when a trip is created without a title.
const DefaultTitle = "Untitled trip"

// NewTrip returns a schema-complete trip with the defaults every new
// document starts from. The seed itinerary mirrors the sample shown on a
// fresh dashboard.
func NewTrip(title string) Trip {
	if title == "" {
		title = DefaultTitle
	}
	now := time.Now().UTC()
	return Trip{
		Title:     title,
		Category:  CategoryHiking,
		Status:    TripPlanning,
		StartDate: now,
		EndDate:   now,
		Passwords: Passwords{Admin: "admin", Participant: "team", Viewer: "view"},
		Itinerary: []Day{
			{
				ID:      "1",
				Title:   "Day 1: Departure",
				Content: "08:00 leave Taipei",
				Status:  DayDone,
				Events: []Event{
					{ID: "e1", Time: "08:00", Title: "Meet up", Location: NewLocation("Taipei Main Station", 25.0478, 121.5170), Type: EventTransport},
					{ID: "e2", Time: "11:00", Title: "Reach the trailhead", Location: NewLocation("Cuifeng Lake trailhead", 24.5134, 121.6068), Type: EventActivity},
				},
			},
			{ID: "2", Title: "Day 2: Summit", Content: "05:00 wake up", Status: DayActive, Events: []Event{}},
		},
		GearList: []GearCategory{},
	}
}

// TripPatch is a partial trip document used for merge-writes.
// A nil field is "not present": the stored value is left untouched.
type TripPatch struct {
	Title       *string
	Category    *string
	Status      *TripStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Passwords   *Passwords
	IsPrivate   *bool
	Itinerary   *[]Day
	GearList    *[]GearCategory
	LastUpdated *time.Time
}

// FullPatch returns a patch carrying every field of t, for the first write
// of a trip that must land schema-complete.
func FullPatch(t Trip) TripPatch {
	p := TripPatch{
		Title:     &t.Title,
		Category:  &t.Category,
		Status:    &t.Status,
		StartDate: &t.StartDate,
		EndDate:   &t.EndDate,
		Passwords: &t.Passwords,
		IsPrivate: &t.IsPrivate,
		Itinerary: &t.Itinerary,
		GearList:  &t.GearList,
	}
	if !t.LastUpdated.IsZero() {
		p.LastUpdated = &t.LastUpdated
	}
	return p
}

// Apply merges the present fields of p into t and returns the result.
// It mirrors what the repository does on a merge-write.
func (p TripPatch) Apply(t Trip) Trip {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Passwords != nil {
		t.Passwords = *p.Passwords
	}
	if p.IsPrivate != nil {
		t.IsPrivate = *p.IsPrivate
	}
	if p.Itinerary != nil {
		t.Itinerary = *p.Itinerary
	}
	if p.GearList != nil {
		t.GearList = *p.GearList
	}
	if p.LastUpdated != nil {
		t.LastUpdated = *p.LastUpdated
	}
	return t
}
