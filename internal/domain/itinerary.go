package domain

// DayStatus is the progress state of one itinerary day.
type DayStatus string

const (
	DayTodo   DayStatus = "todo"
	DayActive DayStatus = "active"
	DayDone   DayStatus = "done"
)

// Valid reports whether s is one of the known day statuses.
func (s DayStatus) Valid() bool {
	switch s {
	case DayTodo, DayActive, DayDone:
		return true
	}
	return false
}

// EventType classifies an event within a day.
type EventType string

const (
	EventActivity  EventType = "activity"
	EventTransport EventType = "transport"
	EventMeal      EventType = "meal"
	EventLodging   EventType = "lodging"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventActivity, EventTransport, EventMeal, EventLodging:
		return true
	}
	return false
}

// Day is one ordered entry in a trip's itinerary.
// Its position in Trip.Itinerary is the only ordering signal.
type Day struct {
	ID      string    `json:"id" bson:"id"`
	Title   string    `json:"title" bson:"title"`
	Content string    `json:"content" bson:"content"`
	Status  DayStatus `json:"status" bson:"status"`
	Image   string    `json:"image,omitempty" bson:"image,omitempty"`
	Events  []Event   `json:"events" bson:"events"`
}

// Event is a timed activity within a day, optionally geolocated.
// Time is a zero-padded "HH:MM" string.
type Event struct {
	ID       string    `json:"id" bson:"id"`
	Time     string    `json:"time" bson:"time"`
	Title    string    `json:"title" bson:"title"`
	Location Location  `json:"location" bson:"location"`
	Type     EventType `json:"type" bson:"type"`
}

// Location is a place name with optional coordinates.
// Lat and Lng are nil when the name could not be geolocated.
type Location struct {
	Name string   `json:"name" bson:"name"`
	Lat  *float64 `json:"lat" bson:"lat"`
	Lng  *float64 `json:"lng" bson:"lng"`
}

// NewLocation returns a location with both coordinates set.
func NewLocation(name string, lat, lng float64) Location {
	return Location{Name: name, Lat: &lat, Lng: &lng}
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}
