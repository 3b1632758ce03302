package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per event, with trip and day
// fields repeated for every event. A trip with no days yields one row with
// empty day and event fields; a day with no events yields one row with
// empty event fields.
type ExportRow struct {
	// Trip fields, repeated for every row of the trip.
	TripID        string
	TripTitle     string
	TripCategory  string
	TripStatus    string
	TripStartDate string // "2006-01-02"
	TripEndDate   string // "2006-01-02"

	// Day fields, empty when the trip has no days.
	DayIndex  int // 1-based position in the itinerary, 0 when absent
	DayTitle  string
	DayStatus string

	// Event fields, empty when the day has no events.
	EventTime    string
	EventTitle   string
	EventType    string
	LocationName string
	Lat          *float64
	Lng          *float64
}
