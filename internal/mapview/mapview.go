// Package mapview derives map markers and a route line from an itinerary.
// Tile rendering is left to the client; this package only decides what to
// draw.
package mapview

import (
	"math"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Default viewport used when a trip has nothing to show.
var (
	DefaultCenter = Point{24.5, 121.5}
	DefaultZoom   = 10
)

// Point is a [lat, lng] pair.
type Point [2]float64

// Marker is one geolocated event, annotated with the title of its day.
type Marker struct {
	EventID  string           `json:"eventId"`
	DayTitle string           `json:"dayTitle"`
	Title    string           `json:"title"`
	Time     string           `json:"time"`
	Type     domain.EventType `json:"type"`
	Place    string           `json:"place"`
	Position Point            `json:"position"`
}

// View is the derived map content for a trip.
type View struct {
	Center  Point    `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
	Route   []Point  `json:"route"`
}

// Derive walks days then events in stored order and keeps every event with
// a finite latitude and longitude. Events without coordinates are skipped.
func Derive(days []domain.Day) View {
	v := View{
		Center:  DefaultCenter,
		Zoom:    DefaultZoom,
		Markers: []Marker{},
		Route:   []Point{},
	}
	for _, d := range days {
		for _, ev := range d.Events {
			p, ok := position(ev.Location)
			if !ok {
				continue
			}
			v.Markers = append(v.Markers, Marker{
				EventID:  ev.ID,
				DayTitle: d.Title,
				Title:    ev.Title,
				Time:     ev.Time,
				Type:     ev.Type,
				Place:    ev.Location.Name,
				Position: p,
			})
			v.Route = append(v.Route, p)
		}
	}
	return v
}

func position(l domain.Location) (Point, bool) {
	if !l.HasCoordinates() {
		return Point{}, false
	}
	lat, lng := *l.Lat, *l.Lng
	if !finite(lat) || !finite(lng) {
		return Point{}, false
	}
	return Point{lat, lng}, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
