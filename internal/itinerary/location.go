package itinerary

import (
	"regexp"
	"strconv"

	"github.com/pkordes/trip-planner/internal/domain"
)

// coordPattern matches "lat,lng" typed into a location field. Both the ASCII
// comma and the full-width comma are accepted as separator.
var coordPattern = regexp.MustCompile(`(-?\d+\.?\d*)\s*[,，]\s*(-?\d+\.?\d*)`)

// ParseLocation turns free text into a location. When the text contains a
// coordinate pair the parsed lat/lng are attached; otherwise only the name
// changes and prior coordinates are kept. Bounds are not checked.
func ParseLocation(text string, prior domain.Location) domain.Location {
	loc := prior
	loc.Name = text

	m := coordPattern.FindStringSubmatch(text)
	if m == nil {
		return loc
	}
	lat, errLat := strconv.ParseFloat(m[1], 64)
	lng, errLng := strconv.ParseFloat(m[2], 64)
	if errLat != nil || errLng != nil {
		return loc
	}
	loc.Lat = &lat
	loc.Lng = &lng
	return loc
}
