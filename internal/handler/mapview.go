package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/mapview"
)

// GetMap handles GET /trips/{id}/map. ?format=geojson returns a GeoJSON
// FeatureCollection; the default is the marker/route view.
func (s *Server) GetMap(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var format *string
	if !queryParam(w, r, "format", &format) {
		return
	}
	if format != nil && *format != "" && *format != "json" && *format != "geojson" {
		requestError(w, "format must be json or geojson")
		return
	}

	trip, err := s.Trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	view := mapview.Derive(trip.Itinerary)
	if format != nil && *format == "geojson" {
		w.Header().Set("Content-Type", "application/geo+json")
		writeJSON(w, http.StatusOK, mapview.GeoJSON(view))
		return
	}
	writeJSON(w, http.StatusOK, view)
}
