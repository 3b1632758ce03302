package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// ItineraryRequest is the body of PUT /trips/{id}/itinerary.
type ItineraryRequest struct {
	Itinerary []domain.Day `json:"itinerary" validate:"required"`
}

// CommandsRequest is the body of POST /trips/{id}/itinerary/commands.
type CommandsRequest struct {
	Commands []itinerary.Command `json:"commands" validate:"required,min=1,dive"`
}

// ItineraryResponse is the body of the itinerary endpoints.
type ItineraryResponse struct {
	Itinerary []domain.Day `json:"itinerary"`
}

// GetItinerary handles GET /trips/{id}/itinerary. Events come back sorted by
// time unless ?sorted=false is given.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sorted := true
	var sortedParam *bool
	if !queryParam(w, r, "sorted", &sortedParam) {
		return
	}
	if sortedParam != nil {
		sorted = *sortedParam
	}

	days, err := s.Itinerary.Get(r.Context(), id, sorted)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, ItineraryResponse{Itinerary: days})
}

// ReplaceItinerary handles PUT /trips/{id}/itinerary.
func (s *Server) ReplaceItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ItineraryRequest
	if !s.decode(w, r, &req) {
		return
	}

	trip, err := s.Itinerary.Replace(r.Context(), id, req.Itinerary)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, ItineraryResponse{Itinerary: trip.Itinerary})
}

// ApplyItineraryCommands handles POST /trips/{id}/itinerary/commands.
// The batch is all or nothing.
func (s *Server) ApplyItineraryCommands(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req CommandsRequest
	if !s.decode(w, r, &req) {
		return
	}

	trip, err := s.Itinerary.Apply(r.Context(), id, req.Commands)
	if err != nil {
		s.writeServiceError(w, r, err, "trip, day or event not found")
		return
	}
	writeJSON(w, http.StatusOK, ItineraryResponse{Itinerary: trip.Itinerary})
}
