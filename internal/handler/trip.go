package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/domain"
)

// TripRequest is the body of POST /trips and PATCH /trips/{id}. Absent
// fields are left at their defaults (create) or stored values (patch).
// Itinerary and gear list are only honoured on create.
type TripRequest struct {
	Title     *string                `json:"title" validate:"omitempty,max=200"`
	Category  *string                `json:"category" validate:"omitempty,oneof=hiking cycling camping travel"`
	Status    *domain.TripStatus     `json:"status" validate:"omitempty,oneof=planning active done"`
	StartDate *openapi_types.Date    `json:"startDate"`
	EndDate   *openapi_types.Date    `json:"endDate"`
	Passwords *domain.Passwords      `json:"passwords"`
	IsPrivate *bool                  `json:"is_private"`
	Itinerary *[]domain.Day          `json:"itinerary"`
	GearList  *[]domain.GearCategory `json:"gearList"`
}

// TripResponse is the JSON shape of a trip. Passwords are only present for
// admin sessions.
type TripResponse struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Category    string                `json:"category"`
	Status      domain.TripStatus     `json:"status"`
	StartDate   *openapi_types.Date   `json:"startDate,omitempty"`
	EndDate     *openapi_types.Date   `json:"endDate,omitempty"`
	Passwords   *domain.Passwords     `json:"passwords,omitempty"`
	IsPrivate   bool                  `json:"is_private"`
	Itinerary   []domain.Day          `json:"itinerary"`
	GearList    []domain.GearCategory `json:"gearList"`
	LastUpdated time.Time             `json:"lastUpdated"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripListResponse is the body of GET /trips.
type TripListResponse struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if !queryParam(w, r, "page", &page) || !queryParam(w, r, "limit", &limit) {
		return
	}
	params := domain.NewPaginationParams(page, limit)

	trips, total, err := s.Trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(r.Context(), t)
	}
	writeJSON(w, http.StatusOK, TripListResponse{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if !s.decode(w, r, &req) {
		return
	}

	created, err := s.Trips.Create(r.Context(), req.toPatch())
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(r.Context(), created))
}

// GetLatestTrip handles GET /trips/latest.
func (s *Server) GetLatestTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.Trips.Latest(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "no trips yet")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(r.Context(), trip))
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	trip, err := s.Trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(r.Context(), trip))
}

// UpdateTrip handles PATCH /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req TripRequest
	if !s.decode(w, r, &req) {
		return
	}

	updated, err := s.Trips.Update(r.Context(), id, req.toPatch())
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(r.Context(), updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.Trips.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func (req TripRequest) toPatch() domain.TripPatch {
	p := domain.TripPatch{
		Title:     req.Title,
		Category:  req.Category,
		Status:    req.Status,
		Passwords: req.Passwords,
		IsPrivate: req.IsPrivate,
		Itinerary: req.Itinerary,
		GearList:  req.GearList,
	}
	if req.StartDate != nil {
		d := req.StartDate.Time
		p.StartDate = &d
	}
	if req.EndDate != nil {
		d := req.EndDate.Time
		p.EndDate = &d
	}
	return p
}

// tripToResponse shapes a trip for the session in ctx.
func tripToResponse(ctx context.Context, t domain.Trip) TripResponse {
	resp := TripResponse{
		ID:          t.ID,
		Title:       t.Title,
		Category:    t.Category,
		Status:      t.Status,
		StartDate:   optionalDate(t.StartDate),
		EndDate:     optionalDate(t.EndDate),
		Passwords:   auth.FieldGuard(ctx, auth.AdminOnly, &t.Passwords, nil),
		IsPrivate:   t.IsPrivate,
		Itinerary:   t.Itinerary,
		GearList:    t.GearList,
		LastUpdated: t.LastUpdated,
	}
	if resp.Itinerary == nil {
		resp.Itinerary = []domain.Day{}
	}
	if resp.GearList == nil {
		resp.GearList = []domain.GearCategory{}
	}
	return resp
}

func optionalDate(t time.Time) *openapi_types.Date {
	if t.IsZero() {
		return nil
	}
	return &openapi_types.Date{Time: t}
}
