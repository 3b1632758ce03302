package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
)

// GearReplaceRequest is the body of PUT /trips/{id}/gear.
type GearReplaceRequest struct {
	Categories []domain.GearCategory `json:"categories" validate:"required"`
}

// GearImportRequest is the body of POST /trips/{id}/gear/import.
type GearImportRequest struct {
	Template string `json:"template" validate:"required"`
}

// GearToggleRequest is the body of POST /trips/{id}/gear/toggle.
type GearToggleRequest struct {
	CategoryIndex *int `json:"categoryIndex" validate:"required,min=0"`
	ItemIndex     *int `json:"itemIndex" validate:"required,min=0"`
}

// GearTemplatesResponse is the body of GET /gear/templates.
type GearTemplatesResponse struct {
	Templates []domain.GearTemplate `json:"templates"`
}

// ListGearTemplates handles GET /gear/templates.
func (s *Server) ListGearTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, GearTemplatesResponse{Templates: s.Gear.Templates()})
}

// GetGear handles GET /trips/{id}/gear.
func (s *Server) GetGear(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	list, err := s.Gear.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ReplaceGear handles PUT /trips/{id}/gear.
func (s *Server) ReplaceGear(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req GearReplaceRequest
	if !s.decode(w, r, &req) {
		return
	}
	list, err := s.Gear.Replace(r.Context(), id, req.Categories)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ImportGearTemplate handles POST /trips/{id}/gear/import.
func (s *Server) ImportGearTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req GearImportRequest
	if !s.decode(w, r, &req) {
		return
	}
	list, err := s.Gear.ImportTemplate(r.Context(), id, req.Template)
	if err != nil {
		s.writeServiceError(w, r, err, "trip or template not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ToggleGearItem handles POST /trips/{id}/gear/toggle.
func (s *Server) ToggleGearItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req GearToggleRequest
	if !s.decode(w, r, &req) {
		return
	}
	list, err := s.Gear.Toggle(r.Context(), id, *req.CategoryIndex, *req.ItemIndex)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}
