package handler

import (
	"context"
	"errors"
	"net/http"
)

// RainPlanRequest is the body of POST /advice/rain-plan.
type RainPlanRequest struct {
	Location string `json:"location" validate:"required"`
	Activity string `json:"activity" validate:"required"`
}

// RainPlanResponse carries the generated advice text.
type RainPlanResponse struct {
	Plan string `json:"plan"`
}

// CreateRainPlan handles POST /advice/rain-plan.
func (s *Server) CreateRainPlan(w http.ResponseWriter, r *http.Request) {
	var req RainPlanRequest
	if !s.decode(w, r, &req) {
		return
	}

	plan, err := s.Advice.GenerateRainPlan(r.Context(), req.Location, req.Activity)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, RainPlanResponse{Plan: plan})
}
