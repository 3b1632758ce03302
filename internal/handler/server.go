// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, itinerary.go, gear.go, ...) but share the same Server
// struct so they can access its dependencies. Routes wires them into chi.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/blob"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error)
	Latest(ctx context.Context) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Create(ctx context.Context, p domain.TripPatch) (domain.Trip, error)
	Update(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItineraryServicer defines the itinerary operations the handlers depend on.
type ItineraryServicer interface {
	Get(ctx context.Context, id uuid.UUID, sorted bool) ([]domain.Day, error)
	Apply(ctx context.Context, id uuid.UUID, cmds []itinerary.Command) (domain.Trip, error)
	Replace(ctx context.Context, id uuid.UUID, days []domain.Day) (domain.Trip, error)
}

// GearServicer defines the checklist operations the handlers depend on.
type GearServicer interface {
	Templates() []domain.GearTemplate
	Get(ctx context.Context, id uuid.UUID) (service.GearList, error)
	ImportTemplate(ctx context.Context, id uuid.UUID, key string) (service.GearList, error)
	Toggle(ctx context.Context, id uuid.UUID, categoryIndex, itemIndex int) (service.GearList, error)
	Replace(ctx context.Context, id uuid.UUID, categories []domain.GearCategory) (service.GearList, error)
}

// ExportServicer builds the flat export.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// RoleResolver maps a shared secret to a role. *auth.Resolver satisfies it.
type RoleResolver interface {
	Resolve(secret string) (domain.Role, bool)
}

// TokenIssuer issues session tokens. *auth.TokenIssuer satisfies it.
type TokenIssuer interface {
	Issue(role domain.Role) (string, domain.Session, error)
	Parse(token string) (domain.Session, error)
}

// Uploader stores uploaded files. *blob.DiskStore satisfies it.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, filename, folder string) (blob.Upload, error)
}

// RainPlanner produces rain-day advice. *advice.MockPlanner satisfies it.
type RainPlanner interface {
	GenerateRainPlan(ctx context.Context, location, activity string) (string, error)
}

// Deps collects the Server's dependencies. Handler tests leave the members
// they do not exercise nil.
type Deps struct {
	Trips     TripServicer
	Itinerary ItineraryServicer
	Gear      GearServicer
	Export    ExportServicer
	Roles     RoleResolver
	Tokens    TokenIssuer
	Revoker   auth.Revoker
	Uploads   Uploader
	FilesDir  string
	Advice    RainPlanner
	OpenAPI   []byte
	Log       *slog.Logger
}

// Server holds the handlers' dependencies.
type Server struct {
	Deps
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	if d.Log == nil {
		d.Log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if d.Revoker == nil {
		d.Revoker = auth.NewMemoryRevoker()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation messages.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{Deps: d, validate: v}
}

// Routes returns the API router. Authentication runs for every request
// except login; role requirements are applied per route group.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.OpenAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}
	if s.FilesDir != "" {
		r.Handle(blob.PublicPrefix+"*", http.StripPrefix(blob.PublicPrefix, http.FileServer(http.Dir(s.FilesDir))))
	}

	// Login ignores any bearer header so a stale token cannot block it.
	r.Post("/session", s.CreateSession)

	r.Group(func(r chi.Router) {
		if s.Tokens != nil {
			r.Use(middleware.NewAuthenticator(s.Tokens, s.Revoker, s.Log))
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.Everyone...))

			r.Get("/session", s.GetSession)
			r.Delete("/session", s.DeleteSession)
			r.Get("/trips", s.ListTrips)
			r.Get("/trips/latest", s.GetLatestTrip)
			r.Get("/trips/{id}", s.GetTrip)
			r.Get("/trips/{id}/itinerary", s.GetItinerary)
			r.Get("/trips/{id}/gear", s.GetGear)
			r.Get("/trips/{id}/map", s.GetMap)
			r.Get("/gear/templates", s.ListGearTemplates)
			r.Post("/advice/rain-plan", s.CreateRainPlan)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.ParticipantOnly...))

			r.Put("/trips/{id}/itinerary", s.ReplaceItinerary)
			r.Post("/trips/{id}/itinerary/commands", s.ApplyItineraryCommands)
			r.Put("/trips/{id}/gear", s.ReplaceGear)
			r.Post("/trips/{id}/gear/import", s.ImportGearTemplate)
			r.Post("/trips/{id}/gear/toggle", s.ToggleGearItem)
			r.Get("/export", s.GetExport)
			r.Post("/uploads", s.CreateUpload)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.AdminOnly...))

			r.Post("/trips", s.CreateTrip)
			r.Patch("/trips/{id}", s.UpdateTrip)
			r.Delete("/trips/{id}", s.DeleteTrip)
		})
	})

	return r
}
