package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error)
	latest    func(ctx context.Context) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	create    func(ctx context.Context, p domain.TripPatch) (domain.Trip, error)
	update    func(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Latest(ctx context.Context) (domain.Trip, error) {
	return m.latest(ctx)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) Create(ctx context.Context, p domain.TripPatch) (domain.Trip, error) {
	return m.create(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, id, p)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var testSecrets = auth.Secrets{Admin: "admin-secret", Participant: "team-secret", Viewer: "view-secret"}

// testAPI wires a Server the way main.go does, with a real token issuer
// and in-memory revocation, and issues tokens for each role.
type testAPI struct {
	h      http.Handler
	tokens *auth.TokenIssuer
}

func newTestAPI(d handler.Deps) *testAPI {
	tokens := auth.NewTokenIssuer("test-signing-key", time.Hour)
	d.Tokens = tokens
	d.Roles = auth.NewResolver(testSecrets)
	return &testAPI{h: handler.NewServer(d).Routes(), tokens: tokens}
}

func (a *testAPI) token(t *testing.T, role domain.Role) string {
	t.Helper()
	tok, _, err := a.tokens.Issue(role)
	require.NoError(t, err)
	return tok
}

// do sends a request with an optional JSON body and bearer token.
func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func tripFixture() domain.Trip {
	trip := domain.NewTrip("Summer Traverse")
	trip.ID = uuid.New()
	trip.StartDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	trip.EndDate = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	trip.LastUpdated = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
	return trip
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var got domain.TripPatch
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		create: func(_ context.Context, p domain.TripPatch) (domain.Trip, error) {
			got = p
			return fixture, nil
		},
	}})

	rec := api.do(t, http.MethodPost, "/trips", map[string]any{
		"title":     "Summer Traverse",
		"category":  "camping",
		"startDate": "2025-06-01",
	}, api.token(t, domain.RoleAdmin))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeJSON[handler.TripResponse](t, rec)
	assert.Equal(t, fixture.ID, resp.ID)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Summer Traverse", *got.Title)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, 2025, got.StartDate.Year())
	assert.Nil(t, got.EndDate)
}

func TestCreateTrip_422_RequestValidation(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{}})

	rec := api.do(t, http.MethodPost, "/trips", map[string]any{"category": "sailing"}, api.token(t, domain.RoleAdmin))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeJSON[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "category")
}

func TestCreateTrip_422_ServiceValidation(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		create: func(context.Context, domain.TripPatch) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: end date must not be before start date", domain.ErrValidation)
		},
	}})

	rec := api.do(t, http.MethodPost, "/trips", map[string]any{}, api.token(t, domain.RoleAdmin))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeJSON[handler.ErrorResponse](t, rec)
	assert.Equal(t, "end date must not be before start date", resp.Error.Message)
}

func TestCreateTrip_RoleGate(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{}})

	rec := api.do(t, http.MethodPost, "/trips", map[string]any{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodPost, "/trips", map[string]any{}, api.token(t, domain.RoleParticipant))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateTrip_UnknownFieldRejected(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{}})

	rec := api.do(t, http.MethodPost, "/trips", map[string]any{"name": "old field"}, api.token(t, domain.RoleAdmin))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	var gotParams domain.PaginationParams
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
			gotParams = p
			return []domain.Trip{tripFixture(), tripFixture()}, 7, nil
		},
	}})

	rec := api.do(t, http.MethodGet, "/trips?page=2&limit=2", nil, api.token(t, domain.RoleViewer))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[handler.TripListResponse](t, rec)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 2, Total: 7}, resp.Pagination)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 2}, gotParams)
}

func TestListTrips_422_BadPage(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{}})

	rec := api.do(t, http.MethodGet, "/trips?page=abc", nil, api.token(t, domain.RoleViewer))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListTrips_200_Empty(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		listPaged: func(context.Context, domain.PaginationParams) ([]domain.Trip, int, error) {
			return []domain.Trip{}, 0, nil
		},
	}})

	rec := api.do(t, http.MethodGet, "/trips", nil, api.token(t, domain.RoleViewer))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListTrips_500_LogsAndHidesCause(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		listPaged: func(context.Context, domain.PaginationParams) ([]domain.Trip, int, error) {
			return nil, 0, fmt.Errorf("pq: connection refused")
		},
	}})

	rec := api.do(t, http.MethodGet, "/trips", nil, api.token(t, domain.RoleViewer))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

// ---- GET /trips/latest, /trips/{id} ---------------------------------------

func TestGetLatestTrip(t *testing.T) {
	fixture := tripFixture()
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		latest: func(context.Context) (domain.Trip, error) { return fixture, nil },
	}})

	rec := api.do(t, http.MethodGet, "/trips/latest", nil, api.token(t, domain.RoleViewer))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fixture.ID, decodeJSON[handler.TripResponse](t, rec).ID)
}

func TestGetLatestTrip_404(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		latest: func(context.Context) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
	}})

	rec := api.do(t, http.MethodGet, "/trips/latest", nil, api.token(t, domain.RoleViewer))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrip_PasswordsOnlyForAdmin(t *testing.T) {
	fixture := tripFixture()
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return fixture, nil },
	}})
	path := "/trips/" + fixture.ID.String()

	rec := api.do(t, http.MethodGet, path, nil, api.token(t, domain.RoleAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[handler.TripResponse](t, rec)
	require.NotNil(t, resp.Passwords)
	assert.Equal(t, fixture.Passwords, *resp.Passwords)
	require.NotNil(t, resp.StartDate)
	assert.Equal(t, "2025-06-01", resp.StartDate.String())

	for _, role := range []domain.Role{domain.RoleParticipant, domain.RoleViewer} {
		rec = api.do(t, http.MethodGet, path, nil, api.token(t, role))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "admin_pwd", "role %s", role)
	}
}

func TestGetTrip_404(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
	}})

	rec := api.do(t, http.MethodGet, "/trips/"+uuid.New().String(), nil, api.token(t, domain.RoleViewer))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeJSON[handler.ErrorResponse](t, rec).Error.Code)
}

func TestGetTrip_422_BadID(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{}})

	rec := api.do(t, http.MethodGet, "/trips/not-a-uuid", nil, api.token(t, domain.RoleViewer))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- PATCH /trips/{id} -----------------------------------------------------

func TestUpdateTrip_200(t *testing.T) {
	fixture := tripFixture()
	fixture.Title = "Renamed"
	var gotID uuid.UUID
	var got domain.TripPatch
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		update: func(_ context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
			gotID, got = id, p
			return fixture, nil
		},
	}})

	rec := api.do(t, http.MethodPatch, "/trips/"+fixture.ID.String(),
		map[string]any{"title": "Renamed", "status": "active"}, api.token(t, domain.RoleAdmin))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, fixture.ID, gotID)
	require.NotNil(t, got.Status)
	assert.Equal(t, domain.TripActive, *got.Status)
	assert.Nil(t, got.Category, "absent fields stay absent")
	assert.Equal(t, "Renamed", decodeJSON[handler.TripResponse](t, rec).Title)
}

func TestUpdateTrip_404(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		update: func(context.Context, uuid.UUID, domain.TripPatch) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrNotFound)
		},
	}})

	rec := api.do(t, http.MethodPatch, "/trips/"+uuid.New().String(), map[string]any{"title": "x"}, api.token(t, domain.RoleAdmin))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /trips/{id} ----------------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		delete: func(context.Context, uuid.UUID) error { return nil },
	}})

	rec := api.do(t, http.MethodDelete, "/trips/"+uuid.New().String(), nil, api.token(t, domain.RoleAdmin))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteTrip_404(t *testing.T) {
	api := newTestAPI(handler.Deps{Trips: &mockTripServicer{
		delete: func(context.Context, uuid.UUID) error { return domain.ErrNotFound },
	}})

	rec := api.do(t, http.MethodDelete, "/trips/"+uuid.New().String(), nil, api.token(t, domain.RoleAdmin))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
