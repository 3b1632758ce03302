package handler_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

func exportFixture() []domain.ExportRow {
	lat, lng := 24.5134, 121.6068
	return []domain.ExportRow{
		{
			TripID:        "6f1c2a9e-4b7d-4c3e-9a51-0d2f8e7b6c41",
			TripTitle:     "Summer Traverse",
			TripCategory:  "hiking",
			TripStatus:    "planning",
			TripStartDate: "2025-06-01",
			TripEndDate:   "2025-06-03",
			DayIndex:      1,
			DayTitle:      "Day 1: Departure",
			DayStatus:     "done",
			EventTime:     "11:00",
			EventTitle:    "Reach the trailhead",
			EventType:     "activity",
			LocationName:  "Cuifeng Lake trailhead",
			Lat:           &lat,
			Lng:           &lng,
		},
		{
			TripID:       "0b4e9d7a-2c61-4f8e-b3a5-7e1d6c9f2a80",
			TripTitle:    "Empty trip",
			TripCategory: "travel",
			TripStatus:   "planning",
		},
	}
}

// ---- GET /export -----------------------------------------------------------

func TestGetExport_JSON(t *testing.T) {
	api := newTestAPI(handler.Deps{Export: &mockExportServicer{
		export: func(context.Context) ([]domain.ExportRow, error) { return exportFixture(), nil },
	}})

	rec := api.do(t, http.MethodGet, "/export", nil, api.token(t, domain.RoleParticipant))

	require.Equal(t, http.StatusOK, rec.Code)
	rows := decodeJSON[[]handler.ExportRow](t, rec)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Summer Traverse", first.TripTitle)
	require.NotNil(t, first.TripStartDate)
	assert.Equal(t, "2025-06-01", first.TripStartDate.String())
	require.NotNil(t, first.DayIndex)
	assert.Equal(t, 1, *first.DayIndex)
	require.NotNil(t, first.Lat)
	assert.InDelta(t, 24.5134, *first.Lat, 1e-9)

	empty := rows[1]
	assert.Nil(t, empty.DayIndex)
	assert.Nil(t, empty.EventTitle)
	assert.Nil(t, empty.TripStartDate)
}

func TestGetExport_CSV(t *testing.T) {
	api := newTestAPI(handler.Deps{Export: &mockExportServicer{
		export: func(context.Context) ([]domain.ExportRow, error) { return exportFixture(), nil },
	}})

	rec := api.do(t, http.MethodGet, "/export?format=csv", nil, api.token(t, domain.RoleAdmin))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "trips.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "trip_id,trip_title,"))
	assert.Contains(t, lines[1], "Cuifeng Lake trailhead,24.5134,121.6068")
	assert.True(t, strings.HasSuffix(lines[2], ",,,,,,,,,"), "missing day and event columns are blank")
}

func TestGetExport_ViewerForbidden(t *testing.T) {
	api := newTestAPI(handler.Deps{Export: &mockExportServicer{}})

	rec := api.do(t, http.MethodGet, "/export", nil, api.token(t, domain.RoleViewer))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetExport_500(t *testing.T) {
	api := newTestAPI(handler.Deps{Export: &mockExportServicer{
		export: func(context.Context) ([]domain.ExportRow, error) { return nil, errors.New("db down") },
	}})

	rec := api.do(t, http.MethodGet, "/export", nil, api.token(t, domain.RoleParticipant))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeJSON[handler.ErrorResponse](t, rec).Error.Code)
}
