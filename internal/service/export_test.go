package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

func listing(trips ...domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		list: func(context.Context) ([]domain.Trip, error) { return trips, nil },
	}
}

func TestExportService_Export_OneRowPerEvent(t *testing.T) {
	trip := storedTrip("Summit push")

	rows, err := service.NewExportService(listing(trip)).Export(context.Background())

	require.NoError(t, err)
	// seed itinerary: day 1 has two events, day 2 has none
	require.Len(t, rows, 3)

	assert.Equal(t, trip.ID.String(), rows[0].TripID)
	assert.Equal(t, "2025-06-01", rows[0].TripStartDate)
	assert.Equal(t, 1, rows[0].DayIndex)
	assert.Equal(t, "Meet up", rows[0].EventTitle)
	require.NotNil(t, rows[0].Lat)

	assert.Equal(t, 2, rows[2].DayIndex)
	assert.Empty(t, rows[2].EventTitle)
}

func TestExportService_Export_TripWithoutDays(t *testing.T) {
	trip := storedTrip("Empty")
	trip.Itinerary = []domain.Day{}
	trip.EndDate = time.Time{}

	rows, err := service.NewExportService(listing(trip)).Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].DayIndex)
	assert.Empty(t, rows[0].TripEndDate)
}

func TestExportService_Export_NoTrips(t *testing.T) {
	rows, err := service.NewExportService(listing()).Export(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_RepoError(t *testing.T) {
	repoErr := errors.New("boom")
	svc := service.NewExportService(&mockTripRepo{
		list: func(context.Context) ([]domain.Trip, error) { return nil, repoErr },
	})

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, repoErr)
}
