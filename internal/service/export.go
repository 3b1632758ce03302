package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ExportService assembles a flat export of all trips, days and events.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per event across all trips, in stored order.
// Trips with no days and days with no events contribute one row each with
// the missing fields left empty.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:        t.ID.String(),
			TripTitle:     t.Title,
			TripCategory:  t.Category,
			TripStatus:    string(t.Status),
			TripStartDate: formatDate(t.StartDate),
			TripEndDate:   formatDate(t.EndDate),
		}
		if len(t.Itinerary) == 0 {
			rows = append(rows, base)
			continue
		}
		for i, d := range t.Itinerary {
			dayRow := base
			dayRow.DayIndex = i + 1
			dayRow.DayTitle = d.Title
			dayRow.DayStatus = string(d.Status)
			if len(d.Events) == 0 {
				rows = append(rows, dayRow)
				continue
			}
			for _, ev := range d.Events {
				r := dayRow
				r.EventTime = ev.Time
				r.EventTitle = ev.Title
				r.EventType = string(ev.Type)
				r.LocationName = ev.Location.Name
				r.Lat = ev.Location.Lat
				r.Lng = ev.Location.Lng
				rows = append(rows, r)
			}
		}
	}
	return rows, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
