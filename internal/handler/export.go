package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "trip_category", "trip_status", "trip_start_date", "trip_end_date",
	"day_index", "day_title", "day_status",
	"event_time", "event_title", "event_type", "location", "lat", "lng",
}

// ExportRow is the JSON shape of one export row. Empty fields are omitted.
type ExportRow struct {
	TripID        uuid.UUID           `json:"trip_id"`
	TripTitle     string              `json:"trip_title"`
	TripCategory  string              `json:"trip_category"`
	TripStatus    string              `json:"trip_status"`
	TripStartDate *openapi_types.Date `json:"trip_start_date,omitempty"`
	TripEndDate   *openapi_types.Date `json:"trip_end_date,omitempty"`
	DayIndex      *int                `json:"day_index,omitempty"`
	DayTitle      *string             `json:"day_title,omitempty"`
	DayStatus     *string             `json:"day_status,omitempty"`
	EventTime     *string             `json:"event_time,omitempty"`
	EventTitle    *string             `json:"event_title,omitempty"`
	EventType     *string             `json:"event_type,omitempty"`
	Location      *string             `json:"location,omitempty"`
	Lat           *float64            `json:"lat,omitempty"`
	Lng           *float64            `json:"lng,omitempty"`
}

// GetExport handles GET /export.
// It returns a flat table of every trip, day and event.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if !queryParam(w, r, "format", &format) {
		return
	}

	rows, err := s.Export.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	if format != nil && *format == "csv" {
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = body.WriteTo(w)
		return
	}

	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// buildCSV encodes domain rows as CSV with a header line.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(domainRowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

// domainRowToResponse maps a domain.ExportRow to its JSON shape.
// Fields that are empty strings become nil pointers.
func domainRowToResponse(r domain.ExportRow) ExportRow {
	tripID, _ := uuid.Parse(r.TripID)
	row := ExportRow{
		TripID:        tripID,
		TripTitle:     r.TripTitle,
		TripCategory:  r.TripCategory,
		TripStatus:    r.TripStatus,
		TripStartDate: parseDate(r.TripStartDate),
		TripEndDate:   parseDate(r.TripEndDate),
		DayTitle:      nonEmpty(r.DayTitle),
		DayStatus:     nonEmpty(r.DayStatus),
		EventTime:     nonEmpty(r.EventTime),
		EventTitle:    nonEmpty(r.EventTitle),
		EventType:     nonEmpty(r.EventType),
		Location:      nonEmpty(r.LocationName),
		Lat:           r.Lat,
		Lng:           r.Lng,
	}
	if r.DayIndex > 0 {
		i := r.DayIndex
		row.DayIndex = &i
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Missing coordinates and day index are encoded as empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	dayIndex := ""
	if r.DayIndex > 0 {
		dayIndex = strconv.Itoa(r.DayIndex)
	}
	return []string{
		r.TripID,
		r.TripTitle,
		r.TripCategory,
		r.TripStatus,
		r.TripStartDate,
		r.TripEndDate,
		dayIndex,
		r.DayTitle,
		r.DayStatus,
		r.EventTime,
		r.EventTitle,
		r.EventType,
		r.LocationName,
		formatCoord(r.Lat),
		formatCoord(r.Lng),
	}
}

// parseDate parses a "2006-01-02" string; empty or malformed input is nil.
func parseDate(s string) *openapi_types.Date {
	if s == "" {
		return nil
	}
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return nil
	}
	return &openapi_types.Date{Time: t}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatCoord(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
