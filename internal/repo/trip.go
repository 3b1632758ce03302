// Package repo contains all persistence logic for the trip planner.
// TripRepo is the single store interface; Postgres and MongoDB provide it.
// No business logic lives here, only queries and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for trips.
type TripRepo interface {
	// List returns every trip, most recently updated first.
	List(ctx context.Context) ([]domain.Trip, error)

	// GetByID returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// Upsert merge-writes the present fields of patch. A nil id creates a
	// new trip; an unknown id creates the trip under that id. Fields absent
	// from the patch keep their stored values. Returns the trip's id.
	Upsert(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (uuid.UUID, error)

	// Delete returns domain.ErrNotFound if the trip does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a Postgres TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, title, category, status, start_date, end_date,
	admin_pwd, participant_pwd, viewer_pwd, is_private, itinerary, gear_list, last_updated`

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips ORDER BY last_updated DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	t, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return t, nil
}

// Upsert relies on NULL meaning "not present": every SET clause coalesces
// the incoming value with the stored one.
func (r *pgTripRepo) Upsert(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (uuid.UUID, error) {
	const q = `
		INSERT INTO trips (id, title, category, status, start_date, end_date,
		                   admin_pwd, participant_pwd, viewer_pwd, is_private,
		                   itinerary, gear_list, last_updated)
		VALUES (@id,
		        COALESCE(@title::text, ''),
		        COALESCE(@category::text, 'hiking'),
		        COALESCE(@status::text, 'planning'),
		        @start_date::date,
		        @end_date::date,
		        COALESCE(@admin_pwd::text, ''),
		        COALESCE(@participant_pwd::text, ''),
		        COALESCE(@viewer_pwd::text, ''),
		        COALESCE(@is_private::boolean, false),
		        COALESCE(@itinerary::jsonb, '[]'::jsonb),
		        COALESCE(@gear_list::jsonb, '[]'::jsonb),
		        COALESCE(@last_updated::timestamptz, now()))
		ON CONFLICT (id) DO UPDATE
		SET title           = COALESCE(@title::text, trips.title),
		    category        = COALESCE(@category::text, trips.category),
		    status          = COALESCE(@status::text, trips.status),
		    start_date      = COALESCE(@start_date::date, trips.start_date),
		    end_date        = COALESCE(@end_date::date, trips.end_date),
		    admin_pwd       = COALESCE(@admin_pwd::text, trips.admin_pwd),
		    participant_pwd = COALESCE(@participant_pwd::text, trips.participant_pwd),
		    viewer_pwd      = COALESCE(@viewer_pwd::text, trips.viewer_pwd),
		    is_private      = COALESCE(@is_private::boolean, trips.is_private),
		    itinerary       = COALESCE(@itinerary::jsonb, trips.itinerary),
		    gear_list       = COALESCE(@gear_list::jsonb, trips.gear_list),
		    last_updated    = COALESCE(@last_updated::timestamptz, trips.last_updated)
		RETURNING id`

	if id == uuid.Nil {
		id = uuid.New()
	}
	args, err := patchArgs(patch)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repo.TripRepo.Upsert: %w", err)
	}
	args["id"] = id

	var out pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&out); err != nil {
		return uuid.Nil, fmt.Errorf("repo.TripRepo.Upsert: %w", err)
	}
	return uuid.UUID(out.Bytes), nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// patchArgs maps a patch to named args. Absent fields become untyped nil
// so they bind as SQL NULL.
func patchArgs(p domain.TripPatch) (pgx.NamedArgs, error) {
	args := pgx.NamedArgs{
		"title":           optional(p.Title),
		"category":        optional(p.Category),
		"status":          nil,
		"start_date":      optional(p.StartDate),
		"end_date":        optional(p.EndDate),
		"admin_pwd":       nil,
		"participant_pwd": nil,
		"viewer_pwd":      nil,
		"is_private":      optional(p.IsPrivate),
		"itinerary":       nil,
		"gear_list":       nil,
		"last_updated":    optional(p.LastUpdated),
	}
	if p.Status != nil {
		args["status"] = string(*p.Status)
	}
	if p.Passwords != nil {
		args["admin_pwd"] = p.Passwords.Admin
		args["participant_pwd"] = p.Passwords.Participant
		args["viewer_pwd"] = p.Passwords.Viewer
	}
	if p.Itinerary != nil {
		days := *p.Itinerary
		if days == nil {
			days = []domain.Day{}
		}
		b, err := json.Marshal(days)
		if err != nil {
			return nil, fmt.Errorf("encode itinerary: %w", err)
		}
		args["itinerary"] = string(b)
	}
	if p.GearList != nil {
		cats := *p.GearList
		if cats == nil {
			cats = []domain.GearCategory{}
		}
		b, err := json.Marshal(cats)
		if err != nil {
			return nil, fmt.Errorf("encode gear list: %w", err)
		}
		args["gear_list"] = string(b)
	}
	return args, nil
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id         pgtype.UUID
		status     string
		start, end pgtype.Date
		itinerary  []byte
		gear       []byte
		updated    time.Time
	)

	err := s.Scan(&id, &t.Title, &t.Category, &status, &start, &end,
		&t.Passwords.Admin, &t.Passwords.Participant, &t.Passwords.Viewer,
		&t.IsPrivate, &itinerary, &gear, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Status = domain.TripStatus(status)
	if start.Valid {
		t.StartDate = start.Time
	}
	if end.Valid {
		t.EndDate = end.Time
	}
	t.LastUpdated = updated.UTC()

	t.Itinerary = []domain.Day{}
	if len(itinerary) > 0 {
		if err := json.Unmarshal(itinerary, &t.Itinerary); err != nil {
			return domain.Trip{}, fmt.Errorf("decode itinerary: %w", err)
		}
	}
	t.GearList = []domain.GearCategory{}
	if len(gear) > 0 {
		if err := json.Unmarshal(gear, &t.GearList); err != nil {
			return domain.Trip{}, fmt.Errorf("decode gear list: %w", err)
		}
	}
	return t, nil
}
