package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripsCollection is the MongoDB collection holding trip documents.
const TripsCollection = "trips"

// tripDoc is the stored shape of a trip. Field names follow the JSON
// document clients already know.
type tripDoc struct {
	ID          string                `bson:"_id"`
	Title       string                `bson:"title"`
	Category    string                `bson:"category"`
	Status      string                `bson:"status"`
	StartDate   time.Time             `bson:"startDate"`
	EndDate     time.Time             `bson:"endDate"`
	Passwords   domain.Passwords      `bson:"passwords"`
	IsPrivate   bool                  `bson:"is_private"`
	Itinerary   []domain.Day          `bson:"itinerary"`
	GearList    []domain.GearCategory `bson:"gearList"`
	LastUpdated time.Time             `bson:"lastUpdated"`
}

func (d tripDoc) toDomain() (domain.Trip, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("decode id %q: %w", d.ID, err)
	}
	t := domain.Trip{
		ID:          id,
		Title:       d.Title,
		Category:    d.Category,
		Status:      domain.TripStatus(d.Status),
		StartDate:   d.StartDate.UTC(),
		EndDate:     d.EndDate.UTC(),
		Passwords:   d.Passwords,
		IsPrivate:   d.IsPrivate,
		Itinerary:   d.Itinerary,
		GearList:    d.GearList,
		LastUpdated: d.LastUpdated.UTC(),
	}
	if t.Itinerary == nil {
		t.Itinerary = []domain.Day{}
	}
	if t.GearList == nil {
		t.GearList = []domain.GearCategory{}
	}
	return t, nil
}

type mongoTripRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoTripRepo constructs a TripRepo storing trips in db's trips collection.
func NewMongoTripRepo(db *mongo.Database) TripRepo {
	return &mongoTripRepo{
		coll: db.Collection(TripsCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *mongoTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastUpdated", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("repo.MongoTripRepo.List: %w", err)
	}
	defer cur.Close(ctx)

	trips := []domain.Trip{}
	for cur.Next(ctx) {
		var d tripDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("repo.MongoTripRepo.List: decode: %w", err)
		}
		t, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("repo.MongoTripRepo.List: %w", err)
		}
		trips = append(trips, t)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("repo.MongoTripRepo.List: cursor: %w", err)
	}
	return trips, nil
}

func (r *mongoTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	var d tripDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Trip{}, fmt.Errorf("repo.MongoTripRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.MongoTripRepo.GetByID: %w", err)
	}
	t, err := d.toDomain()
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.MongoTripRepo.GetByID: %w", err)
	}
	return t, nil
}

func (r *mongoTripRepo) Upsert(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (uuid.UUID, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	update := patchUpdate(patch, r.now())
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repo.MongoTripRepo.Upsert: %w", err)
	}
	return id, nil
}

func (r *mongoTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("repo.MongoTripRepo.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("repo.MongoTripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// patchUpdate builds the update document for a merge-write. Present fields
// go to $set; absent fields get their defaults through $setOnInsert so a
// newly created document is still schema-complete.
func patchUpdate(p domain.TripPatch, now time.Time) bson.D {
	var set, onInsert bson.D
	field := func(key string, present bool, value, fallback any) {
		if present {
			set = append(set, bson.E{Key: key, Value: value})
		} else {
			onInsert = append(onInsert, bson.E{Key: key, Value: fallback})
		}
	}

	field("title", p.Title != nil, deref(p.Title), "")
	field("category", p.Category != nil, deref(p.Category), domain.CategoryHiking)
	field("status", p.Status != nil, string(deref(p.Status)), string(domain.TripPlanning))
	field("startDate", p.StartDate != nil, deref(p.StartDate), time.Time{})
	field("endDate", p.EndDate != nil, deref(p.EndDate), time.Time{})
	field("passwords", p.Passwords != nil, deref(p.Passwords), domain.Passwords{})
	field("is_private", p.IsPrivate != nil, deref(p.IsPrivate), false)
	field("itinerary", p.Itinerary != nil, nonNil(deref(p.Itinerary)), []domain.Day{})
	field("gearList", p.GearList != nil, nonNil(deref(p.GearList)), []domain.GearCategory{})
	field("lastUpdated", p.LastUpdated != nil, deref(p.LastUpdated), now)

	var update bson.D
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(onInsert) > 0 {
		update = append(update, bson.E{Key: "$setOnInsert", Value: onInsert})
	}
	return update
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
