package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pkordes/trip-planner/internal/domain"
)

func keys(d bson.D) []string {
	out := make([]string, 0, len(d))
	for _, e := range d {
		out = append(out, e.Key)
	}
	return out
}

func section(t *testing.T, update bson.D, op string) bson.D {
	t.Helper()
	for _, e := range update {
		if e.Key == op {
			d, ok := e.Value.(bson.D)
			require.True(t, ok, "%s should be a document", op)
			return d
		}
	}
	return nil
}

func TestPatchUpdate_PartialPatch(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	days := []domain.Day{{ID: "1"}}

	update := patchUpdate(domain.TripPatch{Itinerary: &days}, now)

	set := section(t, update, "$set")
	assert.Equal(t, []string{"itinerary"}, keys(set))
	assert.Equal(t, days, set[0].Value)

	onInsert := section(t, update, "$setOnInsert")
	assert.NotContains(t, keys(onInsert), "itinerary")
	assert.Contains(t, keys(onInsert), "title")
	assert.Contains(t, onInsert, bson.E{Key: "lastUpdated", Value: now})
}

func TestPatchUpdate_FullPatchHasNoInsertDefaults(t *testing.T) {
	trip := domain.NewTrip("Full")
	trip.LastUpdated = time.Now().UTC()

	update := patchUpdate(domain.FullPatch(trip), time.Now())

	assert.Nil(t, section(t, update, "$setOnInsert"))
	assert.Len(t, section(t, update, "$set"), 10)
}

func TestPatchUpdate_NilSliceStoredAsEmpty(t *testing.T) {
	var cats []domain.GearCategory

	update := patchUpdate(domain.TripPatch{GearList: &cats}, time.Now())

	set := section(t, update, "$set")
	require.Len(t, set, 1)
	assert.Equal(t, []domain.GearCategory{}, set[0].Value)
}

func TestTripDoc_ToDomain_RejectsBadID(t *testing.T) {
	_, err := tripDoc{ID: "not-a-uuid"}.toDomain()
	assert.Error(t, err)
}
