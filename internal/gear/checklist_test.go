package gear_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/gear"
)

// mockSaver is a hand-written test double for gear.Saver.
type mockSaver struct {
	upsert func(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (uuid.UUID, error)
	calls  int
}

func (m *mockSaver) Upsert(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (uuid.UUID, error) {
	m.calls++
	return m.upsert(ctx, id, patch)
}

// ---- catalog -----------------------------------------------------------------

func TestDefaultCatalog(t *testing.T) {
	c := gear.DefaultCatalog()

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "hiking_day", list[0].Key)

	tpl, ok := c.Lookup("hiking_multiday")
	require.True(t, ok)
	require.Len(t, tpl.Categories, 2)
	assert.Len(t, tpl.Categories[0].Items, 3)

	_, ok = c.Lookup("scuba")
	assert.False(t, ok)
}

func TestParseCatalog_DuplicateKey(t *testing.T) {
	_, err := gear.ParseCatalog([]byte("- key: a\n- key: a\n"))

	assert.Error(t, err)
}

func TestCatalog_LookupReturnsCopy(t *testing.T) {
	c := gear.DefaultCatalog()

	tpl, _ := c.Lookup("camping")
	tpl.Categories[0].Items[0].Name = "mutated"

	again, _ := c.Lookup("camping")
	assert.NotEqual(t, "mutated", again.Categories[0].Items[0].Name)
}

// ---- import ------------------------------------------------------------------

func TestChecklist_ImportTemplate_Fresh(t *testing.T) {
	cl := gear.NewChecklist(uuid.New(), nil, gear.DefaultCatalog())

	require.NoError(t, cl.ImportTemplate("hiking_day"))

	cats := cl.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "Essentials", cats[0].Name)
	assert.NotEqual(t, "essentials", cats[0].ID, "appended categories get a fresh id")
	assert.Len(t, cats[0].Items, 4)
}

func TestChecklist_ImportTemplate_MergesByName(t *testing.T) {
	existing := []domain.GearCategory{{
		ID:   "mine",
		Name: "Essentials",
		Items: []domain.GearItem{
			{ID: "backpack", Name: "Daypack (15-25L)", Checked: true},
			{ID: "snacks", Name: "Snacks"},
		},
	}}
	cl := gear.NewChecklist(uuid.New(), existing, gear.DefaultCatalog())

	require.NoError(t, cl.ImportTemplate("hiking_day"))

	cats := cl.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "mine", cats[0].ID)
	items := cats[0].Items
	require.Len(t, items, 5, "two kept plus three missing template items")
	assert.True(t, items[0].Checked, "existing items keep their state")
	assert.Equal(t, "Snacks", items[1].Name)
}

func TestChecklist_ImportTemplate_Idempotent(t *testing.T) {
	cl := gear.NewChecklist(uuid.New(), nil, gear.DefaultCatalog())

	require.NoError(t, cl.ImportTemplate("hiking_multiday"))
	require.NoError(t, cl.ImportTemplate("hiking_multiday"))

	cats := cl.Categories()
	require.Len(t, cats, 2)
	for _, cat := range cats {
		names := map[string]int{}
		for _, it := range cat.Items {
			names[it.Name]++
		}
		for name, n := range names {
			assert.Equal(t, 1, n, "item %q duplicated in %q", name, cat.Name)
		}
	}
}

func TestChecklist_ImportTemplate_CaseSensitiveNames(t *testing.T) {
	existing := []domain.GearCategory{{ID: "x", Name: "Living area", Items: []domain.GearItem{{ID: "t", Name: "tarp / shelter"}}}}
	cl := gear.NewChecklist(uuid.New(), existing, gear.DefaultCatalog())

	require.NoError(t, cl.ImportTemplate("camping"))

	assert.Len(t, cl.Categories()[0].Items, 4, "names differing in case are distinct")
}

func TestChecklist_ImportTemplate_IDCollision(t *testing.T) {
	existing := []domain.GearCategory{{ID: "x", Name: "Living area", Items: []domain.GearItem{{ID: "tarp", Name: "Big tarp"}}}}
	cl := gear.NewChecklist(uuid.New(), existing, gear.DefaultCatalog())

	require.NoError(t, cl.ImportTemplate("camping"))

	require.NoError(t, gear.Validate(cl.Categories()), "ids stay unique within the category")
}

func TestChecklist_ImportTemplate_Unknown(t *testing.T) {
	cl := gear.NewChecklist(uuid.New(), nil, gear.DefaultCatalog())

	assert.ErrorIs(t, cl.ImportTemplate("scuba"), domain.ErrNotFound)
}

// ---- toggle & progress -------------------------------------------------------

func TestChecklist_ToggleAndProgress(t *testing.T) {
	cl := gear.NewChecklist(uuid.New(), nil, gear.DefaultCatalog())
	require.NoError(t, cl.ImportTemplate("hiking_multiday")) // 2 categories x 3 items

	assert.Equal(t, 0, cl.Progress())

	prev := 0
	for ci := 0; ci < 2; ci++ {
		for ii := 0; ii < 3; ii++ {
			require.NoError(t, cl.ToggleItem(ci, ii))
			p := cl.Progress()
			assert.GreaterOrEqual(t, p, prev, "progress never decreases while checking")
			prev = p
		}
	}
	assert.Equal(t, 100, cl.Progress())

	require.NoError(t, cl.ToggleItem(0, 0))
	assert.Equal(t, 83, cl.Progress(), "5 of 6 rounds to 83")
}

func TestChecklist_ToggleItem_OutOfRange(t *testing.T) {
	cl := gear.NewChecklist(uuid.New(), nil, gear.DefaultCatalog())

	assert.ErrorIs(t, cl.ToggleItem(0, 0), domain.ErrValidation)
	require.NoError(t, cl.ImportTemplate("camping"))
	assert.ErrorIs(t, cl.ToggleItem(0, 9), domain.ErrValidation)
	assert.ErrorIs(t, cl.ToggleItem(-1, 0), domain.ErrValidation)
}

func TestProgress_EmptyCategories(t *testing.T) {
	assert.Equal(t, 0, gear.Progress(nil))
	assert.Equal(t, 0, gear.Progress([]domain.GearCategory{{ID: "a"}, {ID: "b"}}))
}

func TestProgress_Rounding(t *testing.T) {
	cats := []domain.GearCategory{{ID: "a", Items: []domain.GearItem{
		{ID: "1", Checked: true}, {ID: "2"}, {ID: "3"},
	}}}

	assert.Equal(t, 33, gear.Progress(cats))

	cats[0].Items[1].Checked = true
	assert.Equal(t, 67, gear.Progress(cats))
}

// ---- save --------------------------------------------------------------------

func TestChecklist_Save_OnlyGearList(t *testing.T) {
	id := uuid.New()
	var got domain.TripPatch
	s := &mockSaver{upsert: func(_ context.Context, gotID uuid.UUID, p domain.TripPatch) (uuid.UUID, error) {
		assert.Equal(t, id, gotID)
		got = p
		return gotID, nil
	}}
	cl := gear.NewChecklist(id, nil, gear.DefaultCatalog())
	require.NoError(t, cl.ImportTemplate("camping"))

	require.NoError(t, cl.Save(context.Background(), s))

	require.NotNil(t, got.GearList)
	assert.Len(t, *got.GearList, 1)
	assert.NotNil(t, got.LastUpdated)
	assert.Nil(t, got.Itinerary, "saving gear must not touch the itinerary")
}

func TestChecklist_Save_NoTripID(t *testing.T) {
	s := &mockSaver{}
	cl := gear.NewChecklist(uuid.Nil, nil, gear.DefaultCatalog())

	err := cl.Save(context.Background(), s)

	assert.ErrorIs(t, err, domain.ErrPrecondition)
	assert.Zero(t, s.calls, "rejected before any store call")
}

func TestChecklist_Save_StoreError(t *testing.T) {
	storeErr := errors.New("timeout")
	s := &mockSaver{upsert: func(context.Context, uuid.UUID, domain.TripPatch) (uuid.UUID, error) {
		return uuid.Nil, storeErr
	}}
	cl := gear.NewChecklist(uuid.New(), nil, gear.DefaultCatalog())
	require.NoError(t, cl.ImportTemplate("camping"))

	err := cl.Save(context.Background(), s)

	assert.ErrorIs(t, err, storeErr)
	assert.Len(t, cl.Categories(), 1, "in-memory list survives a failed save")
}

func TestChecklist_Replace_Validates(t *testing.T) {
	cl := gear.NewChecklist(uuid.New(), nil, gear.DefaultCatalog())

	err := cl.Replace([]domain.GearCategory{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = cl.Replace([]domain.GearCategory{{ID: "a", Items: []domain.GearItem{{ID: "i"}, {ID: "i"}}}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, cl.Replace([]domain.GearCategory{{ID: "a", Name: "Misc"}}))
	assert.Len(t, cl.Categories(), 1)
}
