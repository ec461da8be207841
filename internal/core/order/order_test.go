package order

import (
	"context"
	"testing"
	"time"

	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *store.MemoryStore {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()

	rice := &store.Recipe{
		ID:       "rice",
		Name:     "Rice Bowl",
		Servings: 4,
		Ingredients: []store.RecipeIngredient{
			{Record: ingredient.Record{Name: "Rice", Quantity: 2, Unit: ingredient.UnitCup}, Sequence: 10},
			{Record: ingredient.Record{Name: "Salt", Quantity: 1, Unit: ingredient.UnitTsp}, Sequence: 20},
			{Record: ingredient.Record{Name: " ", Quantity: 9, Unit: ingredient.UnitG}, Sequence: 30},
		},
	}
	soup := &store.Recipe{
		ID:       "soup",
		Name:     "Soup",
		Servings: 2,
		Ingredients: []store.RecipeIngredient{
			{Record: ingredient.Record{Name: "salt", Quantity: 1, Unit: "TSP", Notes: "sea"}, Sequence: 10},
			{Record: ingredient.Record{Name: "Water", Quantity: 1, Unit: ingredient.UnitL}, Sequence: 20},
		},
	}
	require.NoError(t, st.SaveRecipe(ctx, rice))
	require.NoError(t, st.SaveRecipe(ctx, soup))

	require.NoError(t, st.SaveMenuItem(ctx, &store.MenuItem{ID: 1, Name: "Rice Bowl", RecipeID: "rice", ServingSize: 2}))
	require.NoError(t, st.SaveMenuItem(ctx, &store.MenuItem{ID: 2, Name: "Soup", RecipeID: "soup"}))
	require.NoError(t, st.SaveMenuItem(ctx, &store.MenuItem{ID: 3, Name: "Drinks"}))
	require.NoError(t, st.SaveMenuItem(ctx, &store.MenuItem{ID: 4, Name: "Gone", RecipeID: "deleted"}))
	return st
}

func newTestService(st store.Store) *Service {
	svc := NewService(st, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	st := seed(t)
	svc := newTestService(st)

	l, err := svc.Confirm(context.Background(), Order{
		Name: "S00042",
		Note: "Serving: 6\nDelivery address: 12 Main St\nPlease ring twice\nService type: buffet",
		Lines: []Line{
			{ProductCode: "MENU-1", Quantity: 3},
			{ProductCode: "DELIVERY-STD", Quantity: 1},
			{ProductCode: "MENU-2", Quantity: 0},
			{ProductCode: "MENU-3", Quantity: 5},
			{ProductCode: "MENU-4", Quantity: 5},
			{ProductCode: "MENU-abc", Quantity: 5},
			{ProductCode: "MENU-99", Quantity: 5},
			{ProductCode: "GIFT-CARD", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, l)

	assert.Equal(t, "Caterer - S00042", l.Name)
	assert.Equal(t, []string{"rice", "soup"}, l.SourceRecipeIDs)

	// rice: 菜單份量 2 → (3*2)/4 = 1.5；soup: 備註 Serving 6 → (1*6)/2 = 3
	require.Len(t, l.Lines, 3)
	assert.Equal(t, "Rice", l.Lines[0].Name)
	assert.InDelta(t, 3.0, l.Lines[0].Quantity, 1e-9)
	assert.Equal(t, "Salt", l.Lines[1].Name)
	assert.InDelta(t, 1.5+3.0, l.Lines[1].Quantity, 1e-9)
	assert.Equal(t, ingredient.UnitTsp, l.Lines[1].Unit)
	assert.Equal(t, "sea", l.Lines[1].Notes)
	assert.Equal(t, "Water", l.Lines[2].Name)
	assert.InDelta(t, 3.0, l.Lines[2].Quantity, 1e-9)
	assert.Equal(t, 30, l.Lines[2].Sequence)

	assert.Equal(t, "Automatically created from Sales Order S00042\n\nDelivery Information:\n"+
		"Serving: 6\nDelivery address: 12 Main St\nService type: buffet", l.Notes)

	stored, err := st.GetShoppingList(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.Lines, stored.Lines)
}

func TestConfirm_NoServingSizeScalesByQuantity(t *testing.T) {
	t.Parallel()

	svc := newTestService(seed(t))

	l, err := svc.Confirm(context.Background(), Order{
		Name:  "S1",
		Lines: []Line{{ProductCode: "MENU-2", Quantity: 2}},
	})
	require.NoError(t, err)
	require.NotNil(t, l)

	require.Len(t, l.Lines, 2)
	assert.InDelta(t, 2.0, l.Lines[0].Quantity, 1e-9)
	assert.Equal(t, "Automatically created from Sales Order S1", l.Notes)
}

func TestConfirm_NothingToPrepare(t *testing.T) {
	t.Parallel()

	st := seed(t)
	svc := newTestService(st)

	l, err := svc.Confirm(context.Background(), Order{
		Name: "S2",
		Lines: []Line{
			{ProductCode: "DELIVERY-EXPRESS", Quantity: 1},
			{ProductCode: "MENU-3", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestConfirm_RequiresName(t *testing.T) {
	t.Parallel()

	_, err := newTestService(seed(t)).Confirm(context.Background(), Order{})
	assert.True(t, common.IsValidationError(err))
}

func TestServingCountFromNote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		note   string
		want   int
		wantOK bool
	}{
		{note: "Serving: 12", want: 12, wantOK: true},
		{note: "event\nserving:8 guests", want: 8, wantOK: true},
		{note: "SERVING:   3", want: 3, wantOK: true},
		{note: "Serving: 0", wantOK: false},
		{note: "Servings for 10", wantOK: false},
		{note: "", wantOK: false},
	}

	for _, tc := range tests {
		got, ok := ServingCountFromNote(tc.note)
		assert.Equal(t, tc.wantOK, ok, tc.note)
		assert.Equal(t, tc.want, got, tc.note)
	}
}

func TestDeliveryInfo(t *testing.T) {
	t.Parallel()

	note := "  Delivery date: Friday  \n\nBring napkins\nSPECIAL INSTRUCTIONS: no nuts\nserving staff: 2"
	assert.Equal(t, []string{
		"Delivery date: Friday",
		"SPECIAL INSTRUCTIONS: no nuts",
		"serving staff: 2",
	}, DeliveryInfo(note))
	assert.Empty(t, DeliveryInfo(""))
}
