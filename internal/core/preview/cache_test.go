package preview

import (
	"errors"
	"testing"
	"time"

	"recipe-consolidator/internal/core/importer"
	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() importer.Document {
	return importer.Document{
		Name:   "Pancakes",
		Format: importer.FormatText,
		Ingredients: []ingredient.Record{
			{Name: "Flour", Quantity: 2, Unit: ingredient.UnitCup},
			{Name: "Milk", Quantity: 0.5, Unit: ingredient.UnitL},
		},
	}
}

func TestCache_Lifecycle(t *testing.T) {
	t.Parallel()

	c := New(time.Minute, time.Minute)
	p := c.Put(sampleDocument())

	assert.True(t, common.IsUUID(p.ID))
	assert.Equal(t, "Pancakes", p.Name)
	assert.Equal(t, "• Flour - 2 cup\n• Milk - 0.5 l", p.Text)
	assert.Equal(t, 1, c.Len())

	got, err := c.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Ingredients, got.Ingredients)

	updated, err := c.Update(p.ID, "  Fluffy Pancakes ", []ingredient.Record{
		{Name: " Flour ", Quantity: 3, Unit: "Cup"},
		{Name: "", Quantity: 1, Unit: "tsp"},
		{Name: "Sugar", Quantity: -1, Unit: "spoonful", Notes: " fine "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fluffy Pancakes", updated.Name)
	assert.Equal(t, []ingredient.Record{
		{Name: "Flour", Quantity: 3, Unit: ingredient.UnitCup},
		{Name: "Sugar", Quantity: 0, Unit: ingredient.UnitOther, Notes: "fine"},
	}, updated.Ingredients)
	assert.Equal(t, "• Flour - 3 cup\n• Sugar - 0 other", updated.Text)

	c.Delete(p.ID)
	_, err = c.Get(p.ID)
	assert.True(t, errors.Is(err, ErrPreviewNotFound))

	stats := c.GetStats()
	assert.Equal(t, int64(2), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}

func TestCache_UpdateKeepsNameWhenBlank(t *testing.T) {
	t.Parallel()

	c := New(time.Minute, time.Minute)
	p := c.Put(sampleDocument())

	updated, err := c.Update(p.ID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", updated.Name)
	assert.Empty(t, updated.Ingredients)
	assert.Empty(t, updated.Text)
}

func TestCache_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	c := New(time.Minute, time.Minute)
	p := c.Put(sampleDocument())

	got, err := c.Get(p.ID)
	require.NoError(t, err)
	got.Ingredients[0].Name = "changed"

	again, err := c.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flour", again.Ingredients[0].Name)
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	c := New(20*time.Millisecond, time.Hour)
	p := c.Put(sampleDocument())

	time.Sleep(50 * time.Millisecond)

	_, err := c.Get(p.ID)
	assert.ErrorIs(t, err, ErrPreviewNotFound)

	_, err = c.Update(p.ID, "", nil)
	assert.ErrorIs(t, err, ErrPreviewNotFound)
}

func TestFormatPreview(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatPreview(nil))
	assert.Equal(t, "• Garlic - 3 clove", FormatPreview([]ingredient.Record{
		{Name: "Garlic", Quantity: 3, Unit: ingredient.UnitClove},
	}))
}
