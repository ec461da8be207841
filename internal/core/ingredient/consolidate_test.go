package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidate_CaseInsensitiveMerge(t *testing.T) {
	t.Parallel()

	lines := ConsolidateLists(
		[]Record{{Name: "Salt", Quantity: 1, Unit: "tsp"}},
		[]Record{{Name: "salt", Quantity: 2, Unit: "TSP"}},
	)

	require.Len(t, lines, 1)
	assert.Equal(t, "Salt", lines[0].Name)
	assert.InDelta(t, 3.0, lines[0].Quantity, 1e-9)
	assert.Equal(t, UnitTsp, lines[0].Unit)
	assert.Equal(t, 10, lines[0].Sequence)
}

func TestConsolidate_FirstSeenOrderAndSequence(t *testing.T) {
	t.Parallel()

	lines := ConsolidateLists(
		[]Record{
			{Name: "Onion", Quantity: 1, Unit: UnitPiece},
			{Name: "Garlic", Quantity: 2, Unit: UnitClove},
		},
		[]Record{
			{Name: "Butter", Quantity: 50, Unit: UnitG},
			{Name: "garlic ", Quantity: 3, Unit: "clove"},
			{Name: "Onion", Quantity: 100, Unit: UnitG},
		},
	)

	require.Len(t, lines, 4)
	assert.Equal(t, []string{"Onion", "Garlic", "Butter", "Onion"}, names(lines))
	assert.Equal(t, []int{10, 20, 30, 40}, sequences(lines))
	assert.InDelta(t, 5.0, lines[1].Quantity, 1e-9)
	assert.Equal(t, UnitPiece, lines[0].Unit)
	assert.Equal(t, UnitG, lines[3].Unit)
}

func TestConsolidate_NotesJoined(t *testing.T) {
	t.Parallel()

	lines := ConsolidateLists(
		[]Record{{Name: "Flour", Quantity: 1, Unit: UnitCup, Notes: "sifted"}},
		[]Record{{Name: "flour", Quantity: 1, Unit: UnitCup}},
		[]Record{{Name: "FLOUR", Quantity: 1, Unit: UnitCup, Notes: "organic"}},
	)

	require.Len(t, lines, 1)
	assert.Equal(t, "sifted, organic", lines[0].Notes)
	assert.InDelta(t, 3.0, lines[0].Quantity, 1e-9)
}

func TestConsolidate_UnknownUnitsDoNotMerge(t *testing.T) {
	t.Parallel()

	lines := ConsolidateLists([]Record{
		{Name: "Parsley", Quantity: 1, Unit: "handful"},
		{Name: "Parsley", Quantity: 1, Unit: "hndful"},
		{Name: "Parsley", Quantity: 1, Unit: UnitOther},
	})

	require.Len(t, lines, 3)
	assert.Equal(t, Unit("handful"), lines[0].Unit)
	assert.Equal(t, Unit("hndful"), lines[1].Unit)
	assert.Equal(t, UnitOther, lines[2].Unit)
}

func TestConsolidate_EmptyUnitIsPiece(t *testing.T) {
	t.Parallel()

	lines := ConsolidateLists([]Record{
		{Name: "Egg", Quantity: 2},
		{Name: "egg", Quantity: 1, Unit: UnitPiece},
	})

	require.Len(t, lines, 1)
	assert.Equal(t, UnitPiece, lines[0].Unit)
	assert.InDelta(t, 3.0, lines[0].Quantity, 1e-9)
}

func TestConsolidate_Scaling(t *testing.T) {
	t.Parallel()

	servingSize := 2.0
	scale := ScaleFactor(3, &servingSize, 4)
	assert.InDelta(t, 1.5, scale, 1e-9)

	lines := Consolidate([]Input{
		{Ingredients: []Record{{Name: "Rice", Quantity: 2, Unit: UnitCup}}, Scale: scale},
	})

	require.Len(t, lines, 1)
	assert.InDelta(t, 3.0, lines[0].Quantity, 1e-9)
}

func TestConsolidate_ZeroInputs(t *testing.T) {
	t.Parallel()

	lines := Consolidate(nil)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestConsolidate_Deterministic(t *testing.T) {
	t.Parallel()

	inputs := []Input{
		{Ingredients: []Record{
			{Name: "a", Quantity: 1, Unit: "g"},
			{Name: "b", Quantity: 2, Unit: "kg"},
			{Name: "c", Quantity: 3, Unit: "ml"},
		}, Scale: 1},
		{Ingredients: []Record{
			{Name: "C", Quantity: 1, Unit: "ML", Notes: "cold"},
			{Name: "d", Quantity: 1, Unit: "l"},
			{Name: "A", Quantity: 1, Unit: "gram"},
		}, Scale: 2},
	}

	first := Consolidate(inputs)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Consolidate(inputs))
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(first))
	assert.InDelta(t, 3.0, first[0].Quantity, 1e-9)
	assert.InDelta(t, 5.0, first[2].Quantity, 1e-9)
}

func TestScaleFactor(t *testing.T) {
	t.Parallel()

	two := 2.0
	zero := 0.0
	negative := -1.0

	tests := []struct {
		name        string
		qty         float64
		servingSize *float64
		servings    int
		want        float64
	}{
		{name: "serving size present", qty: 3, servingSize: &two, servings: 4, want: 1.5},
		{name: "no serving size uses order quantity", qty: 3, servingSize: nil, servings: 4, want: 3},
		{name: "zero serving size ignored", qty: 3, servingSize: &zero, servings: 4, want: 3},
		{name: "negative serving size ignored", qty: 3, servingSize: &negative, servings: 4, want: 3},
		{name: "zero recipe servings treated as one", qty: 3, servingSize: &two, servings: 0, want: 6},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, ScaleFactor(tc.qty, tc.servingSize, tc.servings), 1e-9)
		})
	}
}

func names(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Name)
	}
	return out
}

func sequences(lines []Line) []int {
	out := make([]int, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Sequence)
	}
	return out
}
