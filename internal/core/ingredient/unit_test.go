package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Unit
	}{
		{name: "empty defaults to piece", input: "", want: UnitPiece},
		{name: "whitespace defaults to piece", input: "   ", want: UnitPiece},
		{name: "long spelling maps to short code", input: "tablespoon", want: UnitTbsp},
		{name: "case and whitespace are ignored", input: "  Kilogram ", want: UnitKg},
		{name: "canonical code is unchanged", input: "tsp", want: UnitTsp},
		{name: "uppercase canonical code", input: "TSP", want: UnitTsp},
		{name: "liter", input: "liter", want: UnitL},
		{name: "bunch stays bunch", input: "bunch", want: UnitBunch},
		{name: "other stays other", input: "other", want: UnitOther},
		{name: "unknown passes through lowercased", input: "Handful", want: Unit("handful")},
		{name: "plural is not recognized", input: "cups", want: Unit("cups")},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NormalizeUnit(tc.input))
		})
	}
}

func TestNormalizeUnit_Idempotent(t *testing.T) {
	t.Parallel()

	for _, u := range CanonicalUnits() {
		once := NormalizeUnit(string(u))
		assert.Equal(t, once, NormalizeUnit(string(once)), "unit %q", u)
		assert.Equal(t, u, once)
	}
}

func TestCanonicalizeUnit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, UnitOther, CanonicalizeUnit("handful"))
	assert.Equal(t, UnitG, CanonicalizeUnit("Gram"))
	assert.Equal(t, UnitPiece, CanonicalizeUnit(""))
}

func TestUnitNormalizer_WithSynonymDoesNotLeak(t *testing.T) {
	t.Parallel()

	base := NewUnitNormalizer()
	extended := base.WithSynonym("Cups", UnitCup)

	assert.Equal(t, UnitCup, extended.Normalize("cups"))
	assert.Equal(t, Unit("cups"), base.Normalize("cups"))
	assert.Equal(t, Unit("cups"), NormalizeUnit("cups"))
}

func TestCanonicalUnits_ReturnsCopy(t *testing.T) {
	t.Parallel()

	units := CanonicalUnits()
	assert.Len(t, units, 19)
	units[0] = "broken"
	assert.Equal(t, UnitCup, CanonicalUnits()[0])
	assert.False(t, Unit("broken").IsCanonical())
}
