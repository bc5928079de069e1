package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name string, q Quantity, unit Unit) Record {
	return Record{Name: name, SortKey: CoreKey(name), Quantity: q, Unit: unit, Original: name}
}

func TestMergeLists_Combination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     Record
		wantQty  string
		wantUnit Unit
	}{
		{
			name:    "range plus range",
			a:       rec("shrimp", mustRange(t, 10, 15), UnitNone),
			b:       rec("shrimp", mustRange(t, 10, 15), UnitNone),
			wantQty: "20-30",
		},
		{
			name:    "asymmetric ranges",
			a:       rec("eggs", mustRange(t, 4, 6), UnitNone),
			b:       rec("eggs", mustRange(t, 2, 3), UnitNone),
			wantQty: "6-9",
		},
		{
			name:    "range plus number",
			a:       rec("shrimp", mustRange(t, 10, 15), UnitNone),
			b:       rec("shrimp", Single(5), UnitNone),
			wantQty: "15-20",
		},
		{
			name:    "number plus range",
			a:       rec("shrimp", Single(5), UnitNone),
			b:       rec("shrimp", mustRange(t, 10, 15), UnitNone),
			wantQty: "15-20",
		},
		{
			name:    "plain sum",
			a:       rec("onion", Single(2), UnitNone),
			b:       rec("onion", Single(6), UnitNone),
			wantQty: "8",
		},
		{
			name:     "same unit",
			a:        rec("flour", Single(2), UnitCup),
			b:        rec("flour", Single(1), UnitCup),
			wantQty:  "3",
			wantUnit: UnitCup,
		},
		{
			name:     "convertible units use the first unit",
			a:        rec("milk", Single(1), UnitCup),
			b:        rec("milk", Single(8), UnitTablespoon),
			wantQty:  "1.5",
			wantUnit: UnitCup,
		},
		{
			name:     "convertible ranges",
			a:        rec("milk", mustRange(t, 1, 2), UnitCup),
			b:        rec("milk", mustRange(t, 8, 16), UnitTablespoon),
			wantQty:  "1.5-3",
			wantUnit: UnitCup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MergeLists([]Record{tt.a}, []Record{tt.b})
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantQty, got[0].DisplayQuantity())
			assert.Equal(t, tt.wantUnit, got[0].Unit)
		})
	}
}

func TestMergeLists_FirstSeenCasingWins(t *testing.T) {
	t.Parallel()

	got := MergeLists(
		[]Record{rec("Egg", Single(2), UnitNone)},
		[]Record{rec("egg", Single(3), UnitNone)},
	)
	require.Len(t, got, 1)
	assert.Equal(t, "Egg", got[0].Name)
	assert.Equal(t, "5", got[0].DisplayQuantity())
}

func TestMergeLists_IncompatibleUnitsStaySeparate(t *testing.T) {
	t.Parallel()

	got := MergeLists(
		[]Record{rec("sugar", Single(1), UnitCup)},
		[]Record{rec("sugar", Single(100), UnitGram)},
	)
	require.Len(t, got, 2)
	assert.Equal(t, UnitCup, got[0].Unit)
	assert.Equal(t, UnitGram, got[1].Unit)
	assert.Equal(t, "sugar", got[1].Name)
}

func TestMergeLists_PreservesOrder(t *testing.T) {
	t.Parallel()

	a := []Record{rec("flour", Single(1), UnitCup), rec("salt", Single(1), UnitTeaspoon)}
	b := []Record{rec("butter", Single(2), UnitTablespoon), rec("flour", Single(1), UnitCup), rec("eggs", Single(2), UnitNone)}

	got := MergeLists(a, b)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"flour", "salt", "butter", "eggs"}, names(got))
	assert.Equal(t, "2", got[0].DisplayQuantity())
}

func TestMergeLists_EmptyIdentity(t *testing.T) {
	t.Parallel()

	list := []Record{
		rec("flour", Single(2), UnitCup),
		rec("eggs", mustRange(t, 2, 3), UnitNone),
		rec("eggs", Single(1), UnitNone),
	}

	assert.Equal(t, list, MergeLists(list, nil))
	assert.Equal(t, list, MergeLists(nil, list))
	assert.Equal(t, list, MergeLists(list, []Record{}))
	assert.Empty(t, MergeLists(nil, nil))
}

func TestMergeLists_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	a := []Record{{Name: "onion", Quantity: Single(1), RecipeIDs: []string{"r1"}}}
	b := []Record{{Name: "onion", Quantity: Single(2), RecipeIDs: []string{"r2"}}}

	got := MergeLists(a, b)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"r1", "r2"}, got[0].RecipeIDs)
	assert.Equal(t, []string{"r1"}, a[0].RecipeIDs)
	assert.Equal(t, "1", a[0].DisplayQuantity())
}

func TestConsolidate(t *testing.T) {
	t.Parallel()

	r1 := ParseLines([]string{"2 eggs", "1 cup milk"}, "r1")
	r2 := ParseLines([]string{"3 eggs", "8 tbsp milk"}, "r2")
	r3 := ParseLines([]string{"100 g sugar"}, "r3")

	got := Consolidate(r1, r2, r3)
	require.Len(t, got, 3)
	assert.Equal(t, "5", got[0].DisplayQuantity())
	assert.Equal(t, []string{"r1", "r2"}, got[0].RecipeIDs)
	assert.Equal(t, "1.5", got[1].DisplayQuantity())
	assert.Equal(t, UnitCup, got[1].Unit)
	assert.Equal(t, "sugar", got[2].Name)

	assert.Empty(t, Consolidate())
}

func names(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}
