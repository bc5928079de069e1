package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Unit
		ok    bool
	}{
		{"Tbsp.", UnitTablespoon, true},
		{"tsp", UnitTeaspoon, true},
		{"cups", UnitCup, true},
		{"fl  oz", UnitFluidOunce, true},
		{"Fluid Ounces", UnitFluidOunce, true},
		{"lbs", UnitPound, true},
		{"kg", UnitKilogram, true},
		{"cloves", UnitClove, true},
		{"litres", UnitLiter, true},
		{"banana", UnitNone, false},
		{"", UnitNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, ok := NormalizeUnit(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rest     string
		wantUnit Unit
		wantRest string
	}{
		{name: "two token unit first", rest: "fl oz milk", wantUnit: UnitFluidOunce, wantRest: "milk"},
		{name: "two token spelled out", rest: "fluid ounces cream", wantUnit: UnitFluidOunce, wantRest: "cream"},
		{name: "one token", rest: "tsp salt", wantUnit: UnitTeaspoon, wantRest: "salt"},
		{name: "abbreviation with period", rest: "oz. cheddar", wantUnit: UnitOunce, wantRest: "cheddar"},
		{name: "no unit consumes nothing", rest: "onion, diced", wantUnit: UnitNone, wantRest: "onion, diced"},
		{name: "empty", rest: "", wantUnit: UnitNone, wantRest: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			unit, rest := ExtractUnit(tt.rest)
			assert.Equal(t, tt.wantUnit, unit)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestUnitFamily(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FamilyVolume, UnitCup.Family())
	assert.Equal(t, FamilyVolume, UnitMilliliter.Family())
	assert.Equal(t, FamilyWeight, UnitGram.Family())
	assert.Equal(t, FamilyWeight, UnitOunce.Family())
	assert.Equal(t, FamilyCount, UnitClove.Family())
	assert.Equal(t, FamilyNone, UnitNone.Family())
	assert.Equal(t, "volume", FamilyVolume.String())
}
