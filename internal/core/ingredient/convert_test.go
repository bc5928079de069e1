package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		q      Quantity
		from   Unit
		to     Unit
		want   float64
		wantOK bool
	}{
		{name: "tablespoons to cups", q: Single(8), from: UnitTablespoon, to: UnitCup, want: 0.5, wantOK: true},
		{name: "teaspoons to tablespoons", q: Single(3), from: UnitTeaspoon, to: UnitTablespoon, want: 1, wantOK: true},
		{name: "kilograms to grams", q: Single(1), from: UnitKilogram, to: UnitGram, want: 1000, wantOK: true},
		{name: "pounds to ounces", q: Single(1), from: UnitPound, to: UnitOunce, want: 16, wantOK: true},
		{name: "liters to milliliters", q: Single(1.5), from: UnitLiter, to: UnitMilliliter, want: 1500, wantOK: true},
		{name: "same unit", q: Single(2), from: UnitClove, to: UnitClove, want: 2, wantOK: true},
		{name: "volume to weight", q: Single(1), from: UnitCup, to: UnitGram, want: 1},
		{name: "count units", q: Single(2), from: UnitClove, to: UnitPiece, want: 2},
		{name: "no unit to unit", q: Single(2), from: UnitNone, to: UnitCup, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Convert(tt.q, tt.from, tt.to)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got.Value(), 1e-6)
		})
	}
}

func TestConvert_Range(t *testing.T) {
	t.Parallel()

	got, ok := Convert(mustRange(t, 8, 16), UnitTablespoon, UnitCup)
	require.True(t, ok)
	assert.Equal(t, "0.5-1", got.Display())
}

func TestMeasurements(t *testing.T) {
	t.Parallel()

	t.Run("cups", func(t *testing.T) {
		t.Parallel()
		m := Measurements(Single(2), UnitCup)
		require.NotNil(t, m.Metric)
		require.NotNil(t, m.Imperial)
		assert.Equal(t, UnitMilliliter, m.Metric.Unit)
		assert.InDelta(t, 473.176473, m.Metric.Quantity.Value(), 1e-3)
		assert.Equal(t, UnitCup, m.Imperial.Unit)
		assert.InDelta(t, 2, m.Imperial.Quantity.Value(), 1e-9)
	})

	t.Run("small volume stays in teaspoons", func(t *testing.T) {
		t.Parallel()
		m := Measurements(Single(0.125), UnitTeaspoon)
		require.NotNil(t, m.Imperial)
		assert.Equal(t, UnitTeaspoon, m.Imperial.Unit)
		assert.InDelta(t, 0.125, m.Imperial.Quantity.Value(), 1e-9)
	})

	t.Run("weight picks pounds and grams", func(t *testing.T) {
		t.Parallel()
		m := Measurements(Single(2), UnitPound)
		require.NotNil(t, m.Metric)
		assert.Equal(t, UnitGram, m.Metric.Unit)
		assert.InDelta(t, 907.18474, m.Metric.Quantity.Value(), 1e-3)
		assert.Equal(t, UnitPound, m.Imperial.Unit)
	})

	t.Run("large weight picks kilograms", func(t *testing.T) {
		t.Parallel()
		m := Measurements(Single(1.5), UnitKilogram)
		require.NotNil(t, m.Metric)
		assert.Equal(t, UnitKilogram, m.Metric.Unit)
		assert.InDelta(t, 3.306934, m.Imperial.Quantity.Value(), 1e-5)
	})

	t.Run("count units have no conversion", func(t *testing.T) {
		t.Parallel()
		m := Measurements(Single(3), UnitClove)
		assert.Nil(t, m.Metric)
		assert.Nil(t, m.Imperial)

		m = Measurements(Single(3), UnitNone)
		assert.Nil(t, m.Metric)
		assert.Nil(t, m.Imperial)
	})
}
