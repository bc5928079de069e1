package ingredient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, min, max float64) Quantity {
	t.Helper()
	q, ok := NewRange(min, max)
	require.True(t, ok, "range %v-%v", min, max)
	return q
}

func TestLexQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantValue float64
		wantRange bool
		wantMin   float64
		wantMax   float64
		wantRest  string
		wantFound bool
	}{
		{name: "vulgar fraction", input: "⅛ teaspoon turmeric", wantValue: 0.125, wantRest: "teaspoon turmeric", wantFound: true},
		{name: "glued mixed number", input: "1½ cups flour", wantValue: 1.5, wantRest: "cups flour", wantFound: true},
		{name: "spaced mixed number", input: "1 1/2 cups flour", wantValue: 1.5, wantRest: "cups flour", wantFound: true},
		{name: "fraction", input: "3/4 cup milk", wantValue: 0.75, wantRest: "cup milk", wantFound: true},
		{name: "decimal", input: "0.5 cup milk", wantValue: 0.5, wantRest: "cup milk", wantFound: true},
		{name: "leading dot decimal", input: ".5 cup milk", wantValue: 0.5, wantRest: "cup milk", wantFound: true},
		{name: "glued unit", input: "100g flour", wantValue: 100, wantRest: "g flour", wantFound: true},
		{name: "dash range", input: "2-3 cloves garlic", wantRange: true, wantMin: 2, wantMax: 3, wantRest: "cloves garlic", wantFound: true},
		{name: "word range", input: "10 to 15 g sugar", wantRange: true, wantMin: 10, wantMax: 15, wantRest: "g sugar", wantFound: true},
		{name: "en dash range", input: "4–6 eggs", wantRange: true, wantMin: 4, wantMax: 6, wantRest: "eggs", wantFound: true},
		{name: "word number", input: "a pinch of salt", wantValue: 1, wantRest: "pinch of salt", wantFound: true},
		{name: "dozen", input: "dozen eggs", wantValue: 12, wantRest: "eggs", wantFound: true},
		{name: "no quantity", input: "salt to taste", wantValue: 1, wantRest: "salt to taste"},
		{name: "half and half is a name", input: "half and half", wantValue: 1, wantRest: "half and half"},
		{name: "zero defaults", input: "0 eggs", wantValue: 1, wantRest: "eggs"},
		{name: "zero denominator defaults", input: "1/0 cup sugar", wantValue: 1, wantRest: "cup sugar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, rest, found := LexQuantity(tt.input)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantRest, rest)
			assert.Equal(t, tt.wantRange, q.IsRange())
			if tt.wantRange {
				min, max := q.Bounds()
				assert.InDelta(t, tt.wantMin, min, 1e-9)
				assert.InDelta(t, tt.wantMax, max, 1e-9)
				return
			}
			assert.InDelta(t, tt.wantValue, q.Value(), 1e-9)
		})
	}
}

func TestLexQuantity_InvalidRangeFallsBackToSingle(t *testing.T) {
	t.Parallel()

	q, _, found := LexQuantity("5-3 eggs")
	assert.True(t, found)
	assert.False(t, q.IsRange())
	assert.InDelta(t, 5, q.Value(), 1e-9)
}

func TestNewRange(t *testing.T) {
	t.Parallel()

	_, ok := NewRange(1, 2)
	assert.True(t, ok)
	_, ok = NewRange(0, 2)
	assert.False(t, ok)
	_, ok = NewRange(3, 2)
	assert.False(t, ok)
	_, ok = NewRange(-1, 2)
	assert.False(t, ok)
}

func TestContinueRange(t *testing.T) {
	t.Parallel()

	q, rest, ok := continueRange(Single(0.5), "to 3/4 teaspoon salt")
	require.True(t, ok)
	assert.Equal(t, "teaspoon salt", rest)
	assert.Equal(t, "0.5-0.75", q.Display())

	_, rest, ok = continueRange(Single(0.5), "salt")
	assert.False(t, ok)
	assert.Equal(t, "salt", rest)
}

func TestQuantityAdd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Quantity
		want string
	}{
		{name: "range plus range", a: mustRange(t, 10, 15), b: mustRange(t, 10, 15), want: "20-30"},
		{name: "asymmetric ranges", a: mustRange(t, 4, 6), b: mustRange(t, 2, 3), want: "6-9"},
		{name: "range plus number", a: mustRange(t, 10, 15), b: Single(5), want: "15-20"},
		{name: "number plus range", a: Single(5), b: mustRange(t, 10, 15), want: "15-20"},
		{name: "plain sum", a: Single(2), b: Single(6), want: "8"},
		{name: "fractions", a: Single(0.25), b: Single(0.5), want: "0.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Add(tt.b).Display())
		})
	}
}

func TestQuantityDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.125", Single(0.125).Display())
	assert.Equal(t, "2", Single(2).Display())
	assert.Equal(t, "0.333", Single(1.0/3).Display())
	assert.Equal(t, "1.5-3", mustRange(t, 1.5, 3).Display())
}

func TestQuantityJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(mustRange(t, 2, 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":2.5,"min":2,"max":3,"display":"2-3"}`, string(data))

	var q Quantity
	require.NoError(t, json.Unmarshal(data, &q))
	assert.True(t, q.IsRange())
	assert.Equal(t, "2-3", q.Display())

	require.NoError(t, json.Unmarshal([]byte(`{"value":0}`), &q))
	assert.Equal(t, DefaultQuantity(), q)

	assert.Error(t, json.Unmarshal([]byte(`{"value":1,"min":3,"max":2}`), &q))
}

func TestParseQuantity(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"1 1/2":  "1.5",
		"½":      "0.5",
		"2-3":    "2-3",
		"2 to 3": "2-3",
	} {
		q, ok := ParseQuantity(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, q.Display(), in)
	}

	for _, in := range []string{"", "cups", "2 cups", "0"} {
		_, ok := ParseQuantity(in)
		assert.False(t, ok, in)
	}
}
