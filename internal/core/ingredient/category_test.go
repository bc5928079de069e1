package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want Category
	}{
		{"chicken thighs", CategoryMeatSeafood},
		{"broccoli", CategoryProduce},
		{"broccolini", CategoryProduce},
		{"tomatoes", CategoryProduce},
		{"jalapeño", CategoryProduce},
		{"bell pepper", CategoryProduce},
		{"eggplant", CategoryProduce},
		{"heavy cream", CategoryDairyEggs},
		{"ice cream", CategoryDairyEggs},
		{"eggs", CategoryDairyEggs},
		{"salted butter", CategoryDairyEggs},
		{"turmeric", CategorySpices},
		{"black pepper", CategorySpices},
		{"garlic powder", CategorySpices},
		{"frozen peas", CategoryFrozen},
		{"sourdough bread", CategoryBakery},
		{"flour", CategoryPantry},
		{"chicken stock", CategoryPantry},
		{"peanut butter", CategoryPantry},
		{"", CategoryOther},
		{"   ", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.name))
		})
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CategoryProduce, ParseCategory("Produce"))
	assert.Equal(t, CategoryMeatSeafood, ParseCategory("meat-seafood"))
	assert.Equal(t, CategoryOther, ParseCategory("garden"))
}
