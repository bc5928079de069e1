package grocery

import (
	"testing"

	"recipe-grocery/internal/core/ingredient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemsFrom(recipeID string, lines ...string) []Item {
	return ToItems(ingredient.ParseLines(lines, recipeID))
}

func sortKeys(items []Item) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.SortKey)
	}
	return keys
}

func TestParseView(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]View{
		"":             ViewCategory,
		"category":     ViewCategory,
		"Alphabetical": ViewAlphabetical,
		" recipe ":     ViewRecipe,
	} {
		got, err := ParseView(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseView("aisle")
	assert.Error(t, err)
}

func TestGroupByCategory(t *testing.T) {
	t.Parallel()

	items := itemsFrom("r1", "1 tsp cumin", "2 carrots", "1 cup milk", "1 lb ground beef", "1 onion", "1 cup rice")
	groups := GroupByCategory(items)

	var categories []ingredient.Category
	for _, g := range groups {
		categories = append(categories, g.Category)
	}
	assert.Equal(t, []ingredient.Category{
		ingredient.CategoryProduce,
		ingredient.CategoryMeatSeafood,
		ingredient.CategoryDairyEggs,
		ingredient.CategoryPantry,
		ingredient.CategorySpices,
	}, categories)
	assert.Equal(t, []string{"carrots", "onions"}, sortKeys(groups[0].Items))
}

func TestGroupByCategory_UnknownCategoryGoesToOther(t *testing.T) {
	t.Parallel()

	groups := GroupByCategory([]Item{{Name: "mystery", SortKey: "mystery", Category: "aisle 9"}})
	require.Len(t, groups, 1)
	assert.Equal(t, ingredient.CategoryOther, groups[0].Category)
}

func TestSortAlphabetical(t *testing.T) {
	t.Parallel()

	items := []Item{
		{Name: "Onion", SortKey: "onions"},
		{Name: "apple", SortKey: "apples"},
		{Name: "red onion", SortKey: "onions"},
		{Name: "basil", SortKey: "basil"},
	}
	got := SortAlphabetical(items)

	assert.Equal(t, []string{"apple", "basil", "Onion", "red onion"}, []string{got[0].Name, got[1].Name, got[2].Name, got[3].Name})
	assert.Equal(t, "Onion", items[0].Name, "input not reordered")
}

func TestGroupByRecipe(t *testing.T) {
	t.Parallel()

	items := []Item{
		{Name: "salt", RecipeID: "r1", RecipeIDs: []string{"r1", "r2"}},
		{Name: "basil", RecipeID: "r2", RecipeIDs: []string{"r2"}},
		{Name: "water"},
	}
	groups := GroupByRecipe(items)

	require.Len(t, groups, 3)
	assert.Equal(t, "r1", groups[0].RecipeID)
	assert.Len(t, groups[0].Items, 1)
	assert.Equal(t, "r2", groups[1].RecipeID)
	assert.Len(t, groups[1].Items, 2)
	assert.Equal(t, "", groups[2].RecipeID)
}

func TestRender(t *testing.T) {
	t.Parallel()

	items := itemsFrom("r1", "2 eggs", "1 cup flour")
	assert.IsType(t, []CategoryGroup{}, Render(ViewCategory, items))
	assert.IsType(t, []Item{}, Render(ViewAlphabetical, items))
	assert.IsType(t, []RecipeGroup{}, Render(ViewRecipe, items))
}
