package grocery

import (
	"fmt"
	"sort"
	"strings"

	"recipe-grocery/internal/core/ingredient"
	"recipe-grocery/internal/pkg/common"
)

// View 清單呈現方式
type View string

const (
	ViewCategory     View = "category"
	ViewAlphabetical View = "alphabetical"
	ViewRecipe       View = "recipe"
)

// ParseView 空字串預設為依分類
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewCategory:
		return ViewCategory, nil
	case ViewAlphabetical:
		return ViewAlphabetical, nil
	case ViewRecipe:
		return ViewRecipe, nil
	default:
		return "", common.NewValidationError(fmt.Sprintf("unknown view %q", s))
	}
}

// CategoryGroup 同一分類的項目
type CategoryGroup struct {
	Category ingredient.Category `json:"category"`
	Items    []Item              `json:"items"`
}

// RecipeGroup 同一食譜的項目
type RecipeGroup struct {
	RecipeID string `json:"recipe_id"`
	Items    []Item `json:"items"`
}

// GroupByCategory 依固定分類順序分組，組內依 sort key 排序；空分類省略
func GroupByCategory(items []Item) []CategoryGroup {
	byCategory := make(map[ingredient.Category][]Item)
	for _, item := range items {
		category := ingredient.ParseCategory(string(item.Category))
		byCategory[category] = append(byCategory[category], item)
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for _, category := range ingredient.Categories {
		if members := byCategory[category]; len(members) > 0 {
			groups = append(groups, CategoryGroup{Category: category, Items: SortAlphabetical(members)})
		}
	}
	return groups
}

// SortAlphabetical 依 sort key 排序，相同時比較名稱；回傳新切片
func SortAlphabetical(items []Item) []Item {
	sorted := append([]Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SortKey != sorted[j].SortKey {
			return sorted[i].SortKey < sorted[j].SortKey
		}
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}

// GroupByRecipe 依食譜首次出現順序分組；合併自多份食譜的項目出現在每一組
func GroupByRecipe(items []Item) []RecipeGroup {
	var order []string
	byRecipe := make(map[string][]Item)

	for _, item := range items {
		ids := item.RecipeIDs
		if len(ids) == 0 {
			ids = []string{item.RecipeID}
		}
		for _, id := range ids {
			if _, seen := byRecipe[id]; !seen {
				order = append(order, id)
			}
			byRecipe[id] = append(byRecipe[id], item)
		}
	}

	groups := make([]RecipeGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, RecipeGroup{RecipeID: id, Items: byRecipe[id]})
	}
	return groups
}

// Render 依 view 產生回應內容
func Render(view View, items []Item) any {
	switch view {
	case ViewAlphabetical:
		return SortAlphabetical(items)
	case ViewRecipe:
		return GroupByRecipe(items)
	default:
		return GroupByCategory(items)
	}
}
