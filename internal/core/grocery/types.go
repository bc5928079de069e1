package grocery

import (
	"time"

	"recipe-grocery/internal/core/ingredient"
)

// RecipeInput 一份食譜的原始食材行
type RecipeInput struct {
	RecipeID string   `json:"recipe_id"`
	Lines    []string `json:"lines" binding:"required"`
}

// List 合併後的購物清單
type List struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	RecipeIDs []string            `json:"recipe_ids"`
	Records   []ingredient.Record `json:"records"`
	Items     []Item              `json:"items"`
}

// Item 持久化層使用的清單項目；checked 由使用者操作修改
type Item struct {
	Name             string               `json:"name"`
	SortKey          string               `json:"sort_key"`
	OriginalQuantity ingredient.Quantity  `json:"original_quantity"`
	OriginalUnit     ingredient.Unit      `json:"original_unit"`
	MetricQuantity   *ingredient.Quantity `json:"metric_quantity,omitempty"`
	MetricUnit       ingredient.Unit      `json:"metric_unit,omitempty"`
	ImperialQuantity *ingredient.Quantity `json:"imperial_quantity,omitempty"`
	ImperialUnit     ingredient.Unit      `json:"imperial_unit,omitempty"`
	Category         ingredient.Category  `json:"category"`
	Checked          bool                 `json:"checked"`
	RecipeID         string               `json:"recipe_id"`
	RecipeIDs        []string             `json:"recipe_ids,omitempty"`
}

// ToItem 將解析結果轉成持久化項目並附上公制與英制換算
func ToItem(r ingredient.Record) Item {
	item := Item{
		Name:             r.Name,
		SortKey:          r.SortKey,
		OriginalQuantity: r.Quantity,
		OriginalUnit:     r.Unit,
		Category:         r.Category,
		RecipeID:         r.RecipeID,
		RecipeIDs:        append([]string(nil), r.RecipeIDs...),
	}
	if item.RecipeID == "" && len(r.RecipeIDs) > 0 {
		item.RecipeID = r.RecipeIDs[0]
	}

	converted := ingredient.Measurements(r.Quantity, r.Unit)
	if m := converted.Metric; m != nil {
		q := m.Quantity
		item.MetricQuantity, item.MetricUnit = &q, m.Unit
	}
	if m := converted.Imperial; m != nil {
		q := m.Quantity
		item.ImperialQuantity, item.ImperialUnit = &q, m.Unit
	}
	return item
}

// ToItems 批次轉換
func ToItems(records []ingredient.Record) []Item {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, ToItem(r))
	}
	return items
}
