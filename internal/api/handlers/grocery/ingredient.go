package grocery

import (
	"fmt"
	"net/http"

	groceryService "recipe-grocery/internal/core/grocery"
	"recipe-grocery/internal/core/ingredient"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ParseRequest 解析一份食譜的食材行
type ParseRequest struct {
	RecipeID string   `json:"recipe_id"`
	Lines    []string `json:"lines" binding:"required"`
}

// ParseResponse 解析結果與持久化項目
type ParseResponse struct {
	Records []ingredient.Record   `json:"records"`
	Items   []groceryService.Item `json:"items"`
}

// DedupRequest 食譜內去重
type DedupRequest struct {
	Lines []string `json:"lines" binding:"required"`
}

// DedupResponse 保留下來的原始行
type DedupResponse struct {
	Lines []string `json:"lines"`
}

// ConvertRequest 數量與單位換算；quantity 可為 "1 1/2"、"½" 或 "2-3"
type ConvertRequest struct {
	Quantity string `json:"quantity" binding:"required"`
	Unit     string `json:"unit" binding:"required"`
}

// ConvertResponse 公制與英制結果；計數單位兩者皆為空
type ConvertResponse struct {
	Quantity ingredient.Quantity     `json:"quantity"`
	Unit     ingredient.Unit         `json:"unit"`
	Metric   *ingredient.Measurement `json:"metric,omitempty"`
	Imperial *ingredient.Measurement `json:"imperial,omitempty"`
}

// HandleParse POST /api/v1/ingredients/parse
func (h *Handler) HandleParse(c *gin.Context) {
	var req ParseRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.grocery.ValidateLines(req.Lines); err != nil {
		respondError(c, err)
		return
	}

	records := h.grocery.ParseRecipe(req.RecipeID, req.Lines)
	c.JSON(http.StatusOK, ParseResponse{
		Records: records,
		Items:   groceryService.ToItems(records),
	})
}

// HandleDedup POST /api/v1/ingredients/dedup
func (h *Handler) HandleDedup(c *gin.Context) {
	var req DedupRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.grocery.ValidateLines(req.Lines); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DedupResponse{Lines: ingredient.DedupeLines(req.Lines)})
}

// HandleConvert POST /api/v1/ingredients/convert
func (h *Handler) HandleConvert(c *gin.Context) {
	var req ConvertRequest
	if !bindJSON(c, &req) {
		return
	}

	q, ok := ingredient.ParseQuantity(req.Quantity)
	if !ok {
		respondError(c, common.NewValidationError(fmt.Sprintf("invalid quantity %q", req.Quantity)))
		return
	}

	unit, known := ingredient.NormalizeUnit(req.Unit)
	if !known {
		respondError(c, common.NewValidationError(fmt.Sprintf("unknown unit %q", req.Unit)))
		return
	}

	converted := ingredient.Measurements(q, unit)
	c.JSON(http.StatusOK, ConvertResponse{
		Quantity: q,
		Unit:     unit,
		Metric:   converted.Metric,
		Imperial: converted.Imperial,
	})
}
