package grocery

import (
	"net/http"

	groceryService "recipe-grocery/internal/core/grocery"
	"recipe-grocery/internal/core/ingredient"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExtractRequest 從貼文說明擷取食材；caption 可含 HTML
type ExtractRequest struct {
	RecipeID string `json:"recipe_id"`
	Caption  string `json:"caption" binding:"required"`
}

// ExtractResponse 擷取出的原始行與解析結果
type ExtractResponse struct {
	Lines    []string              `json:"lines"`
	Records  []ingredient.Record   `json:"records"`
	Items    []groceryService.Item `json:"items"`
	CacheHit bool                  `json:"cache_hit"`
}

// HandleExtract POST /api/v1/extract
func (h *Handler) HandleExtract(c *gin.Context) {
	if !h.extract.Enabled() {
		respondError(c, common.ErrExtractDisabled)
		return
	}

	var req ExtractRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.extract.Extract(c.Request.Context(), req.Caption)
	if err != nil {
		common.LogWarn("Ingredient extraction rejected",
			zap.Error(err),
			zap.String("recipe_id", req.RecipeID),
			zap.String("request_id", requestid.Get(c)),
		)
		respondError(c, err)
		return
	}

	records := h.grocery.ParseRecipe(req.RecipeID, result.Lines)
	c.JSON(http.StatusOK, ExtractResponse{
		Lines:    result.Lines,
		Records:  records,
		Items:    groceryService.ToItems(records),
		CacheHit: result.CacheHit,
	})
}
