package grocery

import (
	"fmt"
	"net/http"

	groceryService "recipe-grocery/internal/core/grocery"
	"recipe-grocery/internal/core/ingredient"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateListRequest 由多份食譜建立購物清單
type CreateListRequest struct {
	Recipes []groceryService.RecipeInput `json:"recipes" binding:"required,min=1,dive"`
	View    string                       `json:"view"`
}

// ListResponse 清單與指定的呈現方式
type ListResponse struct {
	List  *groceryService.List `json:"list"`
	View  groceryService.View  `json:"view"`
	Data  any                  `json:"data"`
	Saved bool                 `json:"saved"`
}

// MergeRequest 合併兩份已解析的清單，A 在前
type MergeRequest struct {
	A []ingredient.Record `json:"a"`
	B []ingredient.Record `json:"b"`
}

// HandleCreateList POST /api/v1/lists
func (h *Handler) HandleCreateList(c *gin.Context) {
	var req CreateListRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := groceryService.ParseView(req.View)
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.grocery.BuildList(c.Request.Context(), req.Recipes)
	if err != nil {
		respondError(c, err)
		return
	}

	saved := false
	if h.grocery.StorageEnabled() {
		if err := h.grocery.SaveList(c.Request.Context(), list); err != nil {
			common.LogError("Failed to save grocery list",
				zap.Error(err),
				zap.String("list_id", list.ID),
				zap.String("request_id", requestid.Get(c)),
			)
			respondError(c, err)
			return
		}
		saved = true
	}

	c.JSON(http.StatusCreated, ListResponse{
		List:  list,
		View:  view,
		Data:  groceryService.Render(view, list.Items),
		Saved: saved,
	})
}

// HandleGetList GET /api/v1/lists/:id?view=
func (h *Handler) HandleGetList(c *gin.Context) {
	view, err := groceryService.ParseView(c.Query("view"))
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.grocery.GetList(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		List:  list,
		View:  view,
		Data:  groceryService.Render(view, list.Items),
		Saved: true,
	})
}

// HandleExportList GET /api/v1/lists/:id/export?format=xlsx|csv
func (h *Handler) HandleExportList(c *gin.Context) {
	format, err := groceryService.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.grocery.GetList(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(list.ID)))
	c.Status(http.StatusOK)
	if err := h.grocery.Export(list, format, c.Writer); err != nil {
		// 已開始寫出內容，只能記錄
		common.LogError("Failed to export grocery list",
			zap.Error(err),
			zap.String("list_id", list.ID),
			zap.String("format", string(format)),
		)
		_ = c.Error(err)
	}
}

// HandleMerge POST /api/v1/lists/merge
func (h *Handler) HandleMerge(c *gin.Context) {
	var req MergeRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.A == nil && req.B == nil {
		respondError(c, common.NewValidationError("a or b is required"))
		return
	}

	records := h.grocery.MergeRecords(req.A, req.B)
	c.JSON(http.StatusOK, ParseResponse{
		Records: records,
		Items:   groceryService.ToItems(records),
	})
}

