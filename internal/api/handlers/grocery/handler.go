package grocery

import (
	"recipe-grocery/internal/core/extract"
	groceryService "recipe-grocery/internal/core/grocery"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食材與購物清單處理程序
type Handler struct {
	grocery *groceryService.Service
	extract *extract.Service
}

// NewHandler 創建處理程序；extractSvc 可為 nil
func NewHandler(grocerySvc *groceryService.Service, extractSvc *extract.Service) *Handler {
	return &Handler{
		grocery: grocerySvc,
		extract: extractSvc,
	}
}

// Register 註冊 /api/v1 下的路由
func (h *Handler) Register(api *gin.RouterGroup) {
	ingredients := api.Group("/ingredients")
	{
		ingredients.POST("/parse", h.HandleParse)
		ingredients.POST("/dedup", h.HandleDedup)
		ingredients.POST("/convert", h.HandleConvert)
	}

	lists := api.Group("/lists")
	{
		lists.POST("", h.HandleCreateList)
		lists.POST("/merge", h.HandleMerge)
		lists.GET("/:id", h.HandleGetList)
		lists.GET("/:id/export", h.HandleExportList)
	}

	api.POST("/extract", h.HandleExtract)
}

// bindJSON 解析請求內容，失敗時直接回應 400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		respondError(c, common.ErrInvalidRequest.Wrap(err))
		return false
	}
	return true
}

// respondError 將錯誤轉為統一的 JSON 回應
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := common.ToResponse(err)
	if gin.Mode() == gin.DebugMode && body.Message != err.Error() {
		body.Details = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}
