package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"recipe-grocery/internal/core/cache"
	"recipe-grocery/internal/core/queue"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 可檢查連線的外部依賴
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Queue     *queue.Status          `json:"queue,omitempty"`
	Cache     *cache.Stats           `json:"cache,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	config  *config.Config
	queue   *queue.Manager
	cache   *cache.CacheManager
	storage Pinger
}

// NewHandler 創建健康檢查處理器；queue、cache、storage 可為 nil
func NewHandler(cfg *config.Config, q *queue.Manager, c *cache.CacheManager, storage Pinger) *Handler {
	return &Handler{config: cfg, queue: q, cache: c, storage: storage}
}

// HealthCheck 回傳版本、執行期與隊列、快取狀態
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.queue != nil {
		status := h.queue.GetQueueStatus()
		response.Queue = &status
	}
	if h.cache != nil {
		stats := h.cache.GetStats()
		response.Cache = &stats
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 清單儲存啟用時需能連線；隊列不可已滿
func (h *Handler) ReadinessCheck(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			common.LogWarn("Storage not ready", zap.Error(err))
			checks["storage"] = "unavailable"
			ready = false
		} else {
			checks["storage"] = "ok"
		}
	}

	if h.queue != nil {
		status := h.queue.GetQueueStatus()
		if status.QueueLength >= status.MaxQueueSize {
			checks["queue"] = "full"
			ready = false
		} else {
			checks["queue"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
