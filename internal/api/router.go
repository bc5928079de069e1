package api

import (
	"time"

	groceryHandler "recipe-grocery/internal/api/handlers/grocery"
	"recipe-grocery/internal/api/handlers/health"
	"recipe-grocery/internal/api/middleware"
	"recipe-grocery/internal/core/cache"
	"recipe-grocery/internal/core/extract"
	"recipe-grocery/internal/core/grocery"
	"recipe-grocery/internal/core/queue"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 超時設置
const timeoutDuration = 30 * time.Second

// Dependencies 路由需要的基礎設施；Cache 與 Store 可為 nil
type Dependencies struct {
	Config *config.Config
	Cache  *cache.CacheManager
	Queue  *queue.Manager
	Store  *cache.ListStore
}

// SetupRouter 設置路由
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Request.MaxBodyBytes))
	router.Use(middleware.Timeout(timeoutDuration))

	// 介面為 nil 時必須保持 nil，避免包住 nil 指標
	var store grocery.ListStore
	var pinger health.Pinger
	if deps.Store != nil {
		store = deps.Store
		pinger = deps.Store
	}

	var extractor extract.LineExtractor
	if cfg.OpenRouter.Enabled {
		extractor = extract.NewOpenRouterClient(cfg.OpenRouter)
	}

	grocerySvc := grocery.NewService(cfg, deps.Queue, store)
	extractSvc := extract.NewService(cfg, extractor, deps.Cache)

	common.LogInfo("Services initialized",
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Bool("storage_enabled", store != nil),
		zap.Bool("extract_enabled", extractSvc.Enabled()),
		zap.Int("queue_workers", cfg.Queue.Workers),
	)

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, deps.Queue, deps.Cache, pinger)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg.DedupWindow))

	groceryHandler.NewHandler(grocerySvc, extractSvc).Register(api)

	common.LogInfo("Router setup completed successfully",
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Request.MaxBodyBytes),
	)

	return router
}
