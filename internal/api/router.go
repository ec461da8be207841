package api

import (
	"fmt"
	"time"

	"recipe-consolidator/internal/api/handlers/health"
	orderHandler "recipe-consolidator/internal/api/handlers/order"
	recipeHandler "recipe-consolidator/internal/api/handlers/recipe"
	"recipe-consolidator/internal/api/middleware"
	orderService "recipe-consolidator/internal/core/order"
	"recipe-consolidator/internal/core/preview"
	recipeService "recipe-consolidator/internal/core/recipe"
	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/infrastructure/config"
	"recipe-consolidator/internal/pkg/common"
	"recipe-consolidator/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services 路由需要的服務
type Services struct {
	Recipes  *recipeService.Service
	Orders   *orderService.Service
	Store    store.Store
	Previews *preview.Cache
	Metrics  *metrics.Metrics
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) (*gin.Engine, error) {
	if svc.Recipes == nil || svc.Orders == nil || svc.Store == nil {
		return nil, fmt.Errorf("recipe service, order service and store are required")
	}

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
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())
	if svc.Metrics != nil {
		router.Use(middleware.Metrics(svc.Metrics.HTTP))
	}

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowsAnyOrigin(cfg.Server.AllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg.App.Version, cfg.Store.Driver, svc.Store, previewStats(svc.Previews))
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	if svc.Metrics != nil {
		router.GET("/metrics", gin.WrapH(svc.Metrics.Handler()))
	}

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.NewDeduplicator(cfg.DedupWindow).Middleware())
	{
		recipes := recipeHandler.NewHandler(svc.Recipes, cfg.App.Debug)
		orders := orderHandler.NewHandler(svc.Orders, cfg.App.Debug)

		// 兩段式匯入
		importGroup := api.Group("/imports")
		{
			importGroup.POST("/preview", recipes.HandleCreatePreview)
			importGroup.GET("/preview/:id", recipes.HandleGetPreview)
			importGroup.PUT("/preview/:id", recipes.HandleUpdatePreview)
			importGroup.POST("/preview/:id/save", recipes.HandleSavePreview)
		}

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/import", recipes.HandleImport)
			recipeGroup.GET("", recipes.HandleList)
			recipeGroup.GET("/:id", recipes.HandleGet)
			recipeGroup.POST("/:id/consolidate", recipes.HandleConsolidate)
		}

		api.POST("/menu-items", recipes.HandleSaveMenuItem)
		api.GET("/menu-items/:id", recipes.HandleGetMenuItem)

		api.POST("/shopping-lists", recipes.HandleCreateShoppingList)
		api.GET("/shopping-lists/:id", recipes.HandleGetShoppingList)

		api.POST("/orders/confirm", orders.HandleConfirm)
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("store", cfg.Store.Driver),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// previewStats 避免把 nil *preview.Cache 包成非 nil 介面
func previewStats(c *preview.Cache) health.StatsProvider {
	if c == nil {
		return nil
	}
	return c
}
