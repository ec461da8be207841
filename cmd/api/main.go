package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-consolidator/internal/api"
	"recipe-consolidator/internal/core/importer"
	"recipe-consolidator/internal/core/order"
	"recipe-consolidator/internal/core/preview"
	"recipe-consolidator/internal/core/recipe"
	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/infrastructure/config"
	"recipe-consolidator/internal/pkg/common"
	"recipe-consolidator/internal/pkg/metrics"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("redis_addr", cfg.Store.Redis.Addr),
		zap.Duration("preview_ttl", cfg.Preview.TTL),
	)

	m, err := metrics.New()
	if err != nil {
		common.LogFatal("Failed to initialize metrics", zap.Error(err))
	}

	// 初始化儲存
	st, err := openStore(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize store", zap.Error(err))
	}
	defer st.Close()

	previews := preview.New(cfg.Preview.TTL, cfg.Preview.CleanupInterval)
	defer previews.Close()

	fetcher := importer.NewFetcher(importer.FetcherConfig{
		Timeout:   cfg.Import.FetchTimeout,
		UserAgent: cfg.Import.UserAgent,
		MaxBytes:  cfg.Import.MaxDocumentBytes,
	})
	imp := importer.New(fetcher, cfg.Import.MaxDocumentBytes)

	// 設置路由
	router, err := api.SetupRouter(cfg, api.Services{
		Recipes:  recipe.NewService(st, imp, previews, m.Import, cfg.Import.DefaultServings),
		Orders:   order.NewService(st, m.Import),
		Store:    st,
		Previews: previews,
		Metrics:  m,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// openStore 依設定選擇儲存驅動
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Redis.DialTimeout+time.Second)
		defer cancel()
		rc := cfg.Store.Redis
		return store.NewRedisStore(ctx, &redis.Options{
			Addr:        rc.Addr,
			Password:    rc.Password,
			DB:          rc.DB,
			DialTimeout: rc.DialTimeout,
		}, rc.KeyPrefix)
	default:
		return store.NewMemoryStore(), nil
	}
}
