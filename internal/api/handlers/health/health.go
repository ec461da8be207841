package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"recipe-consolidator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 可檢查連線狀態的依賴（例如儲存層）
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsProvider 提供統計資料的元件（例如預覽快取）
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Store     string                 `json:"store"`
	Runtime   map[string]interface{} `json:"runtime"`
	Previews  map[string]interface{} `json:"previews,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	version     string
	storeDriver string
	store       Pinger
	previews    StatsProvider
	pingTimeout time.Duration
}

// NewHandler 創建健康檢查處理器；previews 可為 nil
func NewHandler(version, storeDriver string, store Pinger, previews StatsProvider) *Handler {
	return &Handler{
		version:     version,
		storeDriver: storeDriver,
		store:       store,
		previews:    previews,
		pingTimeout: 2 * time.Second,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Store:     h.storeDriver,
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
	if h.previews != nil {
		response.Previews = h.previews.GetStats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：儲存層必須可連線
func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		common.LogWarn("Readiness check failed",
			zap.String("store", h.storeDriver),
			zap.Error(err),
		)
		c.JSON(common.ErrStoreUnavailable.Status, common.ErrorResponse{
			Code:    common.ErrStoreUnavailable.Code,
			Message: common.ErrStoreUnavailable.Message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
