// Package handlers HTTP 處理器共用的回應與錯誤對應
package handlers

import (
	"context"
	"errors"
	"net/http"

	"recipe-consolidator/internal/core/preview"
	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestID 取得本次請求的 ID（由 requestid 中間件產生）
func RequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Abort 以預定義錯誤中止請求
func Abort(c *gin.Context, e *common.CustomError) {
	c.AbortWithStatusJSON(e.Status, common.ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
	})
}

// WriteError 將服務層錯誤轉為 HTTP 回應。
// 解析錯誤與驗證錯誤回傳 400，找不到資源回傳 404，其餘為 500；
// debug 為 true 時才附上原始錯誤。
func WriteError(c *gin.Context, err error, debug bool) {
	status, resp := classify(err)
	if debug && resp.Details == "" && status >= http.StatusInternalServerError {
		resp.Details = err.Error()
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", resp.Code),
		zap.String("request_id", RequestID(c)),
		zap.String("path", c.Request.URL.Path),
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗", fields...)
	} else {
		common.LogWarn("請求無法處理", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

func classify(err error) (int, common.ErrorResponse) {
	switch {
	case common.IsParseError(err):
		return http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeParseError,
			Message: err.Error(),
		}
	case common.IsValidationError(err):
		return http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		}
	case errors.Is(err, store.ErrNotFound), errors.Is(err, preview.ErrPreviewNotFound):
		return http.StatusNotFound, common.ErrorResponse{
			Code:    common.ErrCodeNotFound,
			Message: common.ErrNotFound.Message,
			Details: err.Error(),
		}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, common.ErrorResponse{
			Code:    common.ErrCodeGatewayTimeout,
			Message: "request timed out",
		}
	default:
		return http.StatusInternalServerError, common.ErrorResponse{
			Code:    common.ErrInternalError.Code,
			Message: common.ErrInternalError.Message,
		}
	}
}

// BadRequest 請求格式錯誤（JSON 綁定失敗等）
func BadRequest(c *gin.Context, err error) {
	common.LogWarn("請求格式無效",
		zap.Error(err),
		zap.String("request_id", RequestID(c)),
	)
	c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
		Code:    common.ErrInvalidRequest.Code,
		Message: common.ErrInvalidRequest.Message,
		Details: err.Error(),
	})
}
