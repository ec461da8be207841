package order

import (
	"net/http"

	"recipe-consolidator/internal/api/handlers"
	orderService "recipe-consolidator/internal/core/order"

	"github.com/gin-gonic/gin"
)

// ConfirmRequest 已確認的訂單
type ConfirmRequest struct {
	Name  string              `json:"name" binding:"required"`
	Note  string              `json:"note,omitempty"`
	Lines []orderService.Line `json:"lines"`
}

// Handler 訂單處理程序
type Handler struct {
	orderService *orderService.Service
	debug        bool
}

// NewHandler 創建訂單處理程序
func NewHandler(orderService *orderService.Service, debug bool) *Handler {
	return &Handler{
		orderService: orderService,
		debug:        debug,
	}
}

// HandleConfirm 訂單確認後建立外燴清單；沒有可備料的明細時回傳 200 與 created=false
func (h *Handler) HandleConfirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	l, err := h.orderService.Confirm(c.Request.Context(), orderService.Order{
		Name:  req.Name,
		Note:  req.Note,
		Lines: req.Lines,
	})
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	if l == nil {
		c.JSON(http.StatusOK, gin.H{
			"created": false,
			"order":   req.Name,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"created":      true,
		"caterer_list": l,
	})
}
