package recipe

import (
	"errors"
	"io"
	"net/http"

	"recipe-consolidator/internal/api/handlers"
	"recipe-consolidator/internal/core/ingredient"

	"github.com/gin-gonic/gin"
)

// UpdatePreviewRequest 修改預覽內容
type UpdatePreviewRequest struct {
	Name        string              `json:"name,omitempty"`
	Ingredients []ingredient.Record `json:"ingredients"`
}

// SavePreviewRequest 儲存預覽；body 可省略
type SavePreviewRequest struct {
	Servings int `json:"servings,omitempty"`
}

// HandleCreatePreview 解析文件並建立預覽
func (h *Handler) HandleCreatePreview(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	src, err := req.Source()
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	p, err := h.recipeService.PreviewImport(c.Request.Context(), src)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// HandleGetPreview 讀取預覽
func (h *Handler) HandleGetPreview(c *gin.Context) {
	p, err := h.recipeService.GetPreview(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, p)
}

// HandleUpdatePreview 以修改後的食材取代預覽
func (h *Handler) HandleUpdatePreview(c *gin.Context) {
	var req UpdatePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	p, err := h.recipeService.UpdatePreview(c.Request.Context(), c.Param("id"), req.Name, req.Ingredients)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, p)
}

// HandleSavePreview 將預覽儲存為食譜
func (h *Handler) HandleSavePreview(c *gin.Context) {
	var req SavePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.BadRequest(c, err)
		return
	}

	r, err := h.recipeService.SavePreview(c.Request.Context(), c.Param("id"), req.Servings)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusCreated, r)
}
