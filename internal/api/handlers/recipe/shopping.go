package recipe

import (
	"net/http"
	"strconv"

	"recipe-consolidator/internal/api/handlers"
	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// ShoppingListRequest 將多份食譜合併為購物清單
type ShoppingListRequest struct {
	Name      string   `json:"name,omitempty"`
	RecipeIDs []string `json:"recipe_ids"`
}

// MenuItemRequest 建立或更新菜單項目
type MenuItemRequest struct {
	ID          int    `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	RecipeID    string `json:"recipe_id,omitempty"`
	ServingSize int    `json:"serving_size,omitempty"`
}

// HandleCreateShoppingList 建立購物清單
func (h *Handler) HandleCreateShoppingList(c *gin.Context) {
	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	l, err := h.recipeService.CreateShoppingList(c.Request.Context(), req.Name, req.RecipeIDs)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusCreated, l)
}

// HandleGetShoppingList 取得購物清單
func (h *Handler) HandleGetShoppingList(c *gin.Context) {
	l, err := h.recipeService.GetShoppingList(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, l)
}

// HandleSaveMenuItem 建立或更新菜單項目
func (h *Handler) HandleSaveMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	item, err := h.recipeService.SaveMenuItem(c.Request.Context(), store.MenuItem{
		ID:          req.ID,
		Name:        req.Name,
		RecipeID:    req.RecipeID,
		ServingSize: req.ServingSize,
	})
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// HandleGetMenuItem 取得菜單項目
func (h *Handler) HandleGetMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handlers.WriteError(c, common.NewValidationError("menu item id must be an integer"), h.debug)
		return
	}

	item, err := h.recipeService.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, item)
}
