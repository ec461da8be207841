package recipe

import (
	"net/http"

	"recipe-consolidator/internal/api/handlers"
	recipeService "recipe-consolidator/internal/core/recipe"
	"recipe-consolidator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	recipeService *recipeService.Service
	debug         bool
}

// NewHandler 創建新的食譜處理程序
func NewHandler(recipeService *recipeService.Service, debug bool) *Handler {
	return &Handler{
		recipeService: recipeService,
		debug:         debug,
	}
}

// HandleImport 匯入並儲存食譜
func (h *Handler) HandleImport(c *gin.Context) {
	requestID := handlers.RequestID(c)

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

	common.LogInfo("開始處理食譜匯入請求",
		zap.String("request_id", requestID),
		zap.String("format", string(src.Format)),
		zap.String("file_name", src.FileName),
	)

	res, err := h.recipeService.ImportRecipe(c.Request.Context(), src, req.Servings)
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// HandleList 列出食譜
func (h *Handler) HandleList(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

// HandleGet 取得單一食譜
func (h *Handler) HandleGet(c *gin.Context) {
	r, err := h.recipeService.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, r)
}

// HandleConsolidate 合併食譜中重複的食材
func (h *Handler) HandleConsolidate(c *gin.Context) {
	r, err := h.recipeService.ConsolidateRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		handlers.WriteError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, r)
}
