// Package order 訂單確認後產生外燴備料清單：
// 依訂單明細找出菜單項目與食譜，按份量縮放後合併成一份購物清單。
package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/pkg/common"
	"recipe-consolidator/internal/pkg/metrics"

	"go.uber.org/zap"
)

// 商品代碼前綴
const (
	DeliveryCodePrefix = "DELIVERY-"
	MenuCodePrefix     = "MENU-"
)

var (
	servingPattern   = regexp.MustCompile(`(?i)Serving:\s*(\d+)`)
	deliveryKeywords = []string{"delivery", "serving", "service type", "special instructions"}
)

// Line 訂單明細
type Line struct {
	ProductCode string  `json:"product_code"`
	Quantity    float64 `json:"quantity"`
}

// Order 已確認的訂單
type Order struct {
	Name  string `json:"name"`
	Note  string `json:"note,omitempty"`
	Lines []Line `json:"lines"`
}

// Service 訂單服務
type Service struct {
	store   store.Store
	metrics *metrics.ImportMetrics
	now     func() time.Time
}

// NewService 創建訂單服務；m 可為 nil
func NewService(st store.Store, m *metrics.ImportMetrics) *Service {
	return &Service{
		store:   st,
		metrics: m,
		now:     time.Now,
	}
}

// Confirm 由訂單建立外燴清單。沒有任何可對應到食譜的明細（或食譜都沒有食材）時回傳 (nil, nil)。
func (s *Service) Confirm(ctx context.Context, o Order) (*store.ShoppingList, error) {
	if strings.TrimSpace(o.Name) == "" {
		return nil, common.NewValidationError("order name is required")
	}

	inputs := make([]ingredient.Input, 0, len(o.Lines))
	recipeIDs := make([]string, 0, len(o.Lines))
	seen := make(map[string]struct{})

	for _, line := range o.Lines {
		item, recipe, err := s.resolve(ctx, line.ProductCode)
		if err != nil {
			return nil, err
		}
		if recipe == nil {
			continue
		}

		if _, ok := seen[recipe.ID]; !ok {
			seen[recipe.ID] = struct{}{}
			recipeIDs = append(recipeIDs, recipe.ID)
		}

		q := line.Quantity
		if q <= 0 {
			q = 1
		}

		inputs = append(inputs, ingredient.Input{
			Ingredients: namedRecords(recipe),
			Scale:       ingredient.ScaleFactor(q, servingSize(item, o.Note), recipe.Servings),
		})
	}

	lines := ingredient.Consolidate(inputs)
	if len(lines) == 0 {
		common.LogInfo("訂單沒有可備料的食譜", zap.String("order", o.Name))
		return nil, nil
	}

	l := &store.ShoppingList{
		ID:              common.GenerateUUID(),
		Name:            "Caterer - " + o.Name,
		SourceRecipeIDs: recipeIDs,
		Lines:           lines,
		Notes:           catererNotes(o),
		CreatedAt:       s.now().UTC(),
	}
	if err := s.store.SaveShoppingList(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to save caterer list: %w", err)
	}
	s.metrics.ObserveConsolidation("caterer", len(lines))

	common.LogInfo("外燴清單已建立",
		zap.String("order", o.Name),
		zap.String("list_id", l.ID),
		zap.Int("recipes", len(recipeIDs)),
		zap.Int("lines", len(lines)),
	)

	return l, nil
}

// resolve 由商品代碼找出菜單項目與食譜；不適用的明細回傳 nil 食譜
func (s *Service) resolve(ctx context.Context, code string) (*store.MenuItem, *store.Recipe, error) {
	code = strings.TrimSpace(code)
	if strings.HasPrefix(code, DeliveryCodePrefix) || !strings.HasPrefix(code, MenuCodePrefix) {
		return nil, nil, nil
	}

	id, err := strconv.Atoi(strings.TrimPrefix(code, MenuCodePrefix))
	if err != nil {
		common.LogDebug("無效的菜單商品代碼", zap.String("code", code))
		return nil, nil, nil
	}

	item, err := s.store.GetMenuItem(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		common.LogWarn("Menu item not found for order line", zap.String("code", code))
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if item.RecipeID == "" {
		return nil, nil, nil
	}

	recipe, err := s.store.GetRecipe(ctx, item.RecipeID)
	if errors.Is(err, store.ErrNotFound) {
		common.LogWarn("Recipe not found for menu item",
			zap.Int("menu_item", item.ID),
			zap.String("recipe_id", item.RecipeID),
		)
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return item, recipe, nil
}

// servingSize 菜單項目的份量優先，否則取訂單備註中的 "Serving: N"
func servingSize(item *store.MenuItem, note string) *float64 {
	if item != nil && item.ServingSize > 0 {
		v := float64(item.ServingSize)
		return &v
	}
	if n, ok := ServingCountFromNote(note); ok {
		v := float64(n)
		return &v
	}
	return nil
}

// ServingCountFromNote 解析備註中的 "Serving: N"（不分大小寫）
func ServingCountFromNote(note string) (int, bool) {
	m := servingPattern.FindStringSubmatch(note)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// DeliveryInfo 備註中與配送相關的行
func DeliveryInfo(note string) []string {
	var out []string
	for _, line := range strings.Split(note, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range deliveryKeywords {
			if strings.Contains(lower, kw) {
				out = append(out, line)
				break
			}
		}
	}
	return out
}

func catererNotes(o Order) string {
	var b strings.Builder
	b.WriteString("Automatically created from Sales Order ")
	b.WriteString(o.Name)

	if info := DeliveryInfo(o.Note); len(info) > 0 {
		b.WriteString("\n\nDelivery Information:")
		for _, line := range info {
			b.WriteString("\n")
			b.WriteString(line)
		}
	}
	return b.String()
}

func namedRecords(r *store.Recipe) []ingredient.Record {
	out := make([]ingredient.Record, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		if strings.TrimSpace(ri.Name) == "" {
			continue
		}
		out = append(out, ri.Record)
	}
	return out
}
