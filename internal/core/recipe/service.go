// Package recipe 食譜的匯入、預覽、單一食譜合併與多食譜購物清單。
package recipe

import (
	"strings"
	"time"

	"recipe-consolidator/internal/core/importer"
	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/core/preview"
	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/pkg/common"
	"recipe-consolidator/internal/pkg/metrics"
)

// DefaultShoppingListName 未指定名稱時的購物清單名稱
const DefaultShoppingListName = "Shopping List"

// Service 食譜服務
type Service struct {
	store           store.Store
	importer        *importer.Importer
	previews        *preview.Cache
	metrics         *metrics.ImportMetrics
	defaultServings int
	now             func() time.Time
}

// NewService 創建新的食譜服務；m 可為 nil
func NewService(st store.Store, imp *importer.Importer, previews *preview.Cache, m *metrics.ImportMetrics, defaultServings int) *Service {
	if defaultServings < 1 {
		defaultServings = 1
	}
	return &Service{
		store:           st,
		importer:        imp,
		previews:        previews,
		metrics:         m,
		defaultServings: defaultServings,
		now:             time.Now,
	}
}

// newRecipe 以匯入的食材建立食譜，序號 10, 20, 30…，單位收斂為標準單位
func (s *Service) newRecipe(name string, servings int, records []ingredient.Record) *store.Recipe {
	if servings < 1 {
		servings = s.defaultServings
	}
	now := s.now().UTC()

	lines := make([]store.RecipeIngredient, 0, len(records))
	for i, r := range records {
		r.Name = strings.TrimSpace(r.Name)
		r.Unit = ingredient.CanonicalizeUnit(string(r.Unit))
		lines = append(lines, store.RecipeIngredient{
			Record:   r,
			Sequence: (i + 1) * ingredient.SequenceStep,
		})
	}

	return &store.Recipe{
		ID:          common.GenerateUUID(),
		Name:        strings.TrimSpace(name),
		Servings:    servings,
		Ingredients: lines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
