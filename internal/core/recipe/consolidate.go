package recipe

import (
	"context"
	"fmt"
	"strings"

	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/pkg/common"

	"go.uber.org/zap"
)

// ConsolidateRecipe 合併單一食譜中重複的食材行，並重新編號 10, 20, 30…
func (s *Service) ConsolidateRecipe(ctx context.Context, id string) (*store.Recipe, error) {
	r, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	before := len(r.Ingredients)
	lines := ingredient.ConsolidateLists(r.Records())

	r.Ingredients = make([]store.RecipeIngredient, 0, len(lines))
	for _, l := range lines {
		r.Ingredients = append(r.Ingredients, store.RecipeIngredient{
			Record: ingredient.Record{
				Name:     l.Name,
				Quantity: l.Quantity,
				Unit:     l.Unit,
				Notes:    l.Notes,
			},
			Sequence: l.Sequence,
		})
	}
	r.UpdatedAt = s.now().UTC()

	if err := s.store.SaveRecipe(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	s.metrics.ObserveConsolidation("recipe", len(lines))

	common.LogInfo("食譜食材已合併",
		zap.String("recipe_id", r.ID),
		zap.Int("before", before),
		zap.Int("after", len(lines)),
	)

	return r, nil
}

// CreateShoppingList 將多份食譜的食材合併為一份購物清單（倍率 1）
func (s *Service) CreateShoppingList(ctx context.Context, name string, recipeIDs []string) (*store.ShoppingList, error) {
	ids := uniqueIDs(recipeIDs)
	if len(ids) == 0 {
		return nil, common.NewValidationError("please select at least one recipe to consolidate")
	}

	lists := make([][]ingredient.Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.store.GetRecipe(ctx, id)
		if err != nil {
			return nil, err
		}
		lists = append(lists, r.Records())
	}

	if name = strings.TrimSpace(name); name == "" {
		name = DefaultShoppingListName
	}

	l := &store.ShoppingList{
		ID:              common.GenerateUUID(),
		Name:            name,
		SourceRecipeIDs: ids,
		Lines:           ingredient.ConsolidateLists(lists...),
		CreatedAt:       s.now().UTC(),
	}
	if err := s.store.SaveShoppingList(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}
	s.metrics.ObserveConsolidation("shopping_list", len(l.Lines))

	common.LogInfo("購物清單已建立",
		zap.String("list_id", l.ID),
		zap.Int("recipes", len(ids)),
		zap.Int("lines", len(l.Lines)),
	)

	return l, nil
}

// uniqueIDs 去除空白與重複，保留第一次出現的順序
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
