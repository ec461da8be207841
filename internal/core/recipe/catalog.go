package recipe

import (
	"context"
	"fmt"
	"strings"

	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/pkg/common"
)

// GetRecipe 取得食譜
func (s *Service) GetRecipe(ctx context.Context, id string) (*store.Recipe, error) {
	return s.store.GetRecipe(ctx, id)
}

// ListRecipes 列出所有食譜
func (s *Service) ListRecipes(ctx context.Context) ([]*store.Recipe, error) {
	return s.store.ListRecipes(ctx)
}

// GetShoppingList 取得購物清單
func (s *Service) GetShoppingList(ctx context.Context, id string) (*store.ShoppingList, error) {
	return s.store.GetShoppingList(ctx, id)
}

// SaveMenuItem 建立或更新菜單項目；recipe 必須存在
func (s *Service) SaveMenuItem(ctx context.Context, item store.MenuItem) (*store.MenuItem, error) {
	if item.ID <= 0 {
		return nil, common.NewValidationError("menu item id must be positive")
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, common.NewValidationError("menu item name is required")
	}
	if item.ServingSize < 0 {
		return nil, common.NewValidationError("serving size cannot be negative")
	}
	if item.RecipeID != "" {
		if _, err := s.store.GetRecipe(ctx, item.RecipeID); err != nil {
			return nil, fmt.Errorf("menu item %d: %w", item.ID, err)
		}
	}

	if err := s.store.SaveMenuItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("failed to save menu item: %w", err)
	}
	return &item, nil
}

// GetMenuItem 取得菜單項目
func (s *Service) GetMenuItem(ctx context.Context, id int) (*store.MenuItem, error) {
	return s.store.GetMenuItem(ctx, id)
}
