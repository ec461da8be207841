// Package store 食譜、菜單項目與購物清單的持久化。
package store

import (
	"context"
	"errors"
	"time"

	"recipe-consolidator/internal/core/ingredient"
)

// ErrNotFound 資料不存在
var ErrNotFound = errors.New("not found")

// RecipeIngredient 食譜中的一行食材
type RecipeIngredient struct {
	ingredient.Record
	Sequence int `json:"sequence"`
}

// Recipe 食譜
type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Servings    int                `json:"servings"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Records 依序取出食材記錄
func (r *Recipe) Records() []ingredient.Record {
	out := make([]ingredient.Record, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		out = append(out, ri.Record)
	}
	return out
}

// MenuItem 菜單項目；商品代碼 MENU-{ID} 指向它
type MenuItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	RecipeID    string `json:"recipe_id"`
	ServingSize int    `json:"serving_size"`
}

// ShoppingList 合併後的購物清單
type ShoppingList struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	SourceRecipeIDs []string          `json:"source_recipe_ids"`
	Lines           []ingredient.Line `json:"lines"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Store 持久化介面。實作必須可同時被多個 goroutine 使用，
// 且回傳的值為副本，呼叫端修改不影響已儲存的資料。
type Store interface {
	SaveRecipe(ctx context.Context, r *Recipe) error
	GetRecipe(ctx context.Context, id string) (*Recipe, error)
	ListRecipes(ctx context.Context) ([]*Recipe, error)

	SaveMenuItem(ctx context.Context, m *MenuItem) error
	GetMenuItem(ctx context.Context, id int) (*MenuItem, error)

	SaveShoppingList(ctx context.Context, l *ShoppingList) error
	GetShoppingList(ctx context.Context, id string) (*ShoppingList, error)

	Ping(ctx context.Context) error
	Close() error
}

func cloneRecipe(r *Recipe) *Recipe {
	c := *r
	c.Ingredients = append([]RecipeIngredient(nil), r.Ingredients...)
	return &c
}

func cloneShoppingList(l *ShoppingList) *ShoppingList {
	c := *l
	c.SourceRecipeIDs = append([]string(nil), l.SourceRecipeIDs...)
	c.Lines = append([]ingredient.Line(nil), l.Lines...)
	return &c
}
