package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore 記憶體實作，用於開發與測試
type MemoryStore struct {
	mu            sync.RWMutex
	recipes       map[string]*Recipe
	menuItems     map[int]*MenuItem
	shoppingLists map[string]*ShoppingList
}

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recipes:       make(map[string]*Recipe),
		menuItems:     make(map[int]*MenuItem),
		shoppingLists: make(map[string]*ShoppingList),
	}
}

func (s *MemoryStore) SaveRecipe(_ context.Context, r *Recipe) error {
	if r == nil || r.ID == "" {
		return errors.New("recipe id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes[r.ID] = cloneRecipe(r)
	return nil
}

func (s *MemoryStore) GetRecipe(_ context.Context, id string) (*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[id]
	if !ok {
		return nil, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	return cloneRecipe(r), nil
}

// ListRecipes 依建立時間排序
func (s *MemoryStore) ListRecipes(_ context.Context) ([]*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, cloneRecipe(r))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) SaveMenuItem(_ context.Context, m *MenuItem) error {
	if m == nil || m.ID <= 0 {
		return errors.New("menu item id must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *m
	s.menuItems[m.ID] = &c
	return nil
}

func (s *MemoryStore) GetMenuItem(_ context.Context, id int) (*MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.menuItems[id]
	if !ok {
		return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
	}
	c := *m
	return &c, nil
}

func (s *MemoryStore) SaveShoppingList(_ context.Context, l *ShoppingList) error {
	if l == nil || l.ID == "" {
		return errors.New("shopping list id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shoppingLists[l.ID] = cloneShoppingList(l)
	return nil
}

func (s *MemoryStore) GetShoppingList(_ context.Context, id string) (*ShoppingList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.shoppingLists[id]
	if !ok {
		return nil, fmt.Errorf("shopping list %s: %w", id, ErrNotFound)
	}
	return cloneShoppingList(l), nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
