package store

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"recipe-consolidator/internal/core/ingredient"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract 所有 Store 實作共用的行為測試
func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Ping(ctx))

	t.Run("recipes", func(t *testing.T) {
		soup := &Recipe{
			ID:       fmt.Sprintf("soup-%d", time.Now().UnixNano()),
			Name:     "Soup",
			Servings: 4,
			Ingredients: []RecipeIngredient{
				{Record: ingredient.Record{Name: "Water", Quantity: 1, Unit: ingredient.UnitL}, Sequence: 10},
				{Record: ingredient.Record{Name: "Salt", Quantity: 1, Unit: ingredient.UnitTsp, Notes: "coarse"}, Sequence: 20},
			},
			CreatedAt: base.Add(time.Hour),
			UpdatedAt: base.Add(time.Hour),
		}
		bread := &Recipe{
			ID:        fmt.Sprintf("bread-%d", time.Now().UnixNano()),
			Name:      "Bread",
			Servings:  2,
			CreatedAt: base,
			UpdatedAt: base,
		}
		require.NoError(t, s.SaveRecipe(ctx, soup))
		require.NoError(t, s.SaveRecipe(ctx, bread))

		got, err := s.GetRecipe(ctx, soup.ID)
		require.NoError(t, err)
		assert.Equal(t, soup.Name, got.Name)
		assert.Equal(t, soup.Ingredients, got.Ingredients)
		assert.True(t, soup.CreatedAt.Equal(got.CreatedAt))

		got.Ingredients[0].Name = "changed"
		again, err := s.GetRecipe(ctx, soup.ID)
		require.NoError(t, err)
		assert.Equal(t, "Water", again.Ingredients[0].Name)

		list, err := s.ListRecipes(ctx)
		require.NoError(t, err)
		var ids []string
		for _, r := range list {
			if r.ID == soup.ID || r.ID == bread.ID {
				ids = append(ids, r.ID)
			}
		}
		assert.Equal(t, []string{bread.ID, soup.ID}, ids)

		_, err = s.GetRecipe(ctx, "does-not-exist")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.Error(t, s.SaveRecipe(ctx, &Recipe{Name: "no id"}))
	})

	t.Run("menu items", func(t *testing.T) {
		item := &MenuItem{ID: 4242, Name: "Soup Bowl", RecipeID: "soup", ServingSize: 2}
		require.NoError(t, s.SaveMenuItem(ctx, item))

		got, err := s.GetMenuItem(ctx, 4242)
		require.NoError(t, err)
		assert.Equal(t, item, got)

		_, err = s.GetMenuItem(ctx, 999999)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.Error(t, s.SaveMenuItem(ctx, &MenuItem{ID: 0}))
	})

	t.Run("shopping lists", func(t *testing.T) {
		l := &ShoppingList{
			ID:              fmt.Sprintf("list-%d", time.Now().UnixNano()),
			Name:            "Weekly",
			SourceRecipeIDs: []string{"a", "b"},
			Lines: []ingredient.Line{
				{Name: "Rice", Quantity: 3, Unit: ingredient.UnitCup, Sequence: 10},
			},
			Notes:     "pick up friday",
			CreatedAt: base,
		}
		require.NoError(t, s.SaveShoppingList(ctx, l))

		got, err := s.GetShoppingList(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, l.Lines, got.Lines)
		assert.Equal(t, l.SourceRecipeIDs, got.SourceRecipeIDs)
		assert.Equal(t, l.Notes, got.Notes)

		_, err = s.GetShoppingList(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	defer s.Close()

	runStoreContract(t, s)
}

func TestMemoryStore_ListEmpty(t *testing.T) {
	t.Parallel()

	list, err := NewMemoryStore().ListRecipes(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

// 需要實際的 Redis：REDIS_TEST_ADDR=localhost:6379 go test ./internal/core/store/
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := NewRedisStore(ctx, &redis.Options{
		Addr:        addr,
		DB:          15,
		DialTimeout: 2 * time.Second,
	}, fmt.Sprintf("test:%d:", time.Now().UnixNano()))
	require.NoError(t, err)
	defer s.Close()

	runStoreContract(t, s)
}

func TestRedisStoreRequiresOptions(t *testing.T) {
	t.Parallel()

	s, err := NewRedisStore(context.Background(), nil, "recipe:")
	require.Error(t, err)
	assert.Nil(t, s)
}

// store 只依賴核心套件，連線設定由呼叫端組好
func TestStoreDoesNotImportInfrastructure(t *testing.T) {
	t.Parallel()

	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err, name)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			assert.NotContains(t, path, "internal/infrastructure", name)
			assert.NotContains(t, path, "internal/api", name)
		}
	}
}
