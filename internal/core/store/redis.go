package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"recipe-consolidator/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis 實作；每筆資料以 JSON 存成一個 key，
// 食譜另外以建立時間為分數記在 sorted set 中供列表使用。
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 創建 Redis 儲存並測試連線；prefix 加在每個 key 前面
func NewRedisStore(ctx context.Context, opts *redis.Options, prefix string) (*RedisStore, error) {
	if opts == nil {
		return nil, errors.New("redis options are required")
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 儲存已連線",
		zap.String("addr", opts.Addr),
		zap.Int("db", opts.DB),
		zap.String("prefix", prefix),
	)

	return NewRedisStoreWithClient(client, prefix), nil
}

// NewRedisStoreWithClient 使用既有的 client
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) recipeKey(id string) string { return s.prefix + "recipe:" + id }
func (s *RedisStore) recipeIndexKey() string { return s.prefix + "recipes" }
func (s *RedisStore) menuItemKey(id int) string { return s.prefix + "menu_item:" + strconv.Itoa(id) }
func (s *RedisStore) shoppingListKey(id string) string { return s.prefix + "shopping_list:" + id }

func (s *RedisStore) SaveRecipe(ctx context.Context, r *Recipe) error {
	if r == nil || r.ID == "" {
		return errors.New("recipe id is required")
	}
	data, err := common.ToJSON(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.recipeKey(r.ID), data, 0)
		pipe.ZAddNX(ctx, s.recipeIndexKey(), &redis.Z{
			Score:  float64(r.CreatedAt.UnixNano()),
			Member: r.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

func (s *RedisStore) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	var r Recipe
	if err := s.getJSON(ctx, s.recipeKey(id), &r); err != nil {
		return nil, fmt.Errorf("recipe %s: %w", id, err)
	}
	return &r, nil
}

// ListRecipes 依建立時間排序；索引中已不存在的食譜會被略過
func (s *RedisStore) ListRecipes(ctx context.Context) ([]*Recipe, error) {
	ids, err := s.client.ZRange(ctx, s.recipeIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	if len(ids) == 0 {
		return []*Recipe{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.recipeKey(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	out := make([]*Recipe, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			common.LogWarn("Recipe index entry without data", zap.String("id", ids[i]))
			continue
		}
		var r Recipe
		if err := common.ParseJSONBytes([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe %s: %w", ids[i], err)
		}
		out = append(out, &r)
	}
	return out, nil
}

func (s *RedisStore) SaveMenuItem(ctx context.Context, m *MenuItem) error {
	if m == nil || m.ID <= 0 {
		return errors.New("menu item id must be positive")
	}
	return s.setJSON(ctx, s.menuItemKey(m.ID), m)
}

func (s *RedisStore) GetMenuItem(ctx context.Context, id int) (*MenuItem, error) {
	var m MenuItem
	if err := s.getJSON(ctx, s.menuItemKey(id), &m); err != nil {
		return nil, fmt.Errorf("menu item %d: %w", id, err)
	}
	return &m, nil
}

func (s *RedisStore) SaveShoppingList(ctx context.Context, l *ShoppingList) error {
	if l == nil || l.ID == "" {
		return errors.New("shopping list id is required")
	}
	return s.setJSON(ctx, s.shoppingListKey(l.ID), l)
}

func (s *RedisStore) GetShoppingList(ctx context.Context, id string) (*ShoppingList, error) {
	var l ShoppingList
	if err := s.getJSON(ctx, s.shoppingListKey(id), &l); err != nil {
		return nil, fmt.Errorf("shopping list %s: %w", id, err)
	}
	return &l, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v interface{}) error {
	data, err := common.ToJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) getJSON(ctx context.Context, key string, v interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}
