// Package preview 保存兩段式匯入的預覽：先解析、檢視與修改，再儲存為食譜。
package preview

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"recipe-consolidator/internal/core/importer"
	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/pkg/common"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// ErrPreviewNotFound 預覽不存在或已過期
var ErrPreviewNotFound = errors.New("import preview not found or expired")

// Preview 匯入預覽
type Preview struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Format      importer.Format       `json:"format"`
	Ingredients []ingredient.Record   `json:"ingredients"`
	Skipped     []importer.SkippedRow `json:"skipped,omitempty"`
	Text        string                `json:"preview"`
	CreatedAt   time.Time             `json:"created_at"`
	ExpiresAt   time.Time             `json:"expires_at"`
}

// Cache 預覽快取
type Cache struct {
	items *cache.Cache
	ttl   time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// New 創建預覽快取
func New(ttl, cleanupInterval time.Duration) *Cache {
	c := &Cache{
		items: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}

	common.LogInfo("預覽快取已初始化",
		zap.Duration("存活時間", ttl),
		zap.Duration("清理間隔", cleanupInterval),
	)

	return c
}

// Put 保存解析結果並回傳新的預覽
func (c *Cache) Put(doc importer.Document) Preview {
	now := time.Now()
	p := Preview{
		ID:          common.GenerateUUID(),
		Name:        doc.Name,
		Format:      doc.Format,
		Ingredients: cloneRecords(doc.Ingredients),
		Skipped:     append([]importer.SkippedRow(nil), doc.Skipped...),
		CreatedAt:   now,
		ExpiresAt:   now.Add(c.ttl),
	}
	p.Text = FormatPreview(p.Ingredients)

	c.items.Set(p.ID, p, cache.DefaultExpiration)

	common.LogDebug("預覽已儲存",
		zap.String("id", p.ID),
		zap.Int("ingredients", len(p.Ingredients)),
	)

	return p
}

// Get 讀取預覽
func (c *Cache) Get(id string) (Preview, error) {
	v, ok := c.items.Get(id)
	if !ok {
		c.misses.Add(1)
		return Preview{}, fmt.Errorf("preview %s: %w", id, ErrPreviewNotFound)
	}
	c.hits.Add(1)

	p := v.(Preview)
	p.Ingredients = cloneRecords(p.Ingredients)
	return p, nil
}

// Update 以修改後的食材取代預覽內容並重設存活時間。
// 名稱為空的食材會被移除，單位收斂為標準單位。
func (c *Cache) Update(id string, name string, ingredients []ingredient.Record) (Preview, error) {
	p, err := c.Get(id)
	if err != nil {
		return Preview{}, err
	}

	if name = strings.TrimSpace(name); name != "" {
		p.Name = name
	}
	p.Ingredients = sanitize(ingredients)
	p.Skipped = nil
	p.Text = FormatPreview(p.Ingredients)
	p.ExpiresAt = time.Now().Add(c.ttl)

	if err := c.items.Replace(id, p, cache.DefaultExpiration); err != nil {
		// 讀取後到寫入前過期
		return Preview{}, fmt.Errorf("preview %s: %w", id, ErrPreviewNotFound)
	}

	return p, nil
}

// Delete 移除預覽
func (c *Cache) Delete(id string) {
	c.items.Delete(id)
}

// Len 目前保存的預覽數量（包含尚未清理的過期項目）
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// GetStats 取得快取統計
func (c *Cache) GetStats() map[string]interface{} {
	hits, misses := c.hits.Load(), c.misses.Load()
	ratio := 0.0
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}
	return map[string]interface{}{
		"size":      c.items.ItemCount(),
		"hits":      hits,
		"misses":    misses,
		"hit_ratio": ratio,
	}
}

// Close 清空快取
func (c *Cache) Close() error {
	c.items.Flush()
	common.LogInfo("預覽快取已關閉",
		zap.Int64("命中次數", c.hits.Load()),
		zap.Int64("未命中次數", c.misses.Load()),
	)
	return nil
}

// FormatPreview 產生預覽文字，每個食材一行：• 名稱 - 數量 單位
func FormatPreview(ingredients []ingredient.Record) string {
	lines := make([]string, 0, len(ingredients))
	for _, r := range ingredients {
		lines = append(lines, fmt.Sprintf("• %s - %s %s", r.Name, common.FormatQuantity(r.Quantity), r.Unit))
	}
	return strings.Join(lines, "\n")
}

func cloneRecords(in []ingredient.Record) []ingredient.Record {
	out := make([]ingredient.Record, len(in))
	copy(out, in)
	return out
}

func sanitize(in []ingredient.Record) []ingredient.Record {
	out := make([]ingredient.Record, 0, len(in))
	for _, r := range in {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		q := r.Quantity
		if q < 0 {
			q = 0
		}
		out = append(out, ingredient.Record{
			Name:     name,
			Quantity: q,
			Unit:     ingredient.CanonicalizeUnit(string(r.Unit)),
			Notes:    strings.TrimSpace(r.Notes),
		})
	}
	return out
}
