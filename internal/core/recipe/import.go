package recipe

import (
	"context"
	"fmt"
	"time"

	"recipe-consolidator/internal/core/importer"
	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/core/preview"
	"recipe-consolidator/internal/core/store"
	"recipe-consolidator/internal/pkg/common"

	"go.uber.org/zap"
)

// ImportResult 一次匯入的結果
type ImportResult struct {
	Recipe  *store.Recipe         `json:"recipe"`
	Skipped []importer.SkippedRow `json:"skipped,omitempty"`
}

func (s *Service) parse(ctx context.Context, src importer.Source) (importer.Document, error) {
	format := src.Format
	if format == "" {
		format = importer.FormatAuto
	}

	start := time.Now()
	doc, err := s.importer.Import(ctx, src)
	s.metrics.ObserveImport(string(format), len(doc.Skipped), time.Since(start), err)
	return doc, err
}

// ImportRecipe 匯入並直接儲存食譜
func (s *Service) ImportRecipe(ctx context.Context, src importer.Source, servings int) (*ImportResult, error) {
	doc, err := s.parse(ctx, src)
	if err != nil {
		return nil, err
	}

	r := s.newRecipe(doc.Name, servings, doc.Ingredients)
	if err := s.store.SaveRecipe(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	common.LogInfo("食譜已匯入",
		zap.String("recipe_id", r.ID),
		zap.String("name", r.Name),
		zap.Int("ingredients", len(r.Ingredients)),
	)

	return &ImportResult{Recipe: r, Skipped: doc.Skipped}, nil
}

// PreviewImport 解析文件並保存為預覽，尚不建立食譜
func (s *Service) PreviewImport(ctx context.Context, src importer.Source) (preview.Preview, error) {
	doc, err := s.parse(ctx, src)
	if err != nil {
		return preview.Preview{}, err
	}
	return s.previews.Put(doc), nil
}

// GetPreview 讀取預覽
func (s *Service) GetPreview(_ context.Context, id string) (preview.Preview, error) {
	return s.previews.Get(id)
}

// UpdatePreview 以使用者修改後的食材取代預覽內容；name 為空時保留原名稱
func (s *Service) UpdatePreview(_ context.Context, id, name string, ingredients []ingredient.Record) (preview.Preview, error) {
	return s.previews.Update(id, name, ingredients)
}

// SavePreview 將預覽儲存為食譜並移除預覽；servings 小於 1 時使用預設份數
func (s *Service) SavePreview(ctx context.Context, id string, servings int) (*store.Recipe, error) {
	p, err := s.previews.Get(id)
	if err != nil {
		return nil, err
	}

	r := s.newRecipe(p.Name, servings, p.Ingredients)
	if err := s.store.SaveRecipe(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	s.previews.Delete(id)

	common.LogInfo("預覽已儲存為食譜",
		zap.String("preview_id", id),
		zap.String("recipe_id", r.ID),
		zap.Int("ingredients", len(r.Ingredients)),
	)

	return r, nil
}
