// Package importer 將整份食譜文件（純文字或 CSV）轉為有序的食材記錄與食譜名稱。
package importer

import "recipe-consolidator/internal/core/ingredient"

// Format 文件格式
type Format string

const (
	FormatText     Format = "text"
	FormatTextFile Format = "text_file"
	FormatCSV      Format = "csv"
	FormatURL      Format = "url"
	FormatAuto     Format = "auto"
)

// DefaultRecipeName CSV 沒有檔名時使用的食譜名稱
const DefaultRecipeName = "Imported Recipe"

// Document 匯入結果
type Document struct {
	Name        string              `json:"name"`
	Format      Format              `json:"format"`
	Ingredients []ingredient.Record `json:"ingredients"`
	Skipped     []SkippedRow        `json:"skipped,omitempty"`
}

// SkippedRow 被略過的資料列（不會讓整份匯入失敗）
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Source 匯入來源，由上傳端提供已解碼的文字
type Source struct {
	Format   Format `json:"format"`
	Text     string `json:"text,omitempty"`
	FileName string `json:"file_name,omitempty"`
	URL      string `json:"url,omitempty"`
}
