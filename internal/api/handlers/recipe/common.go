package recipe

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"recipe-consolidator/internal/core/importer"
	"recipe-consolidator/internal/pkg/common"
)

const utf8BOM = "\ufeff"

// ImportRequest 匯入請求：text、file_data（base64）或 url 擇一
type ImportRequest struct {
	Format   string `json:"format,omitempty"`    // text | text_file | csv | url | auto
	Text     string `json:"text,omitempty"`      // 直接貼上的食譜文字
	FileData string `json:"file_data,omitempty"` // base64 編碼的上傳檔案
	FileName string `json:"file_name,omitempty"` // 上傳檔名，CSV 以此為食譜名稱
	URL      string `json:"url,omitempty"`       // 遠端食譜網址
	Servings int    `json:"servings,omitempty"`  // 份數，省略時使用預設值
}

// Source 轉為匯入來源；上傳檔案會先解碼並檢查是否為 UTF-8 文字
func (r ImportRequest) Source() (importer.Source, error) {
	src := importer.Source{
		Format:   importer.Format(strings.ToLower(strings.TrimSpace(r.Format))),
		Text:     r.Text,
		FileName: strings.TrimSpace(r.FileName),
		URL:      strings.TrimSpace(r.URL),
	}

	if r.FileData != "" {
		text, err := decodeFileData(r.FileData)
		if err != nil {
			return importer.Source{}, err
		}
		src.Text = text
		if src.Format == importer.FormatText {
			src.Format = importer.FormatTextFile
		}
	}

	if strings.TrimSpace(src.Text) == "" && src.URL == "" {
		return importer.Source{}, common.NewValidationError("one of text, file_data or url is required")
	}
	if src.URL != "" && src.Format == "" {
		src.Format = importer.FormatURL
	}

	return src, nil
}

// decodeFileData 解碼 base64（可帶 data URI 前綴）並確認內容為 UTF-8
func decodeFileData(data string) (string, error) {
	data = strings.TrimSpace(data)
	if strings.HasPrefix(data, "data:") {
		if i := strings.Index(data, ";base64,"); i >= 0 {
			data = data[i+len(";base64,"):]
		}
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", common.NewParseError("file_data is not valid base64", common.ErrInvalidDocument)
	}
	if !utf8.Valid(raw) {
		return "", common.NewParseError("uploaded file is not UTF-8 text", common.ErrInvalidDocument)
	}

	return strings.TrimPrefix(string(raw), utf8BOM), nil
}
