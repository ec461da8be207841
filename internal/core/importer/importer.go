package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-consolidator/internal/pkg/common"
)

// DocumentFetcher 下載遠端食譜文件
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (RemoteDocument, error)
}

// Importer 依來源格式分派到文字或 CSV 解析器
type Importer struct {
	fetcher  DocumentFetcher
	maxBytes int64
}

// New 創建匯入器；fetcher 為 nil 時不支援 url 來源，maxBytes <= 0 表示不限制大小
func New(fetcher DocumentFetcher, maxBytes int64) *Importer {
	return &Importer{
		fetcher:  fetcher,
		maxBytes: maxBytes,
	}
}

// Import 解析一份食譜文件
func (i *Importer) Import(ctx context.Context, src Source) (doc Document, err error) {
	start := time.Now()
	defer func() {
		common.LogImport(string(src.Format), doc.Name, len(doc.Ingredients), len(doc.Skipped), time.Since(start), err)
	}()

	format := src.Format
	if format == "" {
		format = FormatAuto
	}

	switch format {
	case FormatText, FormatTextFile:
		return i.parse(src.Text, src.FileName, false)
	case FormatCSV:
		return i.parse(src.Text, src.FileName, true)
	case FormatAuto:
		if src.URL != "" && src.Text == "" {
			return i.importURL(ctx, src.URL)
		}
		return i.parse(src.Text, src.FileName, isCSVFile(src.FileName))
	case FormatURL:
		return i.importURL(ctx, src.URL)
	default:
		return Document{}, common.NewParseError(fmt.Sprintf("unsupported import format %q", format), nil)
	}
}

func (i *Importer) importURL(ctx context.Context, url string) (Document, error) {
	if i.fetcher == nil {
		return Document{}, common.NewValidationError("recipe URL import is not enabled")
	}
	if strings.TrimSpace(url) == "" {
		return Document{}, common.NewValidationError("recipe URL is required")
	}

	remote, err := i.fetcher.Fetch(ctx, url)
	if err != nil {
		return Document{}, err
	}

	asCSV := isCSVFile(remote.FileName) || strings.Contains(strings.ToLower(remote.ContentType), "csv")
	doc, err := i.parse(remote.Body, remote.FileName, asCSV)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (i *Importer) parse(text, fileName string, asCSV bool) (Document, error) {
	if i.maxBytes > 0 && int64(len(text)) > i.maxBytes {
		return Document{}, common.NewParseError(
			fmt.Sprintf("recipe document exceeds %d bytes", i.maxBytes), common.ErrDocumentTooLarge)
	}

	if asCSV {
		return ParseCSV(strings.NewReader(text), fileName)
	}

	doc, err := ParseText(text)
	if err != nil {
		return Document{}, err
	}
	if fileName != "" {
		doc.Format = FormatTextFile
	}
	return doc, nil
}

func isCSVFile(fileName string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(fileName)), ".csv")
}
