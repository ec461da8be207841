package importer

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"recipe-consolidator/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FetcherConfig 遠端文件下載設定
type FetcherConfig struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// RemoteDocument 下載到的食譜文件
type RemoteDocument struct {
	Body        string
	FileName    string
	ContentType string
}

// Fetcher 以 HTTP 下載食譜文件
type Fetcher struct {
	client   *resty.Client
	maxBytes int64
}

// NewFetcher 創建遠端文件下載器
func NewFetcher(cfg FetcherConfig) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/plain, text/csv, */*")

	return &Fetcher{
		client:   client,
		maxBytes: cfg.MaxBytes,
	}
}

// Fetch 下載指定 URL 的文件
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (RemoteDocument, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return RemoteDocument{}, common.NewParseError("invalid recipe URL", err)
	}

	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(u.String())
	if err != nil {
		common.LogWarn("Recipe download failed",
			zap.String("url", u.Redacted()),
			zap.Error(err),
		)
		// 請求本身逾時或被取消不是 URL 的問題
		if ctx.Err() != nil {
			return RemoteDocument{}, fmt.Errorf("fetch recipe: %w", ctx.Err())
		}
		return RemoteDocument{}, common.NewParseError("could not download recipe URL", err)
	}

	raw := resp.RawBody()
	if raw != nil {
		defer raw.Close()
	}

	if resp.IsError() {
		common.LogWarn("Recipe download returned error status",
			zap.String("url", u.Redacted()),
			zap.Int("status", resp.StatusCode()),
		)
		return RemoteDocument{}, common.NewParseError(
			fmt.Sprintf("recipe URL returned status %d", resp.StatusCode()), nil)
	}

	body, err := f.readBody(raw)
	if err != nil {
		return RemoteDocument{}, err
	}

	common.LogDebug("Recipe downloaded",
		zap.String("url", u.Redacted()),
		zap.Int("bytes", len(body)),
		zap.Duration("latency", time.Since(start)),
	)

	fileName := path.Base(u.Path)
	if fileName == "/" || fileName == "." {
		fileName = ""
	}

	return RemoteDocument{
		Body:        string(body),
		FileName:    fileName,
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}

// readBody 最多讀取 maxBytes+1 位元組，超過即視為文件過大
func (f *Fetcher) readBody(raw io.Reader) ([]byte, error) {
	if raw == nil {
		return nil, nil
	}

	r := raw
	if f.maxBytes > 0 {
		r = io.LimitReader(raw, f.maxBytes+1)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, common.NewParseError("could not read recipe URL response", err)
	}
	if f.maxBytes > 0 && int64(len(body)) > f.maxBytes {
		return nil, common.NewParseError(
			fmt.Sprintf("recipe document exceeds %d bytes", f.maxBytes), common.ErrDocumentTooLarge)
	}
	return body, nil
}
