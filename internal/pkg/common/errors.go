package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤（由呼叫端產生，例如未選擇任何食譜）
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseError 表示匯入文件無法解析：找不到食譜名稱、CSV 為空或結構損壞
type ParseError struct {
	message string
	Err     error
}

// Error 實現 error 介面
func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.message + ": " + e.Err.Error()
	}
	return e.message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError 創建新的解析錯誤
func NewParseError(message string, err error) error {
	return &ParseError{
		message: message,
		Err:     err,
	}
}

// IsParseError 檢查是否為解析錯誤
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeParseError      = "PARSE_ERROR"       // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError  = "INTERNAL_ERROR"  // 500
	ErrCodeGatewayTimeout = "GATEWAY_TIMEOUT" // 504
)

// 預定義錯誤
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	ErrInternalError = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)

	// 業務錯誤
	ErrInvalidDocument  = NewError("INVALID_DOCUMENT", "無效的食譜文件", http.StatusBadRequest, nil)
	ErrDocumentTooLarge = NewError("DOCUMENT_TOO_LARGE", "食譜文件大小超出限制", http.StatusRequestEntityTooLarge, nil)
	ErrStoreUnavailable = NewError("STORE_UNAVAILABLE", "儲存服務暫時不可用", http.StatusServiceUnavailable, nil)
)
