package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"error"`             // 錯誤信息
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
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓 errors.Is 可以對預定義錯誤使用
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
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

// Wrap 以預定義錯誤包裝原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// ValidationError 表示驗證錯誤
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
	var v *ValidationError
	return errors.As(err, &v)
}

// ToResponse 將任意錯誤轉為 HTTP 狀態碼與響應內容
func ToResponse(err error) (int, ErrorResponse) {
	var ce *CustomError
	switch {
	case errors.As(err, &ce):
		return ce.Status, ErrorResponse{Code: ce.Code, Message: ce.Message}
	case IsValidationError(err):
		return http.StatusBadRequest, ErrorResponse{Code: ErrCodeInvalidRequest, Message: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Code: ErrCodeInternalError, Message: ErrInternalError.Message}
	}
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodeTooLarge        = "PAYLOAD_TOO_LARGE" // 413
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504

	// 業務錯誤
	ErrCodeListNotFound      = "LIST_NOT_FOUND"
	ErrCodeQueueFull         = "QUEUE_FULL"
	ErrCodeExtractDisabled   = "EXTRACT_DISABLED"
	ErrCodeExtractFailed     = "EXTRACT_FAILED"
	ErrCodeStorageDisabled   = "STORAGE_DISABLED"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrConflict        = NewError(ErrCodeConflict, "重複的請求", http.StatusConflict, nil)
	ErrTooLarge        = NewError(ErrCodeTooLarge, "請求內容過大", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "網關超時", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrListNotFound      = NewError(ErrCodeListNotFound, "購物清單不存在", http.StatusNotFound, nil)
	ErrQueueFull         = NewError(ErrCodeQueueFull, "解析佇列已滿", http.StatusServiceUnavailable, nil)
	ErrExtractDisabled   = NewError(ErrCodeExtractDisabled, "食材擷取服務未啟用", http.StatusServiceUnavailable, nil)
	ErrExtractFailed     = NewError(ErrCodeExtractFailed, "食材擷取失敗", http.StatusBadGateway, nil)
	ErrStorageDisabled   = NewError(ErrCodeStorageDisabled, "清單儲存未啟用", http.StatusServiceUnavailable, nil)
	ErrUnsupportedFormat = NewError(ErrCodeUnsupportedFormat, "不支援的匯出格式", http.StatusBadRequest, nil)
)
