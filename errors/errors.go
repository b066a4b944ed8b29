package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Domain errors
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"

	// Gateway errors
	ErrCodeGateway ErrorCode = "GATEWAY_ERROR"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// Storage errors
	ErrCodeDBError   ErrorCode = "DB_ERROR"
	ErrCodeAtomicity ErrorCode = "ATOMICITY_VIOLATION"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func hasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// IsNotFound kiểm tra lỗi không tìm thấy entity
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsInvalidState kiểm tra lỗi sai trạng thái chuyển đổi
func IsInvalidState(err error) bool {
	return hasCode(err, ErrCodeInvalidState)
}

// IsGateway kiểm tra lỗi từ cổng thanh toán
func IsGateway(err error) bool {
	return hasCode(err, ErrCodeGateway)
}

// IsValidation kiểm tra lỗi dữ liệu đầu vào
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation) || hasCode(err, ErrCodeInvalidAmount)
}
