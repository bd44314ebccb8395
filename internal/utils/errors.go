package utils

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorCodeInvalidLinkFormat ErrorCode = "INVALID_LINK_FORMAT"
	ErrorCodeExtractionFailed  ErrorCode = "EXTRACTION_FAILED"
	ErrorCodeDownloadFailed    ErrorCode = "DOWNLOAD_FAILED"
	ErrorCodeFileTooLarge      ErrorCode = "FILE_TOO_LARGE"
	ErrorCodeDeliveryFailed    ErrorCode = "DELIVERY_FAILED"
	ErrorCodeSessionError      ErrorCode = "SESSION_ERROR"
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// AppError classifies a failure at a handler boundary. Cause carries the
// underlying backend error for logging; it is never shown to the user.
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func NewErrorWithCause(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Cause:   cause,
	}
}

// Common error constructors
func NewInvalidLinkError(link string) *AppError {
	err := NewError(ErrorCodeInvalidLinkFormat, "The provided link is not a supported YouTube URL")
	err.Details["provided"] = link
	return err
}

func NewExtractionError(cause error) *AppError {
	return NewErrorWithCause(ErrorCodeExtractionFailed, "Failed to fetch video metadata", cause)
}

func NewDownloadError(cause error) *AppError {
	return NewErrorWithCause(ErrorCodeDownloadFailed, "Failed to download or transcode media", cause)
}

func NewFileTooLargeError(size, limit int64) *AppError {
	err := NewError(ErrorCodeFileTooLarge, "Downloaded file exceeds the upload size limit")
	err.Details["size"] = size
	err.Details["limit"] = limit
	return err
}

func NewDeliveryError(cause error) *AppError {
	return NewErrorWithCause(ErrorCodeDeliveryFailed, "Failed to deliver file to Telegram", cause)
}

func NewSessionError(cause error) *AppError {
	return NewErrorWithCause(ErrorCodeSessionError, "Session store operation failed", cause)
}

func NewInternalError(cause error) *AppError {
	return NewErrorWithCause(ErrorCodeInternalError, "An unexpected error occurred", cause)
}

// ErrorCodeOf returns the classification of err, or INTERNAL_ERROR when err
// is not an AppError.
func ErrorCodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrorCodeInternalError
}
