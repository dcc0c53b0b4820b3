package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/poiesic/mailsift/extract"
	"github.com/poiesic/mailsift/ingest"
	"github.com/poiesic/mailsift/storage"
)

// AppError represents a request-handling error with an HTTP status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapError maps a pipeline or storage error to an AppError with an
// appropriate HTTP status code.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, ingest.ErrNoContent) {
		return NewAppError(http.StatusBadRequest, "No email content provided", err)
	}
	if errors.Is(err, extract.ErrUnsupportedFormat) {
		return NewAppError(http.StatusBadRequest, "Unsupported file type", err)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return NewAppError(http.StatusNotFound, "Record not found", err)
	}

	return NewAppError(http.StatusInternalServerError, "Error processing email", err)
}
