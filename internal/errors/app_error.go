package errors

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeDatabaseError = "DATABASE_ERROR"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// IsNotFound reports whether err is (or wraps) a NOT_FOUND AppError.
func IsNotFound(err error) bool {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Code == ErrCodeNotFound
	}

	return false
}
