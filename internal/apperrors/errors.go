package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindAuth       Kind = "AUTH"
	KindForbidden  Kind = "FORBIDDEN"
	KindConflict   Kind = "CONFLICT"
	KindNotFound   Kind = "NOT_FOUND"
	KindInternal   Kind = "INTERNAL"
)

// InternalMessage is the only text clients ever see for internal failures.
const InternalMessage = "Internal server error"

// AppError is an error that knows which HTTP status it maps to.
type AppError struct {
	Kind       Kind   `json:"-"`
	Message    string `json:"error"`
	HTTPStatus int    `json:"-"`
	cause      error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string, httpStatus int) *AppError {
	return &AppError{
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Validation(message string) *AppError {
	return New(KindValidation, message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return New(KindAuth, message, http.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, message, http.StatusForbidden)
}

func Conflict(message string) *AppError {
	return New(KindConflict, message, http.StatusConflict)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message, http.StatusNotFound)
}

// Internal wraps err; the cause is kept for logs and hidden from clients.
func Internal(err error) *AppError {
	e := New(KindInternal, InternalMessage, http.StatusInternalServerError)
	e.cause = err
	return e
}

// As extracts an *AppError from err, if there is one in the chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
