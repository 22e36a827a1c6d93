package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// HTTP-facing failures.
var (
	ErrNoRunAvailable   = NewAPIError(http.StatusNotFound, CodeNoRunAvailable)
	ErrUnauthorized     = NewAPIError(http.StatusUnauthorized, CodeUnauthorized)
	ErrInvalidParameter = NewAPIError(http.StatusBadRequest, CodeInvalidParameter)
	ErrDatabase         = NewAPIError(http.StatusInternalServerError, CodeDatabaseError)
	ErrTooManyRequests  = NewAPIError(http.StatusTooManyRequests, CodeTooManyRequests)
)

// ErrCommandTimeout is retryable on the write path.
var ErrCommandTimeout = fmt.Errorf("%w: command timed out", ErrDatabase)

var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrBrokerConnection = errors.New("broker connection failure")
	ErrPoolClosed       = errors.New("executor pool is closed")
)

// WrapDatabase tags a store failure so callers can match it with errors.Is.
func WrapDatabase(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrDatabase, err)
}

// HTTPStatus maps an error to the status code returned to clients.
func HTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return http.StatusInternalServerError
}

// PublicCode is the error code exposed in response bodies. Server errors never leak their cause.
func PublicCode(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code < http.StatusInternalServerError {
		return apiErr.Message
	}
	return CodeInternalServerError
}
