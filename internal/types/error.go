package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind tags an APIError with the failure class the caller should react to.
type ErrorKind string

const (
	KindBadRequest    ErrorKind = "bad_request"
	KindAuthorization ErrorKind = "authorization"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindInvalidState  ErrorKind = "invalid_state"
	KindInternal      ErrorKind = "internal"
)

// APIError is the single error type that crosses the service boundary.
// Raw store errors are wrapped as KindInternal so their text never reaches clients.
type APIError struct {
	Kind    ErrorKind `json:"type"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Status maps the error kind to its HTTP status code.
func (e *APIError) Status() int {
	switch e.Kind {
	case KindBadRequest, KindInvalidState:
		return fiber.StatusBadRequest
	case KindAuthorization:
		return fiber.StatusUnauthorized
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func BadRequest(format string, args ...interface{}) *APIError {
	return &APIError{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...interface{}) *APIError {
	return &APIError{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *APIError {
	return &APIError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *APIError {
	return &APIError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...interface{}) *APIError {
	return &APIError{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func Internal(format string, args ...interface{}) *APIError {
	return &APIError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// AsAPIError unwraps err into an *APIError, classifying anything else as internal.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Kind: KindInternal, Message: "Something went wrong."}
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
