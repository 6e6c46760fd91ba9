package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error taxonomy of the reservation/invoice core. Validation is checked
// before any write; conflict checks are read-then-decide and advisory only.

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Resource string }

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Resource) }

type ExternalServiceError struct{ Err error }

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service failure: %v", e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// RespondWithError maps the taxonomy onto HTTP status codes and emits the
// standard JSON envelope. Unclassified errors are treated as internal.
func RespondWithError(c *gin.Context, err error) {
	var (
		ve *ValidationError
		ce *ConflictError
		ne *NotFoundError
		xe *ExternalServiceError
	)

	switch {
	case errors.As(err, &ve):
		RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &ce):
		RespondError(c, http.StatusConflict, err)
	case errors.As(err, &ne):
		RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &xe):
		RespondError(c, http.StatusBadGateway, err)
	default:
		RespondError(c, http.StatusInternalServerError, err)
	}
}
