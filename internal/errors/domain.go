package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies domain errors so the transport layer can map them to
// status codes without inspecting messages.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindValidation Kind = "VALIDATION"
	KindDependency Kind = "DEPENDENCY"
)

// DomainError is an error raised by the service layer. Field is set for
// validation and dependency errors to point at the offending input.
type DomainError struct {
	Kind    Kind
	Message string
	Field   string
}

func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewNotFound creates a NotFound domain error.
func NewNotFound(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflict creates a Conflict domain error.
func NewConflict(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NewValidation creates a Validation domain error for the given field.
func NewValidation(field, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NewDependency creates a Dependency domain error: a referenced entity does
// not exist.
func NewDependency(field, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindDependency, Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}

// RespondWithDomainError maps a service error onto the HTTP response.
// NotFound becomes 404, Conflict 409, Validation and Dependency 400;
// anything else is treated as an internal error.
func RespondWithDomainError(c *gin.Context, err error) {
	var de *DomainError
	if !errors.As(err, &de) {
		InternalError(c, "")
		return
	}

	apiErr := &APIError{Message: de.Message}
	if de.Field != "" {
		apiErr.Details = gin.H{"field": de.Field}
	}

	switch de.Kind {
	case KindNotFound:
		apiErr.Code = ErrCodeNotFound
		RespondWithError(c, http.StatusNotFound, apiErr)
	case KindConflict:
		apiErr.Code = ErrCodeConflict
		RespondWithError(c, http.StatusConflict, apiErr)
	case KindValidation:
		apiErr.Code = ErrCodeInvalidInput
		RespondWithError(c, http.StatusBadRequest, apiErr)
	case KindDependency:
		apiErr.Code = ErrCodeDependency
		RespondWithError(c, http.StatusBadRequest, apiErr)
	default:
		InternalError(c, "")
	}
}
