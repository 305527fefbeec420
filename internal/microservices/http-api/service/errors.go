package service

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrAuthenticationFailed = errors.New("no active account found with the given credentials")
	ErrPermissionDenied     = errors.New("you do not have permission to perform this action")
	ErrDuplicateReview      = errors.New("only one review is allowed")
	ErrSlugTaken            = errors.New("slug already in use")
	ErrUsernameTaken        = errors.New("username already in use")
	ErrEmailTaken           = errors.New("email already in use")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrUnknownGenre         = errors.New("unknown genre")
)

// ValidationError carries the per-field messages returned to the client.
// It unwraps to the sentinel that caused it, if any.
type ValidationError struct {
	Fields map[string]string
	cause  error
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// NewValidationError wraps field messages that have no sentinel.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func invalid(cause error, field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}, cause: cause}
}

// notFound maps a missing row to ErrNotFound and leaves other errors alone.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
