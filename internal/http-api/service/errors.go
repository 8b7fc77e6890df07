package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"yamdb/internal/permission"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrUnauthenticated         = errors.New("authentication credentials were not provided")
	ErrForbidden               = errors.New("you do not have permission to perform this action")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
)

// NonFieldErrors is the key for validation errors not tied to one field.
const NonFieldErrors = "non_field_errors"

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// errOrNil returns nil for an empty ValidationError.
func (e *ValidationError) errOrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// decisionError converts a permission decision into the service error set.
func decisionError(d permission.Decision) error {
	switch d {
	case permission.Allow:
		return nil
	case permission.Unauthenticated:
		return ErrUnauthenticated
	default:
		return ErrForbidden
	}
}
