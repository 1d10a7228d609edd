package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals a malformed or out-of-range request.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized signals a missing or invalid identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden signals an identity lacking the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrUpstream signals an unreachable search engine or profile store.
	ErrUpstream = errors.New("upstream unavailable")
)

// ValidationError wraps ErrValidation with a per-field detail map.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, detail string) error {
	return &ValidationError{Fields: map[string]string{field: detail}}
}

// NewValidationErrors creates a validation error from a field detail map.
func NewValidationErrors(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// WrapUpstream marks err as an upstream availability failure.
func WrapUpstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}
