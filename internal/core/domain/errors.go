package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrInvalidEventPayload = errors.New("invalid event payload")
)

// Error carries a client-facing message and the kind used to pick the status code.
type Error struct {
	Kind    error
	Message string
}

func NewError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Upstream wraps a failure talking to a sibling service.
func Upstream(service string, err error) *Error {
	return &Error{
		Kind:    ErrUpstreamUnavailable,
		Message: fmt.Sprintf("%s service unavailable: %v", service, err),
	}
}
