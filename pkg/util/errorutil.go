package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes surfaced to clients.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidInput = "INVALID_INPUT"
	CodeInternal     = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidInput(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidInput, message, http.StatusBadRequest, details)
}

// NewNotFound builds "<resource> not found".
func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Anything that is not
// already a DomainError is treated as internal.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err).(*DomainError)
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// CodeOf returns the stable code of err, or "" when err is nil.
func CodeOf(err error) string {
	if de := ToDomainError(err); de != nil {
		return de.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
