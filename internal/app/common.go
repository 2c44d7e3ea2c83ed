package app

import (
	"errors"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/repository"
)

// ErrorCode classifies use-case failures for the outer surfaces.
type ErrorCode string

const (
	ErrCodeMalformedIdentifier    ErrorCode = "MALFORMED_IDENTIFIER"
	ErrCodeInvalidValue           ErrorCode = "INVALID_VALUE"
	ErrCodeNotAuthenticated       ErrorCode = "NOT_AUTHENTICATED"
	ErrCodePersistenceUnavailable ErrorCode = "PERSISTENCE_UNAVAILABLE"
	ErrCodeNotFound               ErrorCode = "NOT_FOUND"
	ErrCodeInternal               ErrorCode = "INTERNAL"
)

// CodeOf maps an error chain onto its ErrorCode.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMalformedIdentifier):
		return ErrCodeMalformedIdentifier
	case errors.Is(err, domain.ErrInvalidDomainValue):
		return ErrCodeInvalidValue
	case errors.Is(err, domain.ErrNotAuthenticated):
		return ErrCodeNotAuthenticated
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		return ErrCodePersistenceUnavailable
	case errors.Is(err, repository.ErrNotFound):
		return ErrCodeNotFound
	default:
		return ErrCodeInternal
	}
}

// Recoverable reports whether the caller may retry err unchanged.
func Recoverable(err error) bool {
	return CodeOf(err) == ErrCodePersistenceUnavailable
}
