// Package contract re-exports the request and response types shared by the
// CLI and HTTP surfaces.
package contract

import "github.com/alexanderramin/etude/internal/app"

type ErrorCode = app.ErrorCode

const (
	ErrCodeMalformedIdentifier    ErrorCode = app.ErrCodeMalformedIdentifier
	ErrCodeInvalidValue           ErrorCode = app.ErrCodeInvalidValue
	ErrCodeNotAuthenticated       ErrorCode = app.ErrCodeNotAuthenticated
	ErrCodePersistenceUnavailable ErrorCode = app.ErrCodePersistenceUnavailable
	ErrCodeNotFound               ErrorCode = app.ErrCodeNotFound
	ErrCodeInternal               ErrorCode = app.ErrCodeInternal
)

var CodeOf = app.CodeOf
