package domain

import "errors"

var (
	// ErrMalformedIdentifier is returned when an ID string does not parse
	// into exactly one tuple of its family.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrNotAuthenticated is returned when a mutation is attempted without
	// a bound user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPersistenceUnavailable wraps failures of the backing store.
	// Callers may retry; local state is left as it was before the call.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrInvalidDomainValue is returned for a value outside its enum's closed set.
	ErrInvalidDomainValue = errors.New("invalid domain value")
)
