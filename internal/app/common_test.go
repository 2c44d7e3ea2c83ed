package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/alexanderramin/etude/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{nil, ""},
		{fmt.Errorf("parse: %w", domain.ErrMalformedIdentifier), ErrCodeMalformedIdentifier},
		{fmt.Errorf("%w: bpm -1", domain.ErrInvalidDomainValue), ErrCodeInvalidValue},
		{domain.ErrNotAuthenticated, ErrCodeNotAuthenticated},
		{fmt.Errorf("%w: saving: disk", domain.ErrPersistenceUnavailable), ErrCodePersistenceUnavailable},
		{fmt.Errorf("log x: %w", repository.ErrNotFound), ErrCodeNotFound},
		{errors.New("boom"), ErrCodeInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CodeOf(tc.err), "%v", tc.err)
	}
}

func TestRecoverable(t *testing.T) {
	assert.True(t, Recoverable(fmt.Errorf("%w: x", domain.ErrPersistenceUnavailable)))
	assert.False(t, Recoverable(domain.ErrNotAuthenticated))
}
