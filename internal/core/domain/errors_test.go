package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_WrapAndMatch tests that sentinel errors survive wrapping.
func TestErrors_WrapAndMatch(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNoFolderForIdentifier", ErrNoFolderForIdentifier},
		{"ErrRunInProgress", ErrRunInProgress},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
		{"ErrRegistryUnavailable", ErrRegistryUnavailable},
		{"ErrAuditUnavailable", ErrAuditUnavailable},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrAuthInvalid", ErrAuthInvalid},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("resolve folder: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}

// TestErrors_Distinct tests that the sentinels do not match each other.
func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
	assert.False(t, errors.Is(ErrStoreUnavailable, ErrRegistryUnavailable))
	assert.False(t, errors.Is(ErrAuthRequired, ErrAuthInvalid))
}
