package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// stubTokenProvider reports a fixed authentication state.
type stubTokenProvider struct {
	authenticated bool
}

func (p *stubTokenProvider) GetToken(_ context.Context) (string, error) {
	if !p.authenticated {
		return "", domain.ErrAuthRequired
	}
	return "token", nil
}

func (p *stubTokenProvider) IsAuthenticated() bool {
	return p.authenticated
}

func TestAuthService_SetAPIKey(t *testing.T) {
	settings := newStubSettings()
	service := NewAuthService(settings, nil)

	err := service.SetAPIKey("  dt_live_abc123  ")

	require.NoError(t, err)
	assert.Equal(t, "dt_live_abc123", settings.settings.Registry.APIKey)
}

func TestAuthService_SetAPIKey_Empty(t *testing.T) {
	service := NewAuthService(newStubSettings(), nil)

	err := service.SetAPIKey("   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthService_Status(t *testing.T) {
	settings := newStubSettings()
	settings.settings.Registry.APIKey = "dt_live_abc123"
	settings.settings.Registry.BaseURL = "https://api.dealtrack.example.com"
	service := NewAuthService(settings, &stubTokenProvider{authenticated: true})

	status, err := service.Status()

	require.NoError(t, err)
	assert.True(t, status.RegistryConfigured)
	assert.Equal(t, "https://api.dealtrack.example.com", status.RegistryBaseURL)
	assert.True(t, status.StoreAuthenticated)
}

func TestAuthService_Status_Unconfigured(t *testing.T) {
	service := NewAuthService(newStubSettings(), nil)

	status, err := service.Status()

	require.NoError(t, err)
	assert.False(t, status.RegistryConfigured)
	assert.False(t, status.StoreAuthenticated)
}
