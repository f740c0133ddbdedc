package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-labs/dealsync-cli/internal/adapters/driven/storage/memory"
	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

func TestAPIKeyProvider_GetToken_FromConfig(t *testing.T) {
	config := memory.NewConfigStore()
	require.NoError(t, config.Set("dealtrack.api_key", "dt_live_abc123"))

	provider := NewAPIKeyProvider(config)

	token, err := provider.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dt_live_abc123", token)
	assert.True(t, provider.IsAuthenticated())
}

func TestAPIKeyProvider_GetToken_EnvOverridesConfig(t *testing.T) {
	config := memory.NewConfigStore()
	require.NoError(t, config.Set("dealtrack.api_key", "dt_live_abc123"))
	t.Setenv(EnvAPIKey, "dt_live_env456")

	provider := NewAPIKeyProvider(config)

	token, err := provider.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dt_live_env456", token)
}

func TestAPIKeyProvider_GetToken_Missing(t *testing.T) {
	provider := NewAPIKeyProvider(memory.NewConfigStore())

	_, err := provider.GetToken(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.False(t, provider.IsAuthenticated())
}
