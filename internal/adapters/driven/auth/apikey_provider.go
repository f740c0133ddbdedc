package auth

import (
	"context"
	"os"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// EnvAPIKey overrides the configured registry API key when set.
const EnvAPIKey = "DEALSYNC_DEALTRACK_API_KEY"

// Ensure APIKeyProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*APIKeyProvider)(nil)

// APIKeyProvider provides the static DealTrack API key.
// API keys don't expire and don't require refresh.
type APIKeyProvider struct {
	config driven.ConfigStore
}

// NewAPIKeyProvider creates a token provider backed by the config store.
// The DEALSYNC_DEALTRACK_API_KEY environment variable takes precedence
// over the stored key.
func NewAPIKeyProvider(config driven.ConfigStore) *APIKeyProvider {
	return &APIKeyProvider{config: config}
}

// GetToken returns the API key.
func (p *APIKeyProvider) GetToken(_ context.Context) (string, error) {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}
	if key := p.config.GetString("dealtrack.api_key"); key != "" {
		return key, nil
	}
	return "", domain.ErrAuthRequired
}

// IsAuthenticated returns true if an API key is configured.
func (p *APIKeyProvider) IsAuthenticated() bool {
	token, err := p.GetToken(context.Background())
	return err == nil && token != ""
}
