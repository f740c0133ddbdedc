package driven

import "context"

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle refresh transparently: the Google provider
// refreshes OAuth tokens from the cached token file, and the registry
// provider returns a static API key.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it will be refreshed automatically.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated returns true if valid authentication is available.
	IsAuthenticated() bool
}
