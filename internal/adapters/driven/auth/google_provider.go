package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// Scopes requested for Drive file access and Sheets audit logging.
var googleScopes = []string{
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/spreadsheets",
}

const (
	credentialsFilename = "credentials.json"
	tokenFilename       = "google_token.json"
)

// Ensure GoogleTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*GoogleTokenProvider)(nil)

// GoogleTokenProvider provides Google OAuth access tokens.
// It loads the OAuth client configuration and a previously obtained token
// from the config directory and refreshes the access token as needed.
// Refreshed tokens are written back so subsequent runs reuse them.
type GoogleTokenProvider struct {
	credentialsPath string
	tokenPath       string

	mu     sync.Mutex
	source oauth2.TokenSource
	last   *oauth2.Token
}

// NewGoogleTokenProvider creates a provider reading credentials.json and
// google_token.json from configDir.
func NewGoogleTokenProvider(configDir string) *GoogleTokenProvider {
	return &GoogleTokenProvider{
		credentialsPath: filepath.Join(configDir, credentialsFilename),
		tokenPath:       filepath.Join(configDir, tokenFilename),
	}
}

// GetToken returns a valid access token, refreshing it if expired.
func (p *GoogleTokenProvider) GetToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == nil {
		source, token, err := p.buildSource(ctx)
		if err != nil {
			return "", err
		}
		p.source = source
		p.last = token
	}

	token, err := p.source.Token()
	if err != nil {
		return "", fmt.Errorf("refresh google token: %w", domain.ErrAuthInvalid)
	}

	// Persist refreshed tokens so the next process start skips the refresh.
	if p.last == nil || token.AccessToken != p.last.AccessToken {
		if err := p.saveToken(token); err == nil {
			p.last = token
		}
	}

	return token.AccessToken, nil
}

// IsAuthenticated returns true if a usable cached token exists.
func (p *GoogleTokenProvider) IsAuthenticated() bool {
	token, err := p.loadToken()
	if err != nil {
		return false
	}
	return token.RefreshToken != "" || token.Valid()
}

// buildSource loads the OAuth client config and cached token and wires
// them into an auto-refreshing token source (caller must hold lock).
func (p *GoogleTokenProvider) buildSource(ctx context.Context) (oauth2.TokenSource, *oauth2.Token, error) {
	data, err := os.ReadFile(p.credentialsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("google credentials not found at %s: %w", p.credentialsPath, domain.ErrAuthRequired)
		}
		return nil, nil, fmt.Errorf("read google credentials: %w", err)
	}

	config, err := google.ConfigFromJSON(data, googleScopes...)
	if err != nil {
		return nil, nil, fmt.Errorf("parse google credentials: %w", domain.ErrAuthInvalid)
	}

	token, err := p.loadToken()
	if err != nil {
		return nil, nil, err
	}

	return config.TokenSource(ctx, token), token, nil
}

func (p *GoogleTokenProvider) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(p.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("google token not found at %s: %w", p.tokenPath, domain.ErrAuthRequired)
		}
		return nil, fmt.Errorf("read google token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse google token: %w", domain.ErrAuthInvalid)
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("google token is empty: %w", domain.ErrAuthInvalid)
	}
	return &token, nil
}

func (p *GoogleTokenProvider) saveToken(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(p.tokenPath, data, 0600)
}
