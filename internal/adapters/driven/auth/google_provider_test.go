package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

func writeTokenFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, tokenFilename), []byte(content), 0600))
}

func TestGoogleTokenProvider_GetToken_MissingCredentials(t *testing.T) {
	provider := NewGoogleTokenProvider(t.TempDir())

	_, err := provider.GetToken(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestGoogleTokenProvider_IsAuthenticated_NoTokenFile(t *testing.T) {
	provider := NewGoogleTokenProvider(t.TempDir())

	assert.False(t, provider.IsAuthenticated())
}

func TestGoogleTokenProvider_IsAuthenticated_WithRefreshToken(t *testing.T) {
	dir := t.TempDir()
	writeTokenFile(t, dir, `{"access_token":"abc","refresh_token":"ref","token_type":"Bearer"}`)

	provider := NewGoogleTokenProvider(dir)

	assert.True(t, provider.IsAuthenticated())
}

func TestGoogleTokenProvider_IsAuthenticated_ValidAccessToken(t *testing.T) {
	dir := t.TempDir()
	expiry := time.Now().Add(time.Hour).Format(time.RFC3339)
	writeTokenFile(t, dir, `{"access_token":"abc","token_type":"Bearer","expiry":"`+expiry+`"}`)

	provider := NewGoogleTokenProvider(dir)

	assert.True(t, provider.IsAuthenticated())
}

func TestGoogleTokenProvider_IsAuthenticated_EmptyToken(t *testing.T) {
	dir := t.TempDir()
	writeTokenFile(t, dir, `{}`)

	provider := NewGoogleTokenProvider(dir)

	assert.False(t, provider.IsAuthenticated())
}

func TestGoogleTokenProvider_IsAuthenticated_MalformedToken(t *testing.T) {
	dir := t.TempDir()
	writeTokenFile(t, dir, `not json`)

	provider := NewGoogleTokenProvider(dir)

	assert.False(t, provider.IsAuthenticated())
}
