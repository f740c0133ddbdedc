package services

import (
	"fmt"
	"strings"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService manages stored credentials: the DealTrack API key and the
// Google token used for the document store.
type AuthService struct {
	settings driving.SettingsService
	tokens   driven.TokenProvider
}

// NewAuthService creates a new auth service. tokens may be nil.
func NewAuthService(settings driving.SettingsService, tokens driven.TokenProvider) *AuthService {
	return &AuthService{settings: settings, tokens: tokens}
}

// SetAPIKey stores the DealTrack API key in the config file.
func (s *AuthService) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key: %w", domain.ErrInvalidInput)
	}

	settings, err := s.settings.Get()
	if err != nil {
		return err
	}
	settings.Registry.APIKey = key
	return s.settings.Save(settings)
}

// Status reports which credentials are configured.
func (s *AuthService) Status() (*driving.AuthStatus, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	status := &driving.AuthStatus{
		RegistryConfigured: settings.Registry.APIKey != "",
		RegistryBaseURL:    settings.Registry.BaseURL,
	}
	if s.tokens != nil {
		status.StoreAuthenticated = s.tokens.IsAuthenticated()
	}
	return status, nil
}
