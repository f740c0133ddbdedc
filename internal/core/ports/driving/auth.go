package driving

// AuthStatus describes the configured credentials.
type AuthStatus struct {
	// RegistryConfigured indicates a DealTrack API key is stored.
	RegistryConfigured bool

	// RegistryBaseURL is the configured DealTrack endpoint.
	RegistryBaseURL string

	// StoreAuthenticated indicates a usable Google token is present.
	StoreAuthenticated bool
}

// AuthService manages stored credentials for the two external systems.
type AuthService interface {
	// SetAPIKey stores the DealTrack API key.
	SetAPIKey(key string) error

	// Status reports which credentials are configured.
	Status() (*AuthStatus, error)
}
