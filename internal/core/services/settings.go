package services

import (
	"fmt"
	"os"
	"time"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyMarkerFilename = "discovery.marker_filename"
	keyMaxDepth       = "discovery.max_depth"
	keyRootFolderID   = "drive.root_folder_id"
	keyUploadMode     = "upload.mode"
	keyIncludeClosed  = "upload.include_closed"
	keyWorkers        = "upload.workers"
	keyExtensions     = "upload.extensions"
	keyRegistryURL    = "dealtrack.base_url"
	keyRegistryAPIKey = "dealtrack.api_key"
	keyAuditBackend   = "audit.backend"
	keySpreadsheetID  = "audit.spreadsheet_id"
	keyPostgresDSN    = "audit.postgres_dsn"
	keyDaemonInterval = "daemon.interval"
	keyRunTimeout     = "daemon.run_timeout"
	keyLookupMaxAge   = "lookup.max_age"
	keyHistoryKeep    = "history.keep"
)

// envRegistryAPIKey overrides the stored DealTrack API key when set, so
// the secret can stay out of the config file.
const envRegistryAPIKey = "DEALSYNC_DEALTRACK_API_KEY"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Discovery: domain.DiscoverySettings{
			MarkerFilename: s.getString(keyMarkerFilename, defaults.Discovery.MarkerFilename),
			RootFolderID:   s.configStore.GetString(keyRootFolderID), // No default - empty means the whole store
			MaxDepth:       s.getInt(keyMaxDepth, defaults.Discovery.MaxDepth),
		},
		Upload: domain.UploadSettings{
			Mode:          s.getUploadMode(defaults.Upload.Mode),
			IncludeClosed: s.getBool(keyIncludeClosed, defaults.Upload.IncludeClosed),
			Workers:       s.getInt(keyWorkers, defaults.Upload.Workers),
			Extensions:    s.getStringSlice(keyExtensions, defaults.Upload.Extensions),
		},
		Registry: domain.RegistrySettings{
			BaseURL: s.configStore.GetString(keyRegistryURL),
			APIKey:  s.getAPIKey(),
		},
		Audit: domain.AuditSettings{
			Backend:       s.getAuditBackend(defaults.Audit.Backend),
			SpreadsheetID: s.configStore.GetString(keySpreadsheetID),
			PostgresDSN:   s.configStore.GetString(keyPostgresDSN),
		},
		Daemon: domain.DaemonSettings{
			Interval:   s.getDuration(keyDaemonInterval, defaults.Daemon.Interval),
			RunTimeout: s.getDuration(keyRunTimeout, defaults.Daemon.RunTimeout),
		},
		Lookup: domain.LookupSettings{
			MaxAge: s.getDuration(keyLookupMaxAge, defaults.Lookup.MaxAge),
		},
		HistoryKeep: s.getInt(keyHistoryKeep, defaults.HistoryKeep),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save discovery settings
	if err := s.configStore.Set(keyMarkerFilename, settings.Discovery.MarkerFilename); err != nil {
		return fmt.Errorf("save marker filename: %w", err)
	}
	if err := s.configStore.Set(keyRootFolderID, settings.Discovery.RootFolderID); err != nil {
		return fmt.Errorf("save root folder: %w", err)
	}
	if err := s.configStore.Set(keyMaxDepth, settings.Discovery.MaxDepth); err != nil {
		return fmt.Errorf("save max depth: %w", err)
	}

	// Save upload settings
	if err := s.configStore.Set(keyUploadMode, settings.Upload.Mode.String()); err != nil {
		return fmt.Errorf("save upload mode: %w", err)
	}
	if err := s.configStore.Set(keyIncludeClosed, settings.Upload.IncludeClosed); err != nil {
		return fmt.Errorf("save include_closed: %w", err)
	}
	if err := s.configStore.Set(keyWorkers, settings.Upload.Workers); err != nil {
		return fmt.Errorf("save workers: %w", err)
	}
	if err := s.configStore.Set(keyExtensions, settings.Upload.Extensions); err != nil {
		return fmt.Errorf("save extensions: %w", err)
	}

	// Save registry settings
	if err := s.configStore.Set(keyRegistryURL, settings.Registry.BaseURL); err != nil {
		return fmt.Errorf("save registry base_url: %w", err)
	}
	if settings.Registry.APIKey != "" && os.Getenv(envRegistryAPIKey) == "" {
		if err := s.configStore.Set(keyRegistryAPIKey, settings.Registry.APIKey); err != nil {
			return fmt.Errorf("save registry api_key: %w", err)
		}
	}

	// Save audit settings
	if err := s.configStore.Set(keyAuditBackend, settings.Audit.Backend.String()); err != nil {
		return fmt.Errorf("save audit backend: %w", err)
	}
	if err := s.configStore.Set(keySpreadsheetID, settings.Audit.SpreadsheetID); err != nil {
		return fmt.Errorf("save spreadsheet id: %w", err)
	}
	if err := s.configStore.Set(keyPostgresDSN, settings.Audit.PostgresDSN); err != nil {
		return fmt.Errorf("save postgres dsn: %w", err)
	}

	// Save daemon, lookup and history settings
	if err := s.configStore.Set(keyDaemonInterval, settings.Daemon.Interval.String()); err != nil {
		return fmt.Errorf("save daemon interval: %w", err)
	}
	if err := s.configStore.Set(keyRunTimeout, settings.Daemon.RunTimeout.String()); err != nil {
		return fmt.Errorf("save run timeout: %w", err)
	}
	if err := s.configStore.Set(keyLookupMaxAge, settings.Lookup.MaxAge.String()); err != nil {
		return fmt.Errorf("save lookup max age: %w", err)
	}
	if err := s.configStore.Set(keyHistoryKeep, settings.HistoryKeep); err != nil {
		return fmt.Errorf("save history keep: %w", err)
	}

	return nil
}

// SetUploadMode updates the marker interpretation mode.
func (s *SettingsService) SetUploadMode(mode domain.UploadMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("invalid upload mode: %s", mode)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Upload.Mode = mode
	return s.Save(settings)
}

// SetAuditBackend updates the audit sink.
func (s *SettingsService) SetAuditBackend(backend domain.AuditBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid audit backend: %s", backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Audit.Backend = backend
	return s.Save(settings)
}

// Validate checks that current settings can drive a run.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Upload.Mode.IsValid() {
		return fmt.Errorf("invalid upload mode: %s", settings.Upload.Mode)
	}
	if settings.Discovery.MarkerFilename == "" {
		return fmt.Errorf("marker filename must not be empty")
	}
	if settings.Discovery.MaxDepth < 1 {
		return fmt.Errorf("discovery max depth must be at least 1")
	}
	if settings.Upload.Workers < 1 {
		return fmt.Errorf("upload workers must be at least 1")
	}
	if len(settings.Upload.Extensions) == 0 {
		return fmt.Errorf("at least one upload extension is required")
	}
	if !settings.Registry.IsConfigured() {
		return fmt.Errorf("dealtrack base_url and api_key must be configured (or set %s)", envRegistryAPIKey)
	}

	if !settings.Audit.Backend.IsValid() {
		return fmt.Errorf("invalid audit backend: %s", settings.Audit.Backend)
	}
	switch settings.Audit.Backend {
	case domain.AuditBackendSheets:
		if settings.Audit.SpreadsheetID == "" {
			return fmt.Errorf("audit backend %q requires a spreadsheet id", settings.Audit.Backend)
		}
	case domain.AuditBackendPostgres:
		if settings.Audit.PostgresDSN == "" {
			return fmt.Errorf("audit backend %q requires a postgres dsn", settings.Audit.Backend)
		}
	case domain.AuditBackendNone:
		// Nothing to check.
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getUploadMode(defaultVal domain.UploadMode) domain.UploadMode {
	val := s.configStore.GetString(keyUploadMode)
	if val == "" {
		return defaultVal
	}
	mode := domain.UploadMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getAuditBackend(defaultVal domain.AuditBackend) domain.AuditBackend {
	val := s.configStore.GetString(keyAuditBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.AuditBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

// getAPIKey prefers the environment over the config file.
func (s *SettingsService) getAPIKey() string {
	if key := os.Getenv(envRegistryAPIKey); key != "" {
		return key
	}
	return s.configStore.GetString(keyRegistryAPIKey)
}
