package driving

import "github.com/openhouse-labs/dealsync-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetUploadMode updates the marker interpretation mode.
	SetUploadMode(mode domain.UploadMode) error

	// SetAuditBackend updates the audit sink.
	SetAuditBackend(backend domain.AuditBackend) error

	// Validate checks that current settings can drive a run.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
