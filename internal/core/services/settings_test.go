package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-labs/dealsync-cli/internal/adapters/driven/storage/memory"
	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

func newTestSettingsService() (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	return NewSettingsService(store), store
}

func TestSettingsService_Get_Defaults(t *testing.T) {
	service, _ := newTestSettingsService()

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Discovery.MarkerFilename, settings.Discovery.MarkerFilename)
	assert.Equal(t, defaults.Discovery.MaxDepth, settings.Discovery.MaxDepth)
	assert.Empty(t, settings.Discovery.RootFolderID)
	assert.Equal(t, domain.UploadModeID, settings.Upload.Mode)
	assert.Equal(t, defaults.Upload.Workers, settings.Upload.Workers)
	assert.Equal(t, domain.AuditBackendSheets, settings.Audit.Backend)
	assert.Equal(t, defaults.Daemon.Interval, settings.Daemon.Interval)
	assert.Equal(t, defaults.HistoryKeep, settings.HistoryKeep)
}

func TestSettingsService_Get_StoredValuesOverrideDefaults(t *testing.T) {
	service, store := newTestSettingsService()
	require.NoError(t, store.Set("discovery.marker_filename", "sync.txt"))
	require.NoError(t, store.Set("discovery.max_depth", 3))
	require.NoError(t, store.Set("upload.mode", "email"))
	require.NoError(t, store.Set("daemon.interval", "5m"))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "sync.txt", settings.Discovery.MarkerFilename)
	assert.Equal(t, 3, settings.Discovery.MaxDepth)
	assert.Equal(t, domain.UploadModeEmail, settings.Upload.Mode)
	assert.Equal(t, 5*time.Minute, settings.Daemon.Interval)
}

func TestSettingsService_Get_InvalidStoredValuesFallBack(t *testing.T) {
	service, store := newTestSettingsService()
	require.NoError(t, store.Set("upload.mode", "telepathy"))
	require.NoError(t, store.Set("audit.backend", "fax"))
	require.NoError(t, store.Set("daemon.interval", "soon"))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.UploadModeID, settings.Upload.Mode)
	assert.Equal(t, domain.AuditBackendSheets, settings.Audit.Backend)
	assert.Equal(t, domain.DefaultAppSettings().Daemon.Interval, settings.Daemon.Interval)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	service, _ := newTestSettingsService()
	settings := domain.DefaultAppSettings()
	settings.Discovery.RootFolderID = "folder-root"
	settings.Upload.Mode = domain.UploadModeEmail
	settings.Upload.Workers = 4
	settings.Registry.BaseURL = "https://api.dealtrack.example.com"
	settings.Registry.APIKey = "dt_live_abc123"
	settings.Audit.Backend = domain.AuditBackendPostgres
	settings.Audit.PostgresDSN = "postgres://audit"
	settings.Daemon.Interval = 10 * time.Minute

	require.NoError(t, service.Save(&settings))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "folder-root", loaded.Discovery.RootFolderID)
	assert.Equal(t, domain.UploadModeEmail, loaded.Upload.Mode)
	assert.Equal(t, 4, loaded.Upload.Workers)
	assert.Equal(t, "dt_live_abc123", loaded.Registry.APIKey)
	assert.Equal(t, domain.AuditBackendPostgres, loaded.Audit.Backend)
	assert.Equal(t, "postgres://audit", loaded.Audit.PostgresDSN)
	assert.Equal(t, 10*time.Minute, loaded.Daemon.Interval)
}

func TestSettingsService_APIKeyFromEnvironment(t *testing.T) {
	service, store := newTestSettingsService()
	require.NoError(t, store.Set("dealtrack.api_key", "dt_stored"))
	t.Setenv("DEALSYNC_DEALTRACK_API_KEY", "dt_from_env")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "dt_from_env", settings.Registry.APIKey)

	// Saving must not copy the env secret into the config store.
	require.NoError(t, service.Save(settings))
	stored := store.GetString("dealtrack.api_key")
	assert.Equal(t, "dt_stored", stored)
}

func TestSettingsService_SetUploadMode(t *testing.T) {
	service, store := newTestSettingsService()

	require.NoError(t, service.SetUploadMode(domain.UploadModeEmail))

	assert.Equal(t, "email", store.GetString("upload.mode"))
}

func TestSettingsService_SetUploadMode_Invalid(t *testing.T) {
	service, _ := newTestSettingsService()

	err := service.SetUploadMode(domain.UploadMode("telepathy"))

	assert.Error(t, err)
}

func TestSettingsService_SetAuditBackend(t *testing.T) {
	service, store := newTestSettingsService()

	require.NoError(t, service.SetAuditBackend(domain.AuditBackendNone))

	assert.Equal(t, "none", store.GetString("audit.backend"))
}

func TestSettingsService_Validate(t *testing.T) {
	service, store := newTestSettingsService()
	require.NoError(t, store.Set("dealtrack.base_url", "https://api.dealtrack.example.com"))
	require.NoError(t, store.Set("dealtrack.api_key", "dt_live_abc123"))
	require.NoError(t, store.Set("audit.spreadsheet_id", "sheet-1"))

	assert.NoError(t, service.Validate())
}

func TestSettingsService_Validate_MissingRegistry(t *testing.T) {
	service, _ := newTestSettingsService()

	err := service.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dealtrack")
}

func TestSettingsService_Validate_SheetsNeedsSpreadsheet(t *testing.T) {
	service, store := newTestSettingsService()
	require.NoError(t, store.Set("dealtrack.base_url", "https://api.dealtrack.example.com"))
	require.NoError(t, store.Set("dealtrack.api_key", "dt_live_abc123"))

	err := service.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "spreadsheet")
}

func TestSettingsService_Validate_PostgresNeedsDSN(t *testing.T) {
	service, store := newTestSettingsService()
	require.NoError(t, store.Set("dealtrack.base_url", "https://api.dealtrack.example.com"))
	require.NoError(t, store.Set("dealtrack.api_key", "dt_live_abc123"))
	require.NoError(t, store.Set("audit.backend", "postgres"))

	err := service.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn")
}
