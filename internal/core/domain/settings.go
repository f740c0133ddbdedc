package domain

import "time"

// UploadMode selects how marker identifiers are interpreted for a run.
type UploadMode string

// Available upload modes.
const (
	// UploadModeID expects markers to carry numeric transaction IDs.
	UploadModeID UploadMode = "id"

	// UploadModeEmail expects markers to carry client email addresses.
	UploadModeEmail UploadMode = "email"
)

// IsValid returns true if the upload mode is recognised.
func (m UploadMode) IsValid() bool {
	switch m {
	case UploadModeID, UploadModeEmail:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m UploadMode) String() string {
	return string(m)
}

// AuditBackend selects where audit rows are written.
type AuditBackend string

// Available audit backends.
const (
	// AuditBackendSheets appends rows to a Google Sheets spreadsheet.
	AuditBackendSheets AuditBackend = "sheets"

	// AuditBackendPostgres inserts rows into Postgres tables.
	AuditBackendPostgres AuditBackend = "postgres"

	// AuditBackendNone discards audit rows. Runs still complete.
	AuditBackendNone AuditBackend = "none"
)

// IsValid returns true if the audit backend is recognised.
func (b AuditBackend) IsValid() bool {
	switch b {
	case AuditBackendSheets, AuditBackendPostgres, AuditBackendNone:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b AuditBackend) String() string {
	return string(b)
}

// DiscoverySettings holds marker search configuration.
type DiscoverySettings struct {
	// MarkerFilename is the exact marker document name to search for.
	MarkerFilename string

	// RootFolderID optionally scopes discovery to one subtree.
	RootFolderID string

	// MaxDepth bounds the ancestor walk when building folder paths.
	// Walks past the bound truncate the path instead of failing.
	MaxDepth int
}

// UploadSettings holds file transfer configuration.
type UploadSettings struct {
	// Mode selects id or email marker interpretation.
	Mode UploadMode

	// IncludeClosed disables the status filter so terminal
	// transactions also receive uploads.
	IncludeClosed bool

	// Workers caps concurrent folder processing. 1 means sequential.
	Workers int

	// Extensions lists the file extensions eligible for upload.
	Extensions []string
}

// RegistrySettings holds transaction registry connection configuration.
type RegistrySettings struct {
	// BaseURL is the registry API endpoint.
	BaseURL string

	// APIKey authenticates registry calls. May come from the
	// environment rather than the config file.
	APIKey string
}

// IsConfigured returns true if the registry client can be built.
func (r RegistrySettings) IsConfigured() bool {
	return r.BaseURL != "" && r.APIKey != ""
}

// AuditSettings holds audit log configuration.
type AuditSettings struct {
	// Backend selects the audit sink.
	Backend AuditBackend

	// SpreadsheetID is the target spreadsheet for the sheets backend.
	SpreadsheetID string

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string
}

// DaemonSettings holds interval-run configuration.
type DaemonSettings struct {
	// Interval is the time between scheduled batch runs.
	Interval time.Duration

	// RunTimeout bounds a single scheduled run.
	RunTimeout time.Duration
}

// LookupSettings holds identifier cache configuration.
type LookupSettings struct {
	// MaxAge is how long a cache snapshot serves lookups before a
	// refresh is forced.
	MaxAge time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Discovery holds marker search settings.
	Discovery DiscoverySettings

	// Upload holds file transfer settings.
	Upload UploadSettings

	// Registry holds transaction registry settings.
	Registry RegistrySettings

	// Audit holds audit log settings.
	Audit AuditSettings

	// Daemon holds interval-run settings.
	Daemon DaemonSettings

	// Lookup holds identifier cache settings.
	Lookup LookupSettings

	// HistoryKeep is how many run records the history store retains.
	HistoryKeep int
}

// DefaultAppSettings returns settings with sensible defaults.
// The registry is left unconfigured; users must supply a base URL and
// API key before uploads can run.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Discovery: DiscoverySettings{
			MarkerFilename: "dealsync.txt",
			MaxDepth:       10,
		},
		Upload: UploadSettings{
			Mode:       UploadModeID,
			Workers:    1,
			Extensions: []string{".pdf"},
		},
		Audit: AuditSettings{
			Backend: AuditBackendSheets,
		},
		Daemon: DaemonSettings{
			Interval:   30 * time.Minute,
			RunTimeout: 25 * time.Minute,
		},
		Lookup: LookupSettings{
			MaxAge: 15 * time.Minute,
		},
		HistoryKeep: 100,
	}
}

// StatusFilterFor returns the filter matching the upload settings.
func (u UploadSettings) StatusFilterFor() StatusFilter {
	if u.IncludeClosed {
		return AllStatuses()
	}
	return DefaultStatusFilter()
}
