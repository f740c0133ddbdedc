package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure discovery, upload, registry, audit and daemon
settings. Values are stored in the TOML config file; edit it directly
for keys without a dedicated subcommand.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode <id|email>",
	Short: "Set marker interpretation mode",
	Long: `Set how marker file contents are interpreted.

Available modes:
  id     - markers carry numeric DealTrack transaction IDs
  email  - markers carry client email addresses`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsMode,
}

var settingsAuditCmd = &cobra.Command{
	Use:   "audit <sheets|postgres|none>",
	Short: "Set the audit log backend",
	Long: `Set where audit rows are written.

Available backends:
  sheets    - append rows to a Google Sheets spreadsheet
  postgres  - insert rows into Postgres tables
  none      - discard audit rows`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsAudit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	settingsCmd.AddCommand(settingsAuditCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Discovery]")
	cmd.Printf("  Marker filename: %s\n", settings.Discovery.MarkerFilename)
	if settings.Discovery.RootFolderID != "" {
		cmd.Printf("  Root folder: %s\n", settings.Discovery.RootFolderID)
	} else {
		cmd.Println("  Root folder: (entire drive)")
	}
	cmd.Printf("  Max depth: %d\n", settings.Discovery.MaxDepth)
	cmd.Println()

	cmd.Println("[Upload]")
	cmd.Printf("  Mode: %s\n", settings.Upload.Mode)
	cmd.Printf("  Include closed: %t\n", settings.Upload.IncludeClosed)
	cmd.Printf("  Workers: %d\n", settings.Upload.Workers)
	cmd.Printf("  Extensions: %s\n", strings.Join(settings.Upload.Extensions, ", "))
	cmd.Println()

	cmd.Println("[DealTrack]")
	if settings.Registry.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Registry.BaseURL)
	} else {
		cmd.Println("  Base URL: (not set)")
	}
	if settings.Registry.APIKey != "" {
		cmd.Printf("  API key: %s\n", maskAPIKey(settings.Registry.APIKey))
	} else {
		cmd.Println("  API key: (not set)")
	}
	cmd.Println()

	cmd.Println("[Audit]")
	cmd.Printf("  Backend: %s\n", settings.Audit.Backend)
	switch settings.Audit.Backend {
	case domain.AuditBackendSheets:
		if settings.Audit.SpreadsheetID != "" {
			cmd.Printf("  Spreadsheet: %s\n", settings.Audit.SpreadsheetID)
		} else {
			cmd.Println("  Spreadsheet: (not set)")
		}
	case domain.AuditBackendPostgres:
		if settings.Audit.PostgresDSN != "" {
			cmd.Println("  DSN: (set)")
		} else {
			cmd.Println("  DSN: (not set)")
		}
	case domain.AuditBackendNone:
	}
	cmd.Println()

	cmd.Println("[Daemon]")
	cmd.Printf("  Interval: %s\n", settings.Daemon.Interval)
	cmd.Printf("  Run timeout: %s\n", settings.Daemon.RunTimeout)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsMode(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	mode := domain.UploadMode(args[0])
	if !mode.IsValid() {
		return fmt.Errorf("unknown mode %q (expected id or email)", args[0])
	}

	if err := settingsService.SetUploadMode(mode); err != nil {
		return fmt.Errorf("failed to set upload mode: %w", err)
	}

	cmd.Printf("Upload mode set to: %s\n", mode)
	return nil
}

func runSettingsAudit(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.AuditBackend(args[0])
	if !backend.IsValid() {
		return fmt.Errorf("unknown backend %q (expected sheets, postgres or none)", args[0])
	}

	if err := settingsService.SetAuditBackend(backend); err != nil {
		return fmt.Errorf("failed to set audit backend: %w", err)
	}

	cmd.Printf("Audit backend set to: %s\n", backend)
	if backend == domain.AuditBackendSheets {
		cmd.Println("Set audit.spreadsheet_id in the config file if not already set.")
	}
	if backend == domain.AuditBackendPostgres {
		cmd.Println("Set audit.postgres_dsn in the config file if not already set.")
	}
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
