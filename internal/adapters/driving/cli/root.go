// Package cli implements the dealsync command line interface.
//
// Commands delegate to the core services through the driving ports.
// Services are injected by the composition root via SetServices; each
// command checks its service is present so the package stays testable
// with mocks swapped into the package-level variables.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
	"github.com/openhouse-labs/dealsync-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root.
var (
	uploadOrchestrator driving.UploadOrchestrator
	lookupService      driving.LookupService
	undoService        driving.UndoService
	historyService     driving.HistoryService
	authService        driving.AuthService
	settingsService    driving.SettingsService
	schedulerService   driving.Scheduler
)

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "dealsync",
	Short: "Sync client folder documents to DealTrack transactions",
	Long: `Dealsync uploads documents from marked Google Drive client folders to
their matching DealTrack transactions.

Folders are discovered by a marker file carrying a transaction ID or a
client email address. Eligible documents beneath each folder are
uploaded to the resolved transaction and renamed so they are not sent
twice. Every run is written to the configured audit log.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.dealsync)")
}

// ConfigDir returns the config directory requested on the command line.
// The composition root calls this before Execute, so the flag is parsed
// from the raw arguments rather than by cobra.
func ConfigDir(args []string) string {
	for i, arg := range args {
		if arg == "--config-dir" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--config-dir="); ok {
			return v
		}
	}
	return os.Getenv("DEALSYNC_CONFIG_DIR")
}

// Services bundles everything the CLI needs.
type Services struct {
	Upload    driving.UploadOrchestrator
	Lookup    driving.LookupService
	Undo      driving.UndoService
	History   driving.HistoryService
	Auth      driving.AuthService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	uploadOrchestrator = s.Upload
	lookupService = s.Lookup
	undoService = s.Undo
	historyService = s.History
	authService = s.Auth
	settingsService = s.Settings
	schedulerService = s.Scheduler
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
