// Command dealsync syncs documents from marked Google Drive client
// folders to their DealTrack transactions.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/openhouse-labs/dealsync-cli/internal/adapters/driven/auditlog/postgres"
	"github.com/openhouse-labs/dealsync-cli/internal/adapters/driven/auth"
	"github.com/openhouse-labs/dealsync-cli/internal/adapters/driven/config/file"
	"github.com/openhouse-labs/dealsync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/openhouse-labs/dealsync-cli/internal/adapters/driving/cli"
	"github.com/openhouse-labs/dealsync-cli/internal/connectors/dealtrack"
	"github.com/openhouse-labs/dealsync-cli/internal/connectors/google"
	"github.com/openhouse-labs/dealsync-cli/internal/connectors/google/drive"
	gsheets "github.com/openhouse-labs/dealsync-cli/internal/connectors/google/sheets"
	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx := context.Background()

	configStore, err := file.NewConfigStore(cli.ConfigDir(os.Args[1:]))
	if err != nil {
		log.Fatalf("failed to open config: %v", err)
	}
	configDir := filepath.Dir(configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Token providers. Google tokens come from a cached token file; the
	// DealTrack key from config or environment.
	googleTokens := auth.NewGoogleTokenProvider(configDir)
	registryTokens := auth.NewAPIKeyProvider(configStore)

	// Google clients are built eagerly but authenticate lazily, so
	// commands that never touch Drive work without a token file.
	tokenSource := google.NewTokenSource(ctx, googleTokens)
	driveSvc, err := google.NewDriveService(ctx, tokenSource)
	if err != nil {
		log.Fatalf("failed to create drive client: %v", err)
	}
	docStore := drive.NewStore(driveSvc)

	registry := dealtrack.NewClient(dealtrack.ClientOptions{
		BaseURL: settings.Registry.BaseURL,
		Tokens:  registryTokens,
	})

	auditLog := buildAuditLog(ctx, settings, tokenSource)

	store, err := sqlite.NewStore(os.Getenv("DEALSYNC_DATA_DIR"))
	if err != nil {
		log.Fatalf("failed to open local store: %v", err)
	}
	defer store.Close() //nolint:errcheck // Best-effort close on exit
	runStore := store.RunStore()

	discovery := services.NewFolderDiscovery(docStore)
	reader := services.NewMarkerReader(docStore)
	resolver := services.NewTransactionResolver(registry)
	pipeline := services.NewTransferPipeline(docStore, registry)
	reporter := services.NewReporter(auditLog)
	lookup := services.NewLookupCache(discovery, reader, settingsService)
	uploader := services.NewUploadOrchestrator(
		discovery, reader, resolver, pipeline, reporter, lookup, runStore, settingsService)

	cli.SetServices(cli.Services{
		Upload:    uploader,
		Lookup:    lookup,
		Undo:      services.NewUndoService(docStore),
		History:   services.NewHistoryService(runStore),
		Auth:      services.NewAuthService(settingsService, googleTokens),
		Settings:  settingsService,
		Scheduler: services.NewScheduler(uploader, settingsService, configStore),
	})
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildAuditLog picks the audit sink for the configured backend. A sink
// that cannot be built degrades to none so read-only commands still
// work; runs requiring audit fail settings validation instead.
func buildAuditLog(ctx context.Context, settings *domain.AppSettings, ts oauth2.TokenSource) driven.AuditLog {
	switch settings.Audit.Backend {
	case domain.AuditBackendSheets:
		svc, err := google.NewSheetsService(ctx, ts)
		if err != nil {
			log.Printf("warning: sheets audit log unavailable: %v", err)
			return nil
		}
		return gsheets.NewAuditLog(svc, settings.Audit.SpreadsheetID)
	case domain.AuditBackendPostgres:
		sink, err := postgres.NewAuditLog(settings.Audit.PostgresDSN)
		if err != nil {
			log.Printf("warning: postgres audit log unavailable: %v", err)
			return nil
		}
		return sink
	case domain.AuditBackendNone:
		return nil
	default:
		log.Printf("warning: unknown audit backend %q, audit disabled", settings.Audit.Backend)
		return nil
	}
}
