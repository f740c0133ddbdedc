package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
	"github.com/openhouse-labs/dealsync-cli/internal/logger"
)

// Ensure UploadOrchestrator implements the interface.
var _ driving.UploadOrchestrator = (*UploadOrchestrator)(nil)

// UploadOrchestrator coordinates a full run: discovery, ownership
// resolution, identifier reads, transaction resolution, file transfer
// and reporting.
type UploadOrchestrator struct {
	discovery *FolderDiscovery
	reader    *MarkerReader
	resolver  *TransactionResolver
	pipeline  *TransferPipeline
	reporter  *Reporter
	lookup    *LookupCache
	runs      driven.RunStore
	settings  driving.SettingsService

	mu      sync.Mutex
	running bool
}

// NewUploadOrchestrator creates a new upload orchestrator.
// runs is optional; with nil no run history is kept.
func NewUploadOrchestrator(
	discovery *FolderDiscovery,
	reader *MarkerReader,
	resolver *TransactionResolver,
	pipeline *TransferPipeline,
	reporter *Reporter,
	lookup *LookupCache,
	runs driven.RunStore,
	settings driving.SettingsService,
) *UploadOrchestrator {
	return &UploadOrchestrator{
		discovery: discovery,
		reader:    reader,
		resolver:  resolver,
		pipeline:  pipeline,
		reporter:  reporter,
		lookup:    lookup,
		runs:      runs,
		settings:  settings,
	}
}

// RunBatch processes every authoritative marker folder. Per-folder and
// per-file failures become outcomes in the returned report; only a
// failure before the per-folder boundary (settings, marker search)
// aborts the run, and even then a fatal audit row is attempted first.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (o *UploadOrchestrator) RunBatch(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		Mode:      domain.RunModeBatch,
		StartedAt: time.Now(),
	}

	if !o.tryStart() {
		return report, domain.ErrRunInProgress
	}
	defer o.finish()

	// 1. Load settings
	cfg, err := o.settings.Get()
	if err != nil {
		return o.abort(ctx, report, fmt.Errorf("load settings: %w", err))
	}

	logger.Info("Starting batch run %s", report.RunID)

	// 2. Discover marker folders
	records, err := o.discovery.Discover(ctx, cfg.Discovery)
	if err != nil {
		return o.abort(ctx, report, err)
	}
	report.FoldersDiscovered = len(records)

	// 3. Resolve ownership; nested folders become skips
	authoritative, nested := ResolveOwnership(records)
	for _, n := range nested {
		report.Skips = append(report.Skips, newOutcome(domain.OutcomeSkipped, domain.StageResolveOwnership, n.Record, domain.Identifier{}, "", 0, n.Reason))
	}
	logger.Info("Processing %d folder(s), %d nested skipped", len(authoritative), len(nested))

	// 4. Process each authoritative folder
	workers := cfg.Upload.Workers
	if workers < 1 {
		workers = 1
	}
	var (
		reportMu sync.Mutex
		wg       sync.WaitGroup
		sem      = make(chan struct{}, workers)
	)
	for _, folder := range authoritative {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(folder domain.FolderRecord) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes, flags := o.processFolder(ctx, folder, cfg)
			reportMu.Lock()
			mergeOutcomes(report, outcomes, flags)
			report.FoldersProcessed++
			reportMu.Unlock()
		}(folder)
	}
	wg.Wait()

	// 5. Flush the audit log and persist the run
	o.finishRun(ctx, report)

	counts := report.Counts()
	logger.Info("Batch run complete: %d uploaded, %d failed, %d skipped, %d flagged",
		counts.Uploaded, counts.Failed, counts.Skipped, counts.Flagged)
	return report, ctx.Err()
}

// RunForIdentifier uploads from the single folder owning the identifier.
// Components shared with batch mode behave identically; only the folder
// set differs, coming from the lookup cache instead of a full walk.
func (o *UploadOrchestrator) RunForIdentifier(ctx context.Context, raw string) (*domain.SingleRunReport, error) {
	id := domain.ParseIdentifier(raw)
	if id.IsAbsent() {
		return nil, fmt.Errorf("identifier %q: %w", raw, domain.ErrInvalidInput)
	}

	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		Mode:      domain.RunModeSingle,
		StartedAt: time.Now(),
	}

	if !o.tryStart() {
		return nil, domain.ErrRunInProgress
	}
	defer o.finish()

	// 1. Load settings
	cfg, err := o.settings.Get()
	if err != nil {
		_, aerr := o.abort(ctx, report, fmt.Errorf("load settings: %w", err))
		return nil, aerr
	}

	logger.Info("Starting single run %s for %s", report.RunID, id)

	// 2. Locate the folder owning the identifier
	folder, err := o.lookup.FolderFor(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoFolderForIdentifier) {
			return nil, err
		}
		_, aerr := o.abort(ctx, report, err)
		return nil, aerr
	}
	report.FoldersDiscovered = 1

	// 3. Resolve the identifier against the registry
	res, err := o.resolver.Resolve(ctx, id, cfg.Upload.StatusFilterFor())
	if err != nil {
		report.Failures = append(report.Failures, newOutcome(domain.OutcomeFailure, domain.StageResolveTransaction, *folder, id, "", 0, err.Error()))
		o.finishRun(ctx, report)
		return nil, err
	}
	if !res.Found {
		report.Skips = append(report.Skips, newOutcome(domain.OutcomeSkipped, domain.StageResolveTransaction, *folder, id, "", 0, res.Reason))
		o.finishRun(ctx, report)
		return &domain.SingleRunReport{
			RunID:      report.RunID,
			Identifier: id,
			Found:      false,
			Reason:     res.Reason,
		}, nil
	}

	// 4. Transfer files
	outcomes, flags := o.transfer(ctx, *folder, id, res, cfg)
	mergeOutcomes(report, outcomes, flags)
	report.FoldersProcessed = 1

	// 5. Flush the audit log and persist the run
	o.finishRun(ctx, report)

	first, _ := res.First()
	single := &domain.SingleRunReport{
		RunID:             report.RunID,
		Identifier:        id,
		Found:             true,
		PropertyAddress:   first.PropertyAddress,
		DocumentsUploaded: len(report.Successes),
		DocumentsFailed:   len(report.Failures),
		Outcomes:          outcomes,
	}
	logger.Info("Single run complete: %d uploaded, %d failed", single.DocumentsUploaded, single.DocumentsFailed)
	return single, nil
}

// processFolder runs read, resolve and transfer for one folder,
// converting every failure into outcomes. Nothing escapes the folder
// boundary.
func (o *UploadOrchestrator) processFolder(ctx context.Context, folder domain.FolderRecord, cfg *domain.AppSettings) ([]domain.TransferOutcome, []domain.MultiTransactionFlag) {
	id, err := o.reader.Read(ctx, folder.MarkerFileID)
	if err != nil {
		return []domain.TransferOutcome{newOutcome(domain.OutcomeFailure, domain.StageReadIdentifier, folder, domain.Identifier{}, "", 0, err.Error())}, nil
	}
	if id.IsAbsent() {
		return []domain.TransferOutcome{newOutcome(domain.OutcomeSkipped, domain.StageReadIdentifier, folder, id, "", 0, "marker empty")}, nil
	}
	if reason, ok := checkMode(id, cfg.Upload.Mode); !ok {
		return []domain.TransferOutcome{newOutcome(domain.OutcomeSkipped, domain.StageReadIdentifier, folder, id, "", 0, reason)}, nil
	}

	res, err := o.resolver.Resolve(ctx, id, cfg.Upload.StatusFilterFor())
	if err != nil {
		return []domain.TransferOutcome{newOutcome(domain.OutcomeFailure, domain.StageResolveTransaction, folder, id, "", 0, err.Error())}, nil
	}
	if !res.Found {
		return []domain.TransferOutcome{newOutcome(domain.OutcomeSkipped, domain.StageResolveTransaction, folder, id, "", 0, res.Reason)}, nil
	}

	return o.transfer(ctx, folder, id, res, cfg)
}

// transfer runs the pipeline for a resolved folder, emitting the
// multi-transaction flag when the identifier fanned out.
func (o *UploadOrchestrator) transfer(ctx context.Context, folder domain.FolderRecord, id domain.Identifier, res domain.Resolution, cfg *domain.AppSettings) ([]domain.TransferOutcome, []domain.MultiTransactionFlag) {
	var flags []domain.MultiTransactionFlag
	if res.MultiTransaction {
		ids := make([]domain.TransactionID, 0, len(res.Transactions))
		for _, tx := range res.Transactions {
			ids = append(ids, tx.ID)
		}
		flags = append(flags, domain.MultiTransactionFlag{
			FolderPath:     folder.PathString(),
			Identifier:     id,
			TransactionIDs: ids,
			At:             time.Now(),
		})
		logger.Warn("Identifier %s matches %d transactions, uploading to all", id, len(ids))
	}
	outcomes := o.pipeline.ProcessFolder(ctx, folder, id, res.Transactions, cfg.Upload)
	return outcomes, flags
}

// checkMode verifies the marker identifier matches the configured mode.
func checkMode(id domain.Identifier, mode domain.UploadMode) (string, bool) {
	switch mode {
	case domain.UploadModeID:
		if id.Kind != domain.IdentifierID {
			return "marker does not hold a transaction id", false
		}
	case domain.UploadModeEmail:
		if id.Kind != domain.IdentifierEmail {
			return "marker does not hold an email address", false
		}
	}
	return "", true
}

// mergeOutcomes files outcomes into the report by kind.
func mergeOutcomes(report *domain.RunReport, outcomes []domain.TransferOutcome, flags []domain.MultiTransactionFlag) {
	for _, out := range outcomes {
		switch out.Kind {
		case domain.OutcomeSuccess:
			report.Successes = append(report.Successes, out)
		case domain.OutcomeFailure:
			report.Failures = append(report.Failures, out)
		case domain.OutcomeSkipped:
			report.Skips = append(report.Skips, out)
		}
	}
	report.MultiTransactionFlags = append(report.MultiTransactionFlags, flags...)
}

// finishRun stamps the end time, flushes the audit log and persists the
// run record. Runs even when the context is cancelled: losing the audit
// trail of a half-finished run would hide what it did upload.
func (o *UploadOrchestrator) finishRun(ctx context.Context, report *domain.RunReport) {
	report.FinishedAt = time.Now()
	flushCtx := context.WithoutCancel(ctx)
	o.reporter.Flush(flushCtx, report)
	fatal := ""
	if err := ctx.Err(); err != nil {
		fatal = err.Error()
	}
	o.persistRun(flushCtx, report, fatal)
}

// abort records a fatal failure: the partial report and a single fatal
// row are written best-effort, then the error goes to the caller.
func (o *UploadOrchestrator) abort(ctx context.Context, report *domain.RunReport, err error) (*domain.RunReport, error) {
	report.FinishedAt = time.Now()
	flushCtx := context.WithoutCancel(ctx)
	o.reporter.Flush(flushCtx, report)
	o.reporter.WriteFatal(flushCtx, report, err)
	o.persistRun(flushCtx, report, err.Error())
	logger.Warn("Run %s aborted: %v", report.RunID, err)
	return report, err
}

// persistRun saves the run summary and prunes old history, best-effort.
func (o *UploadOrchestrator) persistRun(ctx context.Context, report *domain.RunReport, fatal string) {
	if o.runs == nil {
		return
	}
	counts := report.Counts()
	rec := domain.RunRecord{
		RunID:      report.RunID,
		Mode:       report.Mode,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Uploaded:   counts.Uploaded,
		Failed:     counts.Failed,
		Skipped:    counts.Skipped,
		Flagged:    counts.Flagged,
		Fatal:      fatal,
	}
	if err := o.runs.SaveRun(ctx, rec); err != nil {
		logger.Warn("Save run record: %v", err)
		return
	}
	keep := domain.DefaultAppSettings().HistoryKeep
	if cfg, err := o.settings.Get(); err == nil && cfg.HistoryKeep > 0 {
		keep = cfg.HistoryKeep
	}
	if err := o.runs.PruneRuns(ctx, keep); err != nil {
		logger.Warn("Prune run history: %v", err)
	}
}

// tryStart marks a run active unless one already is.
func (o *UploadOrchestrator) tryStart() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return false
	}
	o.running = true
	return true
}

func (o *UploadOrchestrator) finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = false
}
