package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/logger"
)

// TransferPipeline uploads the eligible files beneath one authoritative
// folder to its resolved transactions.
type TransferPipeline struct {
	store    driven.DocumentStore
	registry driven.TransactionRegistry

	// baseDelay scales the linear backoff between attempts.
	baseDelay time.Duration
}

// NewTransferPipeline creates a new transfer pipeline.
func NewTransferPipeline(store driven.DocumentStore, registry driven.TransactionRegistry) *TransferPipeline {
	return &TransferPipeline{
		store:     store,
		registry:  registry,
		baseDelay: time.Second,
	}
}

// ProcessFolder enumerates eligible files beneath the folder and submits
// each to every resolved transaction, recording one outcome per
// (file, transaction) pair.
//
// Failures never propagate: an enumeration failure becomes a single
// folder-level Failure outcome, and per-pair failures are recorded and
// isolated so the remaining files and transactions still proceed. A file
// is renamed with the transferred suffix only after every submission for
// it has been attempted, and only when at least one succeeded; a fully
// failed file keeps its name and stays eligible for the next run.
func (p *TransferPipeline) ProcessFolder(ctx context.Context, folder domain.FolderRecord, id domain.Identifier, txs []domain.TransactionRecord, cfg domain.UploadSettings) []domain.TransferOutcome {
	candidates, err := p.enumerate(ctx, folder, cfg)
	if err != nil {
		return []domain.TransferOutcome{newOutcome(domain.OutcomeFailure, domain.StageEnumerateFiles, folder, id, "", 0, err.Error())}
	}
	logger.Debug("Folder %s: %d eligible file(s), %d transaction(s)", folder.PathString(), len(candidates), len(txs))

	var outcomes []domain.TransferOutcome
	for _, cand := range candidates {
		if ctx.Err() != nil {
			break
		}
		outcomes = append(outcomes, p.processFile(ctx, folder, id, cand, txs)...)
	}
	return outcomes
}

// enumerate walks the folder recursively, unbounded, collecting files
// that pass the content-type and name eligibility filters. Files already
// carrying the transferred suffix are excluded here, which is what makes
// reprocessing a folder idempotent.
func (p *TransferPipeline) enumerate(ctx context.Context, folder domain.FolderRecord, cfg domain.UploadSettings) ([]domain.CandidateFile, error) {
	// The store can filter by content type server-side; only the default
	// PDF-only extension list maps cleanly onto a single MIME type.
	mime := ""
	if len(cfg.Extensions) == 1 && strings.EqualFold(cfg.Extensions[0], ".pdf") {
		mime = domain.MIMETypePDF
	}

	var out []domain.CandidateFile
	var walk func(dirID string) error
	walk = func(dirID string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		files, err := p.store.ListFiles(ctx, dirID, mime)
		if err != nil {
			return fmt.Errorf("list files in %s: %w", dirID, err)
		}
		for _, f := range files {
			cand := domain.CandidateFile{
				FileID:     f.FileID,
				Name:       f.Name,
				FolderID:   dirID,
				FolderPath: folder.PathString(),
				MIMEType:   f.MIMEType,
				Size:       f.Size,
			}
			if cand.Eligible(cfg.Extensions) {
				out = append(out, cand)
			}
		}
		subs, err := p.store.ListFolders(ctx, dirID)
		if err != nil {
			return fmt.Errorf("list folders in %s: %w", dirID, err)
		}
		for _, sub := range subs {
			if err := walk(sub.FolderID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(folder.FolderID); err != nil {
		return nil, err
	}
	return out, nil
}

// processFile downloads one file once, submits it to every transaction,
// then decides the transferred mark.
func (p *TransferPipeline) processFile(ctx context.Context, folder domain.FolderRecord, id domain.Identifier, cand domain.CandidateFile, txs []domain.TransactionRecord) []domain.TransferOutcome {
	var content []byte
	err := p.withRetry(ctx, fmt.Sprintf("download %s", cand.Name), func() error {
		var derr error
		content, derr = p.store.Download(ctx, cand.FileID)
		return derr
	})
	if err != nil {
		return []domain.TransferOutcome{newOutcome(domain.OutcomeFailure, domain.StageDownload, folder, id, cand.Name, 0, err.Error())}
	}

	var outcomes []domain.TransferOutcome
	succeeded := 0
	for _, tx := range txs {
		err := p.withRetry(ctx, fmt.Sprintf("submit %s to %s", cand.Name, tx.ID), func() error {
			return p.registry.SubmitDocument(ctx, tx.ID, cand.Name, cand.MIMEType, content)
		})
		if err != nil {
			outcomes = append(outcomes, newOutcome(domain.OutcomeFailure, domain.StageSubmitDocument, folder, id, cand.Name, tx.ID, err.Error()))
			continue
		}
		succeeded++
		outcomes = append(outcomes, newOutcome(domain.OutcomeSuccess, domain.StageSubmitDocument, folder, id, cand.Name, tx.ID, ""))
	}

	// The mark is decided only after every submission for the file has
	// been attempted, so per-pair failures above are always recorded
	// first. One success is enough: the next run must not re-submit to
	// the transactions that already accepted the file.
	if succeeded > 0 {
		err := p.withRetry(ctx, fmt.Sprintf("mark %s", cand.Name), func() error {
			return p.store.Rename(ctx, cand.FileID, domain.TransferredName(cand.Name))
		})
		if err != nil {
			outcomes = append(outcomes, newOutcome(domain.OutcomeFailure, domain.StageMarkTransferred, folder, id, cand.Name, 0, err.Error()))
		}
	}
	return outcomes
}

// withRetry runs fn up to the attempt budget with linear backoff.
// Definitive answers (not found, rejected input, rejected credentials)
// are terminal and returned immediately; only transient failures are
// retried.
func (p *TransferPipeline) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= resolveAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrAuthInvalid) {
			return err
		}
		if attempt == resolveAttempts {
			break
		}
		logger.Debug("%s attempt %d failed: %v", op, attempt, err)
		if serr := sleepContext(ctx, time.Duration(attempt)*p.baseDelay); serr != nil {
			return serr
		}
	}
	return err
}

// newOutcome stamps a transfer outcome with the current time.
func newOutcome(kind domain.OutcomeKind, stage domain.Stage, folder domain.FolderRecord, id domain.Identifier, fileName string, txID domain.TransactionID, detail string) domain.TransferOutcome {
	return domain.TransferOutcome{
		Kind:          kind,
		Stage:         stage,
		FolderPath:    folder.PathString(),
		Identifier:    id,
		FileName:      fileName,
		TransactionID: txID,
		Detail:        detail,
		At:            time.Now(),
	}
}
