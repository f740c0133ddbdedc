package services

import (
	"context"
	"time"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/logger"
)

// Reporter forwards run outcomes to the audit log. The audit log is
// optional; with none configured the reporter does nothing.
type Reporter struct {
	audit driven.AuditLog
}

// NewReporter creates a new reporter. audit may be nil.
func NewReporter(audit driven.AuditLog) *Reporter {
	return &Reporter{audit: audit}
}

// Flush appends the report's failures, skips and multi-transaction
// flags to their audit destinations. Appends are best-effort: a failed
// append is logged and never fails the run.
func (r *Reporter) Flush(ctx context.Context, report *domain.RunReport) {
	if r.audit == nil {
		return
	}
	if len(report.Failures) > 0 {
		rows := make([][]string, 0, len(report.Failures))
		for _, o := range report.Failures {
			rows = append(rows, domain.ErrorRow(report.RunID, report.Mode, o))
		}
		r.append(ctx, domain.AuditErrors, rows)
	}
	if len(report.Skips) > 0 {
		rows := make([][]string, 0, len(report.Skips))
		for _, o := range report.Skips {
			rows = append(rows, domain.SkipRow(report.RunID, report.Mode, o))
		}
		r.append(ctx, domain.AuditSkipped, rows)
	}
	if len(report.MultiTransactionFlags) > 0 {
		rows := make([][]string, 0, len(report.MultiTransactionFlags))
		for _, f := range report.MultiTransactionFlags {
			rows = append(rows, domain.FlagRow(report.RunID, report.Mode, f))
		}
		r.append(ctx, domain.AuditMultiTransaction, rows)
	}
}

// WriteFatal records a run abort with a single best-effort row.
func (r *Reporter) WriteFatal(ctx context.Context, report *domain.RunReport, runErr error) {
	if r.audit == nil || runErr == nil {
		return
	}
	r.append(ctx, domain.AuditFatal, [][]string{
		domain.FatalRow(report.RunID, report.Mode, time.Now(), runErr.Error()),
	})
}

func (r *Reporter) append(ctx context.Context, dest domain.AuditDestination, rows [][]string) {
	if err := r.audit.AppendRows(ctx, dest, rows); err != nil {
		logger.Warn("Audit append to %s failed: %v", dest, err)
	}
}
