package driven

import (
	"context"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// RunStore persists run summaries for the history command.
// Backed by SQLite for local storage.
type RunStore interface {
	// SaveRun stores a completed (or aborted) run record.
	SaveRun(ctx context.Context, rec domain.RunRecord) error

	// RecentRuns returns the newest records, most recent first.
	RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// PruneRuns drops all but the newest keep records.
	PruneRuns(ctx context.Context, keep int) error
}
