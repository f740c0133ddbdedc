package driving

import (
	"context"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// HistoryService exposes persisted run summaries.
type HistoryService interface {
	// Recent returns the most recent runs, newest first, up to limit.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
