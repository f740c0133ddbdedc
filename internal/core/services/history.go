package services

import (
	"context"
	"fmt"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes persisted run summaries.
type HistoryService struct {
	runs driven.RunStore
}

// NewHistoryService creates a new history service. runs may be nil when
// no run store is configured.
func NewHistoryService(runs driven.RunStore) *HistoryService {
	return &HistoryService{runs: runs}
}

// Recent returns the most recent runs, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.runs == nil {
		return nil, fmt.Errorf("run history: %w", domain.ErrStoreUnavailable)
	}
	records, err := s.runs.RecentRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load run history: %w", err)
	}
	return records, nil
}
