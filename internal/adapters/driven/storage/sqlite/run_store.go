package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun stores a completed (or aborted) run record.
func (s *runStore) SaveRun(ctx context.Context, rec domain.RunRecord) error {
	if rec.RunID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, mode, started_at, finished_at, uploaded, failed, skipped, flagged, fatal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			mode = excluded.mode,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			uploaded = excluded.uploaded,
			failed = excluded.failed,
			skipped = excluded.skipped,
			flagged = excluded.flagged,
			fatal = excluded.fatal
	`, rec.RunID, string(rec.Mode), rec.StartedAt.UTC(), formatNullableTime(rec.FinishedAt),
		rec.Uploaded, rec.Failed, rec.Skipped, rec.Flagged, nullString(rec.Fatal))

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// RecentRuns returns the newest records, most recent first.
func (s *runStore) RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT run_id, mode, started_at, finished_at, uploaded, failed, skipped, flagged, fatal
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return records, nil
}

// PruneRuns drops all but the newest keep records.
func (s *runStore) PruneRuns(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}

	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM runs
		WHERE run_id NOT IN (
			SELECT run_id FROM runs ORDER BY started_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

// scanRun reads one run record from a result row.
func scanRun(rows *sql.Rows) (domain.RunRecord, error) {
	var rec domain.RunRecord
	var mode string
	var startedAt time.Time
	var finishedAt sql.NullTime
	var fatal sql.NullString

	if err := rows.Scan(&rec.RunID, &mode, &startedAt, &finishedAt,
		&rec.Uploaded, &rec.Failed, &rec.Skipped, &rec.Flagged, &fatal); err != nil {
		return domain.RunRecord{}, fmt.Errorf("scanning run: %w", err)
	}

	rec.Mode = domain.RunMode(mode)
	rec.StartedAt = startedAt
	if finishedAt.Valid {
		rec.FinishedAt = finishedAt.Time
	}
	rec.Fatal = fatal.String
	return rec, nil
}
