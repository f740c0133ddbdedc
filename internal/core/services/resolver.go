package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/logger"
)

// resolveAttempts is the attempt budget for registry and store calls.
const resolveAttempts = 3

// TransactionResolver maps identifiers to active transaction records,
// retrying transient registry failures.
type TransactionResolver struct {
	registry driven.TransactionRegistry

	// baseDelay scales the linear backoff between attempts.
	// Attempt n sleeps n * baseDelay.
	baseDelay time.Duration
}

// NewTransactionResolver creates a new transaction resolver.
func NewTransactionResolver(registry driven.TransactionRegistry) *TransactionResolver {
	return &TransactionResolver{
		registry:  registry,
		baseDelay: time.Second,
	}
}

// Resolve maps an identifier to its active transactions.
//
// A definitive not-found answer from the registry is terminal: it is
// never retried and yields a Resolution with Found false, not an error.
// Transient failures are retried up to the attempt budget with linear
// backoff; exhausting it returns the last error. Records failing the
// status filter are dropped; when none survive the resolution reports
// not found with the excluded statuses as the reason.
func (r *TransactionResolver) Resolve(ctx context.Context, id domain.Identifier, filter domain.StatusFilter) (domain.Resolution, error) {
	var (
		records []domain.TransactionRecord
		err     error
	)
	for attempt := 1; attempt <= resolveAttempts; attempt++ {
		records, err = r.registry.Resolve(ctx, id)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Resolution{
				Identifier: id,
				Found:      false,
				Reason:     fmt.Sprintf("no transaction matches %s", id),
			}, nil
		}
		// A rejected credential will not heal between attempts.
		if errors.Is(err, domain.ErrAuthInvalid) {
			return domain.Resolution{}, fmt.Errorf("resolve %s: %w", id, err)
		}
		if attempt == resolveAttempts {
			return domain.Resolution{}, fmt.Errorf("resolve %s: %w", id, err)
		}
		logger.Debug("Resolve %s attempt %d failed: %v", id, attempt, err)
		if serr := sleepContext(ctx, time.Duration(attempt)*r.baseDelay); serr != nil {
			return domain.Resolution{}, serr
		}
	}

	active := filter.Apply(records)
	if len(active) == 0 {
		reason := fmt.Sprintf("no transaction matches %s", id)
		if len(records) > 0 {
			reason = fmt.Sprintf("all %d transaction(s) for %s are inactive", len(records), id)
		}
		return domain.Resolution{Identifier: id, Found: false, Reason: reason}, nil
	}

	return domain.Resolution{
		Identifier:       id,
		Found:            true,
		Transactions:     active,
		MultiTransaction: len(active) > 1,
	}, nil
}

// sleepContext sleeps for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
