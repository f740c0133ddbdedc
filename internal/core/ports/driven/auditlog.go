package driven

import (
	"context"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// AuditLog is the append-only sink for run outcomes.
//
// Appends are best-effort from the caller's point of view: the reporter
// logs append failures and continues. Implementations create a missing
// destination, with its header from domain.AuditHeader, on first use.
type AuditLog interface {
	// AppendRows appends rows to one destination.
	AppendRows(ctx context.Context, dest domain.AuditDestination, rows [][]string) error
}
