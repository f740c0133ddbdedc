package driving

import (
	"context"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// UploadOrchestrator coordinates document transfer from client folders to
// DealTrack transactions.
type UploadOrchestrator interface {
	// RunBatch discovers every marked client folder and processes each one:
	// read identifier, resolve transaction, upload eligible files, mark
	// transferred. A folder that fails never aborts the batch. The returned
	// report is always non-nil, even when err is set.
	RunBatch(ctx context.Context) (*domain.RunReport, error)

	// RunForIdentifier resolves a single raw identifier (client ID or email)
	// and uploads from the folder owning it. Returns
	// domain.ErrNoFolderForIdentifier when no discovered folder carries the
	// identifier.
	RunForIdentifier(ctx context.Context, raw string) (*domain.SingleRunReport, error)
}
