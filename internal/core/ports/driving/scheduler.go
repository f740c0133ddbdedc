package driving

import "context"

// Scheduler runs batch uploads on an interval for daemon mode.
type Scheduler interface {
	// Start begins running scheduled batch runs.
	// Blocks until context is cancelled or an error occurs.
	Start(ctx context.Context) error

	// Stop gracefully stops all running tasks.
	Stop() error
}
