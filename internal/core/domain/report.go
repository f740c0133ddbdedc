package domain

import "time"

// RunMode distinguishes batch runs from single-identifier runs.
type RunMode string

// Available run modes.
const (
	// RunModeBatch processes every authoritative folder.
	RunModeBatch RunMode = "batch"

	// RunModeSingle processes the one folder matching an identifier.
	RunModeSingle RunMode = "single"
)

// RunReport is the aggregate result of a run. It accumulates outcomes
// as processing proceeds and is flushed to the audit log at the end.
type RunReport struct {
	// RunID uniquely identifies this run.
	RunID string

	// Mode records how the run was started.
	Mode RunMode

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// FoldersDiscovered counts marker folders before ownership dedup.
	FoldersDiscovered int

	// FoldersProcessed counts authoritative folders actually visited.
	FoldersProcessed int

	// Successes, Failures and Skips partition the recorded outcomes.
	Successes []TransferOutcome
	Failures  []TransferOutcome
	Skips     []TransferOutcome

	// MultiTransactionFlags lists email identifiers that fanned out to
	// several transactions.
	MultiTransactionFlags []MultiTransactionFlag
}

// Counts summarises a report for display and persistence.
type Counts struct {
	Uploaded int
	Failed   int
	Skipped  int
	Flagged  int
}

// Counts derives the summary counters from the recorded outcomes.
func (r *RunReport) Counts() Counts {
	return Counts{
		Uploaded: len(r.Successes),
		Failed:   len(r.Failures),
		Skipped:  len(r.Skips),
		Flagged:  len(r.MultiTransactionFlags),
	}
}

// Duration is the wall-clock length of the run.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// SingleRunReport is the result of a single-identifier run.
type SingleRunReport struct {
	// RunID uniquely identifies this run.
	RunID string

	// Identifier is the identifier the run was started with.
	Identifier Identifier

	// Found is false when the registry knew no matching transaction.
	Found bool

	// Reason explains a not-found result.
	Reason string

	// PropertyAddress is the address of the first resolved transaction.
	PropertyAddress string

	// DocumentsUploaded and DocumentsFailed count (file, transaction)
	// pairs, not distinct files.
	DocumentsUploaded int
	DocumentsFailed   int

	// Outcomes holds the per-pair detail.
	Outcomes []TransferOutcome
}

// RunRecord is the persisted summary of a completed run.
type RunRecord struct {
	// RunID uniquely identifies the run.
	RunID string

	// Mode records how the run was started.
	Mode RunMode

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Uploaded, Failed, Skipped and Flagged are the summary counters.
	Uploaded int
	Failed   int
	Skipped  int
	Flagged  int

	// Fatal holds the abort error for runs that did not complete.
	Fatal string
}
