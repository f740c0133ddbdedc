package domain

import "time"

// Stage names the pipeline step an outcome refers to.
type Stage string

// Pipeline stages, in processing order.
const (
	// StageResolveOwnership covers subtree deduplication; its only
	// outcomes are skips of nested folders.
	StageResolveOwnership Stage = "resolve_ownership"

	// StageReadIdentifier covers reading and parsing a marker document.
	StageReadIdentifier Stage = "read_identifier"

	// StageResolveTransaction covers registry lookup and status filtering.
	StageResolveTransaction Stage = "resolve_transaction"

	// StageEnumerateFiles covers the recursive walk beneath a folder.
	StageEnumerateFiles Stage = "enumerate_files"

	// StageDownload covers fetching file content from the store.
	StageDownload Stage = "download"

	// StageSubmitDocument covers posting a file to one transaction.
	StageSubmitDocument Stage = "submit_document"

	// StageMarkTransferred covers renaming a file after upload.
	StageMarkTransferred Stage = "mark_transferred"
)

// OutcomeKind classifies a transfer outcome.
type OutcomeKind string

// Available outcome kinds.
const (
	// OutcomeSuccess is a completed (file, transaction) upload.
	OutcomeSuccess OutcomeKind = "success"

	// OutcomeFailure is a recorded error at any stage. Failures are
	// scoped to one (file, transaction) pair, or to one folder when the
	// stage precedes file fan-out.
	OutcomeFailure OutcomeKind = "failure"

	// OutcomeSkipped is a folder deliberately left alone: absent
	// identifier, no matching transaction, or nested under another
	// claimed folder.
	OutcomeSkipped OutcomeKind = "skipped"
)

// TransferOutcome records what happened to one unit of work.
// For upload stages the unit is a (file, transaction) pair; for earlier
// stages it is the folder itself and FileName/TransactionID are empty.
type TransferOutcome struct {
	// Kind classifies the outcome.
	Kind OutcomeKind

	// Stage is the pipeline step this outcome refers to.
	Stage Stage

	// FolderPath locates the client folder.
	FolderPath string

	// Identifier is the marker identifier, when one was read.
	Identifier Identifier

	// FileName is the file involved, when the stage concerns a file.
	FileName string

	// TransactionID is the target transaction, when the stage concerns one.
	TransactionID TransactionID

	// Detail carries the error message or skip reason.
	Detail string

	// At is when the outcome was recorded.
	At time.Time
}

// MultiTransactionFlag records an email identifier that matched more
// than one active transaction. Every matched transaction received the
// folder's documents; the flag exists for operator review.
type MultiTransactionFlag struct {
	// FolderPath locates the client folder.
	FolderPath string

	// Identifier is the email identifier that fanned out.
	Identifier Identifier

	// TransactionIDs lists every matched transaction.
	TransactionIDs []TransactionID

	// At is when the flag was recorded.
	At time.Time
}

// Count returns the number of matched transactions.
func (f MultiTransactionFlag) Count() int {
	return len(f.TransactionIDs)
}
