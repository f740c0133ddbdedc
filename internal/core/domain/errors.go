package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoFolderForIdentifier indicates no client folder carries a marker
	// with the requested identifier.
	ErrNoFolderForIdentifier = errors.New("no folder found for identifier")

	// ErrRunInProgress indicates a batch run is already executing.
	ErrRunInProgress = errors.New("run in progress")

	// ErrStoreUnavailable indicates the document store cannot be reached.
	// This is the only collaborator failure that aborts a run outright.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrRegistryUnavailable indicates the transaction registry cannot be
	// reached after retries. Per-folder processing converts this into a
	// recorded failure rather than aborting the run.
	ErrRegistryUnavailable = errors.New("transaction registry unavailable")

	// ErrAuditUnavailable indicates the audit log rejected an append.
	// Audit writes are best-effort; callers log and continue.
	ErrAuditUnavailable = errors.New("audit log unavailable")

	// Authentication Errors.

	// ErrAuthRequired indicates a collaborator requires authentication but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the authentication credentials are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates an API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
