// Package domain defines the core business entities for Dealsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FolderRecord: A client folder discovered via its marker document
//   - Identifier: The transaction ID or client email read from a marker
//   - TransactionRecord: A transaction resolved from the registry
//   - CandidateFile: A document eligible for upload
//   - TransferOutcome: The result of one upload step
//   - RunReport: The aggregate result of a batch run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
