// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: The hierarchical file store (Google Drive)
//   - TransactionRegistry: The external transaction platform (DealTrack)
//   - ConfigStore: Application configuration
//   - TokenProvider: Credentials for the file store
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AuditLog: Structured audit trail (Google Sheets or Postgres). Without
//     it, outcomes are reported to the terminal only.
//   - RunStore: Run history persistence. Without it, the history command
//     has nothing to show.
//   - ConfigWatcher: Configuration change notification for daemon mode.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
