package domain

import (
	"strconv"
	"strings"
	"time"
)

// AuditDestination names one of the fixed audit log destinations.
// Implementations auto-create a destination with its header on first use.
type AuditDestination string

// The three audit destinations, plus the fatal destination used only
// when a run aborts outright.
const (
	// AuditErrors receives one row per recorded failure.
	AuditErrors AuditDestination = "Errors"

	// AuditSkipped receives one row per skipped folder.
	AuditSkipped AuditDestination = "Skipped"

	// AuditMultiTransaction receives one row per multi-transaction flag.
	AuditMultiTransaction AuditDestination = "MultiTransactionFlags"

	// AuditFatal receives the single last-gasp row of an aborted run.
	AuditFatal AuditDestination = "Fatal"
)

// auditTimeFormat renders timestamps in audit rows.
const auditTimeFormat = time.RFC3339

// AuditHeader returns the fixed column header for a destination.
func AuditHeader(dest AuditDestination) []string {
	switch dest {
	case AuditErrors:
		return []string{"Timestamp", "RunID", "Mode", "Folder", "Identifier", "File", "Transaction", "Stage", "Detail"}
	case AuditSkipped:
		return []string{"Timestamp", "RunID", "Mode", "Folder", "Identifier", "Reason"}
	case AuditMultiTransaction:
		return []string{"Timestamp", "RunID", "Mode", "Folder", "Identifier", "Count", "Transactions"}
	case AuditFatal:
		return []string{"Timestamp", "RunID", "Mode", "Error"}
	default:
		return nil
	}
}

// ErrorRow renders a failure outcome as an Errors row.
func ErrorRow(runID string, mode RunMode, o TransferOutcome) []string {
	txID := ""
	if o.TransactionID != 0 {
		txID = o.TransactionID.String()
	}
	return []string{
		o.At.Format(auditTimeFormat),
		runID,
		string(mode),
		o.FolderPath,
		o.Identifier.String(),
		o.FileName,
		txID,
		string(o.Stage),
		o.Detail,
	}
}

// SkipRow renders a skipped outcome as a Skipped row.
func SkipRow(runID string, mode RunMode, o TransferOutcome) []string {
	return []string{
		o.At.Format(auditTimeFormat),
		runID,
		string(mode),
		o.FolderPath,
		o.Identifier.String(),
		o.Detail,
	}
}

// FlagRow renders a multi-transaction flag as a MultiTransactionFlags row.
func FlagRow(runID string, mode RunMode, f MultiTransactionFlag) []string {
	ids := make([]string, 0, len(f.TransactionIDs))
	for _, id := range f.TransactionIDs {
		ids = append(ids, id.String())
	}
	return []string{
		f.At.Format(auditTimeFormat),
		runID,
		string(mode),
		f.FolderPath,
		f.Identifier.String(),
		strconv.Itoa(len(f.TransactionIDs)),
		strings.Join(ids, ", "),
	}
}

// FatalRow renders the abort row for a run that did not complete.
func FatalRow(runID string, mode RunMode, at time.Time, errMsg string) []string {
	return []string{
		at.Format(auditTimeFormat),
		runID,
		string(mode),
		errMsg,
	}
}
