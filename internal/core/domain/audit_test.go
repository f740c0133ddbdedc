package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAuditHeader_MatchesRowShape tests that rendered rows align with headers
func TestAuditHeader_MatchesRowShape(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	errRow := ErrorRow("run-1", RunModeBatch, TransferOutcome{
		Kind:          OutcomeFailure,
		Stage:         StageSubmitDocument,
		FolderPath:    "Root/Smith",
		Identifier:    ParseIdentifier("123"),
		FileName:      "contract.pdf",
		TransactionID: 123,
		Detail:        "boom",
		At:            at,
	})
	skipRow := SkipRow("run-1", RunModeBatch, TransferOutcome{
		Kind:       OutcomeSkipped,
		FolderPath: "Root/Empty",
		Detail:     "marker empty",
		At:         at,
	})
	flagRow := FlagRow("run-1", RunModeBatch, MultiTransactionFlag{
		FolderPath:     "Root/Jones",
		Identifier:     ParseIdentifier("a@b.com"),
		TransactionIDs: []TransactionID{7, 9},
		At:             at,
	})

	assert.Len(t, errRow, len(AuditHeader(AuditErrors)))
	assert.Len(t, skipRow, len(AuditHeader(AuditSkipped)))
	assert.Len(t, flagRow, len(AuditHeader(AuditMultiTransaction)))
}

// TestErrorRow_OmitsZeroTransaction tests the empty transaction column for
// folder-level failures
func TestErrorRow_OmitsZeroTransaction(t *testing.T) {
	row := ErrorRow("run-1", RunModeBatch, TransferOutcome{
		Stage:      StageEnumerateFiles,
		FolderPath: "Root/Smith",
	})

	assert.Equal(t, "", row[6])
}

// TestFlagRow_JoinsTransactionIDs tests the flag row rendering
func TestFlagRow_JoinsTransactionIDs(t *testing.T) {
	row := FlagRow("run-1", RunModeSingle, MultiTransactionFlag{
		Identifier:     ParseIdentifier("a@b.com"),
		TransactionIDs: []TransactionID{7, 9},
	})

	assert.Equal(t, "2", row[5])
	assert.Equal(t, "7, 9", row[6])
}

// TestRunReport_Counts tests the summary counters
func TestRunReport_Counts(t *testing.T) {
	r := RunReport{
		Successes:             make([]TransferOutcome, 3),
		Failures:              make([]TransferOutcome, 1),
		Skips:                 make([]TransferOutcome, 2),
		MultiTransactionFlags: make([]MultiTransactionFlag, 1),
	}

	c := r.Counts()

	assert.Equal(t, 3, c.Uploaded)
	assert.Equal(t, 1, c.Failed)
	assert.Equal(t, 2, c.Skipped)
	assert.Equal(t, 1, c.Flagged)
}
