package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDefaultStatusFilter_ExcludesInactiveSet tests the default exclusions
func TestDefaultStatusFilter_ExcludesInactiveSet(t *testing.T) {
	f := DefaultStatusFilter()

	assert.True(t, f.Accepts(StatusActive))
	assert.True(t, f.Accepts(StatusPending))
	assert.False(t, f.Accepts(StatusInactive))
	assert.False(t, f.Accepts(StatusClosed))
	assert.False(t, f.Accepts(StatusWithdrawn))
	assert.False(t, f.Accepts(StatusLost))
	assert.False(t, f.Accepts(StatusExpired))
}

// TestDefaultStatusFilter_UnknownStatusAccepted tests that statuses outside
// the named set pass through
func TestDefaultStatusFilter_UnknownStatusAccepted(t *testing.T) {
	f := DefaultStatusFilter()

	assert.True(t, f.Accepts(Status("under_contract")))
}

// TestAllStatuses_AcceptsEverything tests the include-closed filter
func TestAllStatuses_AcceptsEverything(t *testing.T) {
	f := AllStatuses()

	assert.True(t, f.Accepts(StatusClosed))
	assert.True(t, f.Accepts(StatusWithdrawn))
}

// TestStatusFilter_Apply tests filtering a resolved transaction list
func TestStatusFilter_Apply(t *testing.T) {
	txs := []TransactionRecord{
		{ID: 1, Status: StatusActive},
		{ID: 2, Status: StatusClosed},
		{ID: 3, Status: StatusPending},
	}

	kept := DefaultStatusFilter().Apply(txs)

	assert.Len(t, kept, 2)
	assert.Equal(t, TransactionID(1), kept[0].ID)
	assert.Equal(t, TransactionID(3), kept[1].ID)
}

// TestUploadSettings_StatusFilterFor_IncludeClosed tests include_closed selecting the filter
func TestUploadSettings_StatusFilterFor_IncludeClosed(t *testing.T) {
	assert.False(t, UploadSettings{}.StatusFilterFor().Accepts(StatusClosed))
	assert.True(t, UploadSettings{IncludeClosed: true}.StatusFilterFor().Accepts(StatusClosed))
}
