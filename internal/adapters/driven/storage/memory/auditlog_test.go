package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// TestAuditLog_AppendRows_CreatesHeader tests that the first append to a
// destination seeds it with the fixed header row.
func TestAuditLog_AppendRows_CreatesHeader(t *testing.T) {
	log := NewAuditLog()
	ctx := context.Background()

	err := log.AppendRows(ctx, domain.AuditSkipped, [][]string{
		{"2026-01-02T15:04:05Z", "run-1", "batch", "Clients/Client A", "(absent)", "marker empty"},
	})
	require.NoError(t, err)

	rows := log.Rows(domain.AuditSkipped)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.AuditHeader(domain.AuditSkipped), rows[0])
	assert.Equal(t, "marker empty", rows[1][5])
}

func TestAuditLog_AppendRows_Accumulates(t *testing.T) {
	log := NewAuditLog()
	ctx := context.Background()

	require.NoError(t, log.AppendRows(ctx, domain.AuditErrors, [][]string{{"a"}}))
	require.NoError(t, log.AppendRows(ctx, domain.AuditErrors, [][]string{{"b"}, {"c"}}))

	rows := log.Rows(domain.AuditErrors)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"c"}, rows[3])
}

func TestAuditLog_Rows_NeverWritten(t *testing.T) {
	log := NewAuditLog()
	assert.Nil(t, log.Rows(domain.AuditFatal))
}
