package memory

import (
	"context"
	"sync"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// Ensure AuditLog implements the interface.
var _ driven.AuditLog = (*AuditLog)(nil)

// AuditLog is an in-memory implementation of driven.AuditLog.
// Like the real sinks, a destination is created with its header row on
// first append, so tests can assert the full sheet contents.
type AuditLog struct {
	mu   sync.RWMutex
	rows map[domain.AuditDestination][][]string
}

// NewAuditLog creates a new in-memory audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{
		rows: make(map[domain.AuditDestination][][]string),
	}
}

// AppendRows appends rows to one destination.
func (l *AuditLog) AppendRows(_ context.Context, dest domain.AuditDestination, rows [][]string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.rows[dest]; !ok {
		l.rows[dest] = [][]string{domain.AuditHeader(dest)}
	}
	l.rows[dest] = append(l.rows[dest], rows...)
	return nil
}

// Rows returns a copy of a destination's contents, header included.
// Nil when the destination was never written.
func (l *AuditLog) Rows(dest domain.AuditDestination) [][]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	src, ok := l.rows[dest]
	if !ok {
		return nil
	}
	out := make([][]string, len(src))
	copy(out, src)
	return out
}
