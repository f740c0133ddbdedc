// Package postgres implements the audit log on a Postgres database,
// one table per audit destination. Tables are provisioned lazily on
// first use, so pointing the DSN at an empty database is enough.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq" // Postgres driver

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// operationTimeout bounds a single database call.
const operationTimeout = 5 * time.Second

// tablePrefix namespaces the audit tables in a shared database.
const tablePrefix = "dealsync_audit_"

type sqlOpenFunc func(driverName, dsn string) (*sql.DB, error)

// Ensure AuditLog implements the interface.
var _ driven.AuditLog = (*AuditLog)(nil)

// AuditLog inserts run outcomes into Postgres. The connection is opened
// lazily on the first append; destination tables are created on first
// use with one text column per header field.
type AuditLog struct {
	dsn    string
	openDB sqlOpenFunc

	initOnce sync.Once
	initErr  error
	db       *sql.DB

	mu      sync.Mutex
	ensured map[domain.AuditDestination]bool
}

// NewAuditLog creates a Postgres-backed audit log.
func NewAuditLog(dsn string) (*AuditLog, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("postgres audit log: %w", domain.ErrInvalidInput)
	}
	return &AuditLog{
		dsn:     dsn,
		openDB:  sql.Open,
		ensured: make(map[domain.AuditDestination]bool),
	}, nil
}

// AppendRows inserts rows into a destination's table, creating the
// table first if needed.
func (l *AuditLog) AppendRows(ctx context.Context, dest domain.AuditDestination, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	if err := l.ensureReady(); err != nil {
		return fmt.Errorf("%w: open audit database: %w", domain.ErrAuditUnavailable, err)
	}
	if err := l.ensureTable(ctx, dest); err != nil {
		return err
	}

	columns := columnNames(dest)
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdentifier(tableName(dest)),
		strings.Join(quoteAll(columns), ", "),
		strings.Join(placeholders, ", "))

	for _, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("audit row for %s has %d field(s), want %d: %w",
				dest, len(row), len(columns), domain.ErrInvalidInput)
		}
		opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
		_, err := l.db.ExecContext(opCtx, query, toArgs(row)...)
		cancel()
		if err != nil {
			return fmt.Errorf("%w: insert audit row into %s: %w", domain.ErrAuditUnavailable, dest, err)
		}
	}
	return nil
}

// Close releases the database connection.
func (l *AuditLog) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

func (l *AuditLog) ensureReady() error {
	l.initOnce.Do(func() {
		db, err := l.openDB("postgres", l.dsn)
		if err != nil {
			l.initErr = err
			return
		}
		l.db = db
	})
	return l.initErr
}

// ensureTable creates the destination's table if it does not exist.
// The verdict is cached per destination for the process lifetime.
func (l *AuditLog) ensureTable(ctx context.Context, dest domain.AuditDestination) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ensured[dest] {
		return nil
	}

	columns := columnNames(dest)
	if len(columns) == 0 {
		return fmt.Errorf("unknown audit destination %q: %w", dest, domain.ErrInvalidInput)
	}
	defs := make([]string, 0, len(columns)+2)
	defs = append(defs, "id BIGSERIAL PRIMARY KEY")
	for _, col := range columns {
		defs = append(defs, fmt.Sprintf("%s TEXT NOT NULL", quoteIdentifier(col)))
	}
	defs = append(defs, "inserted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()")

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		quoteIdentifier(tableName(dest)), strings.Join(defs, ", "))

	opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()
	if _, err := l.db.ExecContext(opCtx, query); err != nil {
		return fmt.Errorf("%w: create audit table for %s: %w", domain.ErrAuditUnavailable, dest, err)
	}
	l.ensured[dest] = true
	return nil
}

// tableName maps a destination onto its snake_cased table.
func tableName(dest domain.AuditDestination) string {
	return tablePrefix + snakeCase(string(dest))
}

// columnNames maps a destination's header onto snake_cased columns.
func columnNames(dest domain.AuditDestination) []string {
	header := domain.AuditHeader(dest)
	columns := make([]string, 0, len(header))
	for _, field := range header {
		columns = append(columns, snakeCase(field))
	}
	return columns
}

// snakeCase converts CamelCase header fields to snake_case identifiers,
// e.g. "RunID" -> "run_id" and "MultiTransactionFlags" ->
// "multi_transaction_flags".
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			lowerPrev := i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z'
			upperRun := i > 0 && i+1 < len(s) && s[i-1] >= 'A' && s[i-1] <= 'Z' && s[i+1] >= 'a' && s[i+1] <= 'z'
			if lowerPrev || upperRun {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteAll(names []string) []string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, quoteIdentifier(name))
	}
	return quoted
}

func toArgs(row []string) []any {
	args := make([]any, 0, len(row))
	for _, cell := range row {
		args = append(args, cell)
	}
	return args
}
