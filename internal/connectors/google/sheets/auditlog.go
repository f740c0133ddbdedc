// Package sheets implements the audit log on a Google Sheets
// spreadsheet, one tab per audit destination.
package sheets

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/sheets/v4"

	"github.com/openhouse-labs/dealsync-cli/internal/connectors/google"
	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
)

// Ensure AuditLog implements the interface.
var _ driven.AuditLog = (*AuditLog)(nil)

// AuditLog appends run outcomes to a spreadsheet. A destination's tab is
// created with its header row the first time it receives an append, so an
// empty spreadsheet works out of the box.
type AuditLog struct {
	svc           *sheets.Service
	spreadsheetID string
	limiter       *google.RateLimiter

	mu      sync.Mutex
	ensured map[domain.AuditDestination]bool
}

// NewAuditLog creates a Sheets-backed audit log for one spreadsheet.
func NewAuditLog(svc *sheets.Service, spreadsheetID string) *AuditLog {
	return &AuditLog{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		limiter:       google.NewRateLimiter(google.ServiceSheets),
		ensured:       make(map[domain.AuditDestination]bool),
	}
}

// AppendRows appends rows to a destination's tab, creating the tab and
// its header first if needed.
func (l *AuditLog) AppendRows(ctx context.Context, dest domain.AuditDestination, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	if err := l.ensureTab(ctx, dest); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAuditUnavailable, err)
	}
	if err := l.append(ctx, dest, rows); err != nil {
		return fmt.Errorf("%w: append %d row(s) to %s: %w", domain.ErrAuditUnavailable, len(rows), dest, err)
	}
	return nil
}

// ensureTab creates the destination's tab with its header row if the
// spreadsheet does not have it yet. The verdict is cached: tabs are
// never deleted mid-run.
func (l *AuditLog) ensureTab(ctx context.Context, dest domain.AuditDestination) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ensured[dest] {
		return nil
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	ss, err := l.svc.Spreadsheets.Get(l.spreadsheetID).
		Context(ctx).
		Fields("sheets.properties.title").
		Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet %s: %w", l.spreadsheetID, google.WrapError(err))
	}
	for _, sheet := range ss.Sheets {
		if sheet.Properties.Title == string(dest) {
			l.ensured[dest] = true
			return nil
		}
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err = l.svc.Spreadsheets.BatchUpdate(l.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: string(dest)},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("create tab %s: %w", dest, google.WrapError(err))
	}

	if err := l.append(ctx, dest, [][]string{domain.AuditHeader(dest)}); err != nil {
		return fmt.Errorf("write header for %s: %w", dest, err)
	}
	l.ensured[dest] = true
	return nil
}

// append writes rows below the tab's current content.
func (l *AuditLog) append(ctx context.Context, dest domain.AuditDestination, rows [][]string) error {
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := l.svc.Spreadsheets.Values.Append(
		l.spreadsheetID,
		fmt.Sprintf("%s!A1", dest),
		&sheets.ValueRange{Values: values},
	).
		Context(ctx).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Do()
	if google.IsRateLimited(err) {
		l.limiter.RecordRateLimitError(0)
	}
	return google.WrapError(err)
}
