package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
)

// mockUndoService implements driving.UndoService for testing.
type mockUndoService struct {
	report *driving.UndoReport
	err    error
}

func (m *mockUndoService) Undo(_ context.Context, _ string) (*driving.UndoReport, error) {
	return m.report, m.err
}

func setupUndoTest(mock *mockUndoService) func() {
	old := undoService
	undoService = mock
	return func() {
		undoService = old
	}
}

func TestUndoCmd_Use(t *testing.T) {
	assert.Equal(t, "undo <folder-id>", undoCmd.Use)
}

func TestUndoCmd_PrintsRestoredFiles(t *testing.T) {
	cleanup := setupUndoTest(&mockUndoService{
		report: &driving.UndoReport{
			FolderID: "folder-7",
			Restored: []domain.RenamedFile{
				{FileID: "f1", OldName: "deed_UPLOADED.pdf", NewName: "deed.pdf"},
			},
			Untouched: 2,
		},
	})
	defer cleanup()

	out, err := executeCommand("undo", "folder-7")

	assert.NoError(t, err)
	assert.Contains(t, out, "restored 1, untouched 2")
	assert.Contains(t, out, "deed_UPLOADED.pdf -> deed.pdf")
}

func TestUndoCmd_ReportsFailures(t *testing.T) {
	cleanup := setupUndoTest(&mockUndoService{
		report: &driving.UndoReport{
			FolderID: "folder-7",
			Failed: []domain.RenameFailure{
				{FileID: "f2", Name: "lease_UPLOADED.pdf", Reason: "permission denied"},
			},
		},
	})
	defer cleanup()

	out, err := executeCommand("undo", "folder-7")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "1 file(s) could not be restored")
	assert.Contains(t, out, "FAIL lease_UPLOADED.pdf: permission denied")
}

func TestUndoCmd_FolderNotFound(t *testing.T) {
	cleanup := setupUndoTest(&mockUndoService{err: domain.ErrNotFound})
	defer cleanup()

	_, err := executeCommand("undo", "missing")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "folder missing not found")
}

func TestUndoCmd_ServiceNotConfigured(t *testing.T) {
	old := undoService
	undoService = nil
	defer func() {
		undoService = old
	}()

	_, err := executeCommand("undo", "folder-7")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "undo service not configured")
}
