package driving

import (
	"context"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// UndoReport summarises a transferred-marker removal pass over one folder.
type UndoReport struct {
	// FolderID is the folder that was processed.
	FolderID string

	// Restored holds the files renamed back to their original names.
	Restored []domain.RenamedFile

	// Failed holds the files whose rename failed, with the error text.
	Failed []domain.RenameFailure

	// Untouched is the count of files that carried no transferred marker.
	Untouched int
}

// UndoService strips the transferred marker from files in a folder so a later
// run uploads them again.
type UndoService interface {
	// Undo walks the folder recursively and renames every marked file back
	// to its original name. Returns domain.ErrNotFound when the folder does
	// not exist.
	Undo(ctx context.Context, folderID string) (*UndoReport, error)
}
