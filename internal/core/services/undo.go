package services

import (
	"context"
	"fmt"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driven"
	"github.com/openhouse-labs/dealsync-cli/internal/core/ports/driving"
	"github.com/openhouse-labs/dealsync-cli/internal/logger"
)

// Ensure UndoService implements the interface.
var _ driving.UndoService = (*UndoService)(nil)

// UndoService strips the transferred suffix from files so a later run
// uploads them again.
type UndoService struct {
	store driven.DocumentStore
}

// NewUndoService creates a new undo service.
func NewUndoService(store driven.DocumentStore) *UndoService {
	return &UndoService{store: store}
}

// Undo walks the folder recursively and renames every file carrying the
// transferred suffix back to its original name, stripping exactly one
// suffix per file. Rename failures are collected, not fatal.
func (s *UndoService) Undo(ctx context.Context, folderID string) (*driving.UndoReport, error) {
	if _, err := s.store.Folder(ctx, folderID); err != nil {
		return nil, fmt.Errorf("undo folder %s: %w", folderID, err)
	}

	report := &driving.UndoReport{FolderID: folderID}
	if err := s.undoDir(ctx, folderID, report); err != nil {
		return nil, err
	}
	logger.Info("Undo in %s: %d restored, %d failed, %d untouched",
		folderID, len(report.Restored), len(report.Failed), report.Untouched)
	return report, nil
}

func (s *UndoService) undoDir(ctx context.Context, dirID string, report *driving.UndoReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	files, err := s.store.ListFiles(ctx, dirID, "")
	if err != nil {
		return fmt.Errorf("list files in %s: %w", dirID, err)
	}
	for _, f := range files {
		if !domain.IsTransferred(f.Name) {
			report.Untouched++
			continue
		}
		restored := domain.RestoredName(f.Name)
		if err := s.store.Rename(ctx, f.FileID, restored); err != nil {
			report.Failed = append(report.Failed, domain.RenameFailure{
				FileID: f.FileID,
				Name:   f.Name,
				Reason: err.Error(),
			})
			continue
		}
		report.Restored = append(report.Restored, domain.RenamedFile{
			FileID:  f.FileID,
			OldName: f.Name,
			NewName: restored,
		})
	}

	subs, err := s.store.ListFolders(ctx, dirID)
	if err != nil {
		return fmt.Errorf("list folders in %s: %w", dirID, err)
	}
	for _, sub := range subs {
		if err := s.undoDir(ctx, sub.FolderID, report); err != nil {
			return err
		}
	}
	return nil
}
