package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

var undoCmd = &cobra.Command{
	Use:   "undo <folder-id>",
	Short: "Remove transferred markers from a folder's files",
	Long: `Walks the given folder recursively and renames every file marked as
transferred back to its original name, so the next run uploads it
again. Files without the marker are left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	if undoService == nil {
		return errors.New("undo service not configured")
	}

	folderID := args[0]
	report, err := undoService.Undo(context.Background(), folderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("folder %s not found", folderID)
		}
		return fmt.Errorf("undo failed: %w", err)
	}

	cmd.Printf("Folder %s: restored %d, untouched %d\n",
		report.FolderID, len(report.Restored), report.Untouched)

	for _, restored := range report.Restored {
		cmd.Printf("  %s -> %s\n", restored.OldName, restored.NewName)
	}
	for _, failure := range report.Failed {
		cmd.Printf("  FAIL %s: %s\n", failure.Name, failure.Reason)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d file(s) could not be restored", len(report.Failed))
	}
	return nil
}
