package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

// timeRounding trims run durations for display.
const timeRounding = 10 * time.Millisecond

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every marked client folder",
	Long: `Discovers all folders carrying a marker file, resolves each marker to a
DealTrack transaction, uploads the eligible documents and renames them
as transferred. Folders that fail are reported and skipped; the run
continues.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if uploadOrchestrator == nil {
		return errors.New("upload service not configured")
	}

	cmd.Println("Starting batch run...")

	report, err := uploadOrchestrator.RunBatch(context.Background())
	if report != nil {
		printRunReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}
	return nil
}

func printRunReport(cmd *cobra.Command, report *domain.RunReport) {
	counts := report.Counts()

	cmd.Println()
	cmd.Printf("Run %s finished in %s\n", report.RunID, report.Duration().Round(timeRounding))
	cmd.Printf("  Folders:  %d discovered, %d processed\n", report.FoldersDiscovered, report.FoldersProcessed)
	cmd.Printf("  Uploaded: %d\n", counts.Uploaded)
	cmd.Printf("  Failed:   %d\n", counts.Failed)
	cmd.Printf("  Skipped:  %d\n", counts.Skipped)

	if counts.Flagged > 0 {
		cmd.Printf("  Flagged:  %d identifier(s) matched multiple transactions\n", counts.Flagged)
		for _, flag := range report.MultiTransactionFlags {
			cmd.Printf("    %s (%s) -> %d transactions\n", flag.FolderPath, flag.Identifier, flag.Count())
		}
	}

	for _, failure := range report.Failures {
		cmd.Printf("  FAIL [%s] %s: %s\n", failure.Stage, outcomeSubject(failure), failure.Detail)
	}
}

// outcomeSubject names what an outcome refers to: the file when one is
// involved, otherwise the folder.
func outcomeSubject(o domain.TransferOutcome) string {
	if o.FileName != "" {
		return o.FolderPath + "/" + o.FileName
	}
	return o.FolderPath
}
