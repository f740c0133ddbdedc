package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openhouse-labs/dealsync-cli/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <identifier>",
	Short: "Upload documents for a single client identifier",
	Long: `Finds the client folder whose marker carries the given identifier
(a numeric transaction ID or a client email address) and uploads its
eligible documents. The folder lookup uses the identifier cache; run
'dealsync cache refresh' if the folder was marked very recently.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadOrchestrator == nil {
		return errors.New("upload service not configured")
	}

	raw := args[0]
	cmd.Printf("Uploading documents for %s...\n", raw)

	report, err := uploadOrchestrator.RunForIdentifier(context.Background(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrNoFolderForIdentifier) {
			return fmt.Errorf("no client folder carries identifier %s", raw)
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	printSingleReport(cmd, report)
	return nil
}

func printSingleReport(cmd *cobra.Command, report *domain.SingleRunReport) {
	if !report.Found {
		cmd.Printf("No matching transaction: %s\n", report.Reason)
		return
	}

	cmd.Println()
	cmd.Printf("Run %s\n", report.RunID)
	if report.PropertyAddress != "" {
		cmd.Printf("  Property: %s\n", report.PropertyAddress)
	}
	cmd.Printf("  Uploaded: %d\n", report.DocumentsUploaded)
	cmd.Printf("  Failed:   %d\n", report.DocumentsFailed)

	for _, outcome := range report.Outcomes {
		if outcome.Kind == domain.OutcomeFailure {
			cmd.Printf("  FAIL [%s] %s: %s\n", outcome.Stage, outcomeSubject(outcome), outcome.Detail)
		}
	}
}
