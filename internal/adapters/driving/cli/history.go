package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.Recent(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, record := range records {
		line := fmt.Sprintf("%s  %-6s  up=%d fail=%d skip=%d flag=%d",
			record.StartedAt.Format("2006-01-02 15:04:05"),
			record.Mode, record.Uploaded, record.Failed, record.Skipped, record.Flagged)
		if record.Fatal != "" {
			line += "  FATAL: " + record.Fatal
		}
		cmd.Println(line)
	}
	return nil
}
