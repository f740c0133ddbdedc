package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the identifier lookup cache",
	Long: `The lookup cache maps marker identifiers to their client folders so
single uploads don't walk the whole folder tree. It refreshes itself
when stale; use these commands to force a refresh or inspect it.`,
}

var cacheRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the cache from the document store",
	RunE:  runCacheRefresh,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache state",
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheRefreshCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheRefresh(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	if err := lookupService.Refresh(context.Background()); err != nil {
		return fmt.Errorf("cache refresh failed: %w", err)
	}

	stats := lookupService.Stats()
	cmd.Printf("Cache refreshed: %d identifier(s)\n", stats.Entries)
	return nil
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	stats := lookupService.Stats()
	if stats.RefreshedAt.IsZero() {
		cmd.Println("Cache is empty (never refreshed)")
		return nil
	}

	cmd.Printf("Entries:   %d\n", stats.Entries)
	cmd.Printf("Refreshed: %s\n", stats.RefreshedAt.Format("2006-01-02 15:04:05"))
	if stats.Stale {
		cmd.Println("Status:    stale (next lookup will refresh)")
	} else {
		cmd.Println("Status:    fresh")
	}
	return nil
}
