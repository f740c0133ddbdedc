package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage credentials",
	Long: `Manage the DealTrack API key and inspect credential status.

Google Drive and Sheets access uses an OAuth token file in the config
directory; dealsync loads it but does not obtain it.`,
}

var authSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the DealTrack API key",
	RunE:  runAuthSetKey,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show credential status",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authSetKeyCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetKey(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	cmd.Print("Enter DealTrack API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("API key must not be empty")
	}

	if err := authService.SetAPIKey(key); err != nil {
		return fmt.Errorf("store API key: %w", err)
	}

	cmd.Println("API key stored.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	status, err := authService.Status()
	if err != nil {
		return fmt.Errorf("get auth status: %w", err)
	}

	cmd.Println("[DealTrack]")
	if status.RegistryConfigured {
		cmd.Println("  API key: configured")
	} else {
		cmd.Println("  API key: (not set)")
	}
	if status.RegistryBaseURL != "" {
		cmd.Printf("  Base URL: %s\n", status.RegistryBaseURL)
	} else {
		cmd.Println("  Base URL: (not set)")
	}
	cmd.Println()

	cmd.Println("[Google]")
	if status.StoreAuthenticated {
		cmd.Println("  Token: present")
	} else {
		cmd.Println("  Token: missing (place a token file in the config directory)")
	}
	return nil
}

// readPassword reads a line without echo when stdin is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
