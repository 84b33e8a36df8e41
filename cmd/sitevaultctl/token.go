package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archipelago-ops/sitevault/pkg/config"
	"github.com/archipelago-ops/sitevault/pkg/server/middleware"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage session tokens",
	Long:  `Manage session tokens`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token' requires a subcommand issue")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// tokenIssueCmd represents the token issue command
var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a session token for a principal",
	Long: `Issue a session token for a principal.

The token is signed with SITEVAULT_SESSION_KEY and expires after the
configured session TTL. Intended for scripting and smoke tests; production
clients obtain tokens from the identity provider.

Example:
  sitevaultctl token issue --email admin@example.com`,
	Run: func(cmd *cobra.Command, args []string) {
		sessionKeyB64, ok := os.LookupEnv("SITEVAULT_SESSION_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "SITEVAULT_SESSION_KEY environment variable is required")
			os.Exit(1)
		}

		sessionKey, err := base64.StdEncoding.DecodeString(sessionKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad SITEVAULT_SESSION_KEY:", err)
			os.Exit(1)
		}

		email, _ := cmd.Flags().GetString("email")

		token, err := middleware.NewSessionToken(sessionKey, email, config.Get().SessionTTL())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to issue token:", err)
			os.Exit(1)
		}

		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)

	tokenIssueCmd.Flags().String("email", "", "principal email (required)")
	_ = tokenIssueCmd.MarkFlagRequired("email")
}
