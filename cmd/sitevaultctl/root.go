package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sitevaultctl",
	Short: "SiteVault credential server CLI",
	Long: `sitevaultctl manages the SiteVault credential server: running the
server, migrating the database, registering users and generating keys.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
