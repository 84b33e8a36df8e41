package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archipelago-ops/sitevault/pkg/secretbox"
)

// dataKeyCmd represents the data-key command
var dataKeyCmd = &cobra.Command{
	Use:   "data-key",
	Short: "Manage the data encoding key",
	Long:  `Manage the data encoding key`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'data-key' requires a subcommand generate")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// dataKeyGenerateCmd represents the data-key > generate command
var dataKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a data encoding key",
	Long: `
Generate a data encoding key

Use this command to generate a new Base64-encoded 256 bit key. Once
generated, this key should be placed into the environment of the SiteVault
server. It will be used to encode all secrets stored in the database.

Example:

$ export SITEVAULT_DATA_KEY="$(sitevaultctl data-key generate)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		bytes, _ := secretbox.RandomBytes(secretbox.KeySize)
		fmt.Printf("%s", base64.StdEncoding.Strict().EncodeToString(bytes))
	},
}

func init() {
	rootCmd.AddCommand(dataKeyCmd)
	dataKeyCmd.AddCommand(dataKeyGenerateCmd)
}
