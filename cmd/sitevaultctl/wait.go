package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/archipelago-ops/sitevault/pkg/server/endpoints"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the SiteVault server to be ready",
	Long: `Wait for the SiteVault server to be ready by polling the status endpoint.

The status endpoint pings the vault database, so a successful poll means
the server is up and its storage is reachable, not just that the port is
open.

Example:
  sitevaultctl wait
  sitevaultctl wait --port 3000 --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")
		retries, _ := cmd.Flags().GetInt("retries")

		status, err := waitForServer(host, port, retries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("SiteVault %s is ready\n", status.Version)
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().String("host", "localhost", "Server host to check")
	waitCmd.Flags().IntP("port", "p", defaultPortInt(), "Server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForServer(host string, port, retries int) (*endpoints.StatusResponse, error) {
	url := fmt.Sprintf("http://%s:%d/status", host, port)
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Println("Waiting for SiteVault to be ready...")

	for i := 0; i < retries; i++ {
		if status := pollStatus(client, url); status != nil {
			fmt.Println()
			return status, nil
		}

		fmt.Print(".")
		time.Sleep(1 * time.Second)
	}

	fmt.Println()
	return nil, fmt.Errorf("not ready after %d seconds", retries)
}

// pollStatus returns the decoded status body on a healthy response and
// nil on any failure, including a 503 from a server whose database ping
// is failing.
func pollStatus(client *http.Client, url string) *endpoints.StatusResponse {
	resp, err := client.Get(url)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var status endpoints.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil
	}
	if status.Status != "ok" {
		return nil
	}
	return &status
}
