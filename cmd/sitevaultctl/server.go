package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/archipelago-ops/sitevault/pkg/config"
	"github.com/archipelago-ops/sitevault/pkg/db"
	"github.com/archipelago-ops/sitevault/pkg/secretbox"
	"github.com/archipelago-ops/sitevault/pkg/server"
	"github.com/archipelago-ops/sitevault/pkg/server/endpoints"
	gormstore "github.com/archipelago-ops/sitevault/pkg/server/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the SiteVault application server",
	Long: `Run the SiteVault application server

To run the server requires the environment variables SITEVAULT_DATA_KEY,
SITEVAULT_SESSION_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		dataKeyB64, ok := os.LookupEnv("SITEVAULT_DATA_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "SITEVAULT_DATA_KEY environment variable is required")
			os.Exit(1)
		}

		sessionKeyB64, ok := os.LookupEnv("SITEVAULT_SESSION_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "SITEVAULT_SESSION_KEY environment variable is required")
			os.Exit(1)
		}

		if db.URL() == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		dataKey, err := base64.StdEncoding.DecodeString(dataKeyB64)
		if err != nil {
			fmt.Println("Bad SITEVAULT_DATA_KEY:", err)
			os.Exit(1)
		}

		sessionKey, err := base64.StdEncoding.DecodeString(sessionKeyB64)
		if err != nil {
			fmt.Println("Bad SITEVAULT_SESSION_KEY:", err)
			os.Exit(1)
		}

		codec, err := secretbox.NewSymmetric(dataKey)
		if err != nil {
			fmt.Println("Unable to initiate codec:", err)
			os.Exit(1)
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Println("Invalid configuration:", err)
			os.Exit(1)
		}

		if cfg.LegacyBase64Fallback {
			codec = codec.WithLegacyFallback(secretbox.Base64Codec{})
		}

		gormDB, err := db.Connect(db.Config{URL: db.URL()})
		if err != nil {
			fmt.Println("Unable to connect to DB:", err)
			os.Exit(1)
		}

		credentials := gormstore.NewCredentialsStore(gormDB, codec, cfg.RetainHistory())
		users := gormstore.NewUsersStore(gormDB)
		sites := gormstore.NewSitesStore(gormDB)

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(credentials, users, sites, sessionKey, gormDB, host, port)

		endpoints.RegisterAll(s)

		if watch, _ := cmd.Flags().GetBool("watch-config"); watch {
			go func() {
				err := config.Watch(context.Background(), func(c *config.Config) {
					log.Println("Configuration reloaded from", c.ConfigFilePath())
				})
				if err != nil {
					log.Println("Config watch stopped:", err)
				}
			}()
		}

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("watch-config", false, "reload configuration on config file changes")
}
