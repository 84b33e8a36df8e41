package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archipelago-ops/sitevault/pkg/db"
	"github.com/archipelago-ops/sitevault/pkg/model"
	"github.com/archipelago-ops/sitevault/pkg/server/store"
	gormstore "github.com/archipelago-ops/sitevault/pkg/server/store/gorm"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage registered users",
	Long:  `Manage registered users and their access levels.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (create, role)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new user",
	Long: `Register a new user.

The first administrator has to be registered from the command line, since
the API requires an existing admin to register users.

Example:
  sitevaultctl user create --email admin@example.com --name Admin --access-level admin`,
	Run: func(cmd *cobra.Command, args []string) {
		users, err := connectUsersStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		position, _ := cmd.Flags().GetString("position")
		level, _ := cmd.Flags().GetString("access-level")
		group, _ := cmd.Flags().GetString("group")

		draft := store.UserDraft{
			Email:       email,
			Name:        name,
			Position:    position,
			AccessLevel: model.AccessLevel(level),
		}
		if group != "" {
			draft.GroupID = &group
		}

		user, err := users.Create(draft)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to create user:", err)
			os.Exit(1)
		}

		fmt.Printf("Created user %s (%s) with access level %s\n", user.ID, user.Email, user.AccessLevel)
	},
}

// userRoleCmd represents the user role command
var userRoleCmd = &cobra.Command{
	Use:   "role [user-id] [access-level]",
	Short: "Change a user's access level",
	Long: `Change a user's access level.

Example:
  sitevaultctl user role u-1234 manager`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		users, err := connectUsersStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		user, err := users.UpdateAccessLevel(args[0], model.AccessLevel(args[1]))
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to change access level:", err)
			os.Exit(1)
		}

		fmt.Printf("User %s now has access level %s\n", user.ID, user.AccessLevel)
	},
}

func connectUsersStore() (*gormstore.UsersStore, error) {
	if db.URL() == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	gormDB, err := db.Connect(db.Config{URL: db.URL()})
	if err != nil {
		return nil, fmt.Errorf("unable to connect to DB: %w", err)
	}

	return gormstore.NewUsersStore(gormDB), nil
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userRoleCmd)

	userCreateCmd.Flags().String("email", "", "user email (required)")
	userCreateCmd.Flags().String("name", "", "user display name (required)")
	userCreateCmd.Flags().String("position", "", "user position")
	userCreateCmd.Flags().String("access-level", "viewer", "access level (viewer, manager, admin)")
	userCreateCmd.Flags().String("group", "", "group id for group-scoped site visibility")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("name")
}
