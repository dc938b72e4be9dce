package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/statuspad/statuspad/clientcli"
)

var (
	userName  string
	userEmail string
	userRole  string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users on the server",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  runUsersList,
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersGet,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user (admin token required)",
	Long: `Create a user. Requires the admin token.

Examples:
  statuspad-cli users create --name "Carol" --email carol@example.com
  statuspad-cli users create --name "Dave" --email dave@example.com --role admin`,
	RunE: runUsersCreate,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Long: `Update a user. Only the provided flags are changed.

Examples:
  statuspad-cli users update 2 --name "Bob the Builder"
  statuspad-cli users update 2 --email bob@builders.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user (admin token required)",
	Args:    cobra.ExactArgs(1),
	RunE:    runUsersDelete,
}

func init() {
	usersCreateCmd.Flags().StringVar(&userName, "name", "", "user name (required)")
	usersCreateCmd.Flags().StringVar(&userEmail, "email", "", "user email (required)")
	usersCreateCmd.Flags().StringVar(&userRole, "role", "", "user role (default: user)")

	usersUpdateCmd.Flags().StringVar(&userName, "name", "", "new user name")
	usersUpdateCmd.Flags().StringVar(&userEmail, "email", "", "new user email")
	usersUpdateCmd.Flags().StringVar(&userRole, "role", "", "new user role")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
}

func parseUserID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}

func runUsersList(_ *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	users, err := client.ListUsers(context.Background())
	if err != nil {
		formatter := getFormatter()
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	formatter := getFormatter()
	return formatter.FormatUsers(os.Stdout, users)
}

func runUsersGet(_ *cobra.Command, args []string) error {
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	user, err := client.GetUser(context.Background(), id)
	if err != nil {
		formatter := getFormatter()
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	formatter := getFormatter()
	return formatter.FormatUser(os.Stdout, user)
}

func runUsersCreate(_ *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	user, err := client.CreateUser(context.Background(), clientcli.CreateUserInput{
		Name:  userName,
		Email: userEmail,
		Role:  userRole,
	})
	if err != nil {
		formatter := getFormatter()
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	formatter := getFormatter()
	return formatter.FormatUser(os.Stdout, user)
}

func runUsersUpdate(_ *cobra.Command, args []string) error {
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	user, err := client.UpdateUser(context.Background(), id, clientcli.UpdateUserInput{
		Name:  userName,
		Email: userEmail,
		Role:  userRole,
	})
	if err != nil {
		formatter := getFormatter()
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	formatter := getFormatter()
	return formatter.FormatUser(os.Stdout, user)
}

func runUsersDelete(_ *cobra.Command, args []string) error {
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	if err := client.DeleteUser(context.Background(), id); err != nil {
		formatter := getFormatter()
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	if !quiet {
		fmt.Printf("User %d deleted.\n", id)
	}
	return nil
}
