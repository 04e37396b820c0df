// User commands: account creation, listing, deletion, and password change.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var (
	userUsername  string
	userEmail     string
	userPassword  string
	userFirstName string
	userLastName  string
	userAdmin     bool

	passwdCurrent string
	passwdNext    string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new user account",
	Long: `Add creates a new user account and seeds its default label set.

Example:
  satchel user add --username alice --email alice@example.com --password s3cret
  satchel user add --username bob --email bob@example.com --password pw --admin`,
	Args: cobra.NoArgs,
	RunE: runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <id>",
	Short: "Change a user's password",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserPasswd,
}

func init() {
	userAddCmd.Flags().StringVar(&userUsername, "username", "", "username (required)")
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "email address (required)")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "password (required)")
	userAddCmd.Flags().StringVar(&userFirstName, "first-name", "", "first name")
	userAddCmd.Flags().StringVar(&userLastName, "last-name", "", "last name")
	userAddCmd.Flags().BoolVar(&userAdmin, "admin", false, "grant the admin role")
	_ = userAddCmd.MarkFlagRequired("username")
	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("password")

	userPasswdCmd.Flags().StringVar(&passwdCurrent, "current", "", "current password (required)")
	userPasswdCmd.Flags().StringVar(&passwdNext, "new", "", "new password (required)")
	_ = userPasswdCmd.MarkFlagRequired("current")
	_ = userPasswdCmd.MarkFlagRequired("new")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userPasswdCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	role := types.RoleUser
	if userAdmin {
		role = types.RoleAdmin
	}
	user := &types.User{
		Username:  userUsername,
		Email:     userEmail,
		FirstName: userFirstName,
		LastName:  userLastName,
		Role:      role,
		IsActive:  true,
	}
	if err := users.Create(user, userPassword); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, map[string]string{"id": user.ID, "username": user.Username})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	all, err := users.GetAll()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, all)
	}
	for _, u := range all {
		name := u.FullName()
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-16s %-28s %-8s %s\n",
			u.ID, u.Username, u.Email, u.Role, name)
	}
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	if err := users.Delete(args[0]); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted user", args[0])
	return nil
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	if err := users.ChangePassword(args[0], passwdCurrent, passwdNext); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
	return nil
}

// printJSON writes v to the command output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
