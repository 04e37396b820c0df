// Contact commands: listing a user's contacts.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contactUserID string

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contacts",
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's contacts",
	Args:  cobra.NoArgs,
	RunE:  runContactList,
}

func init() {
	contactListCmd.Flags().StringVar(&contactUserID, "user", "", "owner user ID (required)")
	_ = contactListCmd.MarkFlagRequired("user")

	contactCmd.AddCommand(contactListCmd)
}

func runContactList(cmd *cobra.Command, args []string) error {
	list, err := contacts.GetByUser(contactUserID)
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, list)
	}
	for _, c := range list {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s emails=%d phones=%d addresses=%d tags=%v\n",
			c.ID, c.Name, len(c.Emails), len(c.Phones), len(c.Addresses), c.Tags)
	}
	return nil
}
