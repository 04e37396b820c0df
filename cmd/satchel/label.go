// Label commands: listing a user's labels.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var labelUserID string

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage labels",
}

var labelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's labels",
	Args:  cobra.NoArgs,
	RunE:  runLabelList,
}

func init() {
	labelListCmd.Flags().StringVar(&labelUserID, "user", "", "owner user ID (required)")
	_ = labelListCmd.MarkFlagRequired("user")

	labelCmd.AddCommand(labelListCmd)
}

func runLabelList(cmd *cobra.Command, args []string) error {
	list, err := labels.GetByUser(labelUserID)
	if err != nil {
		return fmt.Errorf("list labels: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, list)
	}
	for _, l := range list {
		system := ""
		if l.IsSystem {
			system = " (system)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-16s %s%s\n", l.ID, l.Name, l.Color, system)
	}
	return nil
}
