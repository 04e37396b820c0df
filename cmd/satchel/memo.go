// Memo commands: creation, listing, and label association.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var (
	memoUserID  string
	memoTitle   string
	memoContent string
	memoLabels  []string
)

var memoCmd = &cobra.Command{
	Use:   "memo",
	Short: "Manage memos",
}

var memoAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new memo",
	Long: `Add creates a memo for a user, optionally associating labels by name.
A label name that the user does not own is an error; association by name
relies on the case-insensitive label lookup.

Example:
  satchel memo add --user <id> --content "Call the bank"
  satchel memo add --user <id> --title Plans --content "..." --label Work --label Ideas`,
	Args: cobra.NoArgs,
	RunE: runMemoAdd,
}

var memoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's memos, most recently updated first",
	Args:  cobra.NoArgs,
	RunE:  runMemoList,
}

func init() {
	memoAddCmd.Flags().StringVar(&memoUserID, "user", "", "owner user ID (required)")
	memoAddCmd.Flags().StringVar(&memoTitle, "title", "", "memo title")
	memoAddCmd.Flags().StringVar(&memoContent, "content", "", "memo content (required)")
	memoAddCmd.Flags().StringArrayVar(&memoLabels, "label", nil, "label name to associate (repeatable)")
	_ = memoAddCmd.MarkFlagRequired("user")
	_ = memoAddCmd.MarkFlagRequired("content")

	memoListCmd.Flags().StringVar(&memoUserID, "user", "", "owner user ID (required)")
	_ = memoListCmd.MarkFlagRequired("user")

	memoCmd.AddCommand(memoAddCmd)
	memoCmd.AddCommand(memoListCmd)
}

func runMemoAdd(cmd *cobra.Command, args []string) error {
	memo := &types.Memo{
		UserID:  memoUserID,
		Title:   memoTitle,
		Content: memoContent,
	}
	if err := memos.Create(memo); err != nil {
		return fmt.Errorf("create memo: %w", err)
	}

	for _, name := range memoLabels {
		label, err := labels.GetByName(memoUserID, name)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("user has no label named %q", name)
			}
			return fmt.Errorf("look up label %q: %w", name, err)
		}
		if err := memos.AddLabel(memo.ID, label.ID); err != nil {
			return fmt.Errorf("associate label %q: %w", name, err)
		}
	}

	if jsonOutput {
		return printJSON(cmd, map[string]string{"id": memo.ID})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created memo %s\n", memo.ID)
	return nil
}

func runMemoList(cmd *cobra.Command, args []string) error {
	list, err := memos.GetByUser(memoUserID)
	if err != nil {
		return fmt.Errorf("list memos: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, list)
	}
	for _, m := range list {
		names := make([]string, len(m.Labels))
		for i, l := range m.Labels {
			names[i] = l.Name
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24q %v\n", m.ID, m.Title, names)
	}
	return nil
}
