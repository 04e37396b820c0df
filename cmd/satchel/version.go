// Version command for the satchel CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const appVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the satchel version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "satchel v"+appVersion)
	},
}
