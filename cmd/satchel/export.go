// Export command: dump every table to JSONL files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tables as JSONL",
	Long: `Export writes one <table>.jsonl file per table to the output
directory, one JSON object per row. Files are written atomically.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", "satchel-export", "output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := store.ExportJSONL(exportDir); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Exported to", exportDir)
	return nil
}
