package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export subscriptions and summary to an xlsx workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "subtrack.xlsx", "Output file path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}
	if len(data.Subs) == 0 {
		fmt.Println("\n  Nothing to export.")
		return nil
	}

	if err := export.WriteFile(exportOut, data.Subs, data.Settings, data.Rates, today()); err != nil {
		return err
	}

	fmt.Printf("\n  Exported %d subscriptions to %s\n", len(data.Subs), exportOut)
	return nil
}
