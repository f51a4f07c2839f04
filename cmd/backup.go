package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Write a YAML backup of all subscriptions",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore subscriptions from a YAML backup",
	Long: `Restore subscriptions from a backup file. Restored entries are inserted as
new subscriptions; existing ones are left alone unless --replace is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

var restoreReplace bool

func init() {
	restoreCmd.Flags().BoolVar(&restoreReplace, "replace", false, "Delete existing subscriptions before restoring")
	rootCmd.AddCommand(backupCmd, restoreCmd)
}

func runBackup(_ *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	if err := backup.Write(args[0], data.Subs, data.Settings); err != nil {
		return err
	}
	fmt.Printf("\n  Backed up %d subscriptions to %s\n", len(data.Subs), args[0])
	return nil
}

func runRestore(_ *cobra.Command, args []string) error {
	snap, subs, err := backup.Read(args[0])
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if restoreReplace {
		existing, err := s.List()
		if err != nil {
			return err
		}
		for _, sub := range existing {
			if err := s.Delete(sub.ID); err != nil {
				return fmt.Errorf("clearing existing subscriptions: %w", err)
			}
		}
	}

	for _, sub := range subs {
		if _, err := s.Insert(sub); err != nil {
			return fmt.Errorf("restoring %s: %w", sub.Name, err)
		}
	}

	fmt.Printf("\n  Restored %d subscriptions from %s (exported %s)\n",
		len(subs), args[0], snap.ExportedAt.Format("2006-01-02"))
	return nil
}
