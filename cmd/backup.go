package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var backupOutput string

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup [destination]",
	Short: "Back up the task document",
	Long: `Copy the current task document to a destination path. Without an
argument a timestamped copy is written next to the document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		destination := backupOutput
		if len(args) > 0 {
			destination = args[0]
		}
		if destination == "" {
			destination = fmt.Sprintf("%s.backup-%s", GetConfig().Data.File, time.Now().Format("20060102-150405"))
		}

		if err := taskStore.Backup(destination); err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Printf("✔ Backed up to %s\n", destination)
		return nil
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <source>",
	Short: "Restore the task document from a backup",
	Long: `Replace the current task document with the given backup file. The
backup must parse in the configured data format; the current document
is overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt(fmt.Sprintf("Overwrite %s with %s", GetConfig().Data.File, args[0])) {
			fmt.Println("Aborted.")
			return nil
		}

		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		if err := taskStore.Restore(args[0]); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		fmt.Printf("✔ Restored from %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)

	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "Destination path")
}
