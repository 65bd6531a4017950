/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/ui"
	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
)

var (
	archiveListContext string
	archiveListLimit   int
	archiveListJSON    bool
	archivePurgeDays   int
	archivePurgeForce  bool
)

// archiveCmd groups archive inspection commands.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect archived (deleted) tasks",
	Long: `Browse the archive of deleted tasks. Archiving happens at delete time
when archive.enabled is set; each entry holds the full removed subtree.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archive entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		arch, err := GetArchiveStore()
		if err != nil {
			return err
		}
		defer func() { _ = arch.Close() }()

		entries, err := arch.ListEntries(archiveListContext, archiveListLimit)
		if err != nil {
			return fmt.Errorf("failed to list archive entries: %w", err)
		}

		if archiveListJSON {
			return printJSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("Archive is empty.")
			return nil
		}

		table := ui.Table{
			Headers:  []string{"ID", "CONTEXT", "TASK", "TITLE", "STATUS", "ARCHIVED"},
			MaxWidth: 40,
		}
		for _, e := range entries {
			table.Rows = append(table.Rows, []string{
				e.ID, e.Context, e.TaskID, e.Title, string(e.Status),
				e.ArchivedAt.Format("2006-01-02 15:04"),
			})
		}
		fmt.Print(table.Render())
		return nil
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <entry-id>",
	Short: "Show one archive entry with its preserved subtree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arch, err := GetArchiveStore()
		if err != nil {
			return err
		}
		defer func() { _ = arch.Close() }()

		entry, err := arch.GetEntry(args[0])
		if err != nil {
			return fmt.Errorf("failed to get archive entry: %w", err)
		}

		// The payload is the deleted subtree, stored as JSON.
		var task models.Task
		if err := json.Unmarshal([]byte(entry.Payload), &task); err != nil {
			return fmt.Errorf("archive entry payload is damaged: %w", err)
		}

		fmt.Printf("Archived %s from context '%s'", entry.ArchivedAt.Format(time.RFC3339), entry.Context)
		if entry.Reason != "" {
			fmt.Printf(" (%s)", entry.Reason)
		}
		fmt.Println()
		fmt.Print(ui.RenderTaskDetail(entry.Context, task))
		return nil
	},
}

var archiveStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		arch, err := GetArchiveStore()
		if err != nil {
			return err
		}
		defer func() { _ = arch.Close() }()

		stats, err := arch.Stats()
		if err != nil {
			return fmt.Errorf("failed to read archive stats: %w", err)
		}
		return printJSON(stats)
	},
}

var archivePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove archive entries older than a cutoff",
	RunE: func(cmd *cobra.Command, args []string) error {
		if archivePurgeDays <= 0 {
			return fmt.Errorf("--older-than-days must be positive")
		}
		if !archivePurgeForce && !confirmPrompt(fmt.Sprintf("Purge archive entries older than %d days", archivePurgeDays)) {
			fmt.Println("Aborted.")
			return nil
		}

		arch, err := GetArchiveStore()
		if err != nil {
			return err
		}
		defer func() { _ = arch.Close() }()

		removed, err := arch.Purge(time.Duration(archivePurgeDays) * 24 * time.Hour)
		if err != nil {
			return fmt.Errorf("failed to purge archive: %w", err)
		}
		fmt.Printf("✔ Purged %d archive entries\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd, archiveShowCmd, archiveStatsCmd, archivePurgeCmd)

	archiveListCmd.Flags().StringVarP(&archiveListContext, "context", "C", "", "Restrict to one context (empty = all)")
	archiveListCmd.Flags().IntVar(&archiveListLimit, "limit", store.DefaultPageSize, "Maximum entries to show")
	archiveListCmd.Flags().BoolVar(&archiveListJSON, "json", false, "Emit JSON instead of a table")
	archivePurgeCmd.Flags().IntVar(&archivePurgeDays, "older-than-days", 90, "Purge entries older than this many days")
	archivePurgeCmd.Flags().BoolVarP(&archivePurgeForce, "force", "f", false, "Skip the confirmation prompt")
}
