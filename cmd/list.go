/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/ui"
	"github.com/danielsotopino/simple-taskmanager/store"
)

var (
	listContext string
	listTag     string
	listLimit   int
	listOffset  int
	listAll     bool
	listJSON    bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks across all contexts or within one, with tag filtering
and pagination. Results are ordered by context name, then priority,
then numeric task ID.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listContext, "context", "C", "", "Restrict to one context (empty = all contexts)")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Only tasks carrying this tag")
	listCmd.Flags().IntVar(&listLimit, "limit", store.DefaultPageSize, "Page size")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Page offset")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Disable pagination")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit JSON instead of a table")
}

func runList(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the task store", err)
	}
	defer func() { _ = taskStore.Close() }()

	limit := listLimit
	if listAll {
		limit = -1
	}

	page, err := taskStore.ListTasks(store.TaskFilter{
		Context: listContext,
		Tag:     listTag,
		Limit:   limit,
		Offset:  listOffset,
	})
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if listJSON {
		return printJSON(page)
	}

	fmt.Print(ui.RenderTaskTable(page.Tasks))
	if page.Total > len(page.Tasks) {
		fmt.Printf("Showing %d of %d tasks (use --offset/--limit or --all)\n", len(page.Tasks), page.Total)
	}
	return nil
}
