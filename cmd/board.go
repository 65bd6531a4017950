package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/danielsotopino/simple-taskmanager/internal/ui"
	"github.com/danielsotopino/simple-taskmanager/store"
)

var boardContext string

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show tasks as a status board",
	Long: `Render every task as columns, one per workflow state, sized to the
terminal width.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.Flags().StringVarP(&boardContext, "context", "C", "", "Restrict to one context (empty = all contexts)")
}

func runBoard(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the task store", err)
	}
	defer func() { _ = taskStore.Close() }()

	page, err := taskStore.ListTasks(store.TaskFilter{Context: boardContext, Limit: -1})
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	fmt.Println(ui.RenderBoard(page.Tasks, width))
	return nil
}
