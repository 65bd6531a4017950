package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/ui"
	"github.com/danielsotopino/simple-taskmanager/store"
)

var (
	showContext string
	showJSON    bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show one task with its full subtask tree",
	Long: `Show a task's details and every nested subtask. When the task ID is
omitted an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showContext, "context", "C", "default", "Context the task lives in")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Emit JSON instead of formatted text")
}

func runShow(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the task store", err)
	}
	defer func() { _ = taskStore.Close() }()

	taskID, contextName, err := resolveTaskArg(taskStore, args, showContext, "Select a task to show")
	if err != nil {
		return err
	}

	task, err := taskStore.GetTask(contextName, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	if showJSON {
		return printJSON(store.ListedTask{Task: task, Context: contextName})
	}

	fmt.Print(ui.RenderTaskDetail(contextName, task))
	return nil
}

// resolveTaskArg returns the task ID from args, or falls back to an
// interactive picker scoped to the given context. The returned context
// follows the picker's selection when one is used.
func resolveTaskArg(taskStore store.TaskStore, args []string, contextName, pickerLabel string) (string, string, error) {
	if len(args) > 0 {
		return args[0], contextName, nil
	}
	selected, err := selectTaskInteractive(taskStore, store.TaskFilter{Context: contextName}, pickerLabel)
	if err != nil {
		return "", "", err
	}
	return selected.ID, selected.Context, nil
}
