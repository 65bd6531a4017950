/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/taskutil"
	"github.com/danielsotopino/simple-taskmanager/models"
)

var (
	addContext      string
	addDescription  string
	addPriority     string
	addTags         []string
	addDependencies []string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task to a context. The context is created on first use.

Examples:
  simple-taskmanager add "Ship the release" -C backend -p high
  simple-taskmanager add "Fix login bug" --tags auth,bug --priority urgent`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addContext, "context", "C", "default", "Context to add the task to")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Priority (low, medium, high, critical; aliases like 'urgent' accepted)")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "Comma-separated tags")
	addCmd.Flags().StringSliceVar(&addDependencies, "depends", nil, "Dependency references, form context:taskID or context:taskID:subtaskID")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	priority, err := taskutil.NormalizePriorityString(addPriority)
	if err != nil {
		return err
	}

	taskStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the task store", err)
	}
	defer func() { _ = taskStore.Close() }()

	task, err := taskStore.CreateTask(addContext, title, addDescription, models.TaskPriority(priority), addTags, addDependencies)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("✔ Created task #%s '%s' in context '%s' (priority %s)\n", task.ID, task.Title, addContext, task.Priority)
	return nil
}
