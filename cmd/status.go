/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/taskutil"
	"github.com/danielsotopino/simple-taskmanager/models"
)

var statusContext string

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [task-id] [new-status]",
	Short: "Move a task through the status workflow",
	Long: `Update a task's status. Transitions follow the workflow graph;
illegal moves are rejected with the permitted targets.

When the new status is omitted, a picker over the currently allowed
transitions is shown. Common aliases like 'wip' or 'in-review' are
accepted.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusContext, "context", "C", "default", "Context the task lives in")
}

func runStatus(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the task store", err)
	}
	defer func() { _ = taskStore.Close() }()

	taskID, contextName, err := resolveTaskArg(taskStore, args, statusContext, "Select a task to update")
	if err != nil {
		return err
	}

	task, err := taskStore.GetTask(contextName, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	var target models.TaskStatus
	if len(args) > 1 {
		normalized, err := taskutil.NormalizeStatusString(args[1])
		if err != nil {
			return err
		}
		target = models.TaskStatus(normalized)
	} else {
		target, err = pickTransition(task.Status)
		if err != nil {
			return err
		}
	}

	updated, err := taskStore.UpdateTaskStatus(contextName, taskID, target)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	fmt.Printf("✔ Task #%s: %s -> %s\n", updated.ID, task.Status, updated.Status)
	if updated.Status == models.StatusDone {
		fmt.Printf("  Completed at %s\n", updated.CompletedDate)
	}
	return nil
}

// pickTransition prompts over the transitions allowed from the current
// status.
func pickTransition(from models.TaskStatus) (models.TaskStatus, error) {
	allowed := models.AllowedTransitions(from)
	if len(allowed) == 0 {
		return "", fmt.Errorf("status %q is terminal, no transitions available", from)
	}

	items := make([]string, len(allowed))
	for i, s := range allowed {
		items[i] = string(s)
	}

	prompt := promptui.Select{
		Label: fmt.Sprintf("New status (currently %s)", from),
		Items: items,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return allowed[i], nil
}
