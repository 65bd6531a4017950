/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/models"
)

var (
	deleteContext string
	deleteForce   bool
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task and its entire subtask tree",
	Long: `Delete a task. Every nested subtask is removed with it. When the
archive is enabled the subtree is recorded in the archive database
before removal; a failed archive write aborts the delete.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVarP(&deleteContext, "context", "C", "default", "Context the task lives in")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the task store", err)
	}
	defer func() { _ = taskStore.Close() }()

	taskID, contextName, err := resolveTaskArg(taskStore, args, deleteContext, "Select a task to delete")
	if err != nil {
		return err
	}

	task, err := taskStore.GetTask(contextName, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	subtree := models.CountSubtasks(task.Subtasks)
	if !deleteForce {
		label := fmt.Sprintf("Delete task #%s '%s'", task.ID, task.Title)
		if subtree > 0 {
			label = fmt.Sprintf("%s and %d nested subtasks", label, subtree)
		}
		if !confirmPrompt(label) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	archived, err := archiveBeforeDelete(contextName, task, "deleted via cli")
	if err != nil {
		return err
	}

	if err := taskStore.DeleteTask(contextName, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("✔ Deleted task #%s '%s' (%d nested subtasks removed)\n", task.ID, task.Title, subtree)
	if archived {
		fmt.Println("  Archived a copy before deletion.")
	}
	return nil
}

// archiveBeforeDelete records the doomed subtree when the archive is
// enabled. An archive failure aborts the delete so no work is lost
// silently.
func archiveBeforeDelete(contextName string, task models.Task, reason string) (bool, error) {
	if !GetConfig().Archive.Enabled {
		return false, nil
	}
	arch, err := GetArchiveStore()
	if err != nil {
		return false, fmt.Errorf("archive unavailable: %w", err)
	}
	defer func() { _ = arch.Close() }()

	if _, err := arch.ArchiveTask(contextName, task, reason); err != nil {
		return false, fmt.Errorf("failed to archive task before delete: %w", err)
	}
	return true, nil
}
