/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/taskutil"
	"github.com/danielsotopino/simple-taskmanager/internal/ui"
	"github.com/danielsotopino/simple-taskmanager/models"
)

var (
	subtaskContext     string
	subtaskDescription string
	subtaskTags        []string
	subtaskRecursive   bool
	subtaskJSON        bool
)

// subtaskCmd groups subtask operations under one command.
var subtaskCmd = &cobra.Command{
	Use:   "subtask",
	Short: "Manage subtasks of a task",
	Long: `Add, list, update, and delete subtasks. Subtask IDs are unique only
among siblings; deep lookups search direct children before descending.`,
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add <task-id> <title>",
	Short: "Add a subtask to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		title := strings.TrimSpace(strings.Join(args[1:], " "))
		subtask, err := taskStore.CreateSubtask(subtaskContext, args[0], title, subtaskDescription, subtaskTags)
		if err != nil {
			return fmt.Errorf("failed to create subtask: %w", err)
		}

		fmt.Printf("✔ Added subtask #%s '%s' to task #%s\n", subtask.ID, subtask.Title, args[0])
		return nil
	},
}

var subtaskListCmd = &cobra.Command{
	Use:   "list <task-id>",
	Short: "List a task's subtasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		page, err := taskStore.ListSubtasks(subtaskContext, args[0], subtaskRecursive)
		if err != nil {
			return fmt.Errorf("failed to list subtasks: %w", err)
		}

		if subtaskJSON {
			return printJSON(page)
		}
		fmt.Print(ui.RenderSubtaskTable(page.Subtasks))
		return nil
	},
}

var subtaskStatusCmd = &cobra.Command{
	Use:   "status <task-id> <subtask-id> [new-status]",
	Short: "Update a subtask's status",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		subtask, err := taskStore.GetSubtask(subtaskContext, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to get subtask: %w", err)
		}

		var target models.TaskStatus
		if len(args) > 2 {
			normalized, err := taskutil.NormalizeStatusString(args[2])
			if err != nil {
				return err
			}
			target = models.TaskStatus(normalized)
		} else {
			target, err = pickTransition(subtask.Status)
			if err != nil {
				return err
			}
		}

		updated, err := taskStore.UpdateSubtaskStatus(subtaskContext, args[0], args[1], target)
		if err != nil {
			return fmt.Errorf("failed to update subtask status: %w", err)
		}

		fmt.Printf("✔ Subtask #%s: %s -> %s\n", updated.ID, subtask.Status, updated.Status)
		return nil
	},
}

var subtaskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id> <subtask-id>",
	Short: "Delete a subtask and its nested subtasks",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Failed to initialize the task store", err)
		}
		defer func() { _ = taskStore.Close() }()

		if err := taskStore.DeleteSubtask(subtaskContext, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to delete subtask: %w", err)
		}

		fmt.Printf("✔ Deleted subtask #%s from task #%s\n", args[1], args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subtaskCmd)
	subtaskCmd.AddCommand(subtaskAddCmd, subtaskListCmd, subtaskStatusCmd, subtaskDeleteCmd)

	subtaskCmd.PersistentFlags().StringVarP(&subtaskContext, "context", "C", "default", "Context the parent task lives in")
	subtaskAddCmd.Flags().StringVarP(&subtaskDescription, "description", "d", "", "Subtask description")
	subtaskAddCmd.Flags().StringSliceVarP(&subtaskTags, "tags", "t", nil, "Comma-separated tags")
	subtaskListCmd.Flags().BoolVarP(&subtaskRecursive, "recursive", "r", false, "Include nested subtasks at every depth")
	subtaskListCmd.Flags().BoolVar(&subtaskJSON, "json", false, "Emit JSON instead of a table")
}
