package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/ui"
	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
)

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Interactive task management session",
	Long: `Run a menu-driven session: list, add, update, show, and delete tasks
without re-typing the command for each step. Ctrl-C exits.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the task store", err)
	}
	defer func() { _ = taskStore.Close() }()

	for {
		menu := promptui.Select{
			Label: "What would you like to do",
			Items: []string{"List tasks", "Add task", "Update status", "Show task", "Delete task", "Quit"},
		}
		_, choice, err := menu.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}
			return err
		}

		switch choice {
		case "List tasks":
			err = interactiveList(taskStore)
		case "Add task":
			err = interactiveAdd(taskStore)
		case "Update status":
			err = interactiveStatus(taskStore)
		case "Show task":
			err = interactiveShow(taskStore)
		case "Delete task":
			err = interactiveDelete(taskStore)
		case "Quit":
			return nil
		}

		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}
			if errors.Is(err, ErrNoTasksFound) {
				fmt.Println("No tasks yet.")
				continue
			}
			PrintError(fmt.Sprintf("Operation failed: %v", err), err)
		}
	}
}

func interactiveList(taskStore store.TaskStore) error {
	page, err := taskStore.ListTasks(store.TaskFilter{Limit: -1})
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderTaskTable(page.Tasks))
	return nil
}

func interactiveAdd(taskStore store.TaskStore) error {
	titlePrompt := promptui.Prompt{
		Label: "Title",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("title cannot be empty")
			}
			return nil
		},
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return err
	}

	contextPrompt := promptui.Prompt{Label: "Context", Default: "default"}
	contextName, err := contextPrompt.Run()
	if err != nil {
		return err
	}

	priorityPrompt := promptui.Select{
		Label: "Priority",
		Items: models.ValidPriorityStrings(),
	}
	_, priority, err := priorityPrompt.Run()
	if err != nil {
		return err
	}

	task, err := taskStore.CreateTask(contextName, title, "", models.TaskPriority(priority), nil, nil)
	if err != nil {
		return err
	}
	fmt.Printf("✔ Created task #%s '%s' in context '%s'\n", task.ID, task.Title, contextName)
	return nil
}

func interactiveStatus(taskStore store.TaskStore) error {
	selected, err := selectTaskInteractive(taskStore, store.TaskFilter{}, "Select a task to update")
	if err != nil {
		return err
	}

	target, err := pickTransition(selected.Status)
	if err != nil {
		return err
	}

	updated, err := taskStore.UpdateTaskStatus(selected.Context, selected.ID, target)
	if err != nil {
		return err
	}
	fmt.Printf("✔ Task #%s: %s -> %s\n", updated.ID, selected.Status, updated.Status)
	return nil
}

func interactiveShow(taskStore store.TaskStore) error {
	selected, err := selectTaskInteractive(taskStore, store.TaskFilter{}, "Select a task to show")
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderTaskDetail(selected.Context, selected.Task))
	return nil
}

func interactiveDelete(taskStore store.TaskStore) error {
	selected, err := selectTaskInteractive(taskStore, store.TaskFilter{}, "Select a task to delete")
	if err != nil {
		return err
	}

	if !confirmPrompt(fmt.Sprintf("Delete task #%s '%s'", selected.ID, selected.Title)) {
		fmt.Println("Aborted.")
		return nil
	}

	archived, err := archiveBeforeDelete(selected.Context, selected.Task, "deleted via interactive session")
	if err != nil {
		return err
	}
	if err := taskStore.DeleteTask(selected.Context, selected.ID); err != nil {
		return err
	}
	fmt.Printf("✔ Deleted task #%s\n", selected.ID)
	if archived {
		fmt.Println("  Archived a copy before deletion.")
	}
	return nil
}
