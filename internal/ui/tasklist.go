package ui

// Task rendering for the list, show, and watch commands.

import (
	"fmt"
	"strings"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
)

// RenderTaskTable renders listed tasks as a compact table.
func RenderTaskTable(rows []store.ListedTask) string {
	if len(rows) == 0 {
		return StyleSubtle.Render("No tasks found.") + "\n"
	}

	table := Table{
		Headers:  []string{"CONTEXT", "ID", "TITLE", "STATUS", "PRIORITY", "TAGS", "SUBTASKS"},
		MaxWidth: 48,
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.Context,
			row.ID,
			row.Title,
			string(row.Status),
			string(row.Priority),
			strings.Join(row.Tags, ","),
			fmt.Sprintf("%d", models.CountSubtasks(row.Subtasks)),
		})
	}
	return table.Render()
}

// RenderSubtaskTable renders listed subtasks with their nesting level
// shown as indentation.
func RenderSubtaskTable(rows []store.ListedSubtask) string {
	if len(rows) == 0 {
		return StyleSubtle.Render("No subtasks.") + "\n"
	}

	table := Table{
		Headers:  []string{"ID", "TITLE", "STATUS", "TAGS"},
		MaxWidth: 56,
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			strings.Repeat("  ", row.Level) + row.ID,
			strings.Repeat("  ", row.Level) + row.Title,
			string(row.Status),
			strings.Join(row.Tags, ","),
		})
	}
	return table.Render()
}

// RenderTaskDetail renders one task with its full subtask tree.
func RenderTaskDetail(contextName string, task models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleTitle.Render(fmt.Sprintf("Task #%s", task.ID)), task.Title)
	fmt.Fprintf(&b, "  Context:   %s\n", contextName)
	fmt.Fprintf(&b, "  Status:    %s\n", StatusBadge(task.Status))
	fmt.Fprintf(&b, "  Priority:  %s\n", PriorityStyle(task.Priority).Render(string(task.Priority)))
	fmt.Fprintf(&b, "  Created:   %s\n", task.CreationDate)
	if task.CompletedDate != "" {
		fmt.Fprintf(&b, "  Completed: %s\n", task.CompletedDate)
	}
	if task.Description != "" {
		fmt.Fprintf(&b, "  Description: %s\n", task.Description)
	}
	if len(task.Tags) > 0 {
		fmt.Fprintf(&b, "  Tags:      %s\n", strings.Join(task.Tags, ", "))
	}
	if len(task.Dependencies) > 0 {
		fmt.Fprintf(&b, "  Depends on: %s\n", strings.Join(task.Dependencies, ", "))
	}
	if len(task.Blockers) > 0 {
		fmt.Fprintf(&b, "  Blockers:  %s\n", strings.Join(task.Blockers, "; "))
	}
	if task.Notes != "" {
		fmt.Fprintf(&b, "  Notes:     %s\n", task.Notes)
	}
	if len(task.Subtasks) > 0 {
		fmt.Fprintf(&b, "  Subtasks (%d total):\n", models.CountSubtasks(task.Subtasks))
		b.WriteString(RenderSubtaskTree(task.Subtasks, 2))
	}
	return b.String()
}

// RenderSubtaskTree renders a subtask tree with one indent level per
// depth.
func RenderSubtaskTree(nodes []models.Subtask, indent int) string {
	var b strings.Builder
	models.WalkSubtasks(nodes, 0, func(node *models.Subtask, level int) {
		fmt.Fprintf(&b, "%s- #%s [%s] %s\n",
			strings.Repeat("  ", indent+level),
			node.ID,
			StatusBadge(node.Status),
			node.Title,
		)
	})
	return b.String()
}

// RenderContextSummaryLine renders one line per context for watch mode
// and context listings.
func RenderContextSummaryLine(name string, c *models.Context) string {
	done := 0
	for i := range c.Tasks {
		if c.Tasks[i].Status == models.StatusDone {
			done++
		}
	}
	return fmt.Sprintf("%s %s (%d tasks, %d done)",
		StyleHeader.Render(name),
		StyleSubtle.Render("updated "+c.Metadata.Updated),
		len(c.Tasks),
		done,
	)
}
