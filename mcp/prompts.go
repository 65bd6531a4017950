package mcp

// MCP prompts. These are pure text builders over the stored document;
// no model is called here.

import (
	"context"
	"fmt"
	"sort"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
)

// RegisterPrompts registers the prompt builders.
func RegisterPrompts(server *mcpsdk.Server, taskStore store.TaskStore) error {
	server.AddPrompt(&mcpsdk.Prompt{
		Name:        "daily-standup",
		Description: "Summarize the current tasks per context for a standup update",
	}, dailyStandupPromptHandler(taskStore))

	server.AddPrompt(&mcpsdk.Prompt{
		Name:        "task-breakdown",
		Description: "Render a task with its subtask tree and ask for further decomposition",
		Arguments: []*mcpsdk.PromptArgument{
			{Name: "context", Description: "Context name", Required: true},
			{Name: "task_id", Description: "Top-level task ID to break down", Required: true},
		},
	}, taskBreakdownPromptHandler(taskStore))

	return nil
}

func dailyStandupPromptHandler(taskStore store.TaskStore) func(context.Context, *mcpsdk.ServerSession, *mcpsdk.GetPromptParams) (*mcpsdk.GetPromptResult, error) {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.GetPromptParams) (*mcpsdk.GetPromptResult, error) {
		doc, err := taskStore.GetDocument()
		if err != nil {
			return nil, fmt.Errorf("load document for prompt: %w", err)
		}

		names := make([]string, 0, len(doc))
		for name := range doc {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		b.WriteString("Prepare a short standup update from the task state below.\n")
		b.WriteString("Group by context; call out blocked tasks and anything in review or testing.\n\n")
		if len(names) == 0 {
			b.WriteString("There are no tasks yet.\n")
		}
		for _, name := range names {
			fmt.Fprintf(&b, "Context %s:\n", name)
			for _, task := range doc[name].Tasks {
				fmt.Fprintf(&b, "  - [%s] #%s %s (priority %s", task.Status, task.ID, task.Title, task.Priority)
				if n := models.CountSubtasks(task.Subtasks); n > 0 {
					fmt.Fprintf(&b, ", %d subtasks", n)
				}
				b.WriteString(")\n")
			}
			b.WriteString("\n")
		}

		return &mcpsdk.GetPromptResult{
			Description: "Daily standup summary request",
			Messages: []*mcpsdk.PromptMessage{
				{
					Role:    "user",
					Content: &mcpsdk.TextContent{Text: b.String()},
				},
			},
		}, nil
	}
}

func taskBreakdownPromptHandler(taskStore store.TaskStore) func(context.Context, *mcpsdk.ServerSession, *mcpsdk.GetPromptParams) (*mcpsdk.GetPromptResult, error) {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.GetPromptParams) (*mcpsdk.GetPromptResult, error) {
		contextName := params.Arguments["context"]
		taskID := params.Arguments["task_id"]
		if strings.TrimSpace(contextName) == "" || strings.TrimSpace(taskID) == "" {
			return nil, fmt.Errorf("context and task_id arguments are required")
		}

		task, err := taskStore.GetTask(contextName, taskID)
		if err != nil {
			return nil, err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Break the following task into smaller subtasks.\n\n")
		fmt.Fprintf(&b, "Task #%s in context '%s': %s\n", task.ID, contextName, task.Title)
		if task.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", task.Description)
		}
		fmt.Fprintf(&b, "Status: %s, priority: %s\n", task.Status, task.Priority)

		if len(task.Subtasks) == 0 {
			b.WriteString("\nIt has no subtasks yet.\n")
		} else {
			b.WriteString("\nExisting subtask tree:\n")
			models.WalkSubtasks(task.Subtasks, 0, func(node *models.Subtask, level int) {
				fmt.Fprintf(&b, "%s- #%s [%s] %s\n", strings.Repeat("  ", level), node.ID, node.Status, node.Title)
			})
		}
		b.WriteString("\nPropose 3-7 concrete subtasks that cover the remaining work. ")
		b.WriteString("Use the add_subtask tool to create the ones worth tracking.\n")

		return &mcpsdk.GetPromptResult{
			Description: fmt.Sprintf("Breakdown request for task %s", taskID),
			Messages: []*mcpsdk.PromptMessage{
				{
					Role:    "user",
					Content: &mcpsdk.TextContent{Text: b.String()},
				},
			},
		}, nil
	}
}
