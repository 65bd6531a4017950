package mcp

// Task-level tool handlers: add, list, get, update status, delete, search.

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
	"github.com/danielsotopino/simple-taskmanager/types"
)

// addTaskHandler creates a new task in a context, creating the context
// on first use.
func addTaskHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.AddTaskParams, types.TaskResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.AddTaskParams]) (*mcpsdk.CallToolResultFor[types.TaskResponse], error) {
		args := params.Arguments
		logToolCall("add_task", args)

		task, err := taskStore.CreateTask(args.Context, args.Title, args.Description, models.TaskPriority(args.Priority), args.Tags, args.Dependencies)
		if err != nil {
			return nil, failTool("add_task", err)
		}

		notice := fmt.Sprintf("Created task %s '%s' in context '%s' (priority %s)", task.ID, task.Title, args.Context, task.Priority)
		logInfo(notice)
		return textResult(notice, taskToResponse(task, args.Context)), nil
	}
}

// listTasksHandler lists tasks across contexts with tag filtering and
// offset/limit pagination.
func listTasksHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.ListTasksParams, types.TaskListResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ListTasksParams]) (*mcpsdk.CallToolResultFor[types.TaskListResponse], error) {
		args := params.Arguments
		logToolCall("list_tasks", args)

		page, err := taskStore.ListTasks(store.TaskFilter{
			Context: args.Context,
			Tag:     args.Tag,
			Limit:   args.Limit,
			Offset:  args.Offset,
		})
		if err != nil {
			return nil, failTool("list_tasks", err)
		}

		response := taskPageToResponse(page)
		notice := fmt.Sprintf("Found %d tasks (showing %d)", response.Total, len(response.Tasks))
		logInfo(notice)
		return textResult(notice, response), nil
	}
}

// getTaskHandler retrieves one top-level task.
func getTaskHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.GetTaskParams, types.TaskResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.GetTaskParams]) (*mcpsdk.CallToolResultFor[types.TaskResponse], error) {
		args := params.Arguments
		logToolCall("get_task", args)

		task, err := taskStore.GetTask(args.Context, args.TaskID)
		if err != nil {
			return nil, failTool("get_task", err)
		}

		notice := fmt.Sprintf("Task %s '%s' [%s]", task.ID, task.Title, task.Status)
		return textResult(notice, taskToResponse(task, args.Context)), nil
	}
}

// updateTaskStatusHandler moves a task through the workflow graph.
func updateTaskStatusHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.UpdateTaskStatusParams, types.TaskResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.UpdateTaskStatusParams]) (*mcpsdk.CallToolResultFor[types.TaskResponse], error) {
		args := params.Arguments
		logToolCall("update_task_status", args)

		previous, err := taskStore.GetTask(args.Context, args.TaskID)
		if err != nil {
			return nil, failTool("update_task_status", err)
		}

		task, err := taskStore.UpdateTaskStatus(args.Context, args.TaskID, models.TaskStatus(args.Status))
		if err != nil {
			return nil, failTool("update_task_status", err)
		}

		notice := fmt.Sprintf("Task %s: %s -> %s", task.ID, previous.Status, task.Status)
		if task.Status == models.StatusDone {
			notice += fmt.Sprintf(" (completed %s)", task.CompletedDate)
		}
		logInfo(notice)
		return textResult(notice, taskToResponse(task, args.Context)), nil
	}
}

// deleteTaskHandler removes a task and its entire subtree. When the
// archive is enabled the subtree is recorded first; a failed archive
// write aborts the delete so no work is lost silently.
func deleteTaskHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.DeleteTaskParams, types.DeleteResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.DeleteTaskParams]) (*mcpsdk.CallToolResultFor[types.DeleteResponse], error) {
		args := params.Arguments
		logToolCall("delete_task", args)

		task, err := taskStore.GetTask(args.Context, args.TaskID)
		if err != nil {
			return nil, failTool("delete_task", err)
		}

		archived := false
		if currentConfig().Archive.Enabled {
			arch, err := archiveStore()
			if err != nil {
				return nil, failTool("delete_task", fmt.Errorf("archive unavailable: %w", err))
			}
			if _, err := arch.ArchiveTask(args.Context, task, "deleted via mcp"); err != nil {
				return nil, failTool("delete_task", fmt.Errorf("archive task before delete: %w", err))
			}
			archived = true
		}

		if err := taskStore.DeleteTask(args.Context, args.TaskID); err != nil {
			return nil, failTool("delete_task", err)
		}

		subtree := models.CountSubtasks(task.Subtasks)
		notice := fmt.Sprintf("Deleted task %s '%s' from context '%s' (%d nested subtasks removed)", task.ID, task.Title, args.Context, subtree)
		logInfo(notice)
		return textResult(notice, types.DeleteResponse{Success: true, Message: notice, Archived: archived}), nil
	}
}

// searchTasksHandler runs a substring search over titles, descriptions,
// and tags.
func searchTasksHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.SearchTasksParams, types.TaskListResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.SearchTasksParams]) (*mcpsdk.CallToolResultFor[types.TaskListResponse], error) {
		args := params.Arguments
		logToolCall("search_tasks", args)

		if strings.TrimSpace(args.Query) == "" {
			return nil, failTool("search_tasks", models.NewValidationError("query", args.Query, nil))
		}

		page, err := taskStore.ListTasks(store.TaskFilter{
			Context: args.Context,
			Query:   args.Query,
			Limit:   args.Limit,
			Offset:  args.Offset,
		})
		if err != nil {
			return nil, failTool("search_tasks", err)
		}

		response := taskPageToResponse(page)
		notice := fmt.Sprintf("Search '%s' matched %d tasks", args.Query, response.Total)
		return textResult(notice, response), nil
	}
}
