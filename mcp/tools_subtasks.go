package mcp

// Subtask tool handlers. All lookups resolve ambiguous IDs by the same
// depth-first first-match traversal the store uses.

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
	"github.com/danielsotopino/simple-taskmanager/types"
)

// addSubtaskHandler creates a subtask under a top-level task.
func addSubtaskHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.AddSubtaskParams, types.SubtaskResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.AddSubtaskParams]) (*mcpsdk.CallToolResultFor[types.SubtaskResponse], error) {
		args := params.Arguments
		logToolCall("add_subtask", args)

		subtask, err := taskStore.CreateSubtask(args.Context, args.TaskID, args.Title, args.Description, args.Tags)
		if err != nil {
			return nil, failTool("add_subtask", err)
		}

		notice := fmt.Sprintf("Created subtask %s '%s' under task %s in context '%s'", subtask.ID, subtask.Title, args.TaskID, args.Context)
		logInfo(notice)
		return textResult(notice, subtaskToResponse(subtask, args.Context, args.TaskID)), nil
	}
}

// getSubtaskHandler finds a subtask anywhere in the task's subtree.
func getSubtaskHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.GetSubtaskParams, types.SubtaskResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.GetSubtaskParams]) (*mcpsdk.CallToolResultFor[types.SubtaskResponse], error) {
		args := params.Arguments
		logToolCall("get_subtask_by_id", args)

		subtask, err := taskStore.GetSubtask(args.Context, args.TaskID, args.SubtaskID)
		if err != nil {
			return nil, failTool("get_subtask_by_id", err)
		}

		notice := fmt.Sprintf("Subtask %s '%s' [%s] under task %s", subtask.ID, subtask.Title, subtask.Status, args.TaskID)
		return textResult(notice, subtaskToResponse(subtask, args.Context, args.TaskID)), nil
	}
}

// updateSubtaskStatusHandler moves a subtask through the workflow graph.
func updateSubtaskStatusHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.UpdateSubtaskStatusParams, types.SubtaskResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.UpdateSubtaskStatusParams]) (*mcpsdk.CallToolResultFor[types.SubtaskResponse], error) {
		args := params.Arguments
		logToolCall("update_subtask_status", args)

		previous, err := taskStore.GetSubtask(args.Context, args.TaskID, args.SubtaskID)
		if err != nil {
			return nil, failTool("update_subtask_status", err)
		}

		subtask, err := taskStore.UpdateSubtaskStatus(args.Context, args.TaskID, args.SubtaskID, models.TaskStatus(args.Status))
		if err != nil {
			return nil, failTool("update_subtask_status", err)
		}

		notice := fmt.Sprintf("Subtask %s (task %s): %s -> %s", subtask.ID, args.TaskID, previous.Status, subtask.Status)
		logInfo(notice)
		return textResult(notice, subtaskToResponse(subtask, args.Context, args.TaskID)), nil
	}
}

// deleteSubtaskHandler removes the first matching subtask and its
// subtree.
func deleteSubtaskHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.DeleteSubtaskParams, types.DeleteResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.DeleteSubtaskParams]) (*mcpsdk.CallToolResultFor[types.DeleteResponse], error) {
		args := params.Arguments
		logToolCall("delete_subtask", args)

		if err := taskStore.DeleteSubtask(args.Context, args.TaskID, args.SubtaskID); err != nil {
			return nil, failTool("delete_subtask", err)
		}

		notice := fmt.Sprintf("Deleted subtask %s from task %s in context '%s'", args.SubtaskID, args.TaskID, args.Context)
		logInfo(notice)
		return textResult(notice, types.DeleteResponse{Success: true, Message: notice}), nil
	}
}

// listSubtasksHandler lists a task's children, optionally the whole tree.
func listSubtasksHandler(taskStore store.TaskStore) mcpsdk.ToolHandlerFor[types.ListSubtasksParams, types.SubtaskListResponse] {
	return func(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ListSubtasksParams]) (*mcpsdk.CallToolResultFor[types.SubtaskListResponse], error) {
		args := params.Arguments
		logToolCall("list_subtasks", args)

		page, err := taskStore.ListSubtasks(args.Context, args.TaskID, args.Recursive)
		if err != nil {
			return nil, failTool("list_subtasks", err)
		}

		response := subtaskPageToResponse(page)
		scope := "direct"
		if args.Recursive {
			scope = "recursive"
		}
		notice := fmt.Sprintf("Task %s has %d subtasks (%s)", args.TaskID, response.Total, scope)
		return textResult(notice, response), nil
	}
}
