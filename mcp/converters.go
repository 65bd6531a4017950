package mcp

// Conversions between store results and the MCP response DTOs.

import (
	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
	"github.com/danielsotopino/simple-taskmanager/types"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func taskToResponse(task models.Task, contextName string) types.TaskResponse {
	return types.TaskResponse{Task: task, Context: contextName}
}

func subtaskToResponse(subtask models.Subtask, contextName, parentTaskID string) types.SubtaskResponse {
	return types.SubtaskResponse{Subtask: subtask, Context: contextName, ParentTaskID: parentTaskID}
}

func taskPageToResponse(page store.TaskPage) types.TaskListResponse {
	tasks := make([]types.TaskResponse, len(page.Tasks))
	for i, row := range page.Tasks {
		tasks[i] = types.TaskResponse{Task: row.Task, Context: row.Context}
	}
	return types.TaskListResponse{Total: page.Total, Tasks: tasks}
}

func subtaskPageToResponse(page store.SubtaskPage) types.SubtaskListResponse {
	subtasks := make([]types.SubtaskListItem, len(page.Subtasks))
	for i, row := range page.Subtasks {
		subtasks[i] = types.SubtaskListItem{
			Subtask:      row.Subtask,
			Context:      row.Context,
			ParentTaskID: row.ParentTaskID,
			Level:        row.Level,
		}
	}
	return types.SubtaskListResponse{Total: page.Total, Subtasks: subtasks}
}

// textResult wraps a structured response together with its human-readable
// notice. The notice is observational only and never affects the stored
// result.
func textResult[T any](notice string, structured T) *mcpsdk.CallToolResultFor[T] {
	return &mcpsdk.CallToolResultFor[T]{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: notice},
		},
		StructuredContent: structured,
	}
}
