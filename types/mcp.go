/*
Copyright © 2025 Daniel Soto Pino
*/
package types

import "github.com/danielsotopino/simple-taskmanager/models"

// MCP Tool Parameter Types

// AddTaskParams for creating a new task in a context
type AddTaskParams struct {
	Context      string   `json:"context" mcp:"Context name, lowercase kebab-case (required)"`
	Title        string   `json:"title" mcp:"Task title; convention is [TAG] Summary (required)"`
	Description  string   `json:"description,omitempty" mcp:"Task description"`
	Priority     string   `json:"priority" mcp:"Task priority: low, medium, high, critical (required)"`
	Tags         []string `json:"tags,omitempty" mcp:"Tags, lowercase letters/digits/hyphens"`
	Dependencies []string `json:"dependencies,omitempty" mcp:"Cross-task references, form context:taskID or context:taskID:subtaskID"`
}

// ListTasksParams for listing and filtering tasks across contexts
type ListTasksParams struct {
	Context string `json:"context,omitempty" mcp:"Restrict to one context; all contexts when omitted"`
	Tag     string `json:"tag,omitempty" mcp:"Only tasks carrying this exact tag"`
	Limit   int    `json:"limit,omitempty" mcp:"Page size, default 20"`
	Offset  int    `json:"offset,omitempty" mcp:"Items to skip, default 0"`
}

// GetTaskParams for retrieving one top-level task
type GetTaskParams struct {
	Context string `json:"context" mcp:"Context name (required)"`
	TaskID  string `json:"task_id" mcp:"Top-level task ID (required)"`
}

// UpdateTaskStatusParams for moving a task through the workflow
type UpdateTaskStatusParams struct {
	Context string `json:"context" mcp:"Context name (required)"`
	TaskID  string `json:"task_id" mcp:"Top-level task ID (required)"`
	Status  string `json:"status" mcp:"Target status: todo, inprogress, inreview, testing, blocked, done (required)"`
}

// AddSubtaskParams for creating a subtask under a top-level task
type AddSubtaskParams struct {
	Context     string   `json:"context" mcp:"Context name (required)"`
	TaskID      string   `json:"task_id" mcp:"Parent top-level task ID (required)"`
	Title       string   `json:"title" mcp:"Subtask title (required)"`
	Description string   `json:"description,omitempty" mcp:"Subtask description"`
	Tags        []string `json:"tags,omitempty" mcp:"Tags, lowercase letters/digits/hyphens"`
}

// GetSubtaskParams for retrieving a subtask anywhere in a task's subtree
type GetSubtaskParams struct {
	Context   string `json:"context" mcp:"Context name (required)"`
	TaskID    string `json:"task_id" mcp:"Top-level task ID owning the subtree (required)"`
	SubtaskID string `json:"subtask_id" mcp:"Subtask ID; first match in traversal order wins (required)"`
}

// UpdateSubtaskStatusParams for moving a subtask through the workflow
type UpdateSubtaskStatusParams struct {
	Context   string `json:"context" mcp:"Context name (required)"`
	TaskID    string `json:"task_id" mcp:"Top-level task ID owning the subtree (required)"`
	SubtaskID string `json:"subtask_id" mcp:"Subtask ID (required)"`
	Status    string `json:"status" mcp:"Target status (required)"`
}

// DeleteSubtaskParams for removing a subtask and its subtree
type DeleteSubtaskParams struct {
	Context   string `json:"context" mcp:"Context name (required)"`
	TaskID    string `json:"task_id" mcp:"Top-level task ID owning the subtree (required)"`
	SubtaskID string `json:"subtask_id" mcp:"Subtask ID to remove (required)"`
}

// DeleteTaskParams for removing a top-level task and its subtree
type DeleteTaskParams struct {
	Context string `json:"context" mcp:"Context name (required)"`
	TaskID  string `json:"task_id" mcp:"Top-level task ID to remove (required)"`
}

// ListSubtasksParams for listing a task's children
type ListSubtasksParams struct {
	Context   string `json:"context" mcp:"Context name (required)"`
	TaskID    string `json:"task_id" mcp:"Top-level task ID (required)"`
	Recursive bool   `json:"recursive,omitempty" mcp:"Include all descendants with their depth, not just direct children"`
}

// SearchTasksParams for text search over titles, descriptions, and tags
type SearchTasksParams struct {
	Query   string `json:"query" mcp:"Case-insensitive substring matched against title, description, and tags (required)"`
	Context string `json:"context,omitempty" mcp:"Restrict to one context"`
	Limit   int    `json:"limit,omitempty" mcp:"Page size, default 20"`
	Offset  int    `json:"offset,omitempty" mcp:"Items to skip, default 0"`
}

// Definition tool parameters

// AddDefinitionParams for registering a tag or feature definition
type AddDefinitionParams struct {
	Name        string `json:"name" mcp:"Definition name, unique (required)"`
	Kind        string `json:"kind" mcp:"Definition kind: tag or feature (required)"`
	Description string `json:"description,omitempty" mcp:"What the name means"`
}

// ListDefinitionsParams for listing definitions
type ListDefinitionsParams struct {
	Kind string `json:"kind,omitempty" mcp:"Restrict to one kind: tag or feature"`
}

// GetDefinitionParams for retrieving one definition
type GetDefinitionParams struct {
	Name string `json:"name" mcp:"Definition name (required)"`
}

// UpdateDefinitionParams for changing a definition's kind or description
type UpdateDefinitionParams struct {
	Name        string `json:"name" mcp:"Definition name (required)"`
	Kind        string `json:"kind,omitempty" mcp:"New kind: tag or feature; unchanged when omitted"`
	Description string `json:"description,omitempty" mcp:"New description; unchanged when omitted"`
}

// DeleteDefinitionParams for removing a definition
type DeleteDefinitionParams struct {
	Name string `json:"name" mcp:"Definition name to remove (required)"`
}

// MCP Response Types

// TaskResponse is a stored task annotated with its owning context.
type TaskResponse struct {
	models.Task
	Context string `json:"context"`
}

// SubtaskResponse is a stored subtask annotated with its owning context
// and top-level parent task.
type SubtaskResponse struct {
	models.Subtask
	Context      string `json:"context"`
	ParentTaskID string `json:"parentTaskId"`
}

// SubtaskListItem is one row of a subtask listing. Level is 0 for direct
// children and grows with nesting depth in recursive listings.
type SubtaskListItem struct {
	models.Subtask
	Context      string `json:"context"`
	ParentTaskID string `json:"parentTaskId"`
	Level        int    `json:"level"`
}

// TaskListResponse for list and search operations. Total counts all
// matches before pagination.
type TaskListResponse struct {
	Total int            `json:"total"`
	Tasks []TaskResponse `json:"tasks"`
}

// SubtaskListResponse for subtask listings
type SubtaskListResponse struct {
	Total    int               `json:"total"`
	Subtasks []SubtaskListItem `json:"subtasks"`
}

// DeleteResponse for delete operations
type DeleteResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Archived bool   `json:"archived,omitempty"`
}

// DefinitionResponse wraps one definition
type DefinitionResponse struct {
	models.Definition
}

// DefinitionListResponse for definition listings
type DefinitionListResponse struct {
	Total       int                 `json:"total"`
	Definitions []models.Definition `json:"definitions"`
}
