package mcp

import (
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/danielsotopino/simple-taskmanager/store"
)

// RegisterCoreTools registers the task and subtask tools. Tool names keep
// the snake_case operation contract the transport exposes to callers.
func RegisterCoreTools(server *mcpsdk.Server, taskStore store.TaskStore) error {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add_task",
		Description: "Create a task in a context. The context is created on first use. Priority: low, medium, high, critical. New tasks start in status 'todo'. Optional dependencies reference other tasks as context:taskID or context:taskID:subtaskID.",
	}, addTaskHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_tasks",
		Description: "List tasks across all contexts or one context, optionally filtered by tag. Paginated: limit (default 20) and offset; total counts all matches before the page is cut.",
	}, listTasksHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get_task",
		Description: "Get one top-level task by context and task ID, annotated with its context.",
	}, getTaskHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "update_task_status",
		Description: "Move a task to a new workflow status. Allowed edges: todo->inprogress|blocked, inprogress->inreview|testing|blocked|done, inreview->inprogress|testing|done, testing->inprogress|done|blocked, blocked->todo|inprogress. 'done' is terminal.",
	}, updateTaskStatusHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "delete_task",
		Description: "Delete a top-level task and its entire subtask tree. Archives the subtree first when the archive is enabled.",
	}, deleteTaskHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add_subtask",
		Description: "Create a subtask under a top-level task. Subtask IDs are numbered per parent, starting at 1.",
	}, addSubtaskHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get_subtask_by_id",
		Description: "Find a subtask anywhere in a task's tree by depth-first search: direct children first, left to right, then each child's own subtasks. First match wins.",
	}, getSubtaskHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "update_subtask_status",
		Description: "Move a subtask to a new workflow status. Same workflow graph as tasks; the subtask is located by depth-first first-match search.",
	}, updateSubtaskStatusHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "delete_subtask",
		Description: "Delete the first matching subtask and everything nested under it.",
	}, deleteSubtaskHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_subtasks",
		Description: "List a task's direct subtasks (level 0), or its whole tree in pre-order with nesting levels when recursive is set.",
	}, listSubtasksHandler(taskStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "search_tasks",
		Description: "Case-insensitive substring search over task titles, descriptions, and tags, across all contexts or one.",
	}, searchTasksHandler(taskStore))

	return nil
}

// RegisterDefinitionTools registers the tag/feature definition CRUD tools.
func RegisterDefinitionTools(server *mcpsdk.Server, definitionStore store.DefinitionStore) error {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add_definition",
		Description: "Register a tag or feature definition. Names are unique; tag names must be lowercase letters, digits, and hyphens.",
	}, addDefinitionHandler(definitionStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_definitions",
		Description: "List definitions, optionally restricted to kind 'tag' or 'feature'. Sorted by name.",
	}, listDefinitionsHandler(definitionStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get_definition",
		Description: "Get one definition by name.",
	}, getDefinitionHandler(definitionStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "update_definition",
		Description: "Replace the description of an existing definition.",
	}, updateDefinitionHandler(definitionStore))

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "delete_definition",
		Description: "Remove a definition by name.",
	}, deleteDefinitionHandler(definitionStore))

	return nil
}
