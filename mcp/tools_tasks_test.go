package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/types"
)

// mcpErrorCode extracts the envelope code from a handler error.
func mcpErrorCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error, got nil")
	}
	var mcpErr *types.MCPError
	if !errors.As(err, &mcpErr) {
		t.Fatalf("expected *types.MCPError, got %T: %v", err, err)
	}
	return mcpErr.Code
}

func addTestTask(t *testing.T, taskStore interface {
	CreateTask(string, string, string, models.TaskPriority, []string, []string) (models.Task, error)
}, contextName, title string, tags []string,
) models.Task {
	t.Helper()
	task, err := taskStore.CreateTask(contextName, title, "", models.PriorityMedium, tags, nil)
	if err != nil {
		t.Fatalf("seed task %q: %v", title, err)
	}
	return task
}

func TestAddTaskHandler(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	handler := addTaskHandler(st)

	res, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
		Arguments: types.AddTaskParams{
			Context:  "backend",
			Title:    "[API] Add rate limiting",
			Priority: "high",
			Tags:     []string{"api"},
		},
	})
	if err != nil {
		t.Fatalf("add_task failed: %v", err)
	}
	got := res.StructuredContent
	if got.ID != "1" || got.Status != models.StatusTodo || got.Context != "backend" {
		t.Fatalf("unexpected response: %+v", got)
	}

	t.Run("invalid priority", func(t *testing.T) {
		_, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
			Arguments: types.AddTaskParams{Context: "backend", Title: "x", Priority: "mega"},
		})
		if code := mcpErrorCode(t, err); code != types.CodeValidationError {
			t.Errorf("code = %s, want %s", code, types.CodeValidationError)
		}
	})

	t.Run("invalid context name", func(t *testing.T) {
		_, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
			Arguments: types.AddTaskParams{Context: "Backend!", Title: "x", Priority: "low"},
		})
		if code := mcpErrorCode(t, err); code != types.CodeValidationError {
			t.Errorf("code = %s, want %s", code, types.CodeValidationError)
		}
	})

	t.Run("with dependencies", func(t *testing.T) {
		res, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
			Arguments: types.AddTaskParams{
				Context:      "backend",
				Title:        "[API] Depends on infra",
				Priority:     "medium",
				Dependencies: []string{"infra:2", "backend:1:1"},
			},
		})
		if err != nil {
			t.Fatalf("add_task with dependencies failed: %v", err)
		}
		if got := res.StructuredContent.Dependencies; len(got) != 2 || got[0] != "infra:2" {
			t.Errorf("dependencies = %v, want [infra:2 backend:1:1]", got)
		}
	})

	t.Run("invalid dependency", func(t *testing.T) {
		_, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
			Arguments: types.AddTaskParams{Context: "backend", Title: "x", Priority: "low", Dependencies: []string{"no-colon"}},
		})
		if code := mcpErrorCode(t, err); code != types.CodeValidationError {
			t.Errorf("code = %s, want %s", code, types.CodeValidationError)
		}
	})

	t.Run("invalid tag", func(t *testing.T) {
		_, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
			Arguments: types.AddTaskParams{Context: "backend", Title: "x", Priority: "low", Tags: []string{"Bad Tag"}},
		})
		if code := mcpErrorCode(t, err); code != types.CodeValidationError {
			t.Errorf("code = %s, want %s", code, types.CodeValidationError)
		}
	})
}

func TestListTasksHandlerPagination(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	for i := 0; i < 25; i++ {
		addTestTask(t, st, "bulk", fmt.Sprintf("[WORK] Item %d", i), nil)
	}

	handler := listTasksHandler(st)
	call := func(limit, offset int) types.TaskListResponse {
		res, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.ListTasksParams]{
			Arguments: types.ListTasksParams{Limit: limit, Offset: offset},
		})
		if err != nil {
			t.Fatalf("list_tasks(limit=%d offset=%d): %v", limit, offset, err)
		}
		return res.StructuredContent
	}

	first := call(20, 0)
	if first.Total != 25 || len(first.Tasks) != 20 {
		t.Fatalf("first page: total=%d len=%d, want 25/20", first.Total, len(first.Tasks))
	}
	second := call(20, 20)
	if second.Total != 25 || len(second.Tasks) != 5 {
		t.Fatalf("second page: total=%d len=%d, want 25/5", second.Total, len(second.Tasks))
	}
	beyond := call(20, 30)
	if beyond.Total != 25 || len(beyond.Tasks) != 0 {
		t.Fatalf("out-of-range page: total=%d len=%d, want 25/0", beyond.Total, len(beyond.Tasks))
	}
}

func TestListTasksHandlerTagFilter(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	addTestTask(t, st, "alpha", "[A] Tagged here", []string{"urgent-fix"})
	addTestTask(t, st, "beta", "[B] Also tagged", []string{"urgent-fix", "api"})
	addTestTask(t, st, "beta", "[B] Not tagged", []string{"api"})

	handler := listTasksHandler(st)
	res, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.ListTasksParams]{
		Arguments: types.ListTasksParams{Tag: "urgent-fix"},
	})
	if err != nil {
		t.Fatalf("list_tasks: %v", err)
	}
	got := res.StructuredContent
	if got.Total != 2 {
		t.Fatalf("total = %d, want 2", got.Total)
	}
	for _, task := range got.Tasks {
		if task.Context != "alpha" && task.Context != "beta" {
			t.Errorf("unexpected context annotation %q", task.Context)
		}
	}
}

func TestGetTaskHandlerNotFound(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	addTestTask(t, st, "web", "[UI] Exists", nil)
	handler := getTaskHandler(st)

	_, err = handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.GetTaskParams]{
		Arguments: types.GetTaskParams{Context: "nope", TaskID: "1"},
	})
	if code := mcpErrorCode(t, err); code != types.CodeContextNotFound {
		t.Errorf("missing context code = %s, want %s", code, types.CodeContextNotFound)
	}

	_, err = handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.GetTaskParams]{
		Arguments: types.GetTaskParams{Context: "web", TaskID: "99"},
	})
	if code := mcpErrorCode(t, err); code != types.CodeTaskNotFound {
		t.Errorf("missing task code = %s, want %s", code, types.CodeTaskNotFound)
	}
}

func TestUpdateTaskStatusHandler(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	task := addTestTask(t, st, "flow", "[FLOW] Walk the graph", nil)
	handler := updateTaskStatusHandler(st)

	update := func(status string) (*mcpsdk.CallToolResultFor[types.TaskResponse], error) {
		return handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.UpdateTaskStatusParams]{
			Arguments: types.UpdateTaskStatusParams{Context: "flow", TaskID: task.ID, Status: status},
		})
	}

	if _, err := update("done"); err == nil {
		t.Fatal("todo -> done should be rejected")
	} else if code := mcpErrorCode(t, err); code != types.CodeInvalidTransition {
		t.Errorf("code = %s, want %s", code, types.CodeInvalidTransition)
	}

	if _, err := update("later"); err == nil {
		t.Fatal("unknown status should be rejected")
	} else if code := mcpErrorCode(t, err); code != types.CodeValidationError {
		t.Errorf("code = %s, want %s", code, types.CodeValidationError)
	}

	if _, err := update("inprogress"); err != nil {
		t.Fatalf("todo -> inprogress: %v", err)
	}
	res, err := update("done")
	if err != nil {
		t.Fatalf("inprogress -> done: %v", err)
	}
	if res.StructuredContent.Status != models.StatusDone || res.StructuredContent.CompletedDate == "" {
		t.Fatalf("done task missing completedDate: %+v", res.StructuredContent)
	}

	if _, err := update("todo"); err == nil {
		t.Fatal("done must be terminal")
	}
}

func TestDeleteTaskHandlerRemovesSubtree(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	task := addTestTask(t, st, "ops", "[OPS] Parent", nil)
	if _, err := st.CreateSubtask("ops", task.ID, "child", "", nil); err != nil {
		t.Fatalf("seed subtask: %v", err)
	}

	handler := deleteTaskHandler(st)
	res, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.DeleteTaskParams]{
		Arguments: types.DeleteTaskParams{Context: "ops", TaskID: task.ID},
	})
	if err != nil {
		t.Fatalf("delete_task: %v", err)
	}
	if !res.StructuredContent.Success || res.StructuredContent.Archived {
		t.Fatalf("unexpected delete response: %+v", res.StructuredContent)
	}

	if _, err := st.GetSubtask("ops", task.ID, "1"); err == nil {
		t.Fatal("subtask should be gone with its parent")
	}
}

func TestDeleteTaskHandlerArchives(t *testing.T) {
	SetupTestProject(t)
	enableTestArchive(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	task := addTestTask(t, st, "ops", "[OPS] Keep a record", nil)

	handler := deleteTaskHandler(st)
	res, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.DeleteTaskParams]{
		Arguments: types.DeleteTaskParams{Context: "ops", TaskID: task.ID},
	})
	if err != nil {
		t.Fatalf("delete_task with archive: %v", err)
	}
	if !res.StructuredContent.Archived {
		t.Fatal("expected archived=true")
	}

	arch, err := archiveStore()
	if err != nil {
		t.Fatalf("archive store: %v", err)
	}
	defer func() { _ = arch.Close() }()
	entries, err := arch.ListEntries("ops", 10)
	if err != nil {
		t.Fatalf("list archive entries: %v", err)
	}
	if len(entries) != 1 || entries[0].TaskID != task.ID {
		t.Fatalf("archive entries = %+v, want one for task %s", entries, task.ID)
	}
}

func TestSearchTasksHandler(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	addTestTask(t, st, "alpha", "[SEARCH] Needle in here", nil)
	addTestTask(t, st, "beta", "[OTHER] Hay only", nil)

	handler := searchTasksHandler(st)
	res, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.SearchTasksParams]{
		Arguments: types.SearchTasksParams{Query: "needle"},
	})
	if err != nil {
		t.Fatalf("search_tasks: %v", err)
	}
	if res.StructuredContent.Total != 1 {
		t.Fatalf("total = %d, want 1", res.StructuredContent.Total)
	}

	_, err = handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.SearchTasksParams]{
		Arguments: types.SearchTasksParams{Query: "  "},
	})
	if code := mcpErrorCode(t, err); code != types.CodeValidationError {
		t.Errorf("blank query code = %s, want %s", code, types.CodeValidationError)
	}
}
