package mcp

import (
	"context"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/types"
)

func TestSubtaskHandlersLifecycle(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	task := addTestTask(t, st, "tree", "[TREE] Root", nil)

	add := addSubtaskHandler(st)
	res, err := add(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddSubtaskParams]{
		Arguments: types.AddSubtaskParams{Context: "tree", TaskID: task.ID, Title: "first child"},
	})
	if err != nil {
		t.Fatalf("add_subtask: %v", err)
	}
	if res.StructuredContent.ID != "1" || res.StructuredContent.ParentTaskID != task.ID {
		t.Fatalf("unexpected subtask response: %+v", res.StructuredContent)
	}

	if _, err := add(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddSubtaskParams]{
		Arguments: types.AddSubtaskParams{Context: "tree", TaskID: "42", Title: "orphan"},
	}); err == nil {
		t.Fatal("missing parent task should fail")
	} else if code := mcpErrorCode(t, err); code != types.CodeTaskNotFound {
		t.Errorf("code = %s, want %s", code, types.CodeTaskNotFound)
	}

	update := updateSubtaskStatusHandler(st)
	upd, err := update(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.UpdateSubtaskStatusParams]{
		Arguments: types.UpdateSubtaskStatusParams{Context: "tree", TaskID: task.ID, SubtaskID: "1", Status: "inprogress"},
	})
	if err != nil {
		t.Fatalf("update_subtask_status: %v", err)
	}
	if upd.StructuredContent.Status != models.StatusInProgress {
		t.Fatalf("status = %s, want inprogress", upd.StructuredContent.Status)
	}

	if _, err := update(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.UpdateSubtaskStatusParams]{
		Arguments: types.UpdateSubtaskStatusParams{Context: "tree", TaskID: task.ID, SubtaskID: "1", Status: "todo"},
	}); err == nil {
		t.Fatal("inprogress -> todo should be rejected")
	} else if code := mcpErrorCode(t, err); code != types.CodeInvalidTransition {
		t.Errorf("code = %s, want %s", code, types.CodeInvalidTransition)
	}

	del := deleteSubtaskHandler(st)
	if _, err := del(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.DeleteSubtaskParams]{
		Arguments: types.DeleteSubtaskParams{Context: "tree", TaskID: task.ID, SubtaskID: "1"},
	}); err != nil {
		t.Fatalf("delete_subtask: %v", err)
	}
	if _, err := st.GetSubtask("tree", task.ID, "1"); err == nil {
		t.Fatal("subtask should be deleted")
	}
}

func TestGetSubtaskHandlerDeepSearch(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	// Seed a tree where a grandchild under child 1 shares ID 2 with a
	// direct child. The store loads the file fresh on every call, so
	// writing the document directly is enough.
	task := models.NewTask("1", "[DEEP] Root", "", models.PriorityMedium, nil)
	childOne := models.NewSubtask("1", "child one", "", nil)
	childOne.Subtasks = append(childOne.Subtasks, models.NewSubtask("2", "nested two", "", nil))
	task.Subtasks = []models.Subtask{childOne, models.NewSubtask("2", "direct two", "", nil)}

	doc := models.Document{}
	ctx := doc.EnsureContext("deep")
	ctx.Tasks = append(ctx.Tasks, task)
	writeTestDocument(t, doc)

	handler := getSubtaskHandler(st)
	res, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.GetSubtaskParams]{
		Arguments: types.GetSubtaskParams{Context: "deep", TaskID: task.ID, SubtaskID: "2"},
	})
	if err != nil {
		t.Fatalf("get_subtask_by_id: %v", err)
	}
	// The direct child with ID 2 wins over the deeper node with the
	// same ID.
	if res.StructuredContent.Title != "direct two" {
		t.Fatalf("tie-break picked %q, want the direct child", res.StructuredContent.Title)
	}

	_, err = handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.GetSubtaskParams]{
		Arguments: types.GetSubtaskParams{Context: "deep", TaskID: task.ID, SubtaskID: "77"},
	})
	if code := mcpErrorCode(t, err); code != types.CodeSubtaskNotFound {
		t.Errorf("missing subtask code = %s, want %s", code, types.CodeSubtaskNotFound)
	}
}

func TestListSubtasksHandlerRecursive(t *testing.T) {
	SetupTestProject(t)
	st, err := GetStore()
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	defer func() { _ = st.Close() }()

	task := addTestTask(t, st, "levels", "[LVL] Root", nil)
	if _, err := st.CreateSubtask("levels", task.ID, "alpha", "", nil); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := st.CreateSubtask("levels", task.ID, "beta", "", nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	handler := listSubtasksHandler(st)
	direct, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.ListSubtasksParams]{
		Arguments: types.ListSubtasksParams{Context: "levels", TaskID: task.ID},
	})
	if err != nil {
		t.Fatalf("list_subtasks: %v", err)
	}
	if direct.StructuredContent.Total != 2 {
		t.Fatalf("direct total = %d, want 2", direct.StructuredContent.Total)
	}
	for _, row := range direct.StructuredContent.Subtasks {
		if row.Level != 0 {
			t.Errorf("direct child level = %d, want 0", row.Level)
		}
	}

	recursive, err := handler(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.ListSubtasksParams]{
		Arguments: types.ListSubtasksParams{Context: "levels", TaskID: task.ID, Recursive: true},
	})
	if err != nil {
		t.Fatalf("list_subtasks recursive: %v", err)
	}
	if recursive.StructuredContent.Total != 2 {
		t.Fatalf("recursive total = %d, want 2", recursive.StructuredContent.Total)
	}
}
