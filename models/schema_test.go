package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func validDocument() Document {
	doc := Document{}
	ctx := doc.EnsureContext("work")
	task := NewTask("1", "Top task", "", PriorityMedium, []string{"backend"})
	task.Subtasks = append(task.Subtasks, NewSubtask("1", "Nested", "", nil))
	ctx.Tasks = append(ctx.Tasks, task)
	return doc
}

func TestValidateDocumentJSON_Valid(t *testing.T) {
	data, err := json.Marshal(validDocument())
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}

	issues, err := ValidateDocumentJSON(data)
	if err != nil {
		t.Fatalf("ValidateDocumentJSON() error = %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestValidateDocumentJSON_BadStatus(t *testing.T) {
	doc := validDocument()
	doc["work"].Tasks[0].Status = "wip"
	data, _ := json.Marshal(doc)

	issues, err := ValidateDocumentJSON(data)
	if err != nil {
		t.Fatalf("ValidateDocumentJSON() error = %v", err)
	}
	if len(issues) == 0 {
		t.Fatal("expected issues for invalid status")
	}
	found := false
	for _, issue := range issues {
		if strings.Contains(issue.Location, "/work/tasks/0") {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue located the bad task, got %v", issues)
	}
}

func TestValidateDocumentJSON_BadContextName(t *testing.T) {
	data := []byte(`{"My Context": {"tasks": [], "metadata": {"created": "x", "updated": "x", "description": "d", "version": "1.0.0"}}}`)

	issues, err := ValidateDocumentJSON(data)
	if err != nil {
		t.Fatalf("ValidateDocumentJSON() error = %v", err)
	}
	if len(issues) == 0 {
		t.Error("expected an issue for a context name with spaces")
	}
}

func TestValidateDocumentJSON_MissingMetadata(t *testing.T) {
	data := []byte(`{"work": {"tasks": []}}`)

	issues, err := ValidateDocumentJSON(data)
	if err != nil {
		t.Fatalf("ValidateDocumentJSON() error = %v", err)
	}
	if len(issues) == 0 {
		t.Error("expected an issue for missing metadata")
	}
}

func TestValidateDocumentJSON_Unparsable(t *testing.T) {
	if _, err := ValidateDocumentJSON([]byte("{broken")); err == nil {
		t.Error("expected a parse error for malformed JSON")
	}
}
