package mcp

import (
	"errors"
	"testing"

	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/types"
)

func TestToMCPErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"validation", models.NewValidationError("priority", "mega", models.ValidPriorityStrings()), types.CodeValidationError},
		{"pattern", models.NewPatternError("tag", "Bad Tag", models.TagNamePattern), types.CodeValidationError},
		{"context missing", models.NewContextNotFound("ghost"), types.CodeContextNotFound},
		{"task missing", models.NewTaskNotFound("ghost", "1"), types.CodeTaskNotFound},
		{"subtask missing", models.NewSubtaskNotFound("ghost", "1", "2"), types.CodeSubtaskNotFound},
		{"definition missing", models.NewDefinitionNotFound("api"), types.CodeDefinitionNotFound},
		{"duplicate definition", models.NewDuplicateDefinition("api"), types.CodeDuplicateDefinition},
		{"transition", models.ValidateTransition(models.StatusTodo, models.StatusDone), types.CodeInvalidTransition},
		{"storage", &models.StorageError{Op: "save", Path: "/tmp/x", Err: errors.New("disk full")}, types.CodeStorageError},
		{"unknown", errors.New("boom"), types.CodeOperationFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := toMCPError(tc.err)
			if mapped.Code != tc.code {
				t.Errorf("code = %s, want %s", mapped.Code, tc.code)
			}
			if mapped.Message == "" {
				t.Error("message must not be empty")
			}
		})
	}
}

func TestToMCPErrorTransitionDetails(t *testing.T) {
	err := models.ValidateTransition(models.StatusTodo, models.StatusDone)
	mapped := toMCPError(err)
	allowed, ok := mapped.Details["allowed"].([]string)
	if !ok {
		t.Fatalf("details missing allowed list: %+v", mapped.Details)
	}
	if len(allowed) != 2 {
		t.Errorf("todo allows %v, want inprogress and blocked", allowed)
	}
}

func TestToMCPErrorPassesEnvelopeThrough(t *testing.T) {
	orig := types.NewMCPError(types.CodeStorageError, "cannot write", nil)
	if mapped := toMCPError(orig); mapped != orig {
		t.Errorf("existing envelope should pass through unchanged")
	}
}
