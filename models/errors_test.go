package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Message(t *testing.T) {
	err := NewValidationError("priority", "urgent", ValidPriorityStrings())
	msg := err.Error()
	for _, want := range []string{"priority", "urgent", "low", "medium", "high", "critical"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}

	msg = NewPatternError("context", "My Work", ContextNamePattern).Error()
	if !strings.Contains(msg, ContextNamePattern) {
		t.Errorf("pattern message %q missing pattern", msg)
	}
}

func TestNotFoundError_Disambiguation(t *testing.T) {
	tests := []struct {
		name string
		err  *NotFoundError
		want []string
	}{
		{"context", NewContextNotFound("work"), []string{"context", "work"}},
		{"task", NewTaskNotFound("work", "3"), []string{"task", `"3"`, "work"}},
		{"subtask", NewSubtaskNotFound("work", "3", "2"), []string{"subtask", `"2"`, `"3"`, "work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("message %q missing %q", msg, want)
				}
			}
		})
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := &StorageError{Op: "save", Path: "/tmp/tasks.json", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("StorageError should unwrap to the underlying error")
	}
	wrapped := fmt.Errorf("persist: %w", err)
	var se *StorageError
	if !errors.As(wrapped, &se) {
		t.Error("errors.As should find the StorageError through wrapping")
	}
	if !strings.Contains(err.Error(), "/tmp/tasks.json") {
		t.Errorf("message %q missing path", err.Error())
	}
}
