package models

import (
	"fmt"
	"strings"
)

// ValidationError reports input that failed a naming rule or enum check.
// Valid lists the accepted values when the rule is an enumeration;
// Pattern carries the regular expression when the rule is a pattern.
type ValidationError struct {
	Field   string
	Value   string
	Valid   []string
	Pattern string
}

func (e *ValidationError) Error() string {
	if len(e.Valid) > 0 {
		return fmt.Sprintf("invalid %s %q: must be one of: %s", e.Field, e.Value, strings.Join(e.Valid, ", "))
	}
	if e.Pattern != "" {
		return fmt.Sprintf("invalid %s %q: must match %s", e.Field, e.Value, e.Pattern)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// NewValidationError builds a ValidationError for an enumerated field.
func NewValidationError(field, value string, valid []string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Valid: valid}
}

// NewPatternError builds a ValidationError for a pattern-constrained field.
func NewPatternError(field, value, pattern string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Pattern: pattern}
}

// NotFoundError reports a missing context, task, or subtask. Entity names
// what was missing; Scope locates the search, e.g. the context a task was
// looked up in.
type NotFoundError struct {
	Entity string
	Key    string
	Scope  string
}

func (e *NotFoundError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s %q not found in %s", e.Entity, e.Key, e.Scope)
	}
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// NewContextNotFound reports a missing context.
func NewContextNotFound(name string) *NotFoundError {
	return &NotFoundError{Entity: "context", Key: name}
}

// NewTaskNotFound reports a missing top-level task within a context.
func NewTaskNotFound(contextName, taskID string) *NotFoundError {
	return &NotFoundError{Entity: "task", Key: taskID, Scope: fmt.Sprintf("context %q", contextName)}
}

// NewSubtaskNotFound reports a missing subtask within a task's tree.
func NewSubtaskNotFound(contextName, taskID, subtaskID string) *NotFoundError {
	return &NotFoundError{Entity: "subtask", Key: subtaskID, Scope: fmt.Sprintf("task %q in context %q", taskID, contextName)}
}

// NewDefinitionNotFound reports a missing tag or feature definition.
func NewDefinitionNotFound(name string) *NotFoundError {
	return &NotFoundError{Entity: "definition", Key: name}
}

// DuplicateError reports an attempt to create an entity under a key that
// is already taken.
type DuplicateError struct {
	Entity string
	Key    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Key)
}

// NewDuplicateDefinition reports a definition name collision.
func NewDuplicateDefinition(name string) *DuplicateError {
	return &DuplicateError{Entity: "definition", Key: name}
}

// TransitionError reports a status change the workflow graph forbids.
type TransitionError struct {
	From    TaskStatus
	To      TaskStatus
	Allowed []TaskStatus
}

func (e *TransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("cannot transition from %q to %q: %q is terminal", e.From, e.To, e.From)
	}
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("cannot transition from %q to %q: allowed transitions are: %s", e.From, e.To, strings.Join(names, ", "))
}

// StorageError wraps a failure while loading or saving the backing file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
