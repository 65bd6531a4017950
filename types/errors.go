/*
Copyright © 2025 Daniel Soto Pino
*/
package types

import "fmt"

// Stable error codes carried on MCP error responses.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeContextNotFound     = "CONTEXT_NOT_FOUND"
	CodeTaskNotFound        = "TASK_NOT_FOUND"
	CodeSubtaskNotFound     = "SUBTASK_NOT_FOUND"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeStorageError        = "STORAGE_ERROR"
	CodeDuplicateDefinition = "DUPLICATE_DEFINITION"
	CodeDefinitionNotFound  = "DEFINITION_NOT_FOUND"
	CodeOperationFailed     = "OPERATION_FAILED"
)

// MCPError provides structured error information for MCP responses
type MCPError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMCPError creates a new structured MCP error
func NewMCPError(code string, message string, details map[string]interface{}) *MCPError {
	return &MCPError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
