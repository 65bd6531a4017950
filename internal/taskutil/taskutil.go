package taskutil

import (
	"fmt"
	"strings"

	"github.com/danielsotopino/simple-taskmanager/models"
)

// NormalizePriorityString maps common inputs and typos to canonical priorities.
// Returns one of: low, medium, high, critical. Empty input stays empty.
func NormalizePriorityString(input string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return "", nil
	}

	switch s {
	case "low", "medium", "high", "critical":
		return s, nil
	case "lo", "l", "minor":
		return "low", nil
	case "med", "m", "normal", "regular":
		return "medium", nil
	case "hi", "h", "important", "imp", "prio-high", "high-priority", "p1":
		return "high", nil
	case "crit", "c", "urgent", "urg", "asap", "emergency", "blocker", "p0":
		return "critical", nil
	case "p2", "p3":
		return "medium", nil
	case "p4", "p5":
		return "low", nil
	}

	return "", fmt.Errorf("unknown priority '%s'", input)
}

// NormalizeStatusString maps common inputs to canonical workflow states.
// Empty input stays empty.
func NormalizeStatusString(input string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return "", nil
	}

	switch s {
	case "todo", "inprogress", "inreview", "testing", "blocked", "done":
		return s, nil
	case "open", "new", "backlog", "pending":
		return "todo", nil
	case "doing", "wip", "active", "started", "progress":
		return "inprogress", nil
	case "review", "reviewing", "pr":
		return "inreview", nil
	case "test", "tests", "qa", "verify":
		return "testing", nil
	case "block", "stuck", "waiting", "onhold":
		return "blocked", nil
	case "complete", "completed", "finished", "closed":
		return "done", nil
	}

	return "", fmt.Errorf("unknown status '%s'", input)
}

// ParseDependencyRef splits a dependency reference into its parts. The
// subtask ID is empty for task-level references.
func ParseDependencyRef(ref string) (contextName, taskID, subtaskID string, err error) {
	if !models.IsValidDependencyRef(ref) {
		return "", "", "", fmt.Errorf("invalid dependency reference '%s': want context:task or context:task:subtask", ref)
	}
	parts := strings.Split(ref, ":")
	contextName, taskID = parts[0], parts[1]
	if len(parts) == 3 {
		subtaskID = parts[2]
	}
	return contextName, taskID, subtaskID, nil
}

// PriorityToInt maps priorities to sortable integer weights (higher = more urgent).
func PriorityToInt(p models.TaskPriority) int {
	switch p {
	case models.PriorityCritical:
		return 4
	case models.PriorityHigh:
		return 3
	case models.PriorityMedium:
		return 2
	case models.PriorityLow:
		return 1
	default:
		return 0
	}
}

// StatusToInt maps statuses to their canonical workflow order.
func StatusToInt(s models.TaskStatus) int {
	switch s {
	case models.StatusTodo:
		return 1
	case models.StatusInProgress:
		return 2
	case models.StatusInReview:
		return 3
	case models.StatusTesting:
		return 4
	case models.StatusBlocked:
		return 5
	case models.StatusDone:
		return 6
	default:
		return 0
	}
}
