package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the workflow state of a task or subtask.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "inprogress"
	StatusInReview   TaskStatus = "inreview"
	StatusTesting    TaskStatus = "testing"
	StatusBlocked    TaskStatus = "blocked"
	StatusDone       TaskStatus = "done"
)

// TaskPriority represents the priority levels of a top-level task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// Timestamp layouts used in the stored document. Task dates carry second
// precision in UTC without an offset suffix; context metadata keeps
// microseconds.
const (
	TimestampLayout     = "2006-01-02T15:04:05"
	MetaTimestampLayout = "2006-01-02T15:04:05.000000"
)

// NowTimestamp returns the current UTC time in the task date layout.
func NowTimestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// NowMetaTimestamp returns the current UTC time in the metadata layout.
func NowMetaTimestamp() string {
	return time.Now().UTC().Format(MetaTimestampLayout)
}

// Subtask is the recursive node of the task tree. Subtasks nest to arbitrary
// depth; each node's ID is only unique among its direct siblings.
type Subtask struct {
	ID            string     `json:"id" validate:"required,numeric"`
	Title         string     `json:"title" validate:"required,min=1,max=255"`
	Description   string     `json:"description"`
	Status        TaskStatus `json:"status" validate:"required,oneof=todo inprogress inreview testing blocked done"`
	Dependencies  []string   `json:"dependencies" validate:"dive,depref"`
	CreationDate  string     `json:"creationDate" validate:"required"`
	CompletedDate string     `json:"completedDate,omitempty"`
	Tags          []string   `json:"tags" validate:"dive,tagname"`
	Blockers      []string   `json:"blockers"`
	Notes         string     `json:"notes"`
	Subtasks      []Subtask  `json:"subtasks"`
}

// Task is a top-level entry in a context: a tree node plus a priority.
// Embedding keeps every traversal working on one node shape.
type Task struct {
	Subtask
	Priority TaskPriority `json:"priority" validate:"required,oneof=low medium high critical"`
}

// ContextMetadata describes a context. Updated is refreshed on every
// mutation of any task or nested subtask within the context.
type ContextMetadata struct {
	Created     string `json:"created"`
	Updated     string `json:"updated"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// Context is a named, independent collection of top-level tasks.
type Context struct {
	Tasks    []Task          `json:"tasks"`
	Metadata ContextMetadata `json:"metadata"`
}

// Document is the whole stored state: context name to context.
type Document map[string]*Context

// newNode builds a fresh tree node with empty collections and status todo.
func newNode(id, title, description string, tags []string) Subtask {
	if tags == nil {
		tags = []string{}
	}
	return Subtask{
		ID:           id,
		Title:        title,
		Description:  description,
		Status:       StatusTodo,
		Dependencies: []string{},
		CreationDate: NowTimestamp(),
		Tags:         tags,
		Blockers:     []string{},
		Notes:        "",
		Subtasks:     []Subtask{},
	}
}

// NewTask builds a top-level task in its initial state.
func NewTask(id, title, description string, priority TaskPriority, tags []string) Task {
	return Task{Subtask: newNode(id, title, description, tags), Priority: priority}
}

// NewSubtask builds a subtask in its initial state.
func NewSubtask(id, title, description string, tags []string) Subtask {
	return newNode(id, title, description, tags)
}

// NewContext builds an empty context with fresh metadata.
func NewContext(name string) *Context {
	now := NowMetaTimestamp()
	return &Context{
		Tasks: []Task{},
		Metadata: ContextMetadata{
			Created:     now,
			Updated:     now,
			Description: "Context for " + name,
			Version:     "1.0.0",
		},
	}
}

// EnsureContext returns the named context, creating it when absent.
func (d Document) EnsureContext(name string) *Context {
	if c, ok := d[name]; ok {
		return c
	}
	c := NewContext(name)
	d[name] = c
	return c
}

// Touch refreshes the context's updated timestamp.
func (c *Context) Touch() {
	c.Metadata.Updated = NowMetaTimestamp()
}

// FindTask returns a pointer to the top-level task with the given ID,
// or nil when absent.
func (c *Context) FindTask(id string) *Task {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return &c.Tasks[i]
		}
	}
	return nil
}

// RemoveTask removes the first top-level task with the given ID together
// with its entire subtree. Returns false when no task matched.
func (c *Context) RemoveTask(id string) bool {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			c.Tasks = append(c.Tasks[:i], c.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// NextTaskID allocates the next top-level task ID for a context:
// one past the highest numeric ID currently present. Deleted IDs are
// never reused.
func NextTaskID(tasks []Task) string {
	max := 0
	for i := range tasks {
		if n, err := strconv.Atoi(tasks[i].ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// NextSubtaskID allocates the next ID among one parent's direct children.
// Sibling scopes number independently, so a value may recur at other depths.
func NextSubtaskID(siblings []Subtask) string {
	max := 0
	for i := range siblings {
		if n, err := strconv.Atoi(siblings[i].ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// FindSubtask locates the first subtask with the given ID anywhere in the
// tree rooted at nodes. Direct siblings are checked left to right before
// descending, and each child's subtree is exhausted before the next child's.
func FindSubtask(nodes []Subtask, id string) *Subtask {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
	}
	for i := range nodes {
		if found := FindSubtask(nodes[i].Subtasks, id); found != nil {
			return found
		}
	}
	return nil
}

// RemoveSubtask removes the first subtask matching the ID, using the same
// traversal order as FindSubtask, together with its entire subtree.
func RemoveSubtask(nodes *[]Subtask, id string) bool {
	for i := range *nodes {
		if (*nodes)[i].ID == id {
			*nodes = append((*nodes)[:i], (*nodes)[i+1:]...)
			return true
		}
	}
	for i := range *nodes {
		if RemoveSubtask(&(*nodes)[i].Subtasks, id) {
			return true
		}
	}
	return false
}

// WalkSubtasks visits every node under nodes in pre-order, reporting each
// node's depth relative to the starting level.
func WalkSubtasks(nodes []Subtask, level int, fn func(node *Subtask, level int)) {
	for i := range nodes {
		fn(&nodes[i], level)
		WalkSubtasks(nodes[i].Subtasks, level+1, fn)
	}
}

// CountSubtasks returns the number of nodes in the whole tree under nodes.
func CountSubtasks(nodes []Subtask) int {
	n := len(nodes)
	for i := range nodes {
		n += CountSubtasks(nodes[i].Subtasks)
	}
	return n
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("tagname", func(fl validator.FieldLevel) bool {
		return IsValidTagName(fl.Field().String())
	})
	_ = validate.RegisterValidation("depref", func(fl validator.FieldLevel) bool {
		return IsValidDependencyRef(fl.Field().String())
	})
}

// ValidateStruct performs validation on any struct carrying validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var msgs []string
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
