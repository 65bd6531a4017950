package store

import "github.com/danielsotopino/simple-taskmanager/models"

// ListedTask is a task row in a cross-context listing: the stored task
// plus the name of the context it came from. The annotation never
// serializes back into the document.
type ListedTask struct {
	models.Task
	Context string `json:"context"`
}

// ListedSubtask is a subtask row with its listing annotations. Level is 0
// for a direct child of the top-level task and grows with nesting depth.
type ListedSubtask struct {
	models.Subtask
	Context      string `json:"context"`
	ParentTaskID string `json:"parentTaskId"`
	Level        int    `json:"level"`
}

// TaskFilter narrows and paginates task listings.
// A zero Limit means the default page size of 20; a negative Limit
// disables pagination. Offsets beyond the result yield an empty page.
type TaskFilter struct {
	Context string
	Tag     string
	Query   string
	Limit   int
	Offset  int
}

// TaskPage is one page of a task listing. Total counts every match
// before pagination.
type TaskPage struct {
	Total int          `json:"total"`
	Tasks []ListedTask `json:"tasks"`
}

// SubtaskPage is the result of a subtask listing.
type SubtaskPage struct {
	Total    int             `json:"total"`
	Subtasks []ListedSubtask `json:"subtasks"`
}

// TaskStore defines the persistence and engine contract for the task
// document. Every mutating method performs one fresh load and one save
// under an exclusive file lock; read methods take a shared lock and see
// a consistent snapshot.
type TaskStore interface {
	// Initialize configures the store with backend-specific settings
	// such as file path and data format. It must be called before any
	// other method.
	Initialize(config map[string]string) error

	// CreateTask validates inputs, creates the context when absent,
	// allocates the next top-level ID, and appends a task in status
	// todo. Dependencies are optional "context:taskID[:subtaskID]"
	// references, validated for shape only. Returns the created task.
	CreateTask(contextName, title, description string, priority models.TaskPriority, tags, dependencies []string) (models.Task, error)

	// GetTask returns the top-level task with the given ID.
	GetTask(contextName, taskID string) (models.Task, error)

	// UpdateTaskStatus moves a task along the workflow graph, stamping
	// completedDate when the task lands on done.
	UpdateTaskStatus(contextName, taskID string, status models.TaskStatus) (models.Task, error)

	// DeleteTask removes a top-level task and its entire subtree.
	DeleteTask(contextName, taskID string) error

	// CreateSubtask appends a subtask under a top-level task. The parent
	// must be a task; IDs are allocated among the parent's direct
	// children only.
	CreateSubtask(contextName, taskID, title, description string, tags []string) (models.Subtask, error)

	// GetSubtask finds a subtask anywhere in the task's subtree. When an
	// ID occurs at several depths, direct children win over descendants
	// and earlier siblings over later ones.
	GetSubtask(contextName, taskID, subtaskID string) (models.Subtask, error)

	// UpdateSubtaskStatus moves the first matching subtask along the
	// workflow graph.
	UpdateSubtaskStatus(contextName, taskID, subtaskID string, status models.TaskStatus) (models.Subtask, error)

	// DeleteSubtask removes the first matching subtask and its subtree.
	DeleteSubtask(contextName, taskID, subtaskID string) error

	// ListTasks flattens tasks across contexts in sorted context-name
	// order, filters, and paginates.
	ListTasks(filter TaskFilter) (TaskPage, error)

	// ListSubtasks returns a task's direct children, or its whole
	// subtree in pre-order when recursive is set.
	ListSubtasks(contextName, taskID string, recursive bool) (SubtaskPage, error)

	// GetDocument returns a snapshot of the entire stored document.
	GetDocument() (models.Document, error)

	// Backup copies the current data file to the destination path.
	Backup(destinationPath string) error

	// Restore replaces the current data file with the source file,
	// which must parse in the store's configured format.
	Restore(sourcePath string) error

	// Close releases the file lock and any other held resources.
	Close() error
}
