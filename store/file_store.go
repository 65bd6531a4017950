package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	yaml "gopkg.in/yaml.v3"

	"github.com/danielsotopino/simple-taskmanager/models"
)

const (
	defaultDataFile   = "tasks.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".sha256"
	lockSuffix        = ".lock"

	// DefaultPageSize is the page size applied when a listing filter
	// leaves Limit at zero.
	DefaultPageSize = 20
)

// FileTaskStore implements the TaskStore interface on a single document
// file. It supports JSON, YAML, and TOML formats and serializes access
// on two levels: a mutex for goroutines sharing the store and a file
// lock for other processes, exclusive for mutations and shared for
// reads. The file lock lives on a ".lock" sidecar rather than the data
// file itself: saves rename a temp file over the data file, and a lock
// held on the replaced inode would no longer exclude anyone. Every call
// loads a fresh document, so nothing is cached between calls.
type FileTaskStore struct {
	mu       sync.RWMutex
	filePath string
	flk      *flock.Flock
	format   string
}

// NewFileTaskStore creates a new instance of FileTaskStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileTaskStore() *FileTaskStore {
	return &FileTaskStore{}
}

// Initialize configures the FileTaskStore.
// It expects a 'dataFile' key in the config map specifying the path to the
// data file, defaulting to 'tasks.json' in the current working directory,
// and an optional 'dataFileFormat' of json, yaml, or toml.
func (s *FileTaskStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	// Keep the default filename's extension in step with the format.
	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath + lockSuffix)

	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	if !locked {
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking initial lock for %s: %w", s.filePath, err)
		}
	}
	defer func() { _ = s.flk.Unlock() }()

	// A load here surfaces permission problems early and reports any
	// corruption warning once at startup.
	_, err = s.loadDocumentInternal()
	return err
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadDocumentInternal reads the document file and unmarshals it. The
// caller must hold the file lock. A missing file yields an empty
// document. Malformed content and checksum mismatches also yield an
// empty document with a logged warning: the store favors availability
// over strictness, and the next save overwrites the damaged file.
// Unreadable files (permissions, I/O) are real errors.
func (s *FileTaskStore) loadDocumentInternal() (models.Document, error) {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Document{}, nil
		}
		return nil, &models.StorageError{Op: "load", Path: s.filePath, Err: err}
	}

	if len(data) == 0 {
		return models.Document{}, nil
	}

	// Verify checksum if a sidecar exists. Data written before checksums
	// were introduced loads normally and gains a sidecar on next save.
	if _, err := os.Stat(checksumFilePath); err == nil {
		expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return nil, &models.StorageError{Op: "load checksum", Path: checksumFilePath, Err: readErr}
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		if actual := calculateChecksum(data); actual != expectedChecksum {
			log.Printf("WARNING: checksum mismatch for %s; treating document as empty", s.filePath)
			return models.Document{}, nil
		}
	} else if !os.IsNotExist(err) {
		return nil, &models.StorageError{Op: "stat checksum", Path: checksumFilePath, Err: err}
	}

	var doc models.Document
	switch s.format {
	case formatJSON:
		err = json.Unmarshal(data, &doc)
	case formatYAML:
		err = yaml.Unmarshal(data, &doc)
	case formatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("unsupported data format for loading: %s", s.format)
	}
	if err != nil {
		log.Printf("WARNING: could not parse %s as %s (%v); treating document as empty", s.filePath, s.format, err)
		return models.Document{}, nil
	}

	if doc == nil {
		doc = models.Document{}
	}
	return doc, nil
}

// saveDocumentInternal marshals the document and atomically replaces the
// data file, then its checksum sidecar. The caller must hold the
// exclusive lock.
func (s *FileTaskStore) saveDocumentInternal(doc models.Document) error {
	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(doc, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(doc)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(doc); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}

	if err != nil {
		return &models.StorageError{Op: "marshal", Path: s.filePath, Err: err}
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return &models.StorageError{Op: "write temp", Path: tempFilePath, Err: err}
	}
	if err := os.WriteFile(tempChecksumFilePath, []byte(calculateChecksum(marshaledData)), 0o644); err != nil {
		return &models.StorageError{Op: "write temp checksum", Path: tempChecksumFilePath, Err: err}
	}

	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return &models.StorageError{Op: "replace", Path: s.filePath, Err: err}
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return &models.StorageError{Op: "replace checksum", Path: checksumFilePath, Err: err}
	}

	return nil
}

// validateTags checks every tag against the tag naming rule, failing on
// the first violation.
func validateTags(tags []string) error {
	for _, tag := range tags {
		if !models.IsValidTagName(tag) {
			return models.NewPatternError("tag", tag, models.TagNamePattern)
		}
	}
	return nil
}

// validateDependencies checks every dependency reference against the
// "context:taskID[:subtaskID]" form, failing on the first violation.
func validateDependencies(deps []string) error {
	for _, dep := range deps {
		if !models.IsValidDependencyRef(dep) {
			return models.NewPatternError("dependency", dep, models.DependencyRefPattern)
		}
	}
	return nil
}

// warnOnTitleFormat logs when a title ignores the advisory convention.
// Violations never block the operation.
func warnOnTitleFormat(title string) {
	if !models.HasTitleTag(title) {
		log.Printf("WARNING: title %q does not follow the '[TAG] Summary' convention", title)
	}
}

// CreateTask validates inputs, creates the context if needed, allocates
// the next top-level ID, and persists the new task. Dependencies are
// optional cross-task references of the form "context:taskID" or
// "context:taskID:subtaskID"; they are validated for shape, not
// existence, since referenced tasks may live in documents not yet
// written.
func (s *FileTaskStore) CreateTask(contextName, title, description string, priority models.TaskPriority, tags, dependencies []string) (models.Task, error) {
	if !models.IsValidContextName(contextName) {
		return models.Task{}, models.NewPatternError("context name", contextName, models.ContextNamePattern)
	}
	if !models.IsValidPriority(priority) {
		return models.Task{}, models.NewValidationError("priority", string(priority), models.ValidPriorityStrings())
	}
	if strings.TrimSpace(title) == "" {
		return models.Task{}, models.NewValidationError("title", title, nil)
	}
	if err := validateTags(tags); err != nil {
		return models.Task{}, err
	}
	if err := validateDependencies(dependencies); err != nil {
		return models.Task{}, err
	}
	warnOnTitleFormat(title)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flk.Lock(); err != nil {
		return models.Task{}, fmt.Errorf("could not lock file for create: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return models.Task{}, err
	}

	ctx := doc.EnsureContext(contextName)
	task := models.NewTask(models.NextTaskID(ctx.Tasks), title, description, priority, tags)
	task.Dependencies = dependencies
	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("validation failed for new task: %w", err)
	}
	ctx.Tasks = append(ctx.Tasks, task)
	ctx.Touch()

	if err := s.saveDocumentInternal(doc); err != nil {
		return models.Task{}, fmt.Errorf("failed to save new task: %w", err)
	}
	return task, nil
}

// GetTask retrieves one top-level task. Context and task misses are
// reported as distinct not-found errors.
func (s *FileTaskStore) GetTask(contextName, taskID string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.flk.RLock(); err != nil {
		return models.Task{}, fmt.Errorf("could not lock file for read: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return models.Task{}, err
	}

	ctx, ok := doc[contextName]
	if !ok {
		return models.Task{}, models.NewContextNotFound(contextName)
	}
	task := ctx.FindTask(taskID)
	if task == nil {
		return models.Task{}, models.NewTaskNotFound(contextName, taskID)
	}
	return *task, nil
}

// UpdateTaskStatus moves a task along the workflow graph and stamps
// completedDate when it lands on done.
func (s *FileTaskStore) UpdateTaskStatus(contextName, taskID string, status models.TaskStatus) (models.Task, error) {
	if !models.IsValidStatus(status) {
		return models.Task{}, models.NewValidationError("status", string(status), models.ValidStatusStrings())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flk.Lock(); err != nil {
		return models.Task{}, fmt.Errorf("could not lock file for status update: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return models.Task{}, err
	}

	ctx, ok := doc[contextName]
	if !ok {
		return models.Task{}, models.NewContextNotFound(contextName)
	}
	task := ctx.FindTask(taskID)
	if task == nil {
		return models.Task{}, models.NewTaskNotFound(contextName, taskID)
	}

	if err := models.ValidateTransition(task.Status, status); err != nil {
		return models.Task{}, err
	}
	task.Status = status
	if status == models.StatusDone {
		task.CompletedDate = models.NowTimestamp()
	}
	ctx.Touch()

	if err := s.saveDocumentInternal(doc); err != nil {
		return models.Task{}, fmt.Errorf("failed to save status update: %w", err)
	}
	return *task, nil
}

// DeleteTask removes a top-level task together with its entire subtree.
func (s *FileTaskStore) DeleteTask(contextName, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for delete: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return err
	}

	ctx, ok := doc[contextName]
	if !ok {
		return models.NewContextNotFound(contextName)
	}
	if !ctx.RemoveTask(taskID) {
		return models.NewTaskNotFound(contextName, taskID)
	}
	ctx.Touch()

	if err := s.saveDocumentInternal(doc); err != nil {
		return fmt.Errorf("failed to save after deleting task: %w", err)
	}
	return nil
}

// CreateSubtask appends a subtask under a top-level task. Only tasks are
// valid parents here; IDs are allocated among the parent's direct
// children, so sibling scopes number independently.
func (s *FileTaskStore) CreateSubtask(contextName, taskID, title, description string, tags []string) (models.Subtask, error) {
	if strings.TrimSpace(title) == "" {
		return models.Subtask{}, models.NewValidationError("title", title, nil)
	}
	if err := validateTags(tags); err != nil {
		return models.Subtask{}, err
	}
	warnOnTitleFormat(title)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flk.Lock(); err != nil {
		return models.Subtask{}, fmt.Errorf("could not lock file for subtask create: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return models.Subtask{}, err
	}

	ctx, ok := doc[contextName]
	if !ok {
		return models.Subtask{}, models.NewContextNotFound(contextName)
	}
	parent := ctx.FindTask(taskID)
	if parent == nil {
		return models.Subtask{}, models.NewTaskNotFound(contextName, taskID)
	}

	subtask := models.NewSubtask(models.NextSubtaskID(parent.Subtasks), title, description, tags)
	if err := models.ValidateStruct(subtask); err != nil {
		return models.Subtask{}, fmt.Errorf("validation failed for new subtask: %w", err)
	}
	parent.Subtasks = append(parent.Subtasks, subtask)
	ctx.Touch()

	if err := s.saveDocumentInternal(doc); err != nil {
		return models.Subtask{}, fmt.Errorf("failed to save new subtask: %w", err)
	}
	return subtask, nil
}

// GetSubtask finds a subtask anywhere in the task's subtree. When an ID
// occurs at several depths, direct children win over descendants and
// earlier siblings over later ones.
func (s *FileTaskStore) GetSubtask(contextName, taskID, subtaskID string) (models.Subtask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.flk.RLock(); err != nil {
		return models.Subtask{}, fmt.Errorf("could not lock file for read: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return models.Subtask{}, err
	}

	node, err := findSubtaskIn(doc, contextName, taskID, subtaskID)
	if err != nil {
		return models.Subtask{}, err
	}
	return *node, nil
}

// findSubtaskIn resolves context, task, and subtask with distinct
// not-found errors for each level.
func findSubtaskIn(doc models.Document, contextName, taskID, subtaskID string) (*models.Subtask, error) {
	ctx, ok := doc[contextName]
	if !ok {
		return nil, models.NewContextNotFound(contextName)
	}
	task := ctx.FindTask(taskID)
	if task == nil {
		return nil, models.NewTaskNotFound(contextName, taskID)
	}
	node := models.FindSubtask(task.Subtasks, subtaskID)
	if node == nil {
		return nil, models.NewSubtaskNotFound(contextName, taskID, subtaskID)
	}
	return node, nil
}

// UpdateSubtaskStatus moves the first matching subtask along the
// workflow graph, mutating it in place.
func (s *FileTaskStore) UpdateSubtaskStatus(contextName, taskID, subtaskID string, status models.TaskStatus) (models.Subtask, error) {
	if !models.IsValidStatus(status) {
		return models.Subtask{}, models.NewValidationError("status", string(status), models.ValidStatusStrings())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flk.Lock(); err != nil {
		return models.Subtask{}, fmt.Errorf("could not lock file for subtask status update: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return models.Subtask{}, err
	}

	node, err := findSubtaskIn(doc, contextName, taskID, subtaskID)
	if err != nil {
		return models.Subtask{}, err
	}

	if err := models.ValidateTransition(node.Status, status); err != nil {
		return models.Subtask{}, err
	}
	node.Status = status
	if status == models.StatusDone {
		node.CompletedDate = models.NowTimestamp()
	}
	doc[contextName].Touch()

	if err := s.saveDocumentInternal(doc); err != nil {
		return models.Subtask{}, fmt.Errorf("failed to save subtask status update: %w", err)
	}
	return *node, nil
}

// DeleteSubtask removes the first matching subtask and its subtree.
func (s *FileTaskStore) DeleteSubtask(contextName, taskID, subtaskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for subtask delete: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return err
	}

	ctx, ok := doc[contextName]
	if !ok {
		return models.NewContextNotFound(contextName)
	}
	task := ctx.FindTask(taskID)
	if task == nil {
		return models.NewTaskNotFound(contextName, taskID)
	}
	if !models.RemoveSubtask(&task.Subtasks, subtaskID) {
		return models.NewSubtaskNotFound(contextName, taskID, subtaskID)
	}
	ctx.Touch()

	if err := s.saveDocumentInternal(doc); err != nil {
		return fmt.Errorf("failed to save after deleting subtask: %w", err)
	}
	return nil
}

// ListTasks flattens tasks across contexts in sorted context-name order,
// applies tag and query filters, and paginates. Total counts all matches
// before the page is cut; an out-of-range offset yields an empty page.
// A filter naming an unknown context yields an empty page, not an error.
func (s *FileTaskStore) ListTasks(filter TaskFilter) (TaskPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.flk.RLock(); err != nil {
		return TaskPage{}, fmt.Errorf("could not lock file for read: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return TaskPage{}, err
	}

	names := make([]string, 0, len(doc))
	for name := range doc {
		if filter.Context != "" && name != filter.Context {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matches := []ListedTask{}
	for _, name := range names {
		for _, task := range doc[name].Tasks {
			if filter.Tag != "" && !hasTag(task.Tags, filter.Tag) {
				continue
			}
			if query != "" && !matchesQuery(task, query) {
				continue
			}
			matches = append(matches, ListedTask{Task: task, Context: name})
		}
	}

	page := TaskPage{Total: len(matches)}
	limit := filter.Limit
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 0 {
		page.Tasks = matches
		return page, nil
	}

	start := filter.Offset
	if start < 0 {
		start = 0
	}
	if start >= len(matches) {
		page.Tasks = []ListedTask{}
		return page, nil
	}
	end := start + limit
	if end > len(matches) {
		end = len(matches)
	}
	page.Tasks = matches[start:end]
	return page, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func matchesQuery(task models.Task, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(task.Title), loweredQuery) ||
		strings.Contains(strings.ToLower(task.Description), loweredQuery) {
		return true
	}
	for _, tag := range task.Tags {
		if strings.Contains(strings.ToLower(tag), loweredQuery) {
			return true
		}
	}
	return false
}

// ListSubtasks returns a task's direct children at level 0. When
// recursive is set, deeper descendants follow with their true depth,
// each child's subtree exhausted before the next child's.
func (s *FileTaskStore) ListSubtasks(contextName, taskID string, recursive bool) (SubtaskPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.flk.RLock(); err != nil {
		return SubtaskPage{}, fmt.Errorf("could not lock file for read: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	doc, err := s.loadDocumentInternal()
	if err != nil {
		return SubtaskPage{}, err
	}

	ctx, ok := doc[contextName]
	if !ok {
		return SubtaskPage{}, models.NewContextNotFound(contextName)
	}
	task := ctx.FindTask(taskID)
	if task == nil {
		return SubtaskPage{}, models.NewTaskNotFound(contextName, taskID)
	}

	items := []ListedSubtask{}
	for i := range task.Subtasks {
		items = append(items, ListedSubtask{
			Subtask:      task.Subtasks[i],
			Context:      contextName,
			ParentTaskID: taskID,
			Level:        0,
		})
	}
	if recursive {
		for i := range task.Subtasks {
			models.WalkSubtasks(task.Subtasks[i].Subtasks, 1, func(node *models.Subtask, level int) {
				items = append(items, ListedSubtask{
					Subtask:      *node,
					Context:      contextName,
					ParentTaskID: taskID,
					Level:        level,
				})
			})
		}
	}

	return SubtaskPage{Total: len(items), Subtasks: items}, nil
}

// GetDocument returns a freshly loaded snapshot of the whole document.
func (s *FileTaskStore) GetDocument() (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.flk.RLock(); err != nil {
		return nil, fmt.Errorf("could not lock file for read: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	return s.loadDocumentInternal()
}

// Backup copies the current data file to the destination path.
func (s *FileTaskStore) Backup(destinationPath string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.flk.RLock(); err != nil {
		return fmt.Errorf("could not lock file for backup: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	input, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			input = []byte{}
		} else {
			return &models.StorageError{Op: "read for backup", Path: s.filePath, Err: err}
		}
	}

	if err := os.WriteFile(destinationPath, input, 0o644); err != nil {
		return &models.StorageError{Op: "write backup", Path: destinationPath, Err: err}
	}
	return nil
}

// Restore replaces the current data file with the source file. The
// source must parse in the store's configured format; the old checksum
// sidecar is dropped and regenerated on the next save.
func (s *FileTaskStore) Restore(sourcePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for restore: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	sourceData, err := os.ReadFile(sourcePath)
	if err != nil {
		return &models.StorageError{Op: "read restore source", Path: sourcePath, Err: err}
	}

	var doc models.Document
	switch s.format {
	case formatJSON:
		err = json.Unmarshal(sourceData, &doc)
	case formatYAML:
		err = yaml.Unmarshal(sourceData, &doc)
	case formatTOML:
		err = toml.Unmarshal(sourceData, &doc)
	}
	if err != nil {
		return fmt.Errorf("restore source %s is not valid %s: %w", sourcePath, s.format, err)
	}

	tempFilePath := s.filePath + ".tmp_restore"
	defer func() { _ = os.Remove(tempFilePath) }()

	if err := os.WriteFile(tempFilePath, sourceData, 0o644); err != nil {
		return &models.StorageError{Op: "write restore temp", Path: tempFilePath, Err: err}
	}
	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return &models.StorageError{Op: "replace with restore", Path: s.filePath, Err: err}
	}

	_ = os.Remove(s.filePath + checksumSuffix)
	return nil
}

// Close releases the file lock. flock.Unlock is idempotent, so Close is
// safe to call even when no lock is held.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
