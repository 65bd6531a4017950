package store

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"

	"github.com/danielsotopino/simple-taskmanager/models"
)

// DefaultDefinitionsFile is the definitions document name used when the
// configuration does not name one.
const DefaultDefinitionsFile = "definitions.json"

// DefinitionStore manages the glossary of tag and feature definitions
// kept beside the task document.
type DefinitionStore interface {
	// CreateDefinition adds a definition. Names are unique across both
	// kinds; tag definitions must use legal tag names.
	CreateDefinition(name string, kind models.DefinitionKind, description string) (models.Definition, error)
	// GetDefinition retrieves a definition by name.
	GetDefinition(name string) (models.Definition, error)
	// ListDefinitions returns definitions sorted by name, optionally
	// restricted to one kind. An empty kind matches everything.
	ListDefinitions(kind models.DefinitionKind) ([]models.Definition, error)
	// UpdateDefinition replaces the description and/or kind of an
	// existing definition. Empty arguments leave the field unchanged.
	UpdateDefinition(name, description string, kind models.DefinitionKind) (models.Definition, error)
	// DeleteDefinition removes a definition by name.
	DeleteDefinition(name string) error
}

// FileDefinitionStore keeps definitions in a single JSON file. It uses
// an afero.Fs for filesystem operations, enabling easy testing with
// in-memory filesystems, and reloads the file on every call like the
// task store does.
type FileDefinitionStore struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// NewDefinitionStore creates a definition store on the provided
// filesystem. Use afero.NewOsFs() for real filesystem operations, or
// afero.NewMemMapFs() for testing.
func NewDefinitionStore(fs afero.Fs, path string) *FileDefinitionStore {
	return &FileDefinitionStore{fs: fs, path: path}
}

// NewOsDefinitionStore creates a definition store on the real operating
// system filesystem.
func NewOsDefinitionStore(path string) *FileDefinitionStore {
	return NewDefinitionStore(afero.NewOsFs(), path)
}

// load reads the definitions document. A missing file yields an empty
// document; unparseable content is treated the same way after logging,
// so a damaged glossary never blocks task operations.
func (s *FileDefinitionStore) load() (models.DefinitionsDocument, error) {
	var doc models.DefinitionsDocument

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return doc, &models.StorageError{Op: "stat", Path: s.path, Err: err}
	}
	if !exists {
		return doc, nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return doc, &models.StorageError{Op: "read", Path: s.path, Err: err}
	}
	if len(data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("WARNING: definitions file %s is unreadable, starting empty: %v", s.path, err)
		return models.DefinitionsDocument{}, nil
	}
	return doc, nil
}

// save writes the definitions document atomically: marshal to a
// temporary file, then rename over the target.
func (s *FileDefinitionStore) save(doc models.DefinitionsDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &models.StorageError{Op: "marshal", Path: s.path, Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return &models.StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return &models.StorageError{Op: "write", Path: tmp, Err: err}
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return &models.StorageError{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}

// validateDefinitionName enforces the naming rules for a definition of
// the given kind. Tag definitions share the tag name alphabet so the
// glossary always matches what tasks can actually carry.
func validateDefinitionName(name string, kind models.DefinitionKind) error {
	if name == "" {
		return models.NewPatternError("definition name", name, models.TagNamePattern)
	}
	if kind == models.DefinitionKindTag && !models.IsValidTagName(name) {
		return models.NewPatternError("definition name", name, models.TagNamePattern)
	}
	return nil
}

// CreateDefinition adds a new definition to the glossary.
func (s *FileDefinitionStore) CreateDefinition(name string, kind models.DefinitionKind, description string) (models.Definition, error) {
	if !models.IsValidDefinitionKind(kind) {
		return models.Definition{}, models.NewValidationError("kind", string(kind), models.ValidDefinitionKinds())
	}
	if err := validateDefinitionName(name, kind); err != nil {
		return models.Definition{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.Definition{}, err
	}
	if doc.Find(name) != nil {
		return models.Definition{}, models.NewDuplicateDefinition(name)
	}

	def := models.NewDefinition(name, kind, description)
	if err := models.ValidateStruct(def); err != nil {
		return models.Definition{}, fmt.Errorf("validation failed for new definition: %w", err)
	}
	doc.Definitions = append(doc.Definitions, def)

	if err := s.save(doc); err != nil {
		return models.Definition{}, fmt.Errorf("failed to save definition: %w", err)
	}
	return def, nil
}

// GetDefinition retrieves a definition by name.
func (s *FileDefinitionStore) GetDefinition(name string) (models.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.Definition{}, err
	}
	def := doc.Find(name)
	if def == nil {
		return models.Definition{}, models.NewDefinitionNotFound(name)
	}
	return *def, nil
}

// ListDefinitions returns the glossary sorted by name.
func (s *FileDefinitionStore) ListDefinitions(kind models.DefinitionKind) ([]models.Definition, error) {
	if kind != "" && !models.IsValidDefinitionKind(kind) {
		return nil, models.NewValidationError("kind", string(kind), models.ValidDefinitionKinds())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]models.Definition, 0, len(doc.Definitions))
	for _, def := range doc.Definitions {
		if kind != "" && def.Kind != kind {
			continue
		}
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UpdateDefinition rewrites the description and/or kind of an existing
// definition and refreshes its updated timestamp.
func (s *FileDefinitionStore) UpdateDefinition(name, description string, kind models.DefinitionKind) (models.Definition, error) {
	if kind != "" {
		if !models.IsValidDefinitionKind(kind) {
			return models.Definition{}, models.NewValidationError("kind", string(kind), models.ValidDefinitionKinds())
		}
		if err := validateDefinitionName(name, kind); err != nil {
			return models.Definition{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return models.Definition{}, err
	}
	def := doc.Find(name)
	if def == nil {
		return models.Definition{}, models.NewDefinitionNotFound(name)
	}

	if description != "" {
		def.Description = description
	}
	if kind != "" {
		def.Kind = kind
	}
	def.Updated = models.NowTimestamp()

	if err := s.save(doc); err != nil {
		return models.Definition{}, fmt.Errorf("failed to save definition: %w", err)
	}
	return *def, nil
}

// DeleteDefinition removes a definition from the glossary.
func (s *FileDefinitionStore) DeleteDefinition(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if !doc.Remove(name) {
		return models.NewDefinitionNotFound(name)
	}

	if err := s.save(doc); err != nil {
		return fmt.Errorf("failed to save definitions: %w", err)
	}
	return nil
}
