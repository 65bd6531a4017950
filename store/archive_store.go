package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielsotopino/simple-taskmanager/models"
)

// ArchiveStore defines the interface for archive persistence. Tasks are
// snapshotted here before deletion removes them from the live document.
type ArchiveStore interface {
	// ArchiveTask snapshots a task, including its full subtask tree, and
	// records why it left the live document.
	ArchiveTask(contextName string, task models.Task, reason string) (models.ArchiveEntry, error)
	// ListEntries returns archive entries newest first, optionally
	// restricted to one context. A non-positive limit returns everything.
	ListEntries(contextName string, limit int) ([]models.ArchiveEntry, error)
	// GetEntry retrieves an entry by ID. Unique ID prefixes are accepted.
	GetEntry(id string) (models.ArchiveEntry, error)
	// Stats summarizes the archive contents.
	Stats() (models.ArchiveStats, error)
	// Purge deletes entries archived before now minus olderThan and
	// reports how many were removed.
	Purge(olderThan time.Duration) (int, error)
	Close() error
}

// SQLiteArchiveStore implements ArchiveStore using SQLite.
type SQLiteArchiveStore struct {
	db *sql.DB
}

// NewSQLiteArchiveStore opens or creates the archive database at the
// given path. Pass ":memory:" for an in-memory database in tests.
func NewSQLiteArchiveStore(path string) (*SQLiteArchiveStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create archive directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent and sidesteps
	// SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteArchiveStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return store, nil
}

// initSchema creates the archive table if it doesn't exist.
func (s *SQLiteArchiveStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS archive (
		id TEXT PRIMARY KEY,
		context TEXT NOT NULL,
		task_id TEXT NOT NULL,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT,
		payload TEXT NOT NULL,
		archived_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_archive_context ON archive(context);
	CREATE INDEX IF NOT EXISTS idx_archive_archived_at ON archive(archived_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// ArchiveTask snapshots the task as a new archive entry.
func (s *SQLiteArchiveStore) ArchiveTask(contextName string, task models.Task, reason string) (models.ArchiveEntry, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return models.ArchiveEntry{}, fmt.Errorf("marshal archived task: %w", err)
	}

	entry := models.ArchiveEntry{
		ID:         uuid.NewString(),
		Context:    contextName,
		TaskID:     task.ID,
		Title:      task.Title,
		Status:     task.Status,
		Reason:     strings.TrimSpace(reason),
		Payload:    string(payload),
		ArchivedAt: time.Now().UTC().Truncate(time.Second),
	}

	_, err = s.db.Exec(`
		INSERT INTO archive (id, context, task_id, title, status, reason, payload, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Context, entry.TaskID, entry.Title, string(entry.Status),
		entry.Reason, entry.Payload, entry.ArchivedAt.Format(time.RFC3339))
	if err != nil {
		return models.ArchiveEntry{}, fmt.Errorf("insert archive entry: %w", err)
	}
	return entry, nil
}

// scanEntry reads one archive row.
func scanEntry(row interface{ Scan(...any) error }) (models.ArchiveEntry, error) {
	var entry models.ArchiveEntry
	var status, archivedAt string
	var reason sql.NullString
	if err := row.Scan(&entry.ID, &entry.Context, &entry.TaskID, &entry.Title,
		&status, &reason, &entry.Payload, &archivedAt); err != nil {
		return models.ArchiveEntry{}, err
	}
	entry.Status = models.TaskStatus(status)
	entry.Reason = reason.String
	t, err := time.Parse(time.RFC3339, archivedAt)
	if err != nil {
		return models.ArchiveEntry{}, fmt.Errorf("parse archived_at %q: %w", archivedAt, err)
	}
	entry.ArchivedAt = t.UTC()
	return entry, nil
}

// ListEntries returns entries newest first.
func (s *SQLiteArchiveStore) ListEntries(contextName string, limit int) ([]models.ArchiveEntry, error) {
	query := `SELECT id, context, task_id, title, status, reason, payload, archived_at FROM archive`
	args := []any{}
	if contextName != "" {
		query += ` WHERE context = ?`
		args = append(args, contextName)
	}
	query += ` ORDER BY archived_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list archive entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []models.ArchiveEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive entries: %w", err)
	}
	return entries, nil
}

// escapeLike makes a string safe as a LIKE pattern fragment by escaping
// the %, _, and \ metacharacters.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// GetEntry retrieves one entry by exact ID or unique prefix. A prefix
// matching more than one entry is an error, not a silent pick.
func (s *SQLiteArchiveStore) GetEntry(id string) (models.ArchiveEntry, error) {
	row := s.db.QueryRow(`
		SELECT id, context, task_id, title, status, reason, payload, archived_at
		FROM archive
		WHERE id = ?
	`, id)
	entry, err := scanEntry(row)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.ArchiveEntry{}, fmt.Errorf("get archive entry: %w", err)
	}

	// Two rows are enough to tell unique from ambiguous.
	rows, err := s.db.Query(`
		SELECT id, context, task_id, title, status, reason, payload, archived_at
		FROM archive
		WHERE id LIKE ? ESCAPE '\'
		LIMIT 2
	`, escapeLike(id)+"%")
	if err != nil {
		return models.ArchiveEntry{}, fmt.Errorf("get archive entry by prefix: %w", err)
	}
	defer func() { _ = rows.Close() }()

	matches := []models.ArchiveEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return models.ArchiveEntry{}, err
		}
		matches = append(matches, entry)
	}
	if err := rows.Err(); err != nil {
		return models.ArchiveEntry{}, fmt.Errorf("iterate archive entries: %w", err)
	}

	switch len(matches) {
	case 0:
		return models.ArchiveEntry{}, &models.NotFoundError{Entity: "archive entry", Key: id}
	case 1:
		return matches[0], nil
	default:
		return models.ArchiveEntry{}, fmt.Errorf("archive entry prefix %q is ambiguous; use more characters of the ID", id)
	}
}

// Stats summarizes the archive.
func (s *SQLiteArchiveStore) Stats() (models.ArchiveStats, error) {
	stats := models.ArchiveStats{
		ByContext: map[string]int{},
		ByStatus:  map[string]int{},
	}

	rows, err := s.db.Query(`SELECT context, status, archived_at FROM archive`)
	if err != nil {
		return stats, fmt.Errorf("read archive stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var contextName, status, archivedAt string
		if err := rows.Scan(&contextName, &status, &archivedAt); err != nil {
			return stats, err
		}
		stats.TotalEntries++
		stats.ByContext[contextName]++
		stats.ByStatus[status]++

		t, err := time.Parse(time.RFC3339, archivedAt)
		if err != nil {
			continue
		}
		t = t.UTC()
		if stats.OldestEntry == nil || t.Before(*stats.OldestEntry) {
			oldest := t
			stats.OldestEntry = &oldest
		}
		if stats.NewestEntry == nil || t.After(*stats.NewestEntry) {
			newest := t
			stats.NewestEntry = &newest
		}
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate archive stats: %w", err)
	}
	return stats, nil
}

// Purge deletes entries older than the cutoff.
func (s *SQLiteArchiveStore) Purge(olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM archive WHERE archived_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge archive: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close releases the database handle.
func (s *SQLiteArchiveStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
