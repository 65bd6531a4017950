package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielsotopino/simple-taskmanager/models"
)

func setupArchiveStore(t *testing.T) *SQLiteArchiveStore {
	t.Helper()

	store, err := NewSQLiteArchiveStore(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("Failed to open archive store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestArchiveStore_ArchiveAndGet(t *testing.T) {
	store := setupArchiveStore(t)

	task := models.NewTask("3", "[API] Retire v1 endpoints", "remove after sunset", models.PriorityMedium, []string{"api"})
	task.Status = models.StatusDone
	task.Subtasks = []models.Subtask{models.NewSubtask("1", "[S] Remove routes", "", nil)}

	entry, err := store.ArchiveTask("work", task, "deleted by operator")
	if err != nil {
		t.Fatalf("ArchiveTask failed: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("Entry ID should not be empty")
	}
	if entry.Context != "work" || entry.TaskID != "3" || entry.Status != models.StatusDone {
		t.Errorf("Entry = %q/%q/%s, want work/3/done", entry.Context, entry.TaskID, entry.Status)
	}

	// The payload carries the whole subtree.
	var restored models.Task
	if err := json.Unmarshal([]byte(entry.Payload), &restored); err != nil {
		t.Fatalf("Payload does not unmarshal: %v", err)
	}
	if restored.Title != task.Title || len(restored.Subtasks) != 1 {
		t.Errorf("Restored payload = %q with %d subtasks, want %q with 1", restored.Title, len(restored.Subtasks), task.Title)
	}

	got, err := store.GetEntry(entry.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Title != task.Title || got.Reason != "deleted by operator" {
		t.Errorf("GetEntry = %q/%q, want title and reason preserved", got.Title, got.Reason)
	}
	if !got.ArchivedAt.Equal(entry.ArchivedAt) {
		t.Errorf("ArchivedAt = %v, want %v", got.ArchivedAt, entry.ArchivedAt)
	}

	// Prefix lookup.
	got, err = store.GetEntry(entry.ID[:8])
	if err != nil {
		t.Fatalf("GetEntry by prefix failed: %v", err)
	}
	if got.ID != entry.ID {
		t.Errorf("Prefix lookup = %q, want %q", got.ID, entry.ID)
	}

	var nfErr *models.NotFoundError
	if _, err := store.GetEntry("does-not-exist"); !errors.As(err, &nfErr) || nfErr.Entity != "archive entry" {
		t.Errorf("GetEntry(missing) = %v, want archive entry not-found", err)
	}
}

func TestArchiveStore_GetEntryPrefixResolution(t *testing.T) {
	store := setupArchiveStore(t)

	// Controlled IDs so the shared prefix is deterministic.
	for _, id := range []string{"abc-first", "abc-second", "xyz-other"} {
		_, err := store.db.Exec(`
			INSERT INTO archive (id, context, task_id, title, status, reason, payload, archived_at)
			VALUES (?, 'work', '1', '[T] Seeded', 'done', '', '{}', '2024-06-01T00:00:00Z')
		`, id)
		if err != nil {
			t.Fatalf("Failed to seed entry %s: %v", id, err)
		}
	}

	// A prefix shared by several entries must be reported, not resolved
	// to an arbitrary one.
	if _, err := store.GetEntry("abc"); err == nil {
		t.Error("GetEntry(ambiguous prefix) should fail")
	} else if errors.As(err, new(*models.NotFoundError)) {
		t.Errorf("Ambiguous prefix reported as not-found: %v", err)
	}

	got, err := store.GetEntry("xyz")
	if err != nil {
		t.Fatalf("GetEntry(unique prefix) failed: %v", err)
	}
	if got.ID != "xyz-other" {
		t.Errorf("Unique prefix resolved to %q, want xyz-other", got.ID)
	}

	// An exact ID wins even when it is also a prefix of other IDs.
	_, err = store.db.Exec(`
		INSERT INTO archive (id, context, task_id, title, status, reason, payload, archived_at)
		VALUES ('abc', 'work', '2', '[T] Exact', 'done', '', '{}', '2024-06-01T00:00:00Z')
	`)
	if err != nil {
		t.Fatalf("Failed to seed exact entry: %v", err)
	}
	got, err = store.GetEntry("abc")
	if err != nil {
		t.Fatalf("GetEntry(exact) failed: %v", err)
	}
	if got.ID != "abc" {
		t.Errorf("Exact lookup = %q, want abc", got.ID)
	}

	// LIKE metacharacters in the input are literals, not wildcards.
	var nfErr *models.NotFoundError
	if _, err := store.GetEntry("%"); !errors.As(err, &nfErr) {
		t.Errorf("GetEntry(%%) = %v, want not-found", err)
	}
	if _, err := store.GetEntry("ab_"); !errors.As(err, &nfErr) {
		t.Errorf("GetEntry(ab_) = %v, want not-found", err)
	}
}

func TestArchiveStore_ListEntries(t *testing.T) {
	store := setupArchiveStore(t)

	seed := []struct {
		context string
		id      string
	}{
		{"work", "1"},
		{"work", "2"},
		{"personal", "1"},
	}
	for _, s := range seed {
		task := models.NewTask(s.id, "[T] Archived "+s.id, "", models.PriorityLow, nil)
		if _, err := store.ArchiveTask(s.context, task, ""); err != nil {
			t.Fatalf("ArchiveTask failed: %v", err)
		}
	}

	all, err := store.ListEntries("", 0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Listed %d entries, want 3", len(all))
	}

	work, err := store.ListEntries("work", 0)
	if err != nil {
		t.Fatalf("ListEntries(work) failed: %v", err)
	}
	if len(work) != 2 {
		t.Errorf("Listed %d work entries, want 2", len(work))
	}
	for _, e := range work {
		if e.Context != "work" {
			t.Errorf("Entry context = %q, want work", e.Context)
		}
	}

	limited, err := store.ListEntries("", 1)
	if err != nil {
		t.Fatalf("ListEntries(limit) failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Limited listing = %d entries, want 1", len(limited))
	}
}

func TestArchiveStore_Stats(t *testing.T) {
	store := setupArchiveStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats on empty archive failed: %v", err)
	}
	if empty.TotalEntries != 0 || empty.OldestEntry != nil {
		t.Errorf("Empty stats = %d entries, oldest %v", empty.TotalEntries, empty.OldestEntry)
	}

	done := models.NewTask("1", "[T] Done one", "", models.PriorityLow, nil)
	done.Status = models.StatusDone
	todo := models.NewTask("2", "[T] Abandoned", "", models.PriorityLow, nil)

	if _, err := store.ArchiveTask("work", done, ""); err != nil {
		t.Fatalf("ArchiveTask failed: %v", err)
	}
	if _, err := store.ArchiveTask("work", todo, ""); err != nil {
		t.Fatalf("ArchiveTask failed: %v", err)
	}
	if _, err := store.ArchiveTask("personal", todo, ""); err != nil {
		t.Fatalf("ArchiveTask failed: %v", err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	if stats.ByContext["work"] != 2 || stats.ByContext["personal"] != 1 {
		t.Errorf("ByContext = %v, want work:2 personal:1", stats.ByContext)
	}
	if stats.ByStatus["done"] != 1 || stats.ByStatus["todo"] != 2 {
		t.Errorf("ByStatus = %v, want done:1 todo:2", stats.ByStatus)
	}
	if stats.OldestEntry == nil || stats.NewestEntry == nil {
		t.Fatal("Oldest/Newest should be set")
	}
	if stats.OldestEntry.After(*stats.NewestEntry) {
		t.Errorf("Oldest %v after newest %v", stats.OldestEntry, stats.NewestEntry)
	}
}

func TestArchiveStore_Purge(t *testing.T) {
	store := setupArchiveStore(t)

	task := models.NewTask("1", "[T] Recent", "", models.PriorityLow, nil)
	if _, err := store.ArchiveTask("work", task, ""); err != nil {
		t.Fatalf("ArchiveTask failed: %v", err)
	}

	// Plant an entry old enough to purge.
	_, err := store.db.Exec(`
		INSERT INTO archive (id, context, task_id, title, status, reason, payload, archived_at)
		VALUES ('old-entry', 'work', '9', '[T] Ancient', 'done', '', '{}', '2020-01-01T00:00:00Z')
	`)
	if err != nil {
		t.Fatalf("Failed to insert old entry: %v", err)
	}

	removed, err := store.Purge(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Purge removed %d entries, want 1", removed)
	}

	remaining, err := store.ListEntries("", 0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Title != "[T] Recent" {
		t.Errorf("Remaining = %d entries, want only the recent one", len(remaining))
	}
}
