package models

import "time"

// ArchiveEntry is a snapshot of a task taken at deletion time. Payload
// holds the full task subtree as JSON so archived work stays inspectable
// after it leaves the live document.
type ArchiveEntry struct {
	ID         string     `json:"id"`
	Context    string     `json:"context"`
	TaskID     string     `json:"taskId"`
	Title      string     `json:"title"`
	Status     TaskStatus `json:"status"`
	Reason     string     `json:"reason,omitempty"`
	Payload    string     `json:"payload"`
	ArchivedAt time.Time  `json:"archivedAt"`
}

// ArchiveStats summarizes the archive for listing and reporting.
type ArchiveStats struct {
	TotalEntries int            `json:"totalEntries"`
	ByContext    map[string]int `json:"byContext"`
	ByStatus     map[string]int `json:"byStatus"`
	OldestEntry  *time.Time     `json:"oldestEntry,omitempty"`
	NewestEntry  *time.Time     `json:"newestEntry,omitempty"`
}
