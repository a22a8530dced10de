package domain

import "time"

// SnapshotRefPrefix marks a diff operand that names a stored snapshot.
const SnapshotRefPrefix = "snapshot:"

// SnapshotLatest resolves to the newest snapshot of the manifest being compared.
const SnapshotLatest = "latest"

// Snapshot is a stored copy of a manifest, addressed by the hash of its content.
type Snapshot struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
}
