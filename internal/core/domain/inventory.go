package domain

import "time"

// InventoryPin is one pin recorded by an inventory scan.
type InventoryPin struct {
	Manifest string    `json:"manifest"`
	Name     string    `json:"name"`
	Key      string    `json:"key"`
	Kind     EntryKind `json:"kind"`
	Version  string    `json:"version"`
	Line     int       `json:"line"`
	ScanID   string    `json:"scan_id"`
	ScanTime time.Time `json:"scan_time"`
}

// Drift is a package pinned at different versions across manifests.
type Drift struct {
	Key string `json:"key"`
	// Versions maps each pinned version to the manifests pinning it.
	Versions map[string][]string `json:"versions"`
}

// ScanSummary describes a completed inventory scan.
type ScanSummary struct {
	ID        string `json:"id"`
	Manifests int    `json:"manifests"`
	Pins      int    `json:"pins"`
}
