package model

import "time"

// SetExportFile is the top-level JSON structure for card set export.
type SetExportFile struct {
	ExportedAt time.Time   `json:"exported_at"`
	NumSets    int         `json:"num_sets"`
	Sets       []SetExport `json:"sets"`
}

// SetExport holds one card set with its cards for export.
type SetExport struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	Cards       []CardExport `json:"cards"`
}

// CardExport is a single card in an exported set.
type CardExport struct {
	Front    string `json:"front"`
	Back     string `json:"back"`
	Position int    `json:"position"`
}
