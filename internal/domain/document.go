package domain

import (
	"fmt"
	"time"
)

// =============================================================================
// Generated Documents
// =============================================================================

// GeneratedDocument describes one PDF written to the output directory.
// Documents are never auto-deleted; the directory listing is the source of
// truth and the debug delete operation is the only way to remove them.
type GeneratedDocument struct {
	Filename    string    `json:"filename"`
	FilePath    string    `json:"filePath,omitempty"`
	Size        int64     `json:"-"`
	SizeLabel   string    `json:"size"`
	Created     time.Time `json:"-"`
	CreatedAt   string    `json:"created"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
}

// FormatFileSize renders a byte count as "%.2f KB", matching the listing and
// mail-log format used throughout the service.
func FormatFileSize(bytes int64) string {
	return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
}
