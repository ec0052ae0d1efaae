// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/ansuz/internal/models"

// Provider is the interface for vault file operations. All paths are
// relative to the vault root.
type Provider interface {
	// Exists reports whether an entry (file or directory) is present.
	Exists(path string) bool
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Move renames oldPath to newPath.
	Move(oldPath, newPath string) error
	// CreateDir creates a directory (and any missing parents).
	CreateDir(path string) error
	// ListNotes returns metadata for the .md files directly inside dir.
	ListNotes(dir string) ([]models.NoteMetadata, error)
	// ListDirs returns the names of the sub-directories directly inside dir.
	ListDirs(dir string) ([]string, error)
	// Stat returns the creation/modification times recorded for path.
	Stat(path string) (models.FileTimes, error)
	// Frontmatter returns the parsed YAML frontmatter of the note at path.
	Frontmatter(path string) (map[string]any, error)
}
