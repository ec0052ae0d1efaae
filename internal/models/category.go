package models

import "fmt"

// DocumentCategory identifies the kind of note a workflow produces. It
// determines the destination directory, the required template fragments,
// and which selection steps the configuration builder runs.
type DocumentCategory int

const (
	// TopLevel is a primary category note.
	TopLevel DocumentCategory = iota
	// MidLevel is a secondary category note linked to primary categories.
	MidLevel
	// Leaf is a content note linked to categories and typed by a NoteType.
	Leaf
	// LeafClassification extends the schema: a brand-new note type is
	// scaffolded first, then a Leaf note of that type is built.
	LeafClassification
)

// String returns the human-readable category name.
func (c DocumentCategory) String() string {
	switch c {
	case TopLevel:
		return "Primary Category"
	case MidLevel:
		return "Secondary Category"
	case Leaf:
		return "Content Note"
	case LeafClassification:
		return "New Note Type"
	default:
		return fmt.Sprintf("DocumentCategory(%d)", int(c))
	}
}
