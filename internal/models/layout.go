package models

import "path/filepath"

// Vault layout. The directory names are fixed: they are part of the note
// format shared with every other consumer of the vault, not configuration.
const (
	InboxDir     = "00 - Inbox"
	PrimaryDir   = "01 - Primary Categories"
	SecondaryDir = "02 - Secondary Categories"
	ContentDir   = "03 - Content"
	TemplateDir  = "04 - Templates"
)

// Template sub-trees and fragment file names.
const (
	PrimaryTemplateDir   = TemplateDir + "/Primary Category"
	SecondaryTemplateDir = TemplateDir + "/Secondary Category"
	NoteTypeTemplateDir  = TemplateDir + "/Content Types"

	MetadataFragment = "metadata.md"
	BodyFragment     = "body.md"
	FooterFragment   = "footer.md"
)

// Structural markers: reserved symbols identifying the built-in kinds.
// They are excluded from user-assignable symbols, and their tags are
// skipped when a note type's own tag is extracted from its metadata.
const (
	MarkerPrimary   = "📂"
	MarkerSecondary = "🗂️"
	MarkerNoteType  = "📑"

	TagPrimary   = MarkerPrimary + "Primary_Category"
	TagSecondary = MarkerSecondary + "Secondary_Category"
)

// Canonical base note type and the fallback symbol used whenever symbol
// selection or extraction cannot produce anything better.
const (
	BasicNoteType = "Basic"
	BasicSymbol   = "🗒️"
	DefaultSymbol = "📝"
)

// StructuralMarkers returns the reserved symbol set.
func StructuralMarkers() []string {
	return []string{MarkerPrimary, MarkerSecondary, MarkerNoteType}
}

// NoteTypeDir returns the template directory for a note type.
func NoteTypeDir(name string) string {
	return filepath.Join(NoteTypeTemplateDir, name)
}
