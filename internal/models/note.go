// Package models defines the domain types for Ansuz.
package models

import (
	"strings"
	"time"
)

// Verdict is the outcome of validating one candidate value. It is produced
// by the validators and consumed only by the retry engine.
type Verdict struct {
	Valid       bool
	Error       string
	Suggestion  string
	Overridable bool
}

// Accept returns a passing verdict.
func Accept() Verdict {
	return Verdict{Valid: true}
}

// Reject returns a failing verdict with an error message.
func Reject(msg string) Verdict {
	return Verdict{Error: msg}
}

// RejectWithSuggestion returns a failing verdict carrying a hint.
func RejectWithSuggestion(msg, hint string) Verdict {
	return Verdict{Error: msg, Suggestion: hint}
}

// NoteType describes one leaf classification discovered in (or written to)
// the template tree. Name is the identity key, unique per vault.
type NoteType struct {
	Name   string
	Symbol string
}

// SearchTag derives the type's unique tag: symbol followed by the name
// with spaces replaced by underscores (e.g. "🦠Malware_Sample").
func (t NoteType) SearchTag() string {
	return t.Symbol + strings.ReplaceAll(t.Name, " ", "_")
}

// DisplayLabel is the menu form of the type, e.g. "🦠 Malware Sample".
func (t NoteType) DisplayLabel() string {
	return t.Symbol + " " + t.Name
}

// CategoryLink is a resolved reference to an existing primary or secondary
// category note.
type CategoryLink struct {
	Name string
}

// Ref serializes the link as a quoted wikilink for YAML frontmatter.
func (l CategoryLink) Ref() string {
	return `"[[` + l.Name + `]]"`
}

// LinkNames returns just the names of a link list.
func LinkNames(links []CategoryLink) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Name
	}
	return out
}

// TemplateRefs holds the vault-relative paths of the fragments a note is
// assembled from. Footer is set only for Leaf notes.
type TemplateRefs struct {
	Metadata string
	Body     string
	Footer   string
}

// NoteConfiguration is the unified record the builder produces and the
// assembly pipeline consumes. It is never persisted. Exactly one of Symbol
// (TopLevel) or Type (Leaf) is populated, depending on Category.
type NoteConfiguration struct {
	Category        DocumentCategory
	Title           string
	Symbol          string
	TopLevelLinks   []CategoryLink
	MidLevelLinks   []CategoryLink
	Type            *NoteType
	DestinationPath string
	Templates       TemplateRefs
}

// The with-X steps return a new value instead of mutating the receiver so
// a partially built configuration can be retried without aliasing.

// WithTitle returns a copy with the title set.
func (c NoteConfiguration) WithTitle(title string) NoteConfiguration {
	c.Title = title
	return c
}

// WithSymbol returns a copy with the top-level symbol set.
func (c NoteConfiguration) WithSymbol(symbol string) NoteConfiguration {
	c.Symbol = symbol
	return c
}

// WithTopLevelLinks returns a copy with the primary category links set.
func (c NoteConfiguration) WithTopLevelLinks(links []CategoryLink) NoteConfiguration {
	c.TopLevelLinks = append([]CategoryLink(nil), links...)
	return c
}

// WithMidLevelLinks returns a copy with the secondary category links set.
func (c NoteConfiguration) WithMidLevelLinks(links []CategoryLink) NoteConfiguration {
	c.MidLevelLinks = append([]CategoryLink(nil), links...)
	return c
}

// WithType returns a copy with the note type set.
func (c NoteConfiguration) WithType(t NoteType) NoteConfiguration {
	c.Type = &t
	return c
}

// WithDestination returns a copy with destination and template refs set.
func (c NoteConfiguration) WithDestination(path string, refs TemplateRefs) NoteConfiguration {
	c.DestinationPath = path
	c.Templates = refs
	return c
}

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// FileTimes carries the store timestamps used for the assembled
// Created/Modified block.
type FileTimes struct {
	Created  time.Time
	Modified time.Time
}
