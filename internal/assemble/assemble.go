// Package assemble loads template fragments, customizes their metadata,
// and concatenates them into the final note text.
package assemble

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// Separator joins assembled parts: blank line, horizontal rule, blank line.
const Separator = "\n\n---\n\n"

// timeLayout formats the Created/Modified lines.
const timeLayout = "2006-01-02 15:04"

// Placeholder patterns rewritten during metadata customization. These are
// exact patterns: a fragment that diverges from them is emitted
// un-customized with a warning, never failed.
const (
	placeholderTopLevelTags = "  - " + models.TagPrimary + "\n  -\n"
	placeholderPrimary      = "Primary Categories:\n  -\n"
	placeholderSecondary    = "Secondary Categories:\n  -\n"
)

// Fragments holds the loaded template content for one note.
type Fragments struct {
	Metadata string
	Body     string
	Footer   string
}

// Pipeline assembles notes from template fragments.
type Pipeline struct {
	store  storage.Provider
	logger *slog.Logger
}

// NewPipeline creates an assembly pipeline over the given store.
func NewPipeline(store storage.Provider, logger *slog.Logger) *Pipeline {
	return &Pipeline{store: store, logger: logger}
}

// Load reads every fragment the configuration references. A missing
// required fragment fails the whole pipeline.
func (p *Pipeline) Load(cfg models.NoteConfiguration) (Fragments, error) {
	var frag Fragments

	meta, err := p.store.Read(cfg.Templates.Metadata)
	if err != nil {
		return frag, fmt.Errorf("assemble: metadata fragment: %w", err)
	}
	body, err := p.store.Read(cfg.Templates.Body)
	if err != nil {
		return frag, fmt.Errorf("assemble: body fragment: %w", err)
	}
	frag.Metadata = string(meta)
	frag.Body = string(body)

	if cfg.Templates.Footer != "" {
		footer, err := p.store.Read(cfg.Templates.Footer)
		if err != nil {
			return frag, fmt.Errorf("assemble: footer fragment: %w", err)
		}
		frag.Footer = string(footer)
	}
	return frag, nil
}

// CustomizeMetadata rewrites the metadata fragment's placeholders for the
// configuration: the empty tag slot for top-level notes, the category link
// placeholders for everything else. Empty link lists leave their
// placeholder untouched.
func (p *Pipeline) CustomizeMetadata(metadata string, cfg models.NoteConfiguration) string {
	switch cfg.Category {
	case models.TopLevel:
		searchTag := models.NoteType{Name: cfg.Title, Symbol: cfg.Symbol}.SearchTag()
		replacement := "  - " + models.TagPrimary + "\n  - " + searchTag + "\n"
		metadata = p.replaceExact(metadata, placeholderTopLevelTags, replacement, "top-level tag slot")
	case models.MidLevel:
		metadata = p.replaceLinks(metadata, placeholderPrimary, cfg.TopLevelLinks)
	case models.Leaf:
		metadata = p.replaceLinks(metadata, placeholderPrimary, cfg.TopLevelLinks)
		metadata = p.replaceLinks(metadata, placeholderSecondary, cfg.MidLevelLinks)
	}
	return metadata
}

// replaceLinks swaps a "no links yet" placeholder block for one list item
// per resolved link.
func (p *Pipeline) replaceLinks(metadata, placeholder string, links []models.CategoryLink) string {
	if len(links) == 0 {
		return metadata
	}
	heading := placeholder[:strings.IndexByte(placeholder, '\n')]
	var sb strings.Builder
	sb.WriteString(heading + "\n")
	for _, link := range links {
		sb.WriteString("  - " + link.Ref() + "\n")
	}
	return p.replaceExact(metadata, placeholder, sb.String(), heading)
}

// replaceExact replaces one occurrence of pattern. A non-matching pattern
// is a soft mismatch: logged, and the document stays un-customized rather
// than failing the build.
func (p *Pipeline) replaceExact(doc, pattern, replacement, what string) string {
	if !strings.Contains(doc, pattern) {
		p.logger.Warn("metadata placeholder not found, fragment left as-is",
			slog.String("placeholder", what))
		return doc
	}
	return strings.Replace(doc, pattern, replacement, 1)
}

// Assemble builds the final document: a header (metadata block plus title
// heading), the body, the footer for leaf notes, and the timestamp block,
// joined by the fixed separator in that order.
func (p *Pipeline) Assemble(frag Fragments, cfg models.NoteConfiguration) (string, error) {
	times, err := p.store.Stat(cfg.DestinationPath)
	if err != nil {
		return "", fmt.Errorf("assemble: stat note: %w", err)
	}

	header := strings.TrimRight(frag.Metadata, "\n") + "\n\n# " + cfg.Title
	parts := []string{header, strings.TrimRight(frag.Body, "\n")}
	if cfg.Category == models.Leaf {
		parts = append(parts, strings.TrimRight(frag.Footer, "\n"))
	}
	parts = append(parts, TimestampBlock(times))

	return strings.Join(parts, Separator), nil
}

// TimestampBlock renders the two fixed-format lines recording the note's
// store timestamps.
func TimestampBlock(times models.FileTimes) string {
	return "Created: " + times.Created.Format(timeLayout) +
		"\nModified: " + times.Modified.Format(timeLayout)
}
