// Package workflow sequences a full note-generation run: configuration,
// relocation, assembly, and the fallback document on unrecovered failure.
package workflow

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/assemble"
	"github.com/starford/ansuz/internal/builder"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/journal"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/prompt"
	"github.com/starford/ansuz/internal/registry"
	"github.com/starford/ansuz/internal/storage"
)

// Orchestrator runs the end-to-end workflow for one draft note.
type Orchestrator struct {
	store       storage.Provider
	builder     *builder.Builder
	pipeline    *assemble.Pipeline
	types       *registry.NoteTypes
	symbols     *registry.SymbolPicker
	journal     *journal.Journal // nil disables recording
	prompter    prompt.Prompter
	logger      *slog.Logger
	maxAttempts int
}

// New wires an orchestrator from its collaborators. jnl may be nil.
func New(store storage.Provider, b *builder.Builder, pipeline *assemble.Pipeline,
	types *registry.NoteTypes, symbols *registry.SymbolPicker, jnl *journal.Journal,
	prompter prompt.Prompter, logger *slog.Logger, maxAttempts int) *Orchestrator {
	return &Orchestrator{
		store:       store,
		builder:     b,
		pipeline:    pipeline,
		types:       types,
		symbols:     symbols,
		journal:     jnl,
		prompter:    prompter,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// Run executes the workflow for the draft at draftPath and returns the
// final document text and the path it was written to. Any failure that is
// not recovered along the way degrades to a minimal fallback document: the
// user never ends up with a broken or empty note.
func (o *Orchestrator) Run(draftPath string) (string, string, error) {
	workingTitle := o.draftTitle(draftPath)

	text, dest, err := o.generate(draftPath, workingTitle)
	if err != nil {
		o.logger.Error("workflow failed, writing fallback document",
			slog.String("draft", draftPath), slog.String("error", err.Error()))
		if errors.Is(err, apperr.ErrCancelled) {
			o.prompter.Notice("Cancelled; keeping a minimal note instead.")
		}
		return o.recover(draftPath, dest, workingTitle)
	}
	return text, dest, nil
}

// generate runs the happy path: build configuration, relocate the draft,
// assemble, write. The returned destination is wherever the draft
// currently lives, so the caller can still recover after a partial run.
func (o *Orchestrator) generate(draftPath, workingTitle string) (string, string, error) {
	category, preset, err := o.chooseCategory()
	if err != nil {
		return "", draftPath, err
	}

	cfg, err := o.builder.Build(category, workingTitle, preset)
	if err != nil {
		return "", draftPath, err
	}

	if err := o.store.Move(draftPath, cfg.DestinationPath); err != nil {
		return "", draftPath, fmt.Errorf("workflow: relocate draft: %w", err)
	}

	frag, err := o.pipeline.Load(cfg)
	if err != nil {
		return "", cfg.DestinationPath, err
	}
	frag.Metadata = o.pipeline.CustomizeMetadata(frag.Metadata, cfg)
	text, err := o.pipeline.Assemble(frag, cfg)
	if err != nil {
		return "", cfg.DestinationPath, err
	}

	final := strings.TrimRight(text, " \t\r\n")
	if err := o.store.Write(cfg.DestinationPath, []byte(final+"\n")); err != nil {
		return "", cfg.DestinationPath, fmt.Errorf("workflow: write note: %w", err)
	}

	o.record(cfg, final)
	o.logger.Info("note generated",
		slog.String("path", cfg.DestinationPath),
		slog.String("category", cfg.Category.String()))
	return final, cfg.DestinationPath, nil
}

// chooseCategory asks what to create. The "new note type" choice scaffolds
// the type up front and then proceeds as a Leaf build with it preselected.
func (o *Orchestrator) chooseCategory() (models.DocumentCategory, *models.NoteType, error) {
	kinds := []models.DocumentCategory{
		models.TopLevel, models.MidLevel, models.Leaf, models.LeafClassification,
	}
	options := make([]string, len(kinds))
	values := []string{"top", "mid", "leaf", "newtype"}
	for i, k := range kinds {
		options[i] = k.String()
	}

	picked, err := o.prompter.Choice("What do you want to create?", options, values)
	if err != nil {
		return 0, nil, err
	}
	switch picked {
	case "top":
		return models.TopLevel, nil, nil
	case "mid":
		return models.MidLevel, nil, nil
	case "leaf":
		return models.Leaf, nil, nil
	case "newtype":
		created, err := o.types.CreateInteractive(o.prompter, o.symbols, o.maxAttempts)
		if err != nil {
			return 0, nil, err
		}
		return models.Leaf, &created, nil
	default:
		return 0, nil, fmt.Errorf("workflow: unknown category choice %q: %w", picked, apperr.ErrConfiguration)
	}
}

// recover writes the minimal fallback document to wherever the draft
// currently lives.
func (o *Orchestrator) recover(draftPath, currentPath, workingTitle string) (string, string, error) {
	if currentPath == "" {
		currentPath = draftPath
	}
	text := o.fallbackDocument(currentPath, workingTitle)
	if err := o.store.Write(currentPath, []byte(text+"\n")); err != nil {
		return "", currentPath, fmt.Errorf("workflow: write fallback document: %w", err)
	}
	return text, currentPath, nil
}

// fallbackDocument builds the bare-bones note used when the workflow could
// not finish: title heading, overview placeholder, an apology, and the
// timestamp block.
func (o *Orchestrator) fallbackDocument(path, workingTitle string) string {
	if workingTitle == "" {
		workingTitle = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	parts := []string{
		"# " + workingTitle,
		"## Overview\n\n*This section is still empty.*",
		"*Note generation did not finish; sorry about that. Fill the rest in by hand.*",
	}
	if times, err := o.store.Stat(path); err == nil {
		parts = append(parts, assemble.TimestampBlock(times))
	}
	return strings.TrimRight(strings.Join(parts, assemble.Separator), " \t\r\n")
}

// draftTitle derives the working title from the draft's current content,
// falling back to its file stem.
func (o *Orchestrator) draftTitle(draftPath string) string {
	data, err := o.store.Read(draftPath)
	if err == nil {
		if title := parser.Parse(data).Title; title != "" {
			return title
		}
	}
	return strings.TrimSuffix(filepath.Base(draftPath), ".md")
}

// record appends the outcome to the journal, best-effort.
func (o *Orchestrator) record(cfg models.NoteConfiguration, text string) {
	if o.journal == nil {
		return
	}
	noteType := ""
	if cfg.Type != nil {
		noteType = cfg.Type.Name
	}
	err := o.journal.Record(journal.Entry{
		Path:     cfg.DestinationPath,
		Title:    cfg.Title,
		Category: cfg.Category.String(),
		NoteType: noteType,
		Checksum: checksum.Sum([]byte(text)),
		Links:    len(cfg.TopLevelLinks) + len(cfg.MidLevelLinks),
	})
	if err != nil {
		o.logger.Warn("journal record failed", slog.String("error", err.Error()))
	}
}
