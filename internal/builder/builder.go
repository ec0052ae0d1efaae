// Package builder collects the interactive choices for one workflow run
// and produces the unified note configuration.
package builder

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/prompt"
	"github.com/starford/ansuz/internal/registry"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/validate"
)

// Builder drives the category-specific selection steps.
type Builder struct {
	store       storage.Provider
	categories  *registry.Categories
	types       *registry.NoteTypes
	symbols     *registry.SymbolPicker
	prompter    prompt.Prompter
	logger      *slog.Logger
	maxAttempts int
}

// New wires a builder from its collaborators.
func New(store storage.Provider, categories *registry.Categories, types *registry.NoteTypes,
	symbols *registry.SymbolPicker, prompter prompt.Prompter, logger *slog.Logger, maxAttempts int) *Builder {
	return &Builder{
		store:       store,
		categories:  categories,
		types:       types,
		symbols:     symbols,
		prompter:    prompter,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// Build collects a validated title and the category-specific selections,
// then resolves destination and template references. fallbackTitle (the
// draft's current title) is offered when title entry is exhausted. preset,
// when non-nil, is a freshly created note type that replaces the
// select-or-create step for Leaf builds.
func (b *Builder) Build(category models.DocumentCategory, fallbackTitle string,
	preset *models.NoteType) (models.NoteConfiguration, error) {

	cfg := models.NoteConfiguration{Category: category}

	switch category {
	case models.TopLevel, models.MidLevel, models.Leaf:
	default:
		return cfg, fmt.Errorf("builder: unsupported category %s: %w", category, apperr.ErrConfiguration)
	}

	title, err := b.promptTitle(category, fallbackTitle)
	if err != nil {
		return cfg, err
	}
	cfg = cfg.WithTitle(title)

	switch category {
	case models.TopLevel:
		cfg = cfg.WithSymbol(b.symbols.Choose(b.prompter))
	case models.MidLevel:
		top, err := b.categories.SelectMultiple(b.prompter, models.TopLevel)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.WithTopLevelLinks(top)
	case models.Leaf:
		top, err := b.categories.SelectMultiple(b.prompter, models.TopLevel)
		if err != nil {
			return cfg, err
		}
		mid, err := b.categories.SelectMultiple(b.prompter, models.MidLevel)
		if err != nil {
			return cfg, err
		}
		noteType := preset
		if noteType == nil {
			selected, err := b.types.SelectOrCreate(b.prompter, b.symbols, b.maxAttempts)
			if err != nil {
				return cfg, err
			}
			noteType = &selected
		}
		cfg = cfg.WithTopLevelLinks(top).WithMidLevelLinks(mid).WithType(*noteType)
	}

	return Resolve(cfg)
}

// promptTitle runs the retry engine with the title validator bound to the
// category's destination directory.
func (b *Builder) promptTitle(category models.DocumentCategory, fallbackTitle string) (string, error) {
	var fallback *string
	if fallbackTitle != "" {
		fallback = &fallbackTitle
	}
	return prompt.RetryWithValidation(b.prompter, b.logger,
		fmt.Sprintf("Title for the new %s", category),
		func(candidate string) models.Verdict {
			dest, err := destinationFor(category, candidate)
			if err != nil {
				// Unreachable for the categories Build admits; let the
				// validator fail open rather than blocking on it.
				return models.Accept()
			}
			return validate.Title(candidate, dest, b.store.Exists)
		}, b.maxAttempts, fallback)
}

// Resolve computes the destination path and the template references the
// category requires. Leaf notes need metadata, body, and footer fragments;
// category notes need metadata and body only.
func Resolve(cfg models.NoteConfiguration) (models.NoteConfiguration, error) {
	dest, err := destinationFor(cfg.Category, cfg.Title)
	if err != nil {
		return cfg, err
	}

	var refs models.TemplateRefs
	switch cfg.Category {
	case models.TopLevel:
		refs = models.TemplateRefs{
			Metadata: filepath.Join(models.PrimaryTemplateDir, models.MetadataFragment),
			Body:     filepath.Join(models.PrimaryTemplateDir, models.BodyFragment),
		}
	case models.MidLevel:
		refs = models.TemplateRefs{
			Metadata: filepath.Join(models.SecondaryTemplateDir, models.MetadataFragment),
			Body:     filepath.Join(models.SecondaryTemplateDir, models.BodyFragment),
		}
	case models.Leaf:
		if cfg.Type == nil {
			return cfg, fmt.Errorf("builder: leaf configuration has no note type: %w", apperr.ErrConfiguration)
		}
		dir := models.NoteTypeDir(cfg.Type.Name)
		refs = models.TemplateRefs{
			Metadata: filepath.Join(dir, models.MetadataFragment),
			Body:     filepath.Join(dir, models.BodyFragment),
			Footer:   filepath.Join(dir, models.FooterFragment),
		}
	default:
		return cfg, fmt.Errorf("builder: unsupported category %s: %w", cfg.Category, apperr.ErrConfiguration)
	}

	return cfg.WithDestination(dest, refs), nil
}

// destinationFor maps a category and title to the note's vault path.
func destinationFor(category models.DocumentCategory, title string) (string, error) {
	var dir string
	switch category {
	case models.TopLevel:
		dir = models.PrimaryDir
	case models.MidLevel:
		dir = models.SecondaryDir
	case models.Leaf:
		dir = models.ContentDir
	default:
		return "", fmt.Errorf("builder: no destination for category %s: %w", category, apperr.ErrConfiguration)
	}
	return filepath.Join(dir, title+".md"), nil
}
