package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/prompt"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/validate"
)

// createSentinel asks for a brand-new note type.
const createSentinel = "__create__"

// NoteTypes discovers leaf note types from the template tree and scaffolds
// new ones. Nothing is cached: every listing re-scans the store.
type NoteTypes struct {
	store  storage.Provider
	logger *slog.Logger
}

// NewNoteTypes creates a note-type registry over the given store.
func NewNoteTypes(store storage.Provider, logger *slog.Logger) *NoteTypes {
	return &NoteTypes{store: store, logger: logger}
}

// List enumerates the sub-directories of the note-type template root and
// extracts each type's tag symbol from its metadata fragment. The
// per-entry lookups run as a fan-out batch; a failed entry degrades to the
// default symbol instead of blanking the whole registry. The result is
// sorted by name.
func (n *NoteTypes) List() []models.NoteType {
	dirs, err := n.store.ListDirs(models.NoteTypeTemplateDir)
	if err != nil {
		n.logger.Warn("note type root unreadable", slog.String("error", err.Error()))
		return nil
	}

	out := make([]models.NoteType, len(dirs))
	var g errgroup.Group
	for i, name := range dirs {
		g.Go(func() error {
			out[i] = models.NoteType{Name: name, Symbol: n.symbolFor(name)}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// symbolFor reads a type's metadata fragment and extracts the symbol from
// its tag list: the first grapheme of the first tag that is not one of the
// structural category tags. Any failure falls back to the default symbol.
func (n *NoteTypes) symbolFor(name string) string {
	fm, err := n.store.Frontmatter(filepath.Join(models.NoteTypeDir(name), models.MetadataFragment))
	if err != nil {
		n.logger.Warn("note type metadata unreadable",
			slog.String("type", name), slog.String("error", err.Error()))
		return models.DefaultSymbol
	}
	for _, tag := range parser.Tags(fm) {
		if tag == models.TagPrimary || tag == models.TagSecondary {
			continue
		}
		glyph, _, _, _ := uniseg.FirstGraphemeClusterInString(tag, -1)
		if glyph != "" {
			return glyph
		}
	}
	n.logger.Warn("note type has no usable tag", slog.String("type", name))
	return models.DefaultSymbol
}

// Create scaffolds a new note type: a fresh template directory seeded with
// the Basic fragments, with the tag and type-name fields rewritten for the
// new name and symbol. Missing optional fragments (body, footer) are
// skipped with a warning; a missing base metadata fragment is fatal.
func (n *NoteTypes) Create(name, symbol string) (models.NoteType, error) {
	t := models.NoteType{Name: name, Symbol: symbol}
	dir := models.NoteTypeDir(name)
	baseDir := models.NoteTypeDir(models.BasicNoteType)

	if n.store.Exists(dir) {
		return models.NoteType{}, fmt.Errorf("registry: note type %q: %w", name, apperr.ErrAlreadyExists)
	}
	if err := n.store.CreateDir(dir); err != nil {
		return models.NoteType{}, fmt.Errorf("registry: create note type dir: %w", err)
	}

	meta, err := n.store.Read(filepath.Join(baseDir, models.MetadataFragment))
	if err != nil {
		return models.NoteType{}, fmt.Errorf("registry: base template missing: %w", err)
	}
	base := models.NoteType{Name: models.BasicNoteType, Symbol: n.symbolFor(models.BasicNoteType)}
	patched := rewriteMetadata(string(meta), base, t)
	if err := n.store.Write(filepath.Join(dir, models.MetadataFragment), []byte(patched)); err != nil {
		return models.NoteType{}, fmt.Errorf("registry: write metadata fragment: %w", err)
	}

	for _, fragment := range []string{models.BodyFragment, models.FooterFragment} {
		data, err := n.store.Read(filepath.Join(baseDir, fragment))
		if err != nil {
			n.logger.Warn("base fragment missing, skipped",
				slog.String("fragment", fragment), slog.String("error", err.Error()))
			continue
		}
		if err := n.store.Write(filepath.Join(dir, fragment), data); err != nil {
			return models.NoteType{}, fmt.Errorf("registry: write %s: %w", fragment, err)
		}
	}

	n.logger.Info("note type created",
		slog.String("name", name), slog.String("tag", t.SearchTag()))
	return t, nil
}

// rewriteMetadata retargets the cloned metadata fragment: the base search
// tag becomes the new one and the type-name field is renamed.
func rewriteMetadata(meta string, base, next models.NoteType) string {
	out := strings.ReplaceAll(meta, base.SearchTag(), next.SearchTag())
	return strings.ReplaceAll(out, "type: "+base.Name, "type: "+next.Name)
}

// SelectOrCreate presents the existing note types plus a "create new"
// option. With no selection at all it falls back to the canonical Basic
// type when present; otherwise the configuration is unusable.
func (n *NoteTypes) SelectOrCreate(p prompt.Prompter, picker *SymbolPicker, maxAttempts int) (models.NoteType, error) {
	types := n.List()

	options := make([]string, 0, len(types)+1)
	values := make([]string, 0, len(types)+1)
	for _, t := range types {
		options = append(options, t.DisplayLabel())
		values = append(values, t.Name)
	}
	options = append(options, "Create a new note type")
	values = append(values, createSentinel)

	picked, err := p.Choice("Select a note type", options, values)
	if err != nil {
		if errors.Is(err, apperr.ErrCancelled) {
			return n.fallbackType(types)
		}
		return models.NoteType{}, err
	}
	if picked == createSentinel {
		return n.CreateInteractive(p, picker, maxAttempts)
	}
	for _, t := range types {
		if t.Name == picked {
			return t, nil
		}
	}
	return n.fallbackType(types)
}

// CreateInteractive collects a validated name and a symbol, then scaffolds
// the new type.
func (n *NoteTypes) CreateInteractive(p prompt.Prompter, picker *SymbolPicker, maxAttempts int) (models.NoteType, error) {
	name, err := prompt.RetryWithValidation(p, n.logger, "Name the new note type",
		func(candidate string) models.Verdict {
			return validate.Title(candidate, models.NoteTypeDir(candidate), n.store.Exists)
		}, maxAttempts, nil)
	if err != nil {
		return models.NoteType{}, err
	}
	return n.Create(name, picker.Choose(p))
}

// fallbackType resolves "no selection" to the Basic type, or fails when
// even that is absent.
func (n *NoteTypes) fallbackType(types []models.NoteType) (models.NoteType, error) {
	for _, t := range types {
		if t.Name == models.BasicNoteType {
			n.logger.Warn("no note type selected, using Basic")
			return t, nil
		}
	}
	return models.NoteType{}, fmt.Errorf("registry: no note type selected and %q is absent: %w",
		models.BasicNoteType, apperr.ErrConfiguration)
}
