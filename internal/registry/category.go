// Package registry discovers the vault's categories and note types and
// drives the interactive selection steps over them.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/prompt"
	"github.com/starford/ansuz/internal/storage"
)

// doneSentinel terminates a multi-select session.
const doneSentinel = "__done__"

// Categories lists and selects primary/secondary category notes.
type Categories struct {
	store  storage.Provider
	logger *slog.Logger
}

// NewCategories creates a category registry over the given store.
func NewCategories(store storage.Provider, logger *slog.Logger) *Categories {
	return &Categories{store: store, logger: logger}
}

// categoryDir maps a category kind to its vault directory. Only TopLevel
// and MidLevel notes live in category directories.
func categoryDir(kind models.DocumentCategory) (string, error) {
	switch kind {
	case models.TopLevel:
		return models.PrimaryDir, nil
	case models.MidLevel:
		return models.SecondaryDir, nil
	default:
		return "", fmt.Errorf("registry: no category directory for %s: %w",
			kind, apperr.ErrConfiguration)
	}
}

// List returns the basenames (without extension) of the category notes of
// the given kind, sorted lexicographically. A missing or unreadable
// directory yields an empty listing, not an error.
func (c *Categories) List(kind models.DocumentCategory) []string {
	dir, err := categoryDir(kind)
	if err != nil {
		c.logger.Error("category listing refused", slog.String("error", err.Error()))
		return nil
	}
	notes, err := c.store.ListNotes(dir)
	if err != nil {
		c.logger.Warn("category directory unreadable",
			slog.String("dir", dir), slog.String("error", err.Error()))
		return nil
	}
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, strings.TrimSuffix(filepath.Base(n.Path), ".md"))
	}
	return out
}

// SelectMultiple runs an interactive multi-select over the categories of
// the given kind. Chosen entries are removed from the offered set, so no
// entry can be linked twice. Once at least one entry is chosen a "done"
// option appears. Cancelling, choosing "done", or exhausting the entries
// ends the session; the accumulated links are returned either way.
func (c *Categories) SelectMultiple(p prompt.Prompter, kind models.DocumentCategory) ([]models.CategoryLink, error) {
	remaining := c.List(kind)
	var chosen []models.CategoryLink

	for len(remaining) > 0 {
		options := append([]string(nil), remaining...)
		values := append([]string(nil), remaining...)
		if len(chosen) > 0 {
			options = append(options, "Done linking")
			values = append(values, doneSentinel)
		}

		dir, _ := categoryDir(kind)
		picked, err := p.Choice(fmt.Sprintf("Link a note from %q", dir), options, values)
		if err != nil {
			if errors.Is(err, apperr.ErrCancelled) {
				return chosen, nil
			}
			return nil, err
		}
		if picked == doneSentinel {
			break
		}

		chosen = append(chosen, models.CategoryLink{Name: picked})
		for i, name := range remaining {
			if name == picked {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return chosen, nil
}
