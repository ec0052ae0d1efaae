package assemble

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/storage"
)

// Default template fragments written into a fresh vault. The placeholder
// lines must stay in sync with the customization patterns in this package.
const (
	defaultPrimaryMetadata = `---
tags:
  - ` + models.TagPrimary + `
  -
aliases: []
---
`

	defaultPrimaryBody = `## Overview

*Describe the scope of this category.*

## Notable Content

*Link the most useful notes here as the category grows.*
`

	defaultSecondaryMetadata = `---
tags:
  - ` + models.TagSecondary + `
aliases: []
Primary Categories:
  -
---
`

	defaultSecondaryBody = `## Overview

*Describe what this sub-category collects.*
`

	defaultBasicMetadata = `---
tags:
  - ` + models.BasicSymbol + models.BasicNoteType + `
type: ` + models.BasicNoteType + `
aliases: []
Primary Categories:
  -
Secondary Categories:
  -
---
`

	defaultBasicBody = `## Overview

*What is this note about?*

## Details

*Capture the substance here.*
`

	defaultBasicFooter = `## References

*Sources, tooling, and related reading.*
`
)

// ScaffoldVault creates the layout directories and the base template set
// in an empty vault. Existing files are never overwritten, so a populated
// vault passes through untouched.
func ScaffoldVault(store storage.Provider, logger *slog.Logger) error {
	dirs := []string{
		models.InboxDir,
		models.PrimaryDir,
		models.SecondaryDir,
		models.ContentDir,
		models.PrimaryTemplateDir,
		models.SecondaryTemplateDir,
		models.NoteTypeDir(models.BasicNoteType),
	}
	for _, dir := range dirs {
		if err := store.CreateDir(dir); err != nil {
			return fmt.Errorf("assemble: scaffold: %w", err)
		}
	}

	files := map[string]string{
		filepath.Join(models.PrimaryTemplateDir, models.MetadataFragment):   defaultPrimaryMetadata,
		filepath.Join(models.PrimaryTemplateDir, models.BodyFragment):       defaultPrimaryBody,
		filepath.Join(models.SecondaryTemplateDir, models.MetadataFragment): defaultSecondaryMetadata,
		filepath.Join(models.SecondaryTemplateDir, models.BodyFragment):     defaultSecondaryBody,
		filepath.Join(models.NoteTypeDir(models.BasicNoteType), models.MetadataFragment): defaultBasicMetadata,
		filepath.Join(models.NoteTypeDir(models.BasicNoteType), models.BodyFragment):     defaultBasicBody,
		filepath.Join(models.NoteTypeDir(models.BasicNoteType), models.FooterFragment):   defaultBasicFooter,
	}
	created := 0
	for path, content := range files {
		if store.Exists(path) {
			continue
		}
		if err := store.Write(path, []byte(content)); err != nil {
			return fmt.Errorf("assemble: scaffold %s: %w", path, err)
		}
		created++
	}
	if created > 0 {
		logger.Info("vault scaffolded", slog.Int("templates", created))
	}
	return nil
}
