package builder

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/prompt"
	"github.com/starford/ansuz/internal/registry"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/testutil"
)

func newTestBuilder(t *testing.T, p prompt.Prompter) (*Builder, *storage.FS) {
	t.Helper()
	store := testutil.Vault(t)
	logger := testutil.Logger()
	b := New(store,
		registry.NewCategories(store, logger),
		registry.NewNoteTypes(store, logger),
		registry.NewSymbolPicker(logger, 3),
		p, logger, 3)
	return b, store
}

func TestBuildTopLevel(t *testing.T) {
	p := &testutil.ScriptedPrompter{
		TextAnswers:   []string{"Red Team"},
		ChoiceAnswers: []string{"🎯"},
	}
	b, _ := newTestBuilder(t, p)

	cfg, err := b.Build(models.TopLevel, "", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.Title != "Red Team" || cfg.Symbol != "🎯" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if want := filepath.Join(models.PrimaryDir, "Red Team.md"); cfg.DestinationPath != want {
		t.Fatalf("destination = %q, want %q", cfg.DestinationPath, want)
	}
	if want := filepath.Join(models.PrimaryTemplateDir, models.MetadataFragment); cfg.Templates.Metadata != want {
		t.Fatalf("metadata ref = %q, want %q", cfg.Templates.Metadata, want)
	}
	if cfg.Templates.Footer != "" {
		t.Fatalf("top-level note should have no footer ref, got %q", cfg.Templates.Footer)
	}
}

func TestBuildMidLevelLinks(t *testing.T) {
	p := &testutil.ScriptedPrompter{
		TextAnswers:   []string{"Phishing"},
		ChoiceAnswers: []string{"Red Team"},
	}
	b, store := newTestBuilder(t, p)
	if err := store.Write(filepath.Join(models.PrimaryDir, "Red Team.md"), []byte("# Red Team\n")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg, err := b.Build(models.MidLevel, "", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(cfg.TopLevelLinks) != 1 || cfg.TopLevelLinks[0].Name != "Red Team" {
		t.Fatalf("links = %v", cfg.TopLevelLinks)
	}
	if want := filepath.Join(models.SecondaryDir, "Phishing.md"); cfg.DestinationPath != want {
		t.Fatalf("destination = %q, want %q", cfg.DestinationPath, want)
	}
}

func TestBuildLeafWithExistingType(t *testing.T) {
	p := &testutil.ScriptedPrompter{
		TextAnswers:   []string{"Emotet"},
		ChoiceAnswers: []string{models.BasicNoteType},
	}
	b, _ := newTestBuilder(t, p)

	cfg, err := b.Build(models.Leaf, "", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.Type == nil || cfg.Type.Name != models.BasicNoteType {
		t.Fatalf("type = %v, want Basic", cfg.Type)
	}
	if want := filepath.Join(models.ContentDir, "Emotet.md"); cfg.DestinationPath != want {
		t.Fatalf("destination = %q, want %q", cfg.DestinationPath, want)
	}
	if cfg.Templates.Footer == "" {
		t.Fatal("leaf note should have a footer ref")
	}
}

func TestBuildLeafWithPresetSkipsTypeSelection(t *testing.T) {
	p := &testutil.ScriptedPrompter{TextAnswers: []string{"Emotet"}}
	b, _ := newTestBuilder(t, p)

	preset := models.NoteType{Name: "Malware Sample", Symbol: "🦠"}
	cfg, err := b.Build(models.Leaf, "", &preset)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.Type == nil || cfg.Type.Name != "Malware Sample" {
		t.Fatalf("type = %v, want the preset", cfg.Type)
	}
	if len(p.ChoicePrompts) != 0 {
		t.Fatalf("type selection ran anyway: %v", p.ChoicePrompts)
	}
}

func TestBuildUnsupportedCategory(t *testing.T) {
	b, _ := newTestBuilder(t, &testutil.ScriptedPrompter{})
	if _, err := b.Build(models.LeafClassification, "", nil); !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestResolveLeafWithoutType(t *testing.T) {
	cfg := models.NoteConfiguration{Category: models.Leaf, Title: "Emotet"}
	if _, err := Resolve(cfg); !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestBuildFallbackTitleAfterCancel(t *testing.T) {
	// No text answers: title entry cancels and resolves to the draft title.
	p := &testutil.ScriptedPrompter{ChoiceAnswers: []string{"🎯"}}
	b, _ := newTestBuilder(t, p)

	cfg, err := b.Build(models.TopLevel, "Working Title", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.Title != "Working Title" {
		t.Fatalf("title = %q, want the fallback", cfg.Title)
	}
}
