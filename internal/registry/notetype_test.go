package registry

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/testutil"
)

func TestListScaffoldedVault(t *testing.T) {
	store := testutil.Vault(t)
	n := NewNoteTypes(store, testutil.Logger())

	types := n.List()
	if len(types) != 1 {
		t.Fatalf("got %d types, want 1: %v", len(types), types)
	}
	if types[0].Name != models.BasicNoteType || types[0].Symbol != models.BasicSymbol {
		t.Fatalf("type = %+v, want Basic/%s", types[0], models.BasicSymbol)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	store := testutil.Vault(t)
	n := NewNoteTypes(store, testutil.Logger())

	created, err := n.Create("Malware Sample", "🦠")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.SearchTag() != "🦠Malware_Sample" {
		t.Fatalf("tag = %q, want %q", created.SearchTag(), "🦠Malware_Sample")
	}

	meta, err := store.Read(filepath.Join(models.NoteTypeDir("Malware Sample"), models.MetadataFragment))
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if !strings.Contains(string(meta), "🦠Malware_Sample") {
		t.Fatalf("metadata missing new tag:\n%s", meta)
	}
	if !strings.Contains(string(meta), "type: Malware Sample") {
		t.Fatalf("metadata missing type field:\n%s", meta)
	}

	// A rescan discovers the new type with its symbol.
	var found bool
	for _, typ := range n.List() {
		if typ.Name == "Malware Sample" {
			found = true
			if typ.Symbol != "🦠" {
				t.Fatalf("rescanned symbol = %q, want 🦠", typ.Symbol)
			}
		}
	}
	if !found {
		t.Fatal("created type not discovered on rescan")
	}
}

func TestCreateExistingType(t *testing.T) {
	store := testutil.Vault(t)
	n := NewNoteTypes(store, testutil.Logger())
	if _, err := n.Create(models.BasicNoteType, "🗒️"); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateWithoutBaseTemplate(t *testing.T) {
	store := testutil.Vault(t)
	base := filepath.Join(models.NoteTypeDir(models.BasicNoteType), models.MetadataFragment)
	if err := store.Move(base, base+".bak"); err != nil {
		t.Fatalf("hide base template: %v", err)
	}

	n := NewNoteTypes(store, testutil.Logger())
	if _, err := n.Create("Orphan", "🧪"); err == nil {
		t.Fatal("Create succeeded without the base metadata fragment")
	}
}

func TestSymbolForFallsBackToDefault(t *testing.T) {
	store := testutil.Vault(t)
	if err := store.CreateDir(models.NoteTypeDir("Empty")); err != nil {
		t.Fatalf("CreateDir: %v", err)
	}

	n := NewNoteTypes(store, testutil.Logger())
	for _, typ := range n.List() {
		if typ.Name == "Empty" && typ.Symbol != models.DefaultSymbol {
			t.Fatalf("symbol = %q, want the default %s", typ.Symbol, models.DefaultSymbol)
		}
	}
}

func TestSelectOrCreatePicksExisting(t *testing.T) {
	store := testutil.Vault(t)
	n := NewNoteTypes(store, testutil.Logger())
	picker := NewSymbolPicker(testutil.Logger(), 3)

	p := &testutil.ScriptedPrompter{ChoiceAnswers: []string{models.BasicNoteType}}
	got, err := n.SelectOrCreate(p, picker, 3)
	if err != nil {
		t.Fatalf("SelectOrCreate: %v", err)
	}
	if got.Name != models.BasicNoteType {
		t.Fatalf("got %+v, want Basic", got)
	}
}

func TestSelectOrCreateCancelFallsBackToBasic(t *testing.T) {
	store := testutil.Vault(t)
	n := NewNoteTypes(store, testutil.Logger())
	picker := NewSymbolPicker(testutil.Logger(), 3)

	p := &testutil.ScriptedPrompter{}
	got, err := n.SelectOrCreate(p, picker, 3)
	if err != nil {
		t.Fatalf("SelectOrCreate: %v", err)
	}
	if got.Name != models.BasicNoteType {
		t.Fatalf("got %+v, want the Basic fallback", got)
	}
}

func TestCreateInteractive(t *testing.T) {
	store := testutil.Vault(t)
	n := NewNoteTypes(store, testutil.Logger())
	picker := NewSymbolPicker(testutil.Logger(), 3)

	p := &testutil.ScriptedPrompter{
		TextAnswers:   []string{"Phishing Kit"},
		ChoiceAnswers: []string{"🪝"},
	}
	got, err := n.CreateInteractive(p, picker, 3)
	if err != nil {
		t.Fatalf("CreateInteractive: %v", err)
	}
	if got.SearchTag() != "🪝Phishing_Kit" {
		t.Fatalf("tag = %q, want %q", got.SearchTag(), "🪝Phishing_Kit")
	}
}
