// Package testutil provides shared helpers for tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/assemble"
	"github.com/starford/ansuz/internal/storage"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Vault creates a scaffolded vault in a temp directory and returns its store.
func Vault(t *testing.T) *storage.FS {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	if err := assemble.ScaffoldVault(store, Logger()); err != nil {
		t.Fatalf("ScaffoldVault: %v", err)
	}
	return store
}

// ScriptedPrompter replays queued answers for Text and Choice prompts and
// records everything it is asked. An exhausted queue cancels the prompt,
// the same as EOF on a terminal.
type ScriptedPrompter struct {
	TextAnswers   []string
	ChoiceAnswers []string

	TextPrompts   []string
	ChoicePrompts []string
	Notices       []string
}

// Text pops the next scripted free-text answer.
func (p *ScriptedPrompter) Text(message string) (string, error) {
	p.TextPrompts = append(p.TextPrompts, message)
	if len(p.TextAnswers) == 0 {
		return "", apperr.ErrCancelled
	}
	answer := p.TextAnswers[0]
	p.TextAnswers = p.TextAnswers[1:]
	return answer, nil
}

// Choice pops the next scripted answer and returns the matching value. A
// scripted answer must name one of the offered options or values exactly;
// anything else cancels, which surfaces in the test as an unexpected path.
func (p *ScriptedPrompter) Choice(message string, options, values []string) (string, error) {
	p.ChoicePrompts = append(p.ChoicePrompts, message)
	if len(p.ChoiceAnswers) == 0 {
		return "", apperr.ErrCancelled
	}
	answer := p.ChoiceAnswers[0]
	p.ChoiceAnswers = p.ChoiceAnswers[1:]
	for i, opt := range options {
		if opt == answer || values[i] == answer {
			return values[i], nil
		}
	}
	return "", apperr.ErrCancelled
}

// Notice records an informational message.
func (p *ScriptedPrompter) Notice(message string) {
	p.Notices = append(p.Notices, message)
}
