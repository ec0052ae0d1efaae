package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/testutil"
)

func rejectAll(string) models.Verdict { return models.Reject("nope") }

func acceptAll(string) models.Verdict { return models.Accept() }

func TestRetryAcceptsFirstValidValue(t *testing.T) {
	p := &testutil.ScriptedPrompter{TextAnswers: []string{"good"}}
	got, err := RetryWithValidation(p, testutil.Logger(), "Title", acceptAll, 3, nil)
	if err != nil {
		t.Fatalf("RetryWithValidation: %v", err)
	}
	if got != "good" {
		t.Fatalf("got %q, want %q", got, "good")
	}
	if len(p.TextPrompts) != 1 {
		t.Fatalf("asked %d times, want 1", len(p.TextPrompts))
	}
}

func TestRetryDecoratesAttempts(t *testing.T) {
	p := &testutil.ScriptedPrompter{TextAnswers: []string{"v"}}
	if _, err := RetryWithValidation(p, testutil.Logger(), "Title", acceptAll, 3, nil); err != nil {
		t.Fatalf("RetryWithValidation: %v", err)
	}
	if !strings.Contains(p.TextPrompts[0], "(attempt 1 of 3)") {
		t.Fatalf("prompt not decorated: %q", p.TextPrompts[0])
	}
}

func TestRetryFallbackAfterExhaustion(t *testing.T) {
	p := &testutil.ScriptedPrompter{
		TextAnswers:   []string{"a", "b", "c"},
		ChoiceAnswers: []string{"fallback"},
	}
	fallback := "Draft"
	got, err := RetryWithValidation(p, testutil.Logger(), "Title", rejectAll, 3, &fallback)
	if err != nil {
		t.Fatalf("RetryWithValidation: %v", err)
	}
	if got != "Draft" {
		t.Fatalf("got %q, want the fallback", got)
	}
	// Exactly maxAttempts text prompts before the recovery menu appears.
	if len(p.TextPrompts) != 3 {
		t.Fatalf("asked %d times, want 3", len(p.TextPrompts))
	}
	if len(p.ChoicePrompts) != 1 {
		t.Fatalf("recovery menu shown %d times, want 1", len(p.ChoicePrompts))
	}
}

func TestRetryRecoveryRetrySucceeds(t *testing.T) {
	calls := 0
	validate := func(v string) models.Verdict {
		calls++
		if v == "good" {
			return models.Accept()
		}
		return models.Reject("nope")
	}
	p := &testutil.ScriptedPrompter{
		TextAnswers:   []string{"bad", "bad", "good"},
		ChoiceAnswers: []string{"retry"},
	}
	got, err := RetryWithValidation(p, testutil.Logger(), "Title", validate, 2, nil)
	if err != nil {
		t.Fatalf("RetryWithValidation: %v", err)
	}
	if got != "good" {
		t.Fatalf("got %q, want %q", got, "good")
	}
	if calls != 3 {
		t.Fatalf("validated %d values, want 3", calls)
	}
}

func TestRetryAbort(t *testing.T) {
	p := &testutil.ScriptedPrompter{
		TextAnswers:   []string{"a", "b"},
		ChoiceAnswers: []string{"abort"},
	}
	_, err := RetryWithValidation(p, testutil.Logger(), "Title", rejectAll, 2, nil)
	if !errors.Is(err, apperr.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestRetryCancelResolvesToFallback(t *testing.T) {
	p := &testutil.ScriptedPrompter{} // no answers: immediate cancel
	fallback := "Draft"
	got, err := RetryWithValidation(p, testutil.Logger(), "Title", rejectAll, 3, &fallback)
	if err != nil {
		t.Fatalf("RetryWithValidation: %v", err)
	}
	if got != "Draft" {
		t.Fatalf("got %q, want the fallback", got)
	}
}

func TestRetryCancelWithoutFallbackAborts(t *testing.T) {
	p := &testutil.ScriptedPrompter{}
	_, err := RetryWithValidation(p, testutil.Logger(), "Title", rejectAll, 3, nil)
	if !errors.Is(err, apperr.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestRetryOverridableVerdict(t *testing.T) {
	overridable := func(string) models.Verdict {
		return models.Verdict{Error: "questionable", Overridable: true}
	}
	p := &testutil.ScriptedPrompter{
		TextAnswers:   []string{"odd"},
		ChoiceAnswers: []string{"use"},
	}
	got, err := RetryWithValidation(p, testutil.Logger(), "Symbol", overridable, 3, nil)
	if err != nil {
		t.Fatalf("RetryWithValidation: %v", err)
	}
	if got != "odd" {
		t.Fatalf("got %q, want the overridden value", got)
	}
	if len(p.Notices) == 0 {
		t.Fatal("validation error was not surfaced as a notice")
	}
}
