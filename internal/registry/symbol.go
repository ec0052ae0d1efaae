package registry

import (
	"log/slog"
	"math/rand"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/prompt"
	"github.com/starford/ansuz/internal/validate"
)

// Menu values that are not symbols.
const (
	headerSentinel = "__header__"
	manualSentinel = "__manual__"
	randomSentinel = "__random__"
)

// symbolGroups is the curated pool, grouped under thematic headers. The
// headers appear in the menu but are not meaningful selections.
var symbolGroups = []struct {
	Header  string
	Symbols []string
}{
	{"Operations", []string{"🎯", "🚩", "🛡️", "🗡️", "💣"}},
	{"Tradecraft", []string{"🦠", "🪝", "🔓", "💥", "📡", "🕳️"}},
	{"Research", []string{"🔍", "🧪", "📚", "🧠", "💡"}},
	{"Infrastructure", []string{"🌐", "🖥️", "📦", "🔧", "🛰️"}},
}

// SymbolPicker presents the curated symbol menu for top-level categories
// and new note types.
type SymbolPicker struct {
	logger      *slog.Logger
	maxAttempts int
	randFn      func(n int) int
}

// NewSymbolPicker creates a picker. maxAttempts bounds the manual-entry
// retry loop.
func NewSymbolPicker(logger *slog.Logger, maxAttempts int) *SymbolPicker {
	return &SymbolPicker{logger: logger, maxAttempts: maxAttempts, randFn: rand.Intn}
}

// Choose presents the curated menu plus manual-entry and random options.
// It never fails: cancellation, header selection, and manual-entry
// exhaustion all resolve to the default symbol with a warning.
func (s *SymbolPicker) Choose(p prompt.Prompter) string {
	var options, values []string
	for _, group := range symbolGroups {
		options = append(options, "── "+group.Header+" ──")
		values = append(values, headerSentinel)
		for _, sym := range group.Symbols {
			options = append(options, sym)
			values = append(values, sym)
		}
	}
	options = append(options, "Type a symbol manually", "Pick one at random")
	values = append(values, manualSentinel, randomSentinel)

	picked, err := p.Choice("Choose a tag symbol", options, values)
	if err != nil {
		p.Notice("No symbol chosen, using the default " + models.DefaultSymbol)
		return models.DefaultSymbol
	}

	switch picked {
	case headerSentinel:
		p.Notice("That is a section header, using the default " + models.DefaultSymbol)
		return models.DefaultSymbol
	case manualSentinel:
		return s.manual(p)
	case randomSentinel:
		pool := s.pool()
		return pool[s.randFn(len(pool))]
	default:
		return picked
	}
}

// manual delegates to the retry engine with the symbol validator, falling
// back to the default symbol.
func (s *SymbolPicker) manual(p prompt.Prompter) string {
	fallback := models.DefaultSymbol
	value, err := prompt.RetryWithValidation(p, s.logger, "Enter a single emoji or symbol",
		validate.Symbol, s.maxAttempts, &fallback)
	if err != nil {
		p.Notice("Symbol entry abandoned, using the default " + models.DefaultSymbol)
		return models.DefaultSymbol
	}
	return value
}

// pool flattens the curated groups for random selection.
func (s *SymbolPicker) pool() []string {
	var out []string
	for _, group := range symbolGroups {
		out = append(out, group.Symbols...)
	}
	return out
}
