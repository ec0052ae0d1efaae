package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/starford/ansuz/internal/models"
)

// Symbol validates candidate as a single-glyph tag symbol.
func Symbol(candidate string) models.Verdict {
	return failOpen(func() models.Verdict {
		return checkSymbol(candidate)
	})
}

func checkSymbol(s string) models.Verdict {
	if s == "" {
		return models.Reject("symbol cannot be empty")
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			return models.Reject("symbol cannot contain whitespace")
		}
	}

	// Compound glyphs joined with a ZWJ are cosmetically valid but may
	// render oddly as a tag, so the user may proceed anyway.
	if strings.ContainsRune(s, zwj) {
		return models.Verdict{
			Error:       "symbol is a zero-width-joiner sequence",
			Suggestion:  "compound glyphs may render inconsistently in tags",
			Overridable: true,
		}
	}

	for _, r := range s {
		if isInvisible(r) {
			return models.Reject("symbol contains invisible characters")
		}
	}
	for _, r := range s {
		if !isEmoji(r) {
			return models.Reject(fmt.Sprintf("%q is not an emoji or symbol character", r))
		}
	}

	// Code-point counting is misleading for emoji; segment by grapheme
	// cluster so "🦠" passes and "🦠🦠" or "ab" does not.
	if n := uniseg.GraphemeClusterCount(s); n != 1 {
		return models.Reject(fmt.Sprintf("symbol must be a single glyph, got %d", n))
	}

	for _, marker := range models.StructuralMarkers() {
		if s == marker {
			return models.Reject(fmt.Sprintf("%s is reserved for the built-in category markers", s))
		}
	}
	return models.Accept()
}
