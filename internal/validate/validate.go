// Package validate classifies candidate titles and tag symbols. Every
// validator is a pure function returning a models.Verdict; none of them
// touch the prompt layer.
//
// Validators fail open: an internal fault during validation yields a
// passing verdict instead of blocking the workflow. A filename problem the
// validator missed still surfaces as a file-system error later, which is
// preferable to dead-ending the interactive flow on a validator bug.
package validate

import "github.com/starford/ansuz/internal/models"

// failOpen runs fn and converts a panic into a passing verdict.
func failOpen(fn func() models.Verdict) (v models.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			v = models.Accept()
		}
	}()
	return fn()
}

// zwj is the zero-width joiner used to compose compound emoji glyphs.
const zwj = '\u200d'

// isInvisible reports whether r is a zero-width or otherwise invisible
// character that must not appear in titles or symbols.
func isInvisible(r rune) bool {
	switch r {
	case '\u200b', '\u200c', // zero-width space, zero-width non-joiner
		'\u200e', '\u200f', // direction marks
		'\u00ad', // soft hyphen
		'\u180e', // mongolian vowel separator
		'\ufeff': // byte order mark
		return true
	}
	switch {
	case r >= 0x202a && r <= 0x202e: // bidi embedding controls
		return true
	case r >= 0x2060 && r <= 0x2064: // word joiner, invisible operators
		return true
	case r >= 0x2066 && r <= 0x2069: // bidi isolate controls
		return true
	}
	return false
}

// isEmoji reports whether r belongs to the broad emoji/symbol code-point
// ranges accepted for tag symbols.
func isEmoji(r rune) bool {
	switch r {
	case 0x00a9, 0x00ae, 0x2122, // copyright, registered, trademark
		0x3030, 0x303d, 0x3297, 0x3299,
		0xfe0f, 0x20e3: // variation selector 16, combining keycap
		return true
	}
	switch {
	case r >= 0x2190 && r <= 0x21ff: // arrows
		return true
	case r >= 0x2300 && r <= 0x23ff: // misc technical
		return true
	case r >= 0x25a0 && r <= 0x25ff: // geometric shapes
		return true
	case r >= 0x2600 && r <= 0x27bf: // misc symbols, dingbats
		return true
	case r >= 0x2b00 && r <= 0x2bff: // arrows, stars
		return true
	case r >= 0x1f000 && r <= 0x1faff: // emoji planes through symbols ext-A
		return true
	}
	return false
}
