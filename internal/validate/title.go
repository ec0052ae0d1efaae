package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/starford/ansuz/internal/models"
)

// illegalTitleChars are rejected in note titles: file-system reserved
// characters plus the hash/caret/bracket/pipe set that breaks tags and
// wikilinks inside the vault.
const illegalTitleChars = `/\:*?"<>|#^[]`

// maxTitleRunes bounds the title length.
const maxTitleRunes = 100

// placeholderTitle is the stem the engine gives unnamed drafts; keeping it
// would collide with the next draft.
const placeholderTitle = "Untitled"

// reservedNames are device names that are unusable as file stems on
// Windows, with or without an extension. Checked case-insensitively.
var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Title validates candidate as the file-name stem of a note that will be
// written to destinationPath. exists reports whether a vault entry is
// already present at a path.
func Title(candidate, destinationPath string, exists func(string) bool) models.Verdict {
	return failOpen(func() models.Verdict {
		return checkTitle(candidate, destinationPath, exists)
	})
}

func checkTitle(candidate, destinationPath string, exists func(string) bool) models.Verdict {
	if strings.TrimSpace(candidate) == "" {
		return models.Reject("title cannot be empty")
	}
	if candidate == placeholderTitle {
		return models.Reject("title cannot be the placeholder " + placeholderTitle)
	}
	if strings.HasPrefix(candidate, ".") {
		return models.RejectWithSuggestion(
			"title cannot start with a dot",
			strings.TrimLeft(candidate, "."))
	}

	if offending := illegalIn(candidate); len(offending) > 0 {
		return models.RejectWithSuggestion(
			fmt.Sprintf("title contains illegal characters: %s", strings.Join(offending, " ")),
			stripIllegal(candidate))
	}

	stem := candidate
	if i := strings.IndexByte(candidate, '.'); i >= 0 {
		stem = candidate[:i]
	}
	if _, ok := reservedNames[strings.ToUpper(stem)]; ok {
		return models.Reject(fmt.Sprintf("%q is a reserved device name", stem))
	}

	if n := utf8.RuneCountInString(candidate); n > maxTitleRunes {
		return models.Reject(fmt.Sprintf("title is %d characters, maximum is %d", n, maxTitleRunes))
	}
	if strings.HasSuffix(candidate, ".") || strings.HasSuffix(candidate, " ") {
		return models.RejectWithSuggestion(
			"title cannot end with a dot or a space",
			strings.TrimRight(candidate, ". "))
	}

	if mixedEmojiText(candidate) {
		return models.Reject("title mixes emoji and text; use one or the other")
	}
	for _, r := range candidate {
		if isInvisible(r) || r == zwj {
			return models.Reject("title contains invisible characters")
		}
	}

	if exists != nil && exists(destinationPath) {
		return models.RejectWithSuggestion(
			fmt.Sprintf("a note already exists at %q", destinationPath),
			candidate+" (2)")
	}
	return models.Accept()
}

// illegalIn returns the illegal characters present in s, deduplicated, in
// order of first appearance.
func illegalIn(s string) []string {
	seen := make(map[rune]struct{})
	var out []string
	for _, r := range s {
		if !strings.ContainsRune(illegalTitleChars, r) {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, string(r))
	}
	return out
}

func stripIllegal(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalTitleChars, r) {
			return -1
		}
		return r
	}, s)
}

// mixedEmojiText reports whether s contains both pictographic and textual
// characters. Emoji-only and text-only titles are both fine; the mix is
// rejected to keep file names portable.
func mixedEmojiText(s string) bool {
	var hasEmoji, hasText bool
	for _, r := range s {
		switch {
		case isEmoji(r):
			hasEmoji = true
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			hasText = true
		}
	}
	return hasEmoji && hasText
}
