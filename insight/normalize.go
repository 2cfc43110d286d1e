package insight

import (
	"strings"

	"github.com/leeguhn/crawler/playstore"
)

// Normalize cleans one review text before it is embedded in a prompt:
// strip characters outside the allowed set, then collapse whitespace
// runs to single spaces. Missing values come through as "" already.
// Normalizing normalized text is a no-op.
//
// The allowed set is letters/digits/underscore, whitespace, and basic
// punctuation (.,!?); the Korean locale additionally keeps the Hangul
// syllable block.
func Normalize(text string, locale playstore.Locale) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if allowedRune(r, locale) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func allowedRune(r rune, locale playstore.Locale) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case r == ' ', r == '\t', r == '\n', r == '\r':
		return true
	case r == '.', r == ',', r == '!', r == '?':
		return true
	case locale == playstore.LocaleKR && r >= 0xAC00 && r <= 0xD7A3:
		return true
	}
	return false
}
