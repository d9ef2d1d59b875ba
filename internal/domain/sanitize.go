package domain

import (
	"strings"
	"unicode"
)

// MaxNameLength caps display names, in runes.
const MaxNameLength = 100

// SanitizeName cleans a raw display title: control characters (CR, LF,
// TAB, ...) become spaces, runs of whitespace collapse to a single
// space, surrounding whitespace is trimmed, and the result is capped at
// MaxNameLength runes.
func SanitizeName(raw string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, raw)

	name := strings.Join(strings.Fields(mapped), " ")

	runes := []rune(name)
	if len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	return name
}
