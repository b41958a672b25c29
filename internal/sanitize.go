package internal

import "strings"

// illegalChars are removed from artist and album names when stripping is
// enabled. Path separators and quotes are included so a tag value can never
// split into extra directory levels.
const illegalChars = `:*?<>|/\"'`

// Sanitize prepares a tag value for use as a single path component.
//
// With stripIllegal set, every character in illegalChars and every "..." run
// is removed before surrounding whitespace is trimmed. Without it only the
// whitespace is trimmed. The result may be empty.
func Sanitize(text string, stripIllegal bool) string {
	if stripIllegal {
		text = strings.Map(func(r rune) rune {
			if strings.ContainsRune(illegalChars, r) {
				return -1
			}
			return r
		}, text)
		text = strings.ReplaceAll(text, "...", "")
	}
	return strings.TrimSpace(text)
}
