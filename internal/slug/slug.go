// Package slug derives URL-safe identifiers from display names.
package slug

import "strings"

// Make lowercases the name, collapses every run of non-alphanumeric
// characters into a single hyphen and trims hyphens from both ends.
// Make is idempotent: Make(Make(x)) == Make(x).
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}
