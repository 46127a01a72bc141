// Package topic derives stable storage keys from free-text search topics.
package topic

import "strings"

const separator = '-'

// Derive maps a topic to its document key: lowercase, every character
// outside [a-z0-9] replaced by a separator, runs of the separator collapsed
// to one, leading and trailing separators trimmed. Pure and total; an empty
// topic yields an empty key.
func Derive(topic string) string {
	lowered := strings.ToLower(topic)
	var b strings.Builder
	b.Grow(len(lowered))
	prevSep := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevSep = false
			continue
		}
		if !prevSep {
			b.WriteByte(separator)
			prevSep = true
		}
	}
	return strings.Trim(b.String(), string(separator))
}
