package textutil

import "strings"

// SanitizeFileName converts an arbitrary title into a safe filename segment.
// Path separators and drive markers become dashes, shell-hostile characters
// are dropped, and runs of whitespace collapse to single spaces.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(name))
	lastSpace := false
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':':
			b.WriteByte('-')
			lastSpace = false
		case r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|' || r < ' ':
			// dropped
		case r == ' ' || r == '\t':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.Trim(b.String(), " .-")
}
