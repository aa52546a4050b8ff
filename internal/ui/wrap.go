package ui

import "unicode/utf8"

// wrap splits s into lines of at most width runes. Lines never end inside a
// multi-byte character.
func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var out []string
	for utf8.RuneCountInString(s) > width {
		cut := 0
		for i := 0; i < width; i++ {
			_, size := utf8.DecodeRuneInString(s[cut:])
			cut += size
		}
		out = append(out, s[:cut])
		s = s[cut:]
	}
	return append(out, s)
}
