package lexical

import "unicode/utf8"

// FindUnquotedColon implements the colon scanner of §4.D step 5: a
// left-to-right scan tracking an in-quotes flag and a one-character
// backslash escape, returning the byte index of the first colon outside
// quotes, or -1 if there is none.
func FindUnquotedColon(s string) int {
	return FindUnquotedRune(s, ':')
}

// FindUnquotedRune returns the byte index of the first occurrence of
// target outside a double-quoted span and not escaped, honoring the same
// backslash/quote rules as FindUnquotedColon, or -1 if none exists. The
// result is a byte offset, not a rune count, so callers can slice s
// directly — every caller does — even when s contains multi-byte runes
// before the match.
func FindUnquotedRune(s string, target rune) int {
	inQuotes := false
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == '\\' && i+size < len(s) {
			_, size2 := utf8.DecodeRuneInString(s[i+size:])
			i += size + size2
			continue
		}
		if r == '"' {
			inQuotes = !inQuotes
			i += size
			continue
		}
		if r == target && !inQuotes {
			return i
		}
		i += size
	}
	return -1
}
