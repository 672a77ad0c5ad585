// Package scanner implements §4.T of the TOON codec: splitting a line's
// payload into delimiter-separated tokens while respecting quoted spans
// and backslash escapes. It is the TOON analogue of the teacher's scanner
// package, cut down to a single pass over one line instead of a full
// multi-document YAML block scanner — TOON has no multi-line scalars for
// the tokenizer to track.
package scanner

import (
	"strings"

	"github.com/tehw0lf/toon-go/delim"
)

// Scan splits payload into trimmed tokens on d, honoring quoted spans (a
// delimiter inside a double-quoted span is literal) and a backslash escape
// that makes the following character literal for the purpose of finding
// token boundaries. Comma delimiter additionally treats the two-character
// sequence ", " as a single boundary, consumed whole, so an inline array
// can be pretty-printed with a following space (§4.T).
//
// Scan never interprets a token's content — quote stripping and escape
// resolution are the caller's job via the lexical package.
func Scan(payload string, d delim.Delimiter) []string {
	if payload == "" {
		return nil
	}
	runes := []rune(payload)
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	delimRune := d.Rune()

	flush := func() {
		tokens = append(tokens, strings.TrimSpace(cur.String()))
		cur.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			cur.WriteRune(r)
			cur.WriteRune(runes[i+1])
			i++
			continue
		}
		if r == '"' {
			inQuotes = !inQuotes
			cur.WriteRune(r)
			continue
		}
		if !inQuotes {
			if d == delim.Comma && r == ',' && i+1 < len(runes) && runes[i+1] == ' ' {
				flush()
				i++
				continue
			}
			if r == delimRune {
				flush()
				continue
			}
		}
		cur.WriteRune(r)
	}
	flush()
	return tokens
}
