package toon

import (
	"strings"

	"github.com/tehw0lf/toon-go/delim"
	"github.com/tehw0lf/toon-go/header"
)

// GuessDelimiter inspects doc's first array header line and reports the
// Delimiter it declares. It reports false when doc contains no header
// line at all (an object with no arrays, or a bare primitive), in which
// case the document carries no delimiter evidence and Comma should be
// assumed.
func GuessDelimiter(doc string) (delim.Delimiter, bool) {
	for _, raw := range strings.Split(doc, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimLeft(raw, " \t")
		if trimmed == "" || !header.Looks(trimmed) {
			continue
		}
		h, err := header.Parse(trimmed)
		if err != nil {
			continue
		}
		return h.Delimiter, true
	}
	return delim.Comma, false
}
