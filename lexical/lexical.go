// Package lexical implements §4.L of the TOON codec: the quoting
// predicate, the escape/unescape pair, number canonicalization, and the
// identifier tests that the header grammar, encoder and decoder all share.
//
// This is the TOON analogue of the teacher's token package: where
// token.go classifies single YAML characters and indicators, this package
// classifies whole tokens and key strings for a line-oriented notation
// that has no indicator characters of its own to speak of.
package lexical

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tehw0lf/toon-go/delim"
)

// Context is where a string is being rendered: as an array element, or as
// an object value. The two contexts bind to different delimiters when
// deciding whether a value needs quoting (§4.L).
type Context int

const (
	// Array means the string is being rendered as an element of an array
	// whose own delimiter is active.
	Array Context = iota
	// Object means the string is being rendered as an object field value,
	// where the document delimiter is what matters for quoting.
	Object
)

var (
	numericLexeme     = regexp.MustCompile(`^-?\d+(\.\d+)?([eE][+-]?\d+)?$`)
	leadingZeroDigits = regexp.MustCompile(`^0\d+`)
	keyPattern        = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	identifierSegment = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	leadingMinusNonDig = regexp.MustCompile(`^-[^0-9]`)
)

// NeedsQuoting implements the predicate of §4.L.
func NeedsQuoting(s string, active, doc delim.Delimiter, ctx Context) bool {
	if s == "" {
		return true
	}
	if hasLeadingOrTrailingSpace(s) {
		return true
	}
	switch s {
	case "true", "false", "null":
		return true
	}
	if numericLexeme.MatchString(s) {
		return true
	}
	if leadingZeroDigits.MatchString(s) {
		return true
	}
	if strings.ContainsAny(s, ":\"\\[]{}") {
		return true
	}
	if strings.ContainsAny(s, "\n\r\t") {
		return true
	}
	if s == "-" || leadingMinusNonDig.MatchString(s) {
		return true
	}
	activeDelim := active
	if ctx == Object {
		activeDelim = doc
	}
	if activeDelim != delim.Comma && strings.ContainsRune(s, activeDelim.Rune()) {
		return true
	}
	if activeDelim == delim.Comma && strings.ContainsRune(s, ',') {
		return true
	}
	return false
}

func hasLeadingOrTrailingSpace(s string) bool {
	isSpace := func(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v' }
	return isSpace(s[0]) || isSpace(s[len(s)-1])
}

// NeedsKeyQuoting reports whether key must be quoted to appear in an object
// or tabular-header field list.
func NeedsKeyQuoting(key string) bool {
	return !keyPattern.MatchString(key)
}

// IsIdentifierSegment reports whether s is a dot-separable key segment, the
// stricter test used by key folding (§4.F).
func IsIdentifierSegment(s string) bool {
	return identifierSegment.MatchString(s)
}

// QuoteKey renders key as it should appear unquoted or quoted.
func QuoteKey(key string) string {
	if !NeedsKeyQuoting(key) {
		return key
	}
	return `"` + EscapeString(key) + `"`
}

// QuoteString renders s as a double-quoted, escaped literal.
func QuoteString(s string) string {
	return `"` + EscapeString(s) + `"`
}

// EscapeString escapes the content that will sit between a pair of double
// quotes, using exactly the escape set \\ \" \n \r \t.
func EscapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UnescapeString reverses EscapeString. It fails with an error for any
// escape outside \\ \" \n \r \t, and for a trailing backslash.
func UnescapeString(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			return "", &EscapeError{Reason: "trailing backslash"}
		}
		i++
		switch runes[i] {
		case '\\':
			b.WriteRune('\\')
		case '"':
			b.WriteRune('"')
		case 'n':
			b.WriteRune('\n')
		case 'r':
			b.WriteRune('\r')
		case 't':
			b.WriteRune('\t')
		default:
			return "", &EscapeError{Reason: "invalid escape \\" + string(runes[i])}
		}
	}
	return b.String(), nil
}

// EscapeError reports an UnescapeString failure (§7 InvalidEscape).
type EscapeError struct {
	Reason string
}

func (e *EscapeError) Error() string { return "invalid escape: " + e.Reason }

// CanonicalizeNumber renders a finite float64 per §4.L: no exponent
// notation, no trailing zeros after a decimal point, no lone trailing '.',
// no superfluous leading zeros, and negative zero renders as "0".
func CanonicalizeNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// ParseNumberLexeme parses s as a double iff s matches the numeric lexeme
// grammar `-?\d+(\.\d+)?([eE][+-]?\d+)?`; ok is false otherwise.
func ParseNumberLexeme(s string) (f float64, ok bool) {
	if !numericLexeme.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsNumericLexeme reports whether s matches the numeric lexeme grammar,
// without parsing it.
func IsNumericLexeme(s string) bool {
	return numericLexeme.MatchString(s)
}
