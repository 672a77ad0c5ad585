package lexical

import (
	"github.com/tehw0lf/toon-go/delim"
	"github.com/tehw0lf/toon-go/value"
)

// FormatPrimitive renders v as the single token the encoder emits for it
// (§4.E step 1): Null/Bool/Number render literally or canonically, String
// is quoted iff NeedsQuoting says so.
func FormatPrimitive(v value.Value, active, doc delim.Delimiter, ctx Context) string {
	switch vv := v.(type) {
	case nil, value.Null:
		return "null"
	case value.Bool:
		if bool(vv) {
			return "true"
		}
		return "false"
	case value.Number:
		return CanonicalizeNumber(float64(vv))
	case value.String:
		s := string(vv)
		if NeedsQuoting(s, active, doc, ctx) {
			return QuoteString(s)
		}
		return s
	default:
		panic("lexical: FormatPrimitive called with non-primitive value")
	}
}

// ParseToken classifies and parses a single raw token produced by the
// scanner (§4.D step 4, §4.L token classification): a quoted span is
// unescaped to a String; otherwise one of the literal keywords becomes
// Null/Bool, a numeric lexeme becomes Number, and anything else is taken
// verbatim as a String.
func ParseToken(raw string) (value.Value, error) {
	if isQuotedSpan(raw) {
		inner, err := UnescapeString(raw[1 : len(raw)-1])
		if err != nil {
			return nil, err
		}
		return value.String(inner), nil
	}
	switch raw {
	case "null":
		return value.Null{}, nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}
	if f, ok := ParseNumberLexeme(raw); ok {
		return value.Number(f), nil
	}
	return value.String(raw), nil
}

func isQuotedSpan(raw string) bool {
	return len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"'
}
