// Package header implements §4.H of the TOON codec: the grammar for an
// array-declaring line, `key[N<delim>]{fields}:payload`, in both
// directions. It plays the role the teacher's parser package plays for
// YAML flow/block starts, but for a single, much smaller production.
package header

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tehw0lf/toon-go/delim"
	"github.com/tehw0lf/toon-go/lexical"
)

// Header is a parsed or to-be-rendered array header line.
type Header struct {
	HasKey        bool
	Key           string
	Length        int
	Delimiter     delim.Delimiter
	Tabular       bool
	Fields        []string
	HasInline     bool
	InlinePayload string
}

// rootArrayPattern matches an unkeyed array header's bracket, used by the
// decoder's root classifier (§4.D step 2).
var rootArrayPattern = regexp.MustCompile(`^\[\d+[\t|]?\]`)

// IsArrayRootLine reports whether trimmed looks like `[N]`, `[N\t]` or
// `[N|]`, the signature of an unkeyed array at the document root.
func IsArrayRootLine(trimmed string) bool {
	return rootArrayPattern.MatchString(trimmed)
}

// Error is a malformed-header diagnostic (§7 InvalidHeader), independent of
// line numbers — the decoder attaches those.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return "invalid header: " + e.Reason }

// Looks reports whether line has the rough shape of a header — an
// unquoted '[' appearing before the first unquoted colon — without fully
// validating it. The decoder uses this to discriminate a header line from
// a plain `key: value` line before committing to a full Parse.
func Looks(line string) bool {
	colon := lexical.FindUnquotedColon(line)
	bracket := lexical.FindUnquotedRune(line, '[')
	if bracket < 0 {
		return false
	}
	return colon < 0 || bracket < colon
}

// Parse parses a complete header line (§4.H grammar). It assumes the
// caller has already confirmed Looks(line).
func Parse(line string) (*Header, error) {
	bracket := lexical.FindUnquotedRune(line, '[')
	if bracket < 0 {
		return nil, &Error{Reason: "missing '['"}
	}

	h := &Header{}
	keyPart := line[:bracket]
	if keyPart != "" {
		h.HasKey = true
		key, err := parseKeyLiteral(keyPart)
		if err != nil {
			return nil, err
		}
		h.Key = key
	}

	rest := line[bracket:]
	closeIdx := strings.IndexByte(rest, ']')
	if closeIdx < 0 {
		return nil, &Error{Reason: "missing ']'"}
	}
	inner := rest[1:closeIdx]
	length, d, err := parseBracketBody(inner)
	if err != nil {
		return nil, err
	}
	h.Length = length
	h.Delimiter = d

	rest = rest[closeIdx+1:]
	if strings.HasPrefix(rest, "{") {
		closeBrace := strings.IndexByte(rest, '}')
		if closeBrace < 0 {
			return nil, &Error{Reason: "missing '}'"}
		}
		fieldsBody := rest[1:closeBrace]
		fields, err := parseFieldList(fieldsBody, d)
		if err != nil {
			return nil, err
		}
		h.Tabular = true
		h.Fields = fields
		rest = rest[closeBrace+1:]
	}

	if !strings.HasPrefix(rest, ":") {
		return nil, &Error{Reason: "missing ':'"}
	}
	// Anything at all after the ':' — even a single trailing space with no
	// payload, as in the empty-array form "[0]: " — marks this as the
	// inline form; a header line that ends exactly at ':' is expanded,
	// with elements following on subsequent indented lines.
	afterColon := rest[1:]
	if afterColon != "" {
		h.HasInline = true
		h.InlinePayload = strings.TrimPrefix(afterColon, " ")
	}
	return h, nil
}

func parseKeyLiteral(s string) (string, error) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return lexical.UnescapeString(s[1 : len(s)-1])
	}
	return s, nil
}

func parseBracketBody(s string) (int, delim.Delimiter, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, delim.Comma, &Error{Reason: fmt.Sprintf("non-numeric length %q", s)}
	}
	digits := s[:i]
	sym := s[i:]
	d, ok := delim.FromHeaderSymbol(sym)
	if !ok {
		return 0, delim.Comma, &Error{Reason: fmt.Sprintf("unknown delimiter symbol %q", sym)}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, delim.Comma, &Error{Reason: fmt.Sprintf("invalid length %q", digits)}
	}
	return n, d, nil
}

func parseFieldList(body string, d delim.Delimiter) ([]string, error) {
	if body == "" {
		return nil, &Error{Reason: "empty field list"}
	}
	raw := splitFields(body, d)
	fields := make([]string, len(raw))
	for i, tok := range raw {
		name, err := parseKeyLiteral(strings.TrimSpace(tok))
		if err != nil {
			return nil, err
		}
		fields[i] = name
	}
	return fields, nil
}

// splitFields tokenizes a header's {field,list} body. It mirrors
// scanner.Scan with a plain quote-aware split on the delimiter rune; the
// space that follows each comma in Format's ", " separator stays on the
// next field and is trimmed by parseFieldList.
func splitFields(body string, d delim.Delimiter) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(body)
	delimRune := d.Rune()
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
		if r == delimRune && !inQuotes {
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	out = append(out, cur.String())
	return out
}

// Format renders h back into a header line, the inverse of Parse. The
// caller is responsible for any indentation prefix.
func Format(h *Header) string {
	var b strings.Builder
	if h.HasKey {
		b.WriteString(lexical.QuoteKey(h.Key))
	}
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(h.Length))
	b.WriteString(h.Delimiter.HeaderSymbol())
	b.WriteByte(']')
	if h.Tabular {
		b.WriteByte('{')
		for i, f := range h.Fields {
			if i > 0 {
				b.WriteString(h.Delimiter.Separator())
			}
			b.WriteString(lexical.QuoteKey(f))
		}
		b.WriteByte('}')
	}
	b.WriteByte(':')
	if h.HasInline {
		b.WriteByte(' ')
		b.WriteString(h.InlinePayload)
	}
	return b.String()
}
