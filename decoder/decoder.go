// Package decoder implements §4.D of the TOON codec: turning TOON text
// back into a value.Value by walking an indentation tree with a single
// cursor, the way the teacher's parser package walks a YAML document —
// minus the anchor/alias/tag resolution passes this format has no use for.
package decoder

import (
	"strconv"
	"strings"

	"github.com/tehw0lf/toon-go/errors"
	"github.com/tehw0lf/toon-go/header"
	"github.com/tehw0lf/toon-go/lexical"
	"github.com/tehw0lf/toon-go/scanner"
	"github.com/tehw0lf/toon-go/value"
)

// Options configures a Decoder (§3 DecoderOptions, minus path expansion,
// which the caller applies with the fold package after Decode returns —
// see the root package's Unmarshal).
type Options struct {
	IndentWidth int
	Strict      bool
}

// Decoder turns TOON text into a value.Value.
type Decoder struct {
	opts Options
}

// New constructs a Decoder. A zero IndentWidth defaults to 2.
func New(opts Options) *Decoder {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	return &Decoder{opts: opts}
}

// Decode parses input per §4.D. An empty document decodes to Null (§6).
func (d *Decoder) Decode(input string) (value.Value, error) {
	lines, err := prepareLines(input, d.opts)
	if err != nil {
		return nil, err
	}

	var nonBlank []int
	for i, ln := range lines {
		if !ln.Blank {
			nonBlank = append(nonBlank, i)
		}
	}
	if len(nonBlank) == 0 {
		return value.Null{}, nil
	}

	p := &parser{lines: lines, opts: d.opts}
	p.pos = nonBlank[0]
	first := lines[nonBlank[0]]
	content := first.content()

	switch {
	case header.IsArrayRootLine(content):
		h, hLine, err := p.parseHeaderLine()
		if err != nil {
			return nil, err
		}
		return p.parseArrayBody(h, hLine)
	case len(nonBlank) == 1 && lexical.FindUnquotedColon(content) < 0:
		v, err := lexical.ParseToken(content)
		if err != nil {
			return nil, invalidEscapeErr(first, err)
		}
		return v, nil
	default:
		return p.parseObject(first.Indent)
	}
}

// preparedLine is one line of input after §4.D step 1's preparation.
type preparedLine struct {
	Number int
	Text   string
	Indent int
	Blank  bool
}

func (l preparedLine) content() string {
	return l.Text[l.Indent:]
}

func prepareLines(input string, opts Options) ([]preparedLine, error) {
	if input == "" {
		return nil, nil
	}
	raw := strings.Split(input, "\n")
	lines := make([]preparedLine, len(raw))
	for i, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		indent := 0
		for indent < len(line) && line[indent] == ' ' {
			indent++
		}
		trimmed := line[indent:]
		blank := trimmed == ""
		if opts.Strict {
			if indent < len(line) && line[indent] == '\t' {
				return nil, errors.New(errors.KindIndentation, i+1, line, "tab in leading whitespace")
			}
			if !blank && indent%opts.IndentWidth != 0 {
				return nil, errors.New(errors.KindIndentation, i+1, line,
					"indent "+strconv.Itoa(indent)+" is not a multiple of "+strconv.Itoa(opts.IndentWidth))
			}
		}
		lines[i] = preparedLine{Number: i + 1, Text: line, Indent: indent, Blank: blank}
	}
	return lines, nil
}

// parser is the single cursor the whole recursive descent shares (§9:
// "the decoder carries only (options, prepared lines, cursor)").
type parser struct {
	lines []preparedLine
	opts  Options
	pos   int
}

func (p *parser) current() (preparedLine, bool) {
	if p.pos >= len(p.lines) {
		return preparedLine{}, false
	}
	return p.lines[p.pos], true
}

func (p *parser) skipBlank() {
	for p.pos < len(p.lines) && p.lines[p.pos].Blank {
		p.pos++
	}
}

// parseHeaderLine parses the header at the cursor and advances past it.
func (p *parser) parseHeaderLine() (*header.Header, preparedLine, error) {
	ln, ok := p.current()
	if !ok {
		return nil, preparedLine{}, errors.New(errors.KindInvalidHeader, 0, "", "expected array header, found end of input")
	}
	h, err := header.Parse(ln.content())
	if err != nil {
		return nil, preparedLine{}, errors.New(errors.KindInvalidHeader, ln.Number, ln.Text, err.Error()).WithColumn(ln.Indent + 1)
	}
	p.pos++
	return h, ln, nil
}

func invalidEscapeErr(ln preparedLine, err error) error {
	return errors.New(errors.KindInvalidEscape, ln.Number, ln.Text, err.Error())
}

func countMismatchErr(ln preparedLine, expected, actual int) error {
	return errors.New(errors.KindCountMismatch, ln.Number, ln.Text, "element count disagrees with declared length").
		WithExpectedActual(strconv.Itoa(expected), strconv.Itoa(actual))
}

func blankInsideArrayErr(ln preparedLine) error {
	return errors.New(errors.KindBlankInsideArray, ln.Number, ln.Text, "blank line inside array body")
}

// parseKey parses a key-part literal (§4.D step 3): double-quoted spans
// are unescaped, anything else is taken literally.
func parseKey(ln preparedLine, s string) (string, error) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		k, err := lexical.UnescapeString(s[1 : len(s)-1])
		if err != nil {
			return "", invalidEscapeErr(ln, err)
		}
		return k, nil
	}
	return strings.TrimSpace(s), nil
}

// parseObject implements §4.D step 3: every line at exactly indent belongs
// to this object; a shallower indent ends it.
func (p *parser) parseObject(indent int) (value.Value, error) {
	var obj value.Object
	for {
		p.skipBlank()
		ln, ok := p.current()
		if !ok || ln.Indent != indent {
			break
		}
		content := ln.content()

		if header.Looks(content) {
			h, hLine, err := p.parseHeaderLine()
			if err != nil {
				return nil, err
			}
			if !h.HasKey {
				return nil, errors.New(errors.KindInvalidHeader, hLine.Number, hLine.Text, "array header inside an object must carry a key")
			}
			arr, err := p.parseArrayBody(h, hLine)
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, value.Field{Key: h.Key, Value: arr})
			continue
		}

		colon := lexical.FindUnquotedColon(content)
		if colon < 0 {
			return nil, errors.New(errors.KindInvalidHeader, ln.Number, ln.Text, "expected ':'").WithColumn(ln.Indent + 1)
		}
		key, err := parseKey(ln, content[:colon])
		if err != nil {
			return nil, err
		}
		valuePart := strings.TrimSpace(content[colon+1:])
		p.pos++

		if valuePart == "" {
			child, err := p.parseBlockChild(ln, indent)
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, value.Field{Key: key, Value: child})
			continue
		}

		v, err := lexical.ParseToken(valuePart)
		if err != nil {
			return nil, invalidEscapeErr(ln, err)
		}
		obj.Fields = append(obj.Fields, value.Field{Key: key, Value: v})
	}
	return obj, nil
}

// parseBlockChild resolves a "key:" line with an empty value-part (§4.D
// step 3): an array header on the next deeper line, a nested object, or
// Null when nothing deeper follows.
func (p *parser) parseBlockChild(parent preparedLine, parentIndent int) (value.Value, error) {
	next, ok := p.current()
	if !ok || next.Indent <= parentIndent {
		return value.Null{}, nil
	}
	if header.Looks(next.content()) {
		h, hLine, err := p.parseHeaderLine()
		if err != nil {
			return nil, err
		}
		return p.parseArrayBody(h, hLine)
	}
	return p.parseObject(parentIndent + p.opts.IndentWidth)
}

// parseArrayBody implements §4.D step 4, dispatching on h's inline/
// tabular/expanded shape. headerLn is the already-consumed header line,
// used to attribute whole-array diagnostics (e.g. a final count mismatch).
func (p *parser) parseArrayBody(h *header.Header, headerLn preparedLine) (value.Value, error) {
	switch {
	case h.HasInline:
		return p.parseInlineArray(h, headerLn)
	case h.Tabular:
		return p.parseTabularArray(h, headerLn)
	default:
		return p.parseExpandedArray(h, headerLn)
	}
}

func (p *parser) parseInlineArray(h *header.Header, headerLn preparedLine) (value.Value, error) {
	var tokens []string
	if h.InlinePayload != "" {
		tokens = scanner.Scan(h.InlinePayload, h.Delimiter)
	}
	elems := make(value.Array, 0, len(tokens))
	for _, tok := range tokens {
		v, err := lexical.ParseToken(tok)
		if err != nil {
			return nil, invalidEscapeErr(headerLn, err)
		}
		elems = append(elems, v)
	}
	if p.opts.Strict && len(elems) != h.Length {
		return nil, countMismatchErr(headerLn, h.Length, len(elems))
	}
	return elems, nil
}

func (p *parser) parseTabularArray(h *header.Header, headerLn preparedLine) (value.Value, error) {
	valueIndent := headerLn.Indent + p.opts.IndentWidth
	rows := make(value.Array, 0, h.Length)
	for len(rows) < h.Length {
		ln, ok := p.current()
		if !ok {
			break
		}
		if ln.Blank {
			if p.opts.Strict {
				return nil, blankInsideArrayErr(ln)
			}
			p.pos++
			continue
		}
		if ln.Indent <= headerLn.Indent || ln.Indent != valueIndent {
			break
		}
		tokens := scanner.Scan(ln.content(), h.Delimiter)
		if p.opts.Strict && len(tokens) != len(h.Fields) {
			return nil, countMismatchErr(ln, len(h.Fields), len(tokens))
		}
		row := value.Object{Fields: make([]value.Field, len(h.Fields))}
		for i, field := range h.Fields {
			var tok string
			if i < len(tokens) {
				tok = tokens[i]
			}
			v, err := lexical.ParseToken(tok)
			if err != nil {
				return nil, invalidEscapeErr(ln, err)
			}
			row.Fields[i] = value.Field{Key: field, Value: v}
		}
		rows = append(rows, row)
		p.pos++
	}
	if p.opts.Strict && len(rows) != h.Length {
		return nil, countMismatchErr(headerLn, h.Length, len(rows))
	}
	return rows, nil
}

// parseExpandedArray implements the non-tabular expanded form (§4.D step
// 4's last bullet), including object-element accumulation.
func (p *parser) parseExpandedArray(h *header.Header, headerLn preparedLine) (value.Value, error) {
	valueIndent := headerLn.Indent + p.opts.IndentWidth
	elems := make(value.Array, 0, h.Length)

	var current value.Object
	var seen map[string]bool
	flush := func() {
		if current.Fields != nil || len(seen) > 0 {
			elems = append(elems, current)
			current = value.Object{}
			seen = nil
		}
	}

	for {
		ln, ok := p.current()
		if !ok {
			break
		}
		if ln.Blank {
			if p.opts.Strict {
				// Blank lines after the last element are outside the body.
				next := p.pos
				for next < len(p.lines) && p.lines[next].Blank {
					next++
				}
				if next < len(p.lines) && p.lines[next].Indent > headerLn.Indent {
					return nil, blankInsideArrayErr(ln)
				}
			}
			p.pos++
			continue
		}
		if ln.Indent <= headerLn.Indent {
			break
		}
		if ln.Indent != valueIndent {
			break
		}
		content := ln.content()

		if header.Looks(content) {
			flush()
			h2, hLine2, err := p.parseHeaderLine()
			if err != nil {
				return nil, err
			}
			arr, err := p.parseArrayBody(h2, hLine2)
			if err != nil {
				return nil, err
			}
			elems = append(elems, arr)
			continue
		}

		colon := lexical.FindUnquotedColon(content)
		if colon >= 0 {
			key, err := parseKey(ln, content[:colon])
			if err != nil {
				return nil, err
			}
			if seen != nil && seen[key] {
				flush()
			}
			valuePart := strings.TrimSpace(content[colon+1:])
			p.pos++

			var fieldVal value.Value
			if valuePart == "" {
				fieldVal, err = p.parseBlockChild(ln, ln.Indent)
			} else {
				fieldVal, err = lexical.ParseToken(valuePart)
				if err != nil {
					err = invalidEscapeErr(ln, err)
				}
			}
			if err != nil {
				return nil, err
			}
			current.Fields = append(current.Fields, value.Field{Key: key, Value: fieldVal})
			if seen == nil {
				seen = make(map[string]bool)
			}
			seen[key] = true
			continue
		}

		flush()
		v, err := lexical.ParseToken(content)
		if err != nil {
			return nil, invalidEscapeErr(ln, err)
		}
		elems = append(elems, v)
		p.pos++
	}
	flush()

	if p.opts.Strict && len(elems) != h.Length {
		return nil, countMismatchErr(headerLn, h.Length, len(elems))
	}
	return elems, nil
}
