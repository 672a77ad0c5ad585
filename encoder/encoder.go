// Package encoder implements §4.E of the TOON codec: walking a normalized,
// already-folded value and choosing, per node, whether to render it
// inline, expanded, or as a tabular block, then emitting the resulting
// lines. It is the TOON analogue of the teacher's encode.go, rebuilt
// around a six-variant value tree instead of reflected Go structs.
package encoder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tehw0lf/toon-go/delim"
	"github.com/tehw0lf/toon-go/header"
	"github.com/tehw0lf/toon-go/lexical"
	"github.com/tehw0lf/toon-go/value"
)

// DefaultInlineBudget is the hand-tuned inline-length constant of §9 Open
// Question (a), exposed as a configurable policy rather than a literal.
const DefaultInlineBudget = 80

// Options configures an Encoder (§3 EncoderOptions, minus key folding,
// which the caller is expected to apply with the fold package before
// calling Encode — see the root package's Marshal).
type Options struct {
	IndentWidth  int
	Delimiter    delim.Delimiter
	InlineBudget int
}

// Encoder walks a value.Value and renders it as TOON text.
type Encoder struct {
	opts Options
}

// New constructs an Encoder. A zero IndentWidth defaults to 2 and a zero
// InlineBudget defaults to DefaultInlineBudget.
func New(opts Options) *Encoder {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	if opts.InlineBudget <= 0 {
		opts.InlineBudget = DefaultInlineBudget
	}
	return &Encoder{opts: opts}
}

// Encode renders v (already normalized, and folded if the caller wants key
// folding) as TOON text with no trailing newline (§6).
func (e *Encoder) Encode(v value.Value) (string, error) {
	s := &state{opts: e.opts}
	if err := s.encodeRoot(v); err != nil {
		return "", err
	}
	return strings.Join(s.lines, "\n"), nil
}

type state struct {
	opts  Options
	lines []string
}

func (s *state) emit(line string) {
	s.lines = append(s.lines, line)
}

func (s *state) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(" ", depth*s.opts.IndentWidth)
}

func (s *state) encodeRoot(v value.Value) error {
	switch vv := v.(type) {
	case nil, value.Null, value.Bool, value.Number, value.String:
		s.emit(lexical.FormatPrimitive(orNull(vv), s.opts.Delimiter, s.opts.Delimiter, lexical.Object))
		return nil
	case value.Object:
		return s.encodeObject(vv, 0)
	case value.Array:
		return s.encodeArray("", false, vv, 0)
	default:
		return fmt.Errorf("toon: encoder: unsupported root value of type %T", v)
	}
}

func orNull(v value.Value) value.Value {
	if v == nil {
		return value.Null{}
	}
	return v
}

func (s *state) encodeObject(obj value.Object, depth int) error {
	indent := s.indent(depth)
	for _, f := range obj.Fields {
		switch val := f.Value.(type) {
		case nil, value.Null, value.Bool, value.Number, value.String:
			tok := lexical.FormatPrimitive(orNull(val), s.opts.Delimiter, s.opts.Delimiter, lexical.Object)
			s.emit(indent + lexical.QuoteKey(f.Key) + ": " + tok)
		case value.Object:
			if val.IsEmpty() {
				// Empty nested objects do not appear (§4.E step 2).
				continue
			}
			s.emit(indent + lexical.QuoteKey(f.Key) + ":")
			if err := s.encodeObject(val, depth+1); err != nil {
				return err
			}
		case value.Array:
			if err := s.encodeArray(f.Key, true, val, depth); err != nil {
				return err
			}
		default:
			return fmt.Errorf("toon: encoder: unsupported object field %q of type %T", f.Key, val)
		}
	}
	return nil
}

// encodeArray renders arr, which lives at depth (the same indent level as
// its header line); elements and rows render at depth+1. key/hasKey name
// the header when the array is an object field; both are empty/false for
// an array that is the document root or an element of another array.
func (s *state) encodeArray(key string, hasKey bool, arr value.Array, depth int) error {
	indent := s.indent(depth)
	d := s.opts.Delimiter

	if len(arr) == 0 {
		h := &header.Header{HasKey: hasKey, Key: key, Length: 0, Delimiter: d, HasInline: true, InlinePayload: ""}
		s.emit(indent + header.Format(h))
		return nil
	}

	if fields, ok := detectTabular(arr); ok {
		return s.encodeTabular(key, hasKey, arr, fields, depth)
	}

	if isPrimitiveOnly(arr) {
		return s.encodePrimitiveArray(key, hasKey, arr, depth)
	}

	h := &header.Header{HasKey: hasKey, Key: key, Length: len(arr), Delimiter: d}
	s.emit(indent + header.Format(h))
	for _, elem := range arr {
		if err := s.encodeMixedElement(elem, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) encodeTabular(key string, hasKey bool, arr value.Array, fields []string, depth int) error {
	d := s.opts.Delimiter
	h := &header.Header{HasKey: hasKey, Key: key, Length: len(arr), Delimiter: d, Tabular: true, Fields: fields}
	s.emit(s.indent(depth) + header.Format(h))
	rowIndent := s.indent(depth + 1)
	for _, elem := range arr {
		obj := elem.(value.Object)
		tokens := make([]string, len(fields))
		for i, field := range fields {
			fv, _ := obj.Get(field)
			tokens[i] = lexical.FormatPrimitive(orNull(fv), d, d, lexical.Array)
		}
		s.emit(rowIndent + strings.Join(tokens, d.Separator()))
	}
	return nil
}

func (s *state) encodePrimitiveArray(key string, hasKey bool, arr value.Array, depth int) error {
	d := s.opts.Delimiter
	tokens := make([]string, len(arr))
	for i, elem := range arr {
		tokens[i] = lexical.FormatPrimitive(orNull(elem), d, d, lexical.Array)
	}
	payload := strings.Join(tokens, d.Separator())
	indent := s.indent(depth)
	h := &header.Header{HasKey: hasKey, Key: key, Length: len(arr), Delimiter: d, HasInline: true, InlinePayload: payload}
	line := indent + header.Format(h)
	if len(line) <= s.opts.InlineBudget && !strings.ContainsRune(payload, '\n') {
		s.emit(line)
		return nil
	}
	expanded := &header.Header{HasKey: hasKey, Key: key, Length: len(arr), Delimiter: d}
	s.emit(indent + header.Format(expanded))
	elemIndent := s.indent(depth + 1)
	for _, tok := range tokens {
		s.emit(elemIndent + tok)
	}
	return nil
}

// encodeMixedElement renders one element of a mixed array (§4.E step 3):
// primitives as single tokens, objects as their own line block without a
// key, nested arrays with no key.
func (s *state) encodeMixedElement(elem value.Value, depth int) error {
	switch vv := elem.(type) {
	case nil, value.Null, value.Bool, value.Number, value.String:
		tok := lexical.FormatPrimitive(orNull(vv), s.opts.Delimiter, s.opts.Delimiter, lexical.Array)
		s.emit(s.indent(depth) + tok)
		return nil
	case value.Object:
		return s.encodeObject(vv, depth)
	case value.Array:
		return s.encodeArray("", false, vv, depth)
	default:
		return fmt.Errorf("toon: encoder: unsupported array element of type %T", elem)
	}
}

// detectTabular implements §4.E's uniform-object test: every element a
// non-empty object, all sharing exactly the same key set, all values
// primitive.
func detectTabular(arr value.Array) ([]string, bool) {
	first, ok := arr[0].(value.Object)
	if !ok || first.IsEmpty() {
		return nil, false
	}
	fieldSet := make(map[string]struct{}, len(first.Fields))
	for _, f := range first.Fields {
		if !value.IsPrimitive(f.Value) {
			return nil, false
		}
		fieldSet[f.Key] = struct{}{}
	}
	for _, elem := range arr[1:] {
		obj, ok := elem.(value.Object)
		if !ok || len(obj.Fields) != len(fieldSet) {
			return nil, false
		}
		seen := make(map[string]struct{}, len(fieldSet))
		for _, f := range obj.Fields {
			if _, ok := fieldSet[f.Key]; !ok || !value.IsPrimitive(f.Value) {
				return nil, false
			}
			seen[f.Key] = struct{}{}
		}
		if len(seen) != len(fieldSet) {
			return nil, false
		}
	}
	fields := make([]string, 0, len(fieldSet))
	for k := range fieldSet {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields, true
}

func isPrimitiveOnly(arr value.Array) bool {
	for _, elem := range arr {
		if !value.IsPrimitive(elem) {
			return false
		}
	}
	return true
}
