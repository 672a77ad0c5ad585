// Package fold implements §4.F of the TOON codec: folding a single-key
// object chain into a dotted path before encoding, and expanding a dotted
// key back into its nested object after decoding. It plays the same role
// the teacher's path.go plays for YAML path addressing — walking a chain
// of identifier segments — repurposed here for key shape rather than
// query addressing.
package fold

import (
	"strings"

	"github.com/tehw0lf/toon-go/lexical"
	"github.com/tehw0lf/toon-go/value"
)

// Depth bounds how many segments a folded chain may grow to. Unbounded
// disables the bound entirely.
type Depth int

// Unbounded means §3's "flatten_depth: ... or Unbounded".
const Unbounded Depth = -1

func (d Depth) allows(segments int) bool {
	return d == Unbounded || segments <= int(d)
}

// Fold walks every object in v and collapses each single-key object chain
// into a dotted key, per §4.F. It is meant to run once, after
// normalization and before encoding.
func Fold(v value.Value, maxDepth Depth) value.Value {
	switch vv := v.(type) {
	case value.Object:
		return foldObject(vv, maxDepth)
	case value.Array:
		out := make(value.Array, len(vv))
		for i, elem := range vv {
			out[i] = Fold(elem, maxDepth)
		}
		return out
	default:
		return v
	}
}

func foldObject(obj value.Object, maxDepth Depth) value.Object {
	fields := make([]value.Field, 0, len(obj.Fields))
	for _, f := range obj.Fields {
		segments, leaf := walkChain(f.Key, f.Value, maxDepth)
		if len(segments) < 2 || !allIdentifierSegments(segments) {
			fields = append(fields, value.Field{Key: f.Key, Value: Fold(f.Value, maxDepth)})
			continue
		}
		fields = append(fields, value.Field{
			Key:   strings.Join(segments, "."),
			Value: Fold(leaf, maxDepth),
		})
	}
	return value.Object{Fields: fields}
}

// walkChain follows a chain of single-key objects starting at (key, val),
// stopping when the current value is not a single-key object, or when
// maxDepth segments have been collected. It returns every segment walked
// (at least [key]) and the value reached at the end of the chain.
func walkChain(key string, val value.Value, maxDepth Depth) ([]string, value.Value) {
	segments := []string{key}
	cur := val
	for maxDepth.allows(len(segments) + 1) {
		obj, ok := cur.(value.Object)
		if !ok || len(obj.Fields) != 1 {
			break
		}
		segments = append(segments, obj.Fields[0].Key)
		cur = obj.Fields[0].Value
	}
	return segments, cur
}

func allIdentifierSegments(segments []string) bool {
	for _, s := range segments {
		if !lexical.IsIdentifierSegment(s) {
			return false
		}
	}
	return true
}
