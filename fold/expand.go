package fold

import (
	"fmt"
	"strings"

	"github.com/tehw0lf/toon-go/lexical"
	"github.com/tehw0lf/toon-go/value"
)

// ConflictError is §7's PathConflict: expanding a dotted key collided with
// an existing leaf or branch at the same path.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("fold: path conflict at %q", e.Path)
}

// Expand reverses Fold: every key containing '.' whose dot-split segments
// are all identifier segments is exploded into the nested object path it
// denotes. In strict mode a collision between a leaf and a branch, or two
// writes to the same leaf, is an error; in lax mode the later write wins.
func Expand(v value.Value, strict bool) (value.Value, error) {
	switch vv := v.(type) {
	case value.Object:
		return expandObject(vv, strict)
	case value.Array:
		out := make(value.Array, len(vv))
		for i, elem := range vv {
			ev, err := Expand(elem, strict)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	default:
		return v, nil
	}
}

func expandObject(obj value.Object, strict bool) (value.Value, error) {
	root := newBranch()
	for _, f := range obj.Fields {
		expandedVal, err := Expand(f.Value, strict)
		if err != nil {
			return nil, err
		}
		segments := splitPath(f.Key)
		if err := insert(root, segments, expandedVal, strict); err != nil {
			return nil, err
		}
	}
	return toObject(root), nil
}

// splitPath splits key on '.' only when every resulting segment is a
// proper identifier segment; otherwise key denotes a single, unsplit path
// component, exactly as it was written.
func splitPath(key string) []string {
	if !strings.Contains(key, ".") {
		return []string{key}
	}
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return []string{key}
	}
	for _, p := range parts {
		if !lexical.IsIdentifierSegment(p) {
			return []string{key}
		}
	}
	return parts
}

// node is an internal ordered tree used while building the expanded
// object; Object itself has no mutable, pointer-identity children, so
// construction happens here and is flattened with toObject at the end.
type node struct {
	isLeaf   bool
	leaf     value.Value
	order    []string
	children map[string]*node
}

func newBranch() *node {
	return &node{children: map[string]*node{}}
}

func insert(n *node, segments []string, leaf value.Value, strict bool) error {
	key := segments[0]
	child, exists := n.children[key]

	if len(segments) == 1 {
		if exists {
			if strict {
				return &ConflictError{Path: key}
			}
			n.children[key] = &node{isLeaf: true, leaf: leaf}
			return nil
		}
		n.order = append(n.order, key)
		n.children[key] = &node{isLeaf: true, leaf: leaf}
		return nil
	}

	switch {
	case !exists:
		child = newBranch()
		n.order = append(n.order, key)
		n.children[key] = child
	case child.isLeaf:
		if strict {
			return &ConflictError{Path: key}
		}
		child = newBranch()
		n.children[key] = child
	}
	return insert(child, segments[1:], leaf, strict)
}

func toObject(n *node) value.Object {
	fields := make([]value.Field, 0, len(n.order))
	for _, key := range n.order {
		c := n.children[key]
		if c.isLeaf {
			fields = append(fields, value.Field{Key: key, Value: c.leaf})
			continue
		}
		fields = append(fields, value.Field{Key: key, Value: toObject(c)})
	}
	return value.Object{Fields: fields}
}
