// Package toon is the public façade of the codec: Marshal/Unmarshal over
// the package's own value.Value tree, plus EncodeValue/DecodeValue
// convenience wrappers over plain Go any, mirroring the shape the
// teacher exposes at its root (yaml.Marshal/yaml.Unmarshal backed by
// NewEncoder/NewDecoder).
package toon

import (
	"github.com/tehw0lf/toon-go/decoder"
	"github.com/tehw0lf/toon-go/encoder"
	"github.com/tehw0lf/toon-go/errors"
	"github.com/tehw0lf/toon-go/fold"
	"github.com/tehw0lf/toon-go/value"
)

// Marshal normalizes v, optionally folds single-key chains (§4.F), and
// encodes the result as TOON text (§4.E).
func Marshal(v value.Value, opts ...EncoderOption) (string, error) {
	o, err := NewEncoderOptions(opts...)
	if err != nil {
		return "", err
	}
	nv := value.Normalize(v)
	if o.KeyFolding == FoldSafe {
		nv = fold.Fold(nv, o.FlattenDepth)
	}
	enc := encoder.New(encoder.Options{
		IndentWidth:  o.IndentWidth,
		Delimiter:    o.Delimiter,
		InlineBudget: o.InlineBudget,
	})
	return enc.Encode(nv)
}

// Unmarshal decodes TOON text (§4.D) and, when requested, expands dotted
// keys back into nested objects (§4.F).
func Unmarshal(s string, opts ...DecoderOption) (value.Value, error) {
	o, err := NewDecoderOptions(opts...)
	if err != nil {
		return nil, err
	}
	dec := decoder.New(decoder.Options{IndentWidth: o.IndentWidth, Strict: o.Strict})
	v, err := dec.Decode(s)
	if err != nil {
		return nil, err
	}
	if o.ExpandPaths == ExpandSafe {
		v, err = fold.Expand(v, o.Strict)
		if err != nil {
			return nil, errors.New(errors.KindPathConflict, 0, "", err.Error())
		}
	}
	return v, nil
}

// EncodeValue normalizes an arbitrary Go value (including the shapes
// encoding/json.Unmarshal produces: map[string]any, []any, float64,
// string, bool, nil) and encodes it as TOON text, for callers that do not
// need value.Value's ordering guarantees.
func EncodeValue(v any, opts ...EncoderOption) (string, error) {
	return Marshal(value.Normalize(v), opts...)
}

// DecodeValue decodes TOON text and converts the result to plain Go any,
// the mirror of EncodeValue. Object order is not preserved in the
// returned map[string]any — callers that need key order should call
// Unmarshal instead.
func DecodeValue(s string, opts ...DecoderOption) (any, error) {
	v, err := Unmarshal(s, opts...)
	if err != nil {
		return nil, err
	}
	return toAny(v), nil
}

func toAny(v value.Value) any {
	switch vv := v.(type) {
	case value.Null:
		return nil
	case value.Bool:
		return bool(vv)
	case value.Number:
		return float64(vv)
	case value.String:
		return string(vv)
	case value.Array:
		out := make([]any, len(vv))
		for i, elem := range vv {
			out[i] = toAny(elem)
		}
		return out
	case value.Object:
		out := make(map[string]any, len(vv.Fields))
		for _, f := range vv.Fields {
			out[f.Key] = toAny(f.Value)
		}
		return out
	default:
		return nil
	}
}
