package value

import (
	"math"
	"reflect"
	"sort"
)

// Normalize coerces an arbitrary Go value into the codec's internal JSON
// model (§4.N). It accepts both this package's own Value tree — in which
// case it is walked and re-validated rather than trusted blindly — and the
// plain `any` shapes encoding/json.Unmarshal produces (map[string]any,
// []any, float64, string, bool, nil), so a caller can normalize a value
// straight out of the standard library.
//
// Undefined/absent, callable or symbolic Go values (nil interfaces inside
// a container, funcs, channels, unsafe pointers) become Null. Non-finite
// numbers become Null. Arrays and objects are normalized element-wise and
// field-wise; object key order is preserved for every ordered input this
// package already understands, and is imposed as sorted order for a plain
// Go map, which carries no order of its own.
func Normalize(v any) Value {
	switch vv := v.(type) {
	case nil:
		return Null{}
	case Value:
		return normalizeValue(vv)
	case bool:
		return Bool(vv)
	case string:
		return String(vv)
	case float32:
		return normalizeFloat(float64(vv))
	case float64:
		return normalizeFloat(vv)
	case int:
		return Number(vv)
	case int8:
		return Number(vv)
	case int16:
		return Number(vv)
	case int32:
		return Number(vv)
	case int64:
		return Number(vv)
	case uint:
		return Number(vv)
	case uint8:
		return Number(vv)
	case uint16:
		return Number(vv)
	case uint32:
		return Number(vv)
	case uint64:
		return Number(vv)
	case []any:
		return normalizeSlice(vv)
	case map[string]any:
		return normalizeMap(vv)
	default:
		return normalizeReflect(v)
	}
}

func normalizeValue(v Value) Value {
	switch vv := v.(type) {
	case nil:
		return Null{}
	case Null:
		return Null{}
	case Bool:
		return vv
	case Number:
		return normalizeFloat(float64(vv))
	case String:
		return vv
	case Array:
		return normalizeArray(vv)
	case Object:
		return normalizeObject(vv)
	default:
		return Null{}
	}
}

func normalizeArray(a Array) Array {
	out := make(Array, len(a))
	for i, elem := range a {
		out[i] = Normalize(elem)
	}
	return out
}

func normalizeObject(o Object) Object {
	fields := make([]Field, len(o.Fields))
	for i, f := range o.Fields {
		fields[i] = Field{Key: f.Key, Value: Normalize(f.Value)}
	}
	return Object{Fields: fields}
}

func normalizeSlice(s []any) Array {
	out := make(Array, len(s))
	for i, elem := range s {
		out[i] = Normalize(elem)
	}
	return out
}

func normalizeMap(m map[string]any) Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]Field, len(keys))
	for i, k := range keys {
		fields[i] = Field{Key: k, Value: Normalize(m[k])}
	}
	return Object{Fields: fields}
}

func normalizeFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null{}
	}
	if f == 0 {
		return Number(0)
	}
	return Number(f)
}

// normalizeReflect handles the remaining Go kinds: unexported custom numeric
// types, pointers, and the callable/symbolic kinds that have no JSON
// representation and so collapse to Null, exactly as the spec requires.
func normalizeReflect(v any) Value {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return Null{}
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null{}
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return normalizeFloat(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Null{}
		}
		out := make(Array, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return Null{}
		}
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		vals := map[string]any{}
		for iter.Next() {
			k, ok := mapKeyToString(iter.Key())
			if !ok {
				continue
			}
			keys = append(keys, k)
			vals[k] = iter.Value().Interface()
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: Normalize(vals[k])}
		}
		return Object{Fields: fields}
	case reflect.Struct:
		return normalizeStruct(rv)
	default:
		// Func, Chan, UnsafePointer and any other non-data kind have no
		// JSON representation.
		return Null{}
	}
}

func mapKeyToString(k reflect.Value) (string, bool) {
	if k.Kind() == reflect.String {
		return k.String(), true
	}
	return "", false
}

// normalizeStruct gives exported struct fields a minimal, tag-free mapping
// so Normalize can accept ad-hoc Go structs, not just map/slice literals.
// This is a convenience for callers of EncodeValue (SPEC_FULL.md); it is
// not part of the codec's documented data model.
func normalizeStruct(rv reflect.Value) Value {
	rt := rv.Type()
	fields := make([]Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		fields = append(fields, Field{Key: sf.Name, Value: Normalize(rv.Field(i).Interface())})
	}
	return Object{Fields: fields}
}

// Idempotent reports whether Normalize(v) == Normalize(Normalize(v)) for the
// already-normalized Value v, i.e. whether v is a fixed point. It exists to
// make the idempotence law of §8 directly testable.
func Idempotent(v Value) bool {
	return DeepEqual(normalizeValue(v), v)
}
