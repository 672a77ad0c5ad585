package value

// DeepEqual reports whether a and b are the same JSON value: equal variant,
// equal scalar, element-wise equal array, or field-wise equal object in the
// same order. Two objects with the same fields in different order are not
// DeepEqual — the encoder never reorders a non-tabular object's keys (§3),
// so order is part of value identity here.
func DeepEqual(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !DeepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Key != bv.Fields[i].Key {
				return false
			}
			if !DeepEqual(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
