package value_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tehw0lf/toon-go/value"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want value.Value
	}{
		{"nil", nil, value.Null{}},
		{"bool", true, value.Bool(true)},
		{"int", 42, value.Number(42)},
		{"float", 3.5, value.Number(3.5)},
		{"negative zero", math.Copysign(0, -1), value.Number(0)},
		{"nan", math.NaN(), value.Null{}},
		{"inf", math.Inf(1), value.Null{}},
		{"string", "ada", value.String("ada")},
		{
			"slice",
			[]any{1, "x", nil},
			value.Array{value.Number(1), value.String("x"), value.Null{}},
		},
		{
			"map sorted",
			map[string]any{"b": 2, "a": 1},
			value.NewObject(
				value.Field{Key: "a", Value: value.Number(1)},
				value.Field{Key: "b", Value: value.Number(2)},
			),
		},
		{
			"object preserves order",
			value.NewObject(
				value.Field{Key: "z", Value: value.Number(1)},
				value.Field{Key: "a", Value: value.Number(2)},
			),
			value.NewObject(
				value.Field{Key: "z", Value: value.Number(1)},
				value.Field{Key: "a", Value: value.Number(2)},
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := value.Normalize(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []value.Value{
		value.Null{},
		value.Number(12.5),
		value.Array{value.Bool(true), value.String("x")},
		value.NewObject(value.Field{Key: "k", Value: value.Number(1)}),
	}
	for _, in := range inputs {
		once := value.Normalize(in)
		twice := value.Normalize(once)
		if !value.DeepEqual(once, twice) {
			t.Errorf("normalize not idempotent for %#v: %#v != %#v", in, once, twice)
		}
	}
}
