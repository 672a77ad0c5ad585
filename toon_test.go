package toon_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tehw0lf/toon-go"
	"github.com/tehw0lf/toon-go/delim"
	"github.com/tehw0lf/toon-go/fold"
	"github.com/tehw0lf/toon-go/value"
)

func TestMarshalFlatObject(t *testing.T) {
	v := value.NewObject(
		value.Field{Key: "id", Value: value.Number(123)},
		value.Field{Key: "name", Value: value.String("Ada")},
		value.Field{Key: "active", Value: value.Bool(true)},
	)
	got, err := toon.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	want := "id: 123\nname: Ada\nactive: true"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoundTripLax(t *testing.T) {
	v := value.NewObject(
		value.Field{Key: "id", Value: value.Number(1)},
		value.Field{Key: "tags", Value: value.Array{value.String("a"), value.String("b")}},
	)
	encoded, err := toon.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := toon.Unmarshal(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(value.Value(v), decoded); diff != "" {
		t.Errorf("round trip mismatch:\n%s", diff)
	}
}

func TestMarshalUnmarshalKeyFolding(t *testing.T) {
	v := value.NewObject(
		value.Field{Key: "a", Value: value.NewObject(
			value.Field{Key: "b", Value: value.NewObject(
				value.Field{Key: "c", Value: value.NewObject(
					value.Field{Key: "value", Value: value.Number(42)},
				)},
			)},
		)},
	)
	encoded, err := toon.Marshal(v, toon.WithKeyFolding(toon.FoldSafe), toon.WithFlattenDepth(fold.Unbounded))
	if err != nil {
		t.Fatal(err)
	}
	if encoded != "a.b.c.value: 42" {
		t.Errorf("got %q, want %q", encoded, "a.b.c.value: 42")
	}
	decoded, err := toon.Unmarshal(encoded, toon.WithExpandPaths(toon.ExpandSafe))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(value.Value(v), decoded); diff != "" {
		t.Errorf("expand mismatch:\n%s", diff)
	}
}

func TestEncodeDecodeValue(t *testing.T) {
	in := map[string]any{"id": float64(1), "name": "Ada"}
	encoded, err := toon.EncodeValue(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := toon.DecodeValue(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestGuessDelimiter(t *testing.T) {
	d, ok := toon.GuessDelimiter("items[2|]{a|b}:\n  1|2\n  3|4")
	if !ok || d != delim.Pipe {
		t.Errorf("got (%v, %v), want (Pipe, true)", d, ok)
	}
	d, ok = toon.GuessDelimiter("id: 1\nname: Ada")
	if ok || d != delim.Comma {
		t.Errorf("got (%v, %v), want (Comma, false)", d, ok)
	}
}

func TestNewEncoderOptionsValidation(t *testing.T) {
	if _, err := toon.NewEncoderOptions(toon.WithIndentWidth(0)); err == nil {
		t.Error("expected validation error for non-positive indent width")
	}
}

func TestNewDecoderOptionsValidation(t *testing.T) {
	if _, err := toon.NewDecoderOptions(toon.WithDecoderIndentWidth(-1)); err == nil {
		t.Error("expected validation error for non-positive indent width")
	}
}
