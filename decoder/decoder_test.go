package decoder_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tehw0lf/toon-go/decoder"
	"github.com/tehw0lf/toon-go/errors"
	"github.com/tehw0lf/toon-go/value"
)

func newDec(strict bool) *decoder.Decoder {
	return decoder.New(decoder.Options{IndentWidth: 2, Strict: strict})
}

func TestDecodeEmptyDocument(t *testing.T) {
	got, err := newDec(true).Decode("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(value.Null); !ok {
		t.Errorf("got %#v, want Null", got)
	}
}

func TestDecodeInlineArray(t *testing.T) {
	got, err := newDec(true).Decode("[3]: 1, 2, 3")
	if err != nil {
		t.Fatal(err)
	}
	want := value.Array{value.Number(1), value.Number(2), value.Number(3)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeInlineArrayCountMismatch(t *testing.T) {
	_, err := newDec(true).Decode("[3]: 1, 2")
	if err == nil {
		t.Fatal("expected an error")
	}
	de, ok := err.(*errors.DecodeError)
	if !ok {
		t.Fatalf("expected *errors.DecodeError, got %T", err)
	}
	if de.Kind != errors.KindCountMismatch {
		t.Errorf("got kind %v, want CountMismatch", de.Kind)
	}
	if de.Line != 1 {
		t.Errorf("got line %d, want 1", de.Line)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	got, err := newDec(true).Decode("[0]: ")
	if err != nil {
		t.Fatal(err)
	}
	want := value.Array{}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeFlatObject(t *testing.T) {
	got, err := newDec(true).Decode("id: 123\nname: Ada\nactive: true")
	if err != nil {
		t.Fatal(err)
	}
	want := value.Object{Fields: []value.Field{
		{Key: "id", Value: value.Number(123)},
		{Key: "name", Value: value.String("Ada")},
		{Key: "active", Value: value.Bool(true)},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeNamedInlineArray(t *testing.T) {
	got, err := newDec(true).Decode("tags[3]: admin, ops, dev")
	if err != nil {
		t.Fatal(err)
	}
	want := value.Object{Fields: []value.Field{
		{Key: "tags", Value: value.Array{value.String("admin"), value.String("ops"), value.String("dev")}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeTabularArray(t *testing.T) {
	input := "[2]{price, qty, sku}:\n  9.99, 2, A1\n  14.5, 1, B2"
	got, err := newDec(true).Decode(input)
	if err != nil {
		t.Fatal(err)
	}
	want := value.Array{
		value.Object{Fields: []value.Field{
			{Key: "price", Value: value.Number(9.99)},
			{Key: "qty", Value: value.Number(2)},
			{Key: "sku", Value: value.String("A1")},
		}},
		value.Object{Fields: []value.Field{
			{Key: "price", Value: value.Number(14.5)},
			{Key: "qty", Value: value.Number(1)},
			{Key: "sku", Value: value.String("B2")},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeExpandedPrimitiveArray(t *testing.T) {
	input := "names[3]:\n  alexandria\n  constantinople\n  byzantium"
	got, err := newDec(true).Decode(input)
	if err != nil {
		t.Fatal(err)
	}
	want := value.Object{Fields: []value.Field{
		{Key: "names", Value: value.Array{value.String("alexandria"), value.String("constantinople"), value.String("byzantium")}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeMixedArray(t *testing.T) {
	input := "items[2]:\n  1\n  a: 2"
	got, err := newDec(true).Decode(input)
	if err != nil {
		t.Fatal(err)
	}
	want := value.Object{Fields: []value.Field{
		{Key: "items", Value: value.Array{
			value.Number(1),
			value.Object{Fields: []value.Field{{Key: "a", Value: value.Number(2)}}},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeObjectElementAccumulation(t *testing.T) {
	input := "rows[2]:\n  a: 1\n  b: 2\n  a: 3\n  b: 4"
	got, err := newDec(true).Decode(input)
	if err != nil {
		t.Fatal(err)
	}
	want := value.Object{Fields: []value.Field{
		{Key: "rows", Value: value.Array{
			value.Object{Fields: []value.Field{{Key: "a", Value: value.Number(1)}, {Key: "b", Value: value.Number(2)}}},
			value.Object{Fields: []value.Field{{Key: "a", Value: value.Number(3)}, {Key: "b", Value: value.Number(4)}}},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeNestedObject(t *testing.T) {
	got, err := newDec(true).Decode("user:\n  id: 1")
	if err != nil {
		t.Fatal(err)
	}
	want := value.Object{Fields: []value.Field{
		{Key: "user", Value: value.Object{Fields: []value.Field{{Key: "id", Value: value.Number(1)}}}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeKeyWithNoDeeperContentIsNull(t *testing.T) {
	got, err := newDec(true).Decode("meta:\nid: 1")
	if err != nil {
		t.Fatal(err)
	}
	want := value.Object{Fields: []value.Field{
		{Key: "meta", Value: value.Null{}},
		{Key: "id", Value: value.Number(1)},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeRootPrimitive(t *testing.T) {
	got, err := newDec(true).Decode("42")
	if err != nil {
		t.Fatal(err)
	}
	if got != value.Number(42) {
		t.Errorf("got %#v, want Number(42)", got)
	}
}

func TestDecodeTabInLeadingWhitespaceStrict(t *testing.T) {
	_, err := newDec(true).Decode("a:\n\tb: 1")
	if err == nil {
		t.Fatal("expected an error")
	}
	de, ok := err.(*errors.DecodeError)
	if !ok || de.Kind != errors.KindIndentation {
		t.Errorf("got %v, want IndentationError", err)
	}
}

func TestDecodeBlankInsideArrayStrict(t *testing.T) {
	input := "[2]:\n  1\n\n  2"
	_, err := newDec(true).Decode(input)
	if err == nil {
		t.Fatal("expected an error")
	}
	de, ok := err.(*errors.DecodeError)
	if !ok || de.Kind != errors.KindBlankInsideArray {
		t.Errorf("got %v, want BlankInsideArray", err)
	}
}

func TestDecodeBlankInsideArrayLax(t *testing.T) {
	input := "[2]:\n  1\n\n  2"
	got, err := newDec(false).Decode(input)
	if err != nil {
		t.Fatal(err)
	}
	want := value.Array{value.Number(1), value.Number(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeCarriageReturn(t *testing.T) {
	got, err := newDec(true).Decode("id: 1\r\nname: Ada")
	if err != nil {
		t.Fatal(err)
	}
	want := value.Object{Fields: []value.Field{
		{Key: "id", Value: value.Number(1)},
		{Key: "name", Value: value.String("Ada")},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeQuotedKeyAndString(t *testing.T) {
	input := `"a: b": "hello, world"`
	got, err := newDec(true).Decode(input)
	if err != nil {
		t.Fatal(err)
	}
	want := value.Object{Fields: []value.Field{
		{Key: "a: b", Value: value.String("hello, world")},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDecodeInvalidEscape(t *testing.T) {
	_, err := newDec(true).Decode(`s: "bad \q escape"`)
	if err == nil {
		t.Fatal("expected an error")
	}
	de, ok := err.(*errors.DecodeError)
	if !ok || de.Kind != errors.KindInvalidEscape {
		t.Errorf("got %v, want InvalidEscape", err)
	}
}

func TestDecodeLineEndings(t *testing.T) {
	got, err := newDec(true).Decode(strings.Join([]string{"id: 1", "name: Ada"}, "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if obj, ok := got.(value.Object); !ok || len(obj.Fields) != 2 {
		t.Errorf("got %#v, want a two-field object", got)
	}
}
