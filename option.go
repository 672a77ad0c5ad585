package toon

import (
	"github.com/go-playground/validator/v10"

	"github.com/tehw0lf/toon-go/delim"
	"github.com/tehw0lf/toon-go/fold"
)

// KeyFolding selects whether Marshal collapses single-key object chains
// into dotted paths before encoding (§4.F).
type KeyFolding int

const (
	// FoldOff leaves nested single-key chains alone.
	FoldOff KeyFolding = iota
	// FoldSafe folds chains whose every segment is an identifier segment.
	FoldSafe
)

// EncoderOptions is the immutable value struct of §3. The zero value is
// not ready to use; construct one with NewEncoderOptions.
type EncoderOptions struct {
	IndentWidth  int             `validate:"gt=0"`
	Delimiter    delim.Delimiter `validate:"-"`
	KeyFolding   KeyFolding      `validate:"-"`
	FlattenDepth fold.Depth      `validate:"gte=-1"`
	InlineBudget int             `validate:"gt=0"`
}

// EncoderOption mutates an EncoderOptions under construction, the
// teacher's functional-option idiom (see option.go in the teacher repo).
type EncoderOption func(*EncoderOptions)

// WithIndentWidth sets the number of spaces per indentation level.
func WithIndentWidth(n int) EncoderOption {
	return func(o *EncoderOptions) { o.IndentWidth = n }
}

// WithDelimiter selects the document-wide delimiter.
func WithDelimiter(d delim.Delimiter) EncoderOption {
	return func(o *EncoderOptions) { o.Delimiter = d }
}

// WithKeyFolding turns on or off single-key-chain folding before encode.
func WithKeyFolding(k KeyFolding) EncoderOption {
	return func(o *EncoderOptions) { o.KeyFolding = k }
}

// WithFlattenDepth bounds how many chain segments WithKeyFolding(FoldSafe)
// may collapse. Use fold.Unbounded for no limit.
func WithFlattenDepth(d fold.Depth) EncoderOption {
	return func(o *EncoderOptions) { o.FlattenDepth = d }
}

// WithInlineBudget overrides the default 80-column inline threshold
// (§9 Open Question (a)).
func WithInlineBudget(n int) EncoderOption {
	return func(o *EncoderOptions) { o.InlineBudget = n }
}

// NewEncoderOptions builds an EncoderOptions from its defaults (indent
// width 2, Comma delimiter, folding off, inline budget 80) plus opts,
// validating the result the way the teacher validates a decoded struct.
func NewEncoderOptions(opts ...EncoderOption) (EncoderOptions, error) {
	o := EncoderOptions{
		IndentWidth:  2,
		Delimiter:    delim.Comma,
		KeyFolding:   FoldOff,
		FlattenDepth: fold.Unbounded,
		InlineBudget: 80,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate.Struct(o); err != nil {
		return EncoderOptions{}, err
	}
	return o, nil
}

// PathExpansion selects whether Unmarshal expands dotted keys back into
// nested objects after decoding (§4.F), the decode-side mirror of
// KeyFolding.
type PathExpansion int

const (
	// ExpandOff leaves dotted keys as literal keys.
	ExpandOff PathExpansion = iota
	// ExpandSafe expands dotted keys whose every segment is an
	// identifier segment.
	ExpandSafe
)

// DecoderOptions is the immutable value struct of §3.
type DecoderOptions struct {
	IndentWidth int           `validate:"gt=0"`
	Strict      bool          `validate:"-"`
	ExpandPaths PathExpansion `validate:"-"`
}

// DecoderOption mutates a DecoderOptions under construction.
type DecoderOption func(*DecoderOptions)

// WithDecoderIndentWidth sets the number of spaces per indentation level.
func WithDecoderIndentWidth(n int) DecoderOption {
	return func(o *DecoderOptions) { o.IndentWidth = n }
}

// WithStrict turns strict-mode validation on or off.
func WithStrict(strict bool) DecoderOption {
	return func(o *DecoderOptions) { o.Strict = strict }
}

// WithExpandPaths turns on or off dotted-key expansion after decode.
func WithExpandPaths(e PathExpansion) DecoderOption {
	return func(o *DecoderOptions) { o.ExpandPaths = e }
}

// NewDecoderOptions builds a DecoderOptions from its defaults (indent
// width 2, lax mode, expansion off) plus opts, validated like
// NewEncoderOptions.
func NewDecoderOptions(opts ...DecoderOption) (DecoderOptions, error) {
	o := DecoderOptions{
		IndentWidth: 2,
		Strict:      false,
		ExpandPaths: ExpandOff,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate.Struct(o); err != nil {
		return DecoderOptions{}, err
	}
	return o, nil
}

var validate = validator.New()
