package errors_test

import (
	"strings"
	"testing"

	"github.com/tehw0lf/toon-go/errors"
)

func TestDecodeErrorMessage(t *testing.T) {
	err := errors.New(errors.KindCountMismatch, 1, "[3]: 1, 2", "element count disagrees with declared length").
		WithExpectedActual("3", "2")
	msg := err.Error()
	if !strings.Contains(msg, "CountMismatch") {
		t.Errorf("expected message to name the kind, got %q", msg)
	}
	if !strings.Contains(msg, "line 1") {
		t.Errorf("expected message to carry the line number, got %q", msg)
	}
	if !strings.Contains(msg, "expected 3, got 2") {
		t.Errorf("expected message to carry expected/actual, got %q", msg)
	}
}

func TestDecodeErrorKindString(t *testing.T) {
	if errors.KindIndentation.String() != "IndentationError" {
		t.Errorf("unexpected Kind string: %s", errors.KindIndentation)
	}
}
