// Package printer renders a decode error's source line with a colorized
// caret under the offending column, the same job the teacher's printer
// package does for a YAML syntax error — minus the token-stream walk,
// since a TOON diagnostic only ever needs one line of context.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
)

// NoColor disables ANSI color codes in Snippet's output, mirroring
// color.NoColor. Set it true for dumb terminals or log files.
var NoColor = false

var (
	lineColor  = color.New(color.FgHiBlack)
	caretColor = color.New(color.FgRed, color.Bold)
)

// Snippet renders line, and — when column is a valid 1-based index into
// line — a second line with a caret under that column.
func Snippet(line string, column int) string {
	var b strings.Builder
	b.WriteString(sprint(lineColor, "  "+line))
	if column >= 1 && column <= len([]rune(line))+1 {
		b.WriteString("\n")
		b.WriteString(sprint(caretColor, "  "+strings.Repeat(" ", column-1)+"^"))
	}
	return b.String()
}

func sprint(c *color.Color, s string) string {
	if NoColor || color.NoColor {
		return s
	}
	return c.Sprint(s)
}

// Fprint writes Snippet's rendering of line/column to w. When w is an
// *os.File it is wrapped with go-colorable first, so a Windows console
// still interprets the ANSI escapes fatih/color emits; any other writer
// is used as-is.
func Fprint(w io.Writer, line string, column int) {
	if f, ok := w.(*os.File); ok {
		w = colorable.NewColorable(f)
	}
	fmt.Fprintln(w, Snippet(line, column))
}
