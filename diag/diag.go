// Package diag renders located errors against the source they came from.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/takoeight0821/tinycc/span"
)

const tabWidth = 4

// Located is an error that points into the source.
type Located interface {
	error
	span.Spanned
}

// Locate returns the first error in err's chain that carries a span.
func Locate(err error) (Located, bool) {
	var loc Located
	if errors.As(err, &loc) {
		return loc, true
	}
	return nil, false
}

// Render formats err as three lines: the position, the source line, and a caret
// underline followed by the message.
func Render(source string, err Located) string {
	s := err.Span()
	start := clamp(s.Start, 0, len(source))
	end := clamp(s.End, start, len(source))

	lineStart := strings.LastIndexByte(source[:start], '\n') + 1
	lineEnd := len(source)
	if i := strings.IndexByte(source[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}

	lineNo := 1 + strings.Count(source[:lineStart], "\n")
	col := max(utf8.RuneCountInString(source[lineStart:start]), 1)

	pad := utf8.RuneCountInString(expandTabs(source[lineStart:start]))
	width := max(utf8.RuneCountInString(expandTabs(source[start:end])), 1)

	var b strings.Builder
	fmt.Fprintf(&b, "line %d, col %d\n", lineNo, col)
	b.WriteString(expandTabs(source[lineStart:lineEnd]))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(strings.Repeat("^", width))
	b.WriteString(" ")
	b.WriteString(err.Error())
	b.WriteString("\n")

	return b.String()
}

// Fprint writes the rendering of err to w.
func Fprint(w io.Writer, source string, err Located) error {
	_, werr := io.WriteString(w, Render(source, err))
	return werr
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
