// Package span provides byte-offset ranges into a source buffer.
package span

import "fmt"

// Span is a half-open byte range [Start, End) into the source text it was produced from.
// A Span is only meaningful against that exact buffer.
type Span struct {
	Start int
	End   int
}

func New(start, end int) Span {
	return Span{Start: start, End: end}
}

// Single returns a one-byte span at pos. It is used for "here" locations such as an
// unexpected character or the end of input.
func Single(pos int) Span {
	return Span{Start: pos, End: pos + 1}
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Spanned is implemented by anything that can point at a location in the source.
type Spanned interface {
	Span() Span
}
