package estree

import (
	"go/token"
	"sort"
	"strings"
)

// Source is an immutable source buffer. It renders node text verbatim and
// maps byte offsets to line/column positions.
type Source struct {
	Filename string

	buf         []byte
	lineOffsets []int
}

func NewSource(filename string, buf []byte) *Source {
	offsets := []int{0}
	for i, b := range buf {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Source{
		Filename:    filename,
		buf:         buf,
		lineOffsets: offsets,
	}
}

func (s *Source) Bytes() []byte { return s.buf }

// Slice returns the text in [start, end). Out of range bounds are clamped.
func (s *Source) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.buf) {
		end = len(s.buf)
	}
	if start >= end {
		return ""
	}
	return string(s.buf[start:end])
}

// Text returns the original source text spanned by n.
func (s *Source) Text(n *Node) string {
	if n == nil {
		return ""
	}
	return s.Slice(n.Start(), n.End())
}

// Position converts a byte offset into a position with 1-based line and column.
func (s *Source) Position(offset int) token.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.buf) {
		offset = len(s.buf)
	}
	line := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > offset
	}) - 1
	return token.Position{
		Filename: s.Filename,
		Offset:   offset,
		Line:     line + 1,
		Column:   offset - s.lineOffsets[line] + 1,
	}
}

// Lines splits the buffer into lines without their terminators.
func (s *Source) Lines() []string {
	return strings.Split(string(s.buf), "\n")
}
