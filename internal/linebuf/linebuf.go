// Package linebuf holds file contents as a densely numbered sequence of lines.
package linebuf

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Terminator separates lines in raw text.
const Terminator = "\n"

// ErrLineNotFound is returned when an index falls outside the buffer.
var ErrLineNotFound = errors.New("line not found")

// Buffer is an ordered, 0-based, line-addressable view of text.
// Lines never contain the terminator. A Buffer is not mutated once
// built; edits produce a new Buffer.
type Buffer struct {
	lines []string
}

// Parse splits text on the terminator. Text ending with a terminator
// yields a trailing empty line, and empty text yields a single empty line.
func Parse(text string) *Buffer {
	return &Buffer{lines: strings.Split(text, Terminator)}
}

// FromLines builds a buffer whose line i is lines[i]. The slice is copied.
func FromLines(lines []string) *Buffer {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Buffer{lines: cp}
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Line returns the content of line index.
func (b *Buffer) Line(index int) (string, error) {
	if index < 0 || index >= len(b.lines) {
		return "", OutOfRange(index, len(b.lines))
	}
	return b.lines[index], nil
}

// Lines returns a copy of all lines in index order.
func (b *Buffer) Lines() []string {
	cp := make([]string, len(b.lines))
	copy(cp, b.lines)
	return cp
}

// Text joins the lines in index order with the terminator, without a
// trailing terminator.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, Terminator)
}

// WriteTo streams the same bytes Text returns.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, line := range b.lines {
		if i > 0 {
			n, err := io.WriteString(w, Terminator)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := io.WriteString(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Equal reports whether both buffers hold the same lines.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if len(b.lines) != len(other.lines) {
		return false
	}
	for i := range b.lines {
		if b.lines[i] != other.lines[i] {
			return false
		}
	}
	return true
}

// OutOfRange builds an ErrLineNotFound for index against a buffer of n lines.
func OutOfRange(index, n int) error {
	if n == 0 {
		return fmt.Errorf("%w: index %d, buffer is empty", ErrLineNotFound, index)
	}
	return fmt.Errorf("%w: index %d out of bounds (0-%d)", ErrLineNotFound, index, n-1)
}
