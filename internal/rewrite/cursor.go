package rewrite

import (
	"fmt"

	"linefile/internal/linebuf"
)

// CursorRewriter implements LineRewriter over an in-memory buffer.
// The original buffer is only read.
type CursorRewriter struct {
	original []string
	output   []string
	cursor   int // how many original lines have been consumed so far
}

var _ LineRewriter = (*CursorRewriter)(nil)

// NewCursorRewriter constructs a CursorRewriter positioned at line 0 of buf.
func NewCursorRewriter(buf *linebuf.Buffer) *CursorRewriter {
	return &CursorRewriter{
		original: buf.Lines(),
		output:   make([]string, 0, buf.Len()),
	}
}

// CopyLinesUntil writes original lines [cursor..lineIndex-1] and positions the cursor at lineIndex.
func (rw *CursorRewriter) CopyLinesUntil(lineIndex int) error {
	if lineIndex > len(rw.original) {
		return linebuf.OutOfRange(lineIndex, len(rw.original))
	}
	if lineIndex < rw.cursor {
		return fmt.Errorf("cannot move back to line %d, already at line %d", lineIndex, rw.cursor)
	}
	rw.output = append(rw.output, rw.original[rw.cursor:lineIndex]...)
	rw.cursor = lineIndex
	return nil
}

// ReplaceLines replaces original lines startLine..endLine (inclusive) with newLines.
// A nil newLines deletes the range.
func (rw *CursorRewriter) ReplaceLines(startLine, endLine int, newLines []string) error {
	if endLine < startLine {
		return fmt.Errorf("invalid line range %d-%d", startLine, endLine)
	}
	if endLine >= len(rw.original) {
		return linebuf.OutOfRange(endLine, len(rw.original))
	}
	// Copy up to startLine, then skip the replaced range.
	if err := rw.CopyLinesUntil(startLine); err != nil {
		return err
	}
	rw.cursor = endLine + 1
	rw.output = append(rw.output, newLines...)
	return nil
}

// InsertLines writes newLines before the line under the cursor.
func (rw *CursorRewriter) InsertLines(newLines []string) {
	rw.output = append(rw.output, newLines...)
}

// CopyRemainingLines writes all lines from the cursor through the end.
func (rw *CursorRewriter) CopyRemainingLines() {
	rw.output = append(rw.output, rw.original[rw.cursor:]...)
	rw.cursor = len(rw.original)
}

// Buffer returns the rewritten buffer.
func (rw *CursorRewriter) Buffer() *linebuf.Buffer {
	return linebuf.FromLines(rw.output)
}
