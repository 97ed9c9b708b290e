package rewrite

import "linefile/internal/linebuf"

// LineRewriter lets you copy/cut/paste at the granularity of whole lines
// while walking an original buffer from top to bottom.
type LineRewriter interface {
	// CopyLinesUntil writes original lines [cursor..lineIndex-1], positioning the cursor at lineIndex.
	CopyLinesUntil(lineIndex int) error

	// ReplaceLines replaces all original lines from startLine through endLine (inclusive)
	// with newLines (each element is one line, without a terminator).
	//
	// Internally, this means:
	//   1. Copy any lines < startLine
	//   2. Consume (skip) original lines [startLine..endLine]
	//   3. Write each line from newLines
	//   4. Leave the cursor at line endLine+1, ready for further Copy/Insert/Replace calls
	ReplaceLines(startLine, endLine int, newLines []string) error

	// InsertLines writes newLines at the current cursor without consuming any original line.
	InsertLines(newLines []string)

	// CopyRemainingLines writes all leftover original lines (from the cursor to the end).
	CopyRemainingLines()

	// Buffer returns the fully rewritten, densely numbered buffer.
	Buffer() *linebuf.Buffer
}
