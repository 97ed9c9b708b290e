package rewrite

import (
	"errors"
	"fmt"
	"sort"

	"linefile/internal/linebuf"
	"linefile/pkg/change"
)

// ErrConflictingChange is returned when two changes of one changeset
// delete or replace the same line.
var ErrConflictingChange = errors.New("conflicting changes")

// slot collects everything a changeset does at one pre-image index.
type slot struct {
	inserts []string       // in changeset order
	edit    *change.Change // the Delete or Replace targeting the index, if any
}

// Apply applies cs to buf and returns the resulting buffer.
//
// Every index in cs refers to buf as it was before the changeset. Inserts
// land before the line at their index, in changeset order; an insert at
// buf.Len() appends. The changeset is validated as a whole before any line
// is emitted, so on error no result exists and buf is untouched.
func Apply(buf *linebuf.Buffer, cs change.Changeset) (*linebuf.Buffer, error) {
	slots, err := partition(buf.Len(), cs)
	if err != nil {
		return nil, err
	}

	indexes := make([]int, 0, len(slots))
	for i := range slots {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	var rw LineRewriter = NewCursorRewriter(buf)
	for _, i := range indexes {
		s := slots[i]
		if err := rw.CopyLinesUntil(i); err != nil {
			return nil, err
		}
		rw.InsertLines(s.inserts)
		if s.edit == nil {
			continue
		}
		var replacement []string
		if s.edit.Kind == change.Replace {
			replacement = []string{s.edit.Content}
		}
		if err := rw.ReplaceLines(i, i, replacement); err != nil {
			return nil, err
		}
	}
	rw.CopyRemainingLines()

	return rw.Buffer(), nil
}

// partition validates cs against a buffer of n lines and groups it by
// target index. The first offending change, in changeset order, decides
// the error.
func partition(n int, cs change.Changeset) (map[int]*slot, error) {
	slots := make(map[int]*slot)
	for idx, c := range cs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("change %d: %w", idx, err)
		}

		limit := n
		if c.Kind == change.Insert {
			limit = n + 1
		}
		if c.At < 0 || c.At >= limit {
			return nil, fmt.Errorf("change %d: %s: %w", idx, c, linebuf.OutOfRange(c.At, n))
		}

		s, ok := slots[c.At]
		if !ok {
			s = &slot{}
			slots[c.At] = s
		}
		if c.Kind == change.Insert {
			s.inserts = append(s.inserts, c.Content)
			continue
		}
		if s.edit != nil {
			return nil, fmt.Errorf("change %d: %w: %s and %s target line %d", idx, ErrConflictingChange, s.edit, c, c.At)
		}
		edit := c
		s.edit = &edit
	}
	return slots, nil
}
