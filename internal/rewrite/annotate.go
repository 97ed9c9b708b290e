package rewrite

import (
	"linefile/internal/linebuf"
	"linefile/pkg/change"
)

// Op says what a changeset did to one line.
type Op int

const (
	OpKeep Op = iota
	OpInsert
	OpDelete
	OpReplace
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	}
	return "keep"
}

// Mark is one row of an annotated result. Deleted lines keep a row so a
// reader can see what went away; every other row is a line of the result.
type Mark struct {
	Op   Op
	Old  int    // pre-image index, -1 for inserted lines
	Text string // the result line, or the removed line for OpDelete
	Prev string // the line a replace overwrote
}

// Annotate replays cs over buf the same way Apply does and reports the
// fate of every line instead of building a buffer. It fails exactly when
// Apply fails.
func Annotate(buf *linebuf.Buffer, cs change.Changeset) ([]Mark, error) {
	slots, err := partition(buf.Len(), cs)
	if err != nil {
		return nil, err
	}
	lines := buf.Lines()

	marks := make([]Mark, 0, len(lines)+len(cs))
	for i := 0; i <= len(lines); i++ {
		if s, ok := slots[i]; ok {
			for _, l := range s.inserts {
				marks = append(marks, Mark{Op: OpInsert, Old: -1, Text: l})
			}
			if s.edit != nil {
				if s.edit.Kind == change.Delete {
					marks = append(marks, Mark{Op: OpDelete, Old: i, Text: lines[i]})
				} else {
					marks = append(marks, Mark{Op: OpReplace, Old: i, Text: s.edit.Content, Prev: lines[i]})
				}
				continue
			}
		}
		if i < len(lines) {
			marks = append(marks, Mark{Op: OpKeep, Old: i, Text: lines[i]})
		}
	}
	return marks, nil
}
