package rewrite

import (
	"fmt"

	"linefile/pkg/change"
)

// Summary counts what a successfully applied changeset did.
type Summary struct {
	Inserted int
	Deleted  int
	Replaced int
	Before   int // line count of the pre-image
	After    int // line count of the result
}

// Summarize describes the effect of applying cs to a buffer of before lines.
// It assumes cs applies cleanly.
func Summarize(before int, cs change.Changeset) Summary {
	s := Summary{
		Inserted: cs.Count(change.Insert),
		Deleted:  cs.Count(change.Delete),
		Replaced: cs.Count(change.Replace),
		Before:   before,
	}
	s.After = before + s.Inserted - s.Deleted
	return s
}

// Changed reports whether the changeset touched any line.
func (s Summary) Changed() bool {
	return s.Inserted+s.Deleted+s.Replaced > 0
}

func (s Summary) String() string {
	return fmt.Sprintf("+%d -%d ~%d (%d -> %d lines)", s.Inserted, s.Deleted, s.Replaced, s.Before, s.After)
}
