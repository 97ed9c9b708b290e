package change

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidContent is returned when an Insert or Replace payload carries a line terminator.
var ErrInvalidContent = errors.New("content contains a line terminator")

// ErrUnknownKind is returned when a kind name is not one of insert, delete or replace.
var ErrUnknownKind = errors.New("unknown change kind")

// Kind identifies the line-level operation a Change performs.
type Kind int

const (
	Insert Kind = iota + 1
	Delete
	Replace
)

var kindNames = map[Kind]string{
	Insert:  "insert",
	Delete:  "delete",
	Replace: "replace",
}

// String returns the lowercase name used in changeset documents.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a document kind name (case-insensitive) to a Kind.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, v := range kindNames {
		if v == n {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Change is a single line-level edit. At is a 0-based line index in the
// buffer as it was before any change of the same Changeset was applied.
type Change struct {
	Kind    Kind
	At      int
	Content string // Insert and Replace only
}

// Changeset is an ordered batch of changes sharing one pre-image.
type Changeset []Change

// NewInsert returns a Change that inserts content before line at.
// at may equal the buffer length to append.
func NewInsert(at int, content string) Change {
	return Change{Kind: Insert, At: at, Content: content}
}

// NewDelete returns a Change that removes line at.
func NewDelete(at int) Change {
	return Change{Kind: Delete, At: at}
}

// NewReplace returns a Change that substitutes line at with content.
func NewReplace(at int, content string) Change {
	return Change{Kind: Replace, At: at, Content: content}
}

// Validate checks the payload of the change. Index bounds depend on the
// buffer and are checked by the applier.
func (c Change) Validate() error {
	switch c.Kind {
	case Insert, Replace:
		if strings.Contains(c.Content, "\n") {
			return fmt.Errorf("%s: %w", c, ErrInvalidContent)
		}
	case Delete:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKind, c.Kind)
	}
	return nil
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Kind {
	case Insert:
		return fmt.Sprintf("Insert(%d, %q)", c.At, c.Content)
	case Delete:
		return fmt.Sprintf("Delete(%d)", c.At)
	case Replace:
		return fmt.Sprintf("Replace(%d, %q)", c.At, c.Content)
	}
	return fmt.Sprintf("%s(%d)", c.Kind, c.At)
}

// Validate checks every change in order and returns the first failure.
func (cs Changeset) Validate() error {
	for i, c := range cs {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("change %d: %w", i, err)
		}
	}
	return nil
}

// Count returns how many changes of kind k the set contains.
func (cs Changeset) Count(k Kind) int {
	n := 0
	for _, c := range cs {
		if c.Kind == k {
			n++
		}
	}
	return n
}
