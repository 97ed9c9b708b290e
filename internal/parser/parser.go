package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"linefile/pkg/change"
)

var (
	// ErrInvalidRecord is returned when a change record cannot become a Change.
	ErrInvalidRecord = errors.New("invalid change record")

	// ErrDuplicatePath is returned when a plan lists the same file twice.
	ErrDuplicatePath = errors.New("path listed more than once")
)

// record is one change as written in a document:
//
//	{"kind": "insert", "at": 2, "content": "text"}
type record struct {
	Kind    string  `json:"kind" toml:"kind"`
	At      *int    `json:"at" toml:"at"`
	Content *string `json:"content,omitempty" toml:"content"`
}

type changesetDoc struct {
	Changes []record `json:"changes" toml:"changes"`
}

type fileDoc struct {
	Path    string   `json:"path" toml:"path"`
	Changes []record `json:"changes" toml:"changes"`
}

type planDoc struct {
	Files []fileDoc `json:"files" toml:"files"`
}

// FileChanges pairs a target path with its own pre-image addressed changeset.
type FileChanges struct {
	Path    string
	Changes change.Changeset
}

// Plan is an ordered list of per-file changesets.
type Plan struct {
	Files []FileChanges
}

// Paths returns the plan's target paths in order.
func (p *Plan) Paths() []string {
	paths := make([]string, len(p.Files))
	for i, f := range p.Files {
		paths[i] = f.Path
	}
	return paths
}

// ParseChangeset decodes a single-file changeset document. Record order is kept.
func ParseChangeset(data []byte, format Format) (change.Changeset, error) {
	var doc changesetDoc
	if err := decode(data, format, &doc); err != nil {
		return nil, err
	}
	return toChangeset(doc.Changes)
}

// ParsePlan decodes a multi-file plan document.
func ParsePlan(data []byte, format Format) (*Plan, error) {
	var doc planDoc
	if err := decode(data, format, &doc); err != nil {
		return nil, err
	}

	plan := &Plan{Files: make([]FileChanges, 0, len(doc.Files))}
	for i, f := range doc.Files {
		path := strings.TrimSpace(f.Path)
		if path == "" {
			return nil, fmt.Errorf("file %d: missing path", i)
		}
		cs, err := toChangeset(f.Changes)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", path, err)
		}
		plan.Files = append(plan.Files, FileChanges{Path: path, Changes: cs})
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

// Validate rejects a plan naming one file twice. Paths are compared after
// filepath.Clean, so "dir/a.txt" and "dir/./a.txt" are the same file.
func (p *Plan) Validate() error {
	seen := make(map[string]string, len(p.Files))
	for _, path := range p.Paths() {
		key := filepath.Clean(path)
		if first, dup := seen[key]; dup {
			if first == path {
				return fmt.Errorf("%w: %s", ErrDuplicatePath, path)
			}
			return fmt.Errorf("%w: %s and %s", ErrDuplicatePath, first, path)
		}
		seen[key] = path
	}
	return nil
}

// ParseChangesetFile reads a changeset document, choosing the format from its extension.
func ParseChangesetFile(filename string) (change.Changeset, error) {
	data, format, err := readDocument(filename)
	if err != nil {
		return nil, err
	}
	cs, err := ParseChangeset(data, format)
	if err != nil {
		return nil, fmt.Errorf("error parsing file %s: %w", filename, err)
	}
	return cs, nil
}

// ParsePlanFile reads a plan document, choosing the format from its extension.
func ParsePlanFile(filename string) (*Plan, error) {
	data, format, err := readDocument(filename)
	if err != nil {
		return nil, err
	}
	plan, err := ParsePlan(data, format)
	if err != nil {
		return nil, fmt.Errorf("error parsing file %s: %w", filename, err)
	}
	return plan, nil
}

func readDocument(filename string) ([]byte, Format, error) {
	format, err := FormatFor(filename)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return data, format, nil
}

func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		return nil
	case FormatTOML:
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("decode toml: unrecognized keys %v", undecoded)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

func toChangeset(records []record) (change.Changeset, error) {
	cs := make(change.Changeset, 0, len(records))
	for i, r := range records {
		c, err := r.toChange()
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrInvalidRecord, i, err)
		}
		cs = append(cs, c)
	}
	if err := cs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return cs, nil
}

func (r record) toChange() (change.Change, error) {
	if strings.TrimSpace(r.Kind) == "" {
		return change.Change{}, errors.New("missing kind")
	}
	kind, err := change.ParseKind(r.Kind)
	if err != nil {
		return change.Change{}, err
	}
	if r.At == nil {
		return change.Change{}, errors.New("missing at")
	}
	if *r.At < 0 {
		return change.Change{}, fmt.Errorf("negative at %d", *r.At)
	}

	var content string
	if r.Content != nil {
		content = *r.Content
	}
	switch kind {
	case change.Delete:
		if r.Content != nil {
			return change.Change{}, errors.New("delete takes no content")
		}
		return change.NewDelete(*r.At), nil
	case change.Insert:
		return change.NewInsert(*r.At, content), nil
	default:
		if r.Content == nil {
			return change.Change{}, errors.New("replace requires content")
		}
		return change.NewReplace(*r.At, content), nil
	}
}
