package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// DefaultMode is used when writing a file that does not exist yet.
const DefaultMode fs.FileMode = 0o644

// ErrIO matches every error raised by a Store.
var ErrIO = errors.New("i/o error")

// IOError records a failed read or write and the underlying cause.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s file '%s': %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrIO) match any IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// Store abstracts reading and writing raw text for testability.
type Store interface {
	Read(path string) (string, error)
	Write(path, text string) error
}

// OSStore implements Store using the real file system.
type OSStore struct {
	// Mode applies to newly created files; existing files keep their mode.
	Mode fs.FileMode
}

func NewOSStore(mode fs.FileMode) *OSStore {
	if mode == 0 {
		mode = DefaultMode
	}
	return &OSStore{Mode: mode}
}

func (s *OSStore) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

func (s *OSStore) Write(path, text string) error {
	mode := s.Mode
	if mode == 0 {
		mode = DefaultMode
	}
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// MemStore implements Store in memory (no disk I/O).
type MemStore struct {
	mu    sync.Mutex
	files map[string]string
	// Fail, when set, is consulted before every operation; a non-nil
	// result is returned wrapped in an IOError.
	Fail func(op, path string) error
}

func NewMemStore(files map[string]string) *MemStore {
	ms := &MemStore{files: make(map[string]string, len(files))}
	for k, v := range files {
		ms.files[k] = v
	}
	return ms
}

func (ms *MemStore) Read(path string) (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if err := ms.fail("read", path); err != nil {
		return "", err
	}
	text, ok := ms.files[path]
	if !ok {
		return "", &IOError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return text, nil
}

func (ms *MemStore) Write(path, text string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if err := ms.fail("write", path); err != nil {
		return err
	}
	ms.files[path] = text
	return nil
}

// Snapshot returns a copy of the stored files.
func (ms *MemStore) Snapshot() map[string]string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	cpy := make(map[string]string, len(ms.files))
	for k, v := range ms.files {
		cpy[k] = v
	}
	return cpy
}

func (ms *MemStore) fail(op, path string) error {
	if ms.Fail == nil {
		return nil
	}
	if err := ms.Fail(op, path); err != nil {
		return &IOError{Op: op, Path: path, Err: err}
	}
	return nil
}
