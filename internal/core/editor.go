package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"linefile/internal/clock"
	"linefile/internal/file"
	"linefile/internal/linebuf"
	"linefile/internal/parser"
	"linefile/internal/rewrite"
	"linefile/pkg/change"
)

// ErrStale is returned by Commit when the file changed after its preview.
var ErrStale = errors.New("file changed since preview")

// DefaultJobs bounds how many files a plan edits at once.
const DefaultJobs = 4

// Result is the outcome of one edit cycle on one path.
type Result struct {
	Path    string
	Before  *linebuf.Buffer
	After   *linebuf.Buffer
	Changes change.Changeset
	Summary rewrite.Summary

	original string // raw text read, compared again on Commit
}

// Editor runs read-apply-write cycles against a Store. Cycles on the same
// path are serialized; different paths may run concurrently.
type Editor struct {
	store    file.Store
	jobs     int
	observer func(Event)
	clock    clock.Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures an Editor.
type Option func(*Editor)

// WithJobs sets the plan concurrency. Values below 1 are ignored.
func WithJobs(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.jobs = n
		}
	}
}

// WithObserver registers fn to receive an Event for every step of every cycle.
// fn may be called from several goroutines at once during a plan.
func WithObserver(fn func(Event)) Option {
	return func(e *Editor) { e.observer = fn }
}

// WithClock sets the clock used to stamp events.
func WithClock(c clock.Clock) Option {
	return func(e *Editor) { e.clock = c }
}

// NewEditor creates an Editor over store.
func NewEditor(store file.Store, opts ...Option) *Editor {
	e := &Editor{
		store: store,
		jobs:  DefaultJobs,
		clock: clock.RealClock{},
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Preview reads path and applies cs without writing anything.
func (e *Editor) Preview(ctx context.Context, path string, cs change.Changeset) (*Result, error) {
	unlock := e.lock(path)
	defer unlock()
	return e.prepare(ctx, e.clock.Now(), path, cs)
}

// Edit reads path, applies cs and writes the result back. Nothing is
// written when reading or applying fails.
func (e *Editor) Edit(ctx context.Context, path string, cs change.Changeset) (*Result, error) {
	unlock := e.lock(path)
	defer unlock()

	start := e.clock.Now()
	res, err := e.prepare(ctx, start, path, cs)
	if err != nil {
		return nil, err
	}
	if err := e.write(ctx, start, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Commit writes a previewed result, refusing with ErrStale when the file
// no longer holds the text the preview was computed from.
func (e *Editor) Commit(ctx context.Context, res *Result) error {
	unlock := e.lock(res.Path)
	defer unlock()

	start := e.clock.Now()
	if err := ctx.Err(); err != nil {
		return err
	}
	current, err := e.store.Read(res.Path)
	if err != nil {
		e.emit(start, Event{Kind: EventFailed, Path: res.Path, Err: err})
		return err
	}
	if current != res.original {
		err := fmt.Errorf("%s: %w", res.Path, ErrStale)
		e.emit(start, Event{Kind: EventFailed, Path: res.Path, Err: err})
		return err
	}
	return e.write(ctx, start, res)
}

// PreviewPlan previews every file of plan concurrently. Results are in plan
// order. A plan naming one file twice fails with parser.ErrDuplicatePath.
func (e *Editor) PreviewPlan(ctx context.Context, plan *parser.Plan) ([]*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return e.eachFile(ctx, plan, func(ctx context.Context, _ int, fc parser.FileChanges) (*Result, error) {
		return e.Preview(ctx, fc.Path, fc.Changes)
	})
}

// EditPlan previews every file of plan and, only if all previews succeed,
// commits them. A failed preview leaves every file untouched; a failed
// write leaves the commits that finished before it in place.
func (e *Editor) EditPlan(ctx context.Context, plan *parser.Plan) ([]*Result, error) {
	results, err := e.PreviewPlan(ctx, plan)
	if err != nil {
		return nil, err
	}
	return e.eachFile(ctx, plan, func(ctx context.Context, i int, _ parser.FileChanges) (*Result, error) {
		r := results[i]
		if err := e.Commit(ctx, r); err != nil {
			return nil, err
		}
		return r, nil
	})
}

func (e *Editor) eachFile(ctx context.Context, plan *parser.Plan, fn func(context.Context, int, parser.FileChanges) (*Result, error)) ([]*Result, error) {
	results := make([]*Result, len(plan.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)
	for i, fc := range plan.Files {
		i, fc := i, fc
		g.Go(func() error {
			r, err := fn(gctx, i, fc)
			if err != nil {
				return fmt.Errorf("%s: %w", fc.Path, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Editor) prepare(ctx context.Context, start time.Time, path string, cs change.Changeset) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := e.store.Read(path)
	if err != nil {
		e.emit(start, Event{Kind: EventFailed, Path: path, Err: err})
		return nil, err
	}
	before := linebuf.Parse(text)
	e.emit(start, Event{Kind: EventRead, Path: path, Lines: before.Len()})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	after, err := rewrite.Apply(before, cs)
	if err != nil {
		e.emit(start, Event{Kind: EventFailed, Path: path, Err: err})
		return nil, err
	}
	res := &Result{
		Path:     path,
		Before:   before,
		After:    after,
		Changes:  cs,
		Summary:  rewrite.Summarize(before.Len(), cs),
		original: text,
	}
	e.emit(start, Event{Kind: EventApplied, Path: path, Lines: after.Len(), Summary: res.Summary})
	return res, nil
}

func (e *Editor) write(ctx context.Context, start time.Time, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := res.After.Text()
	if err := e.store.Write(res.Path, text); err != nil {
		e.emit(start, Event{Kind: EventFailed, Path: res.Path, Err: err})
		return err
	}
	res.original = text
	e.emit(start, Event{Kind: EventWritten, Path: res.Path, Lines: res.After.Len(), Summary: res.Summary})
	return nil
}

// lock acquires the per-path mutex and returns its release func.
func (e *Editor) lock(path string) func() {
	key := filepath.Clean(path)
	e.mu.Lock()
	m, ok := e.locks[key]
	if !ok {
		m = &sync.Mutex{}
		e.locks[key] = m
	}
	e.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// emit stamps ev with the current time and the time since the step began.
func (e *Editor) emit(start time.Time, ev Event) {
	if e.observer == nil {
		return
	}
	ev.At = e.clock.Now()
	ev.Elapsed = ev.At.Sub(start)
	e.observer(ev)
}
