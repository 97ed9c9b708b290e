package core

import (
	"time"

	"linefile/internal/rewrite"
)

// EventKind identifies a step of an edit cycle.
type EventKind int

const (
	EventRead EventKind = iota
	EventApplied
	EventWritten
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventRead:
		return "read"
	case EventApplied:
		return "applied"
	case EventWritten:
		return "written"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

// Event reports one step of an edit cycle to an observer.
type Event struct {
	Kind    EventKind
	Path    string
	Lines   int             // buffer length after the step
	Summary rewrite.Summary // set for EventApplied and EventWritten
	Err     error           // set for EventFailed
	At      time.Time
	Elapsed time.Duration // since the operation that emitted the event started
}
