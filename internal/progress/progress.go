// Package progress implements a [walker.Visitor] decorator that tracks the
// progress of a walk, for observation from other goroutines.
package progress

import (
	"sync"
	"time"

	"github.com/desertwitch/treewalk/internal/printing"
	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/desertwitch/treewalk/internal/walker"
)

// Progress is a point-in-time snapshot of a [Tracker].
type Progress struct {
	Dirs        int
	Entries     int
	Bytes       uint64
	ByType      map[schema.EntryType]int
	MaxDepth    int
	CurrentPath string
	StartTime   time.Time
	FinishTime  time.Time
	HasStarted  bool
	HasFinished bool
	Err         error
}

// Tracker wraps a [walker.Visitor] and records the progress of the walk that
// notifies it. All transitions are passed on to the wrapped visitor.
type Tracker struct {
	sync.RWMutex

	next walker.Visitor
	path printing.Path

	dirs        int
	entries     int
	bytes       uint64
	byType      map[schema.EntryType]int
	maxDepth    int
	startTime   time.Time
	finishTime  time.Time
	hasStarted  bool
	hasFinished bool
	err         error
}

// NewTracker returns a pointer to a new [Tracker] wrapping next.
func NewTracker(next walker.Visitor) *Tracker {
	return &Tracker{
		next:   next,
		byType: make(map[schema.EntryType]int),
	}
}

// Visit implements [walker.Visitor].
func (t *Tracker) Visit(kind walker.Transition, frame walker.Frame, entry *walker.Entry) error {
	t.Lock()

	if !t.hasStarted {
		t.hasStarted = true
		t.startTime = time.Now()
	}

	switch kind {
	case walker.DirStart:
		t.dirs++
		t.path.Enter(frame.Name)
		t.maxDepth = max(t.maxDepth, frame.Depth)

	case walker.DirEntry:
		t.entries++
		t.byType[entry.Metadata.Type]++
		if entry.Metadata.Size > 0 && !entry.IsDotOrDotDot() {
			t.bytes += uint64(entry.Metadata.Size)
		}

	case walker.DirExit:
		t.path.Exit()
	}

	t.Unlock()

	return t.next.Visit(kind, frame, entry)
}

// Finish marks the tracked walk as finished, with the walk's result.
func (t *Tracker) Finish(err error) {
	t.Lock()
	defer t.Unlock()

	t.hasFinished = true
	t.finishTime = time.Now()
	t.err = err
}

// Snapshot returns the current [Progress] of the tracked walk.
func (t *Tracker) Snapshot() Progress {
	t.RLock()
	defer t.RUnlock()

	byType := make(map[schema.EntryType]int, len(t.byType))
	for k, v := range t.byType {
		byType[k] = v
	}

	return Progress{
		Dirs:        t.dirs,
		Entries:     t.entries,
		Bytes:       t.bytes,
		ByType:      byType,
		MaxDepth:    t.maxDepth,
		CurrentPath: t.path.String(),
		StartTime:   t.startTime,
		FinishTime:  t.finishTime,
		HasStarted:  t.hasStarted,
		HasFinished: t.hasFinished,
		Err:         t.err,
	}
}
