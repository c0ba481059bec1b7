package walker

import "github.com/desertwitch/treewalk/internal/schema"

// Transition is the kind of state transition a [Visitor] is notified about.
type Transition int

const (
	// DirStart is emitted when a directory is entered, before it is listed.
	DirStart Transition = iota

	// DirEntry is emitted for every entry of a directory listing, including
	// the special entries "." and "..".
	DirEntry

	// DirExit is emitted when a directory and all of its subdirectories were
	// fully visited, after the working location was moved back to its parent.
	DirExit
)

func (t Transition) String() string {
	switch t {
	case DirStart:
		return "dir-start"
	case DirEntry:
		return "dir-entry"
	case DirExit:
		return "dir-exit"
	}

	return "unknown"
}

// Frame is the read-only view of a directory level a [Visitor] receives.
type Frame struct {
	// Name is the name of the directory, relative to its parent. For the root
	// frame it is the start path as it was given to [Walker.Walk].
	Name string

	// Depth is 0 for the root frame and increases by one per descent.
	Depth int

	// VisitCount is the number of entries (including "." and "..") that were
	// observed so far during the listing of the directory.
	VisitCount int
}

// Entry is a single entry of a directory listing.
type Entry struct {
	Name     string
	Metadata *schema.Metadata
}

// IsDotOrDotDot reports whether the [Entry] is one of the special entries "."
// or "..", which are never descended into.
func (e *Entry) IsDotOrDotDot() bool {
	return isDotOrDotDot(e.Name)
}

func isDotOrDotDot(name string) bool {
	return name == "." || name == ".."
}

// Visitor is notified by a [Walker] about every state transition of a walk.
// The entry is only non-nil for a [DirEntry] transition.
//
// Returning [ErrAbort] stops the walk without an error, returning any other
// error stops the walk and has [Walker.Walk] return it.
type Visitor interface {
	Visit(kind Transition, frame Frame, entry *Entry) error
}

// VisitorFunc is an adapter to allow the use of ordinary functions as a
// [Visitor].
type VisitorFunc func(kind Transition, frame Frame, entry *Entry) error

// Visit calls f(kind, frame, entry).
func (f VisitorFunc) Visit(kind Transition, frame Frame, entry *Entry) error {
	return f(kind, frame, entry)
}
