// Package walker implements a non-recursive walker of directory trees.
//
// The [Walker] visits every entry of a directory subtree exactly once, in
// depth-first order, keeping an explicit stack of directory frames instead of
// recursing. It moves the process-wide working location along with the walk,
// so that all filesystem calls (and those of a [Visitor]) can use names
// relative to the directory that is currently being visited. As a consequence,
// no two walks may run concurrently within the same process.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sys/unix"
)

const (
	// DefaultBatchSize is the amount of directory entries that are read from a
	// listing handle at once, unless otherwise configured.
	DefaultBatchSize = 128

	parentDir  = ".."
	currentDir = "."
)

type osProvider interface {
	Chdir(dir string) error
	OpenDir(name string) (schema.DirHandle, error)
}

type unixProvider interface {
	Lstat(path string, stat *unix.Stat_t) error
}

// frame is the internal state of a directory level on the walker's stack. The
// parent of a frame is the frame below it on the stack.
type frame struct {
	Frame

	pending []string // child directories not yet descended into, most recent last
	current string   // child directory currently (or last) descended into
	listed  bool
}

// Walker is the principal implementation of the directory tree walker.
type Walker struct {
	osHandler   osProvider
	unixHandler unixProvider
	batchSize   int
}

// NewWalker returns a pointer to a new [Walker]. A batchSize of zero or less
// results in the [DefaultBatchSize].
func NewWalker(osHandler osProvider, unixHandler unixProvider, batchSize int) *Walker {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Walker{
		osHandler:   osHandler,
		unixHandler: unixHandler,
		batchSize:   batchSize,
	}
}

// Walk changes the working location into start and walks the directory tree
// below it, notifying the visitor about every [Transition].
//
// Sibling directories are descended into in reverse listing order. After a
// completed walk the working location is the parent of start. When the walk
// is aborted by the visitor, the working location remains in the directory
// that was visited last. When a navigation error occurs, it remains wherever
// the failed operation left it.
func (w *Walker) Walk(ctx context.Context, start string, visitor Visitor) error {
	if err := w.osHandler.Chdir(start); err != nil {
		return fmt.Errorf("(walker) %w: %s: %w", ErrNavigation, start, err)
	}

	stack := []*frame{{Frame: Frame{Name: start}}}

	active, err := w.emit(ctx, visitor, DirStart, stack[0].Frame, nil)
	if err != nil {
		return err
	}

	for len(stack) > 0 && active {
		dir := stack[len(stack)-1]

		if !dir.listed {
			active, err = w.list(ctx, dir, visitor)
			if err != nil {
				return err
			}
			if !active {
				break
			}
			dir.listed = true
		}

		if len(dir.pending) > 0 {
			dir.current = dir.pending[len(dir.pending)-1]
			dir.pending = dir.pending[:len(dir.pending)-1]

			child := &frame{
				Frame: Frame{
					Name:  dir.current,
					Depth: dir.Depth + 1,
				},
			}
			stack = append(stack, child)

			active, err = w.emit(ctx, visitor, DirStart, child.Frame, nil)
			if err != nil {
				return err
			}

			if active {
				if err := w.osHandler.Chdir(child.Name); err != nil {
					return fmt.Errorf("(walker) %w: %s: %w", ErrNavigation, child.Name, err)
				}
			}

			continue
		}

		if err := w.osHandler.Chdir(parentDir); err != nil {
			return fmt.Errorf("(walker) %w: leaving %s: %w", ErrNavigation, dir.Name, err)
		}

		active, err = w.emit(ctx, visitor, DirExit, dir.Frame, nil)
		if err != nil {
			return err
		}

		dir.current = ""
		stack[len(stack)-1] = nil
		stack = stack[:len(stack)-1]
	}

	if !active {
		slog.Debug("Walk was aborted by the visitor",
			"path", start,
		)
	}

	return nil
}

// list reads the listing of the current working location into the frame,
// notifying the visitor about every entry and scheduling subdirectories for
// later descent. The listing handle is closed on every return path.
func (w *Walker) list(ctx context.Context, dir *frame, visitor Visitor) (active bool, err error) {
	handle, err := w.osHandler.OpenDir(currentDir)
	if err != nil {
		return false, fmt.Errorf("(walker) %w: opening %s: %w", ErrListing, dir.Name, err)
	}

	defer func() {
		if cerr := handle.Close(); cerr != nil {
			err = multierror.Append(err,
				fmt.Errorf("(walker) %w: closing %s: %w", ErrListing, dir.Name, cerr),
			).ErrorOrNil()
			active = false
		}
	}()

	for _, name := range []string{currentDir, parentDir} {
		active, err = w.visitEntry(ctx, dir, name, visitor)
		if err != nil || !active {
			return active, err
		}
	}

	for {
		entries, rerr := handle.ReadDir(w.batchSize)

		for _, entry := range entries {
			active, err = w.visitEntry(ctx, dir, entry.Name(), visitor)
			if err != nil || !active {
				return active, err
			}
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return true, nil
			}

			return false, fmt.Errorf("(walker) %w: reading %s: %w", ErrListing, dir.Name, rerr)
		}

		if len(entries) == 0 {
			return true, nil
		}
	}
}

// visitEntry establishes the metadata of a single listed entry, notifies the
// visitor about it and schedules it for descent if it is a subdirectory.
func (w *Walker) visitEntry(ctx context.Context, dir *frame, name string, visitor Visitor) (bool, error) {
	var stat unix.Stat_t

	if err := w.unixHandler.Lstat(name, &stat); err != nil {
		return false, fmt.Errorf("(walker) %w: %s in %s: %w", ErrStat, name, dir.Name, err)
	}

	metadata := schema.NewMetadata(&stat)
	dir.VisitCount++

	active, err := w.emit(ctx, visitor, DirEntry, dir.Frame, &Entry{Name: name, Metadata: metadata})
	if err != nil || !active {
		return active, err
	}

	if metadata.IsDir() && !isDotOrDotDot(name) {
		dir.pending = append(dir.pending, name)
	}

	return true, nil
}

// emit notifies the visitor about a transition. It returns false if the walk
// is no longer active, either by the visitor's [ErrAbort] or by an error.
func (w *Walker) emit(ctx context.Context, visitor Visitor, kind Transition, f Frame, entry *Entry) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("(walker) %w: %w", ErrCancelled, err)
	}

	if err := visitor.Visit(kind, f, entry); err != nil {
		if errors.Is(err, ErrAbort) {
			return false, nil
		}

		return false, fmt.Errorf("(walker) %w: %s of %s: %w", ErrVisitor, kind, f.Name, err)
	}

	return true, nil
}
