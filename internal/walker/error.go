package walker

import (
	"errors"
	"io/fs"
)

var (
	// ErrAbort is returned by a [Visitor] to request a cooperative early
	// termination of a walk. It is not an error: [Walker.Walk] unwinds and
	// returns nil when it is received.
	ErrAbort = fs.SkipAll

	// ErrNavigation is an error that occurs when the working location cannot be
	// changed into a directory of the walked tree, or back out of it.
	ErrNavigation = errors.New("navigation failed")

	// ErrListing is an error that occurs when a directory cannot be opened or
	// read for listing, or its listing handle cannot be closed.
	ErrListing = errors.New("listing failed")

	// ErrStat is an error that occurs when the metadata of a listed directory
	// entry cannot be obtained.
	ErrStat = errors.New("metadata lookup failed")

	// ErrVisitor is an error that occurs when a [Visitor] returns any error
	// other than [ErrAbort].
	ErrVisitor = errors.New("visitor failed")

	// ErrCancelled is an error that occurs when the context of a walk is
	// cancelled while the walk is still in progress.
	ErrCancelled = errors.New("walk cancelled")
)
