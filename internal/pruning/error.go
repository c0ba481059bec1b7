package pruning

import "errors"

var (
	// ErrRemoval is an error that occurs when a visited file or an exited
	// directory cannot be removed.
	ErrRemoval = errors.New("removal failed")

	// ErrInvalidTarget is an error that occurs when a tree to be pruned has no
	// parent that could be navigated to, such as the filesystem root.
	ErrInvalidTarget = errors.New("invalid prune target")
)
