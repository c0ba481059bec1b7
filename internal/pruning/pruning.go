// Package pruning implements a [walker.Visitor] that deletes a directory tree.
//
// Every visited entry that is not a directory is removed immediately, every
// directory is removed once it is exited. A [walker.Walker] guarantees that a
// directory is only exited after all of its subdirectories were exited, so
// directories are always empty by the time they are removed.
package pruning

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/desertwitch/treewalk/internal/walker"
)

type osProvider interface {
	Chdir(dir string) error
}

type unixProvider interface {
	Rmdir(path string) error
	Unlink(path string) error
}

type treeWalker interface {
	Walk(ctx context.Context, start string, visitor walker.Visitor) error
}

// Pruner is the principal implementation of the pruning visitor.
type Pruner struct {
	unixHandler unixProvider
	dryRun      bool

	FilesRemoved int
	DirsRemoved  int
}

// NewPruner returns a pointer to a new [Pruner]. With dryRun set, all
// removals are only logged, but not executed.
func NewPruner(unixHandler unixProvider, dryRun bool) *Pruner {
	return &Pruner{
		unixHandler: unixHandler,
		dryRun:      dryRun,
	}
}

// Visit implements [walker.Visitor].
func (p *Pruner) Visit(kind walker.Transition, frame walker.Frame, entry *walker.Entry) error {
	switch kind {
	case walker.DirEntry:
		if entry.Metadata.IsDir() {
			return nil
		}

		slog.Info("unlink:", "path", entry.Name, "dry", p.dryRun)

		if !p.dryRun {
			if err := p.unixHandler.Unlink(entry.Name); err != nil {
				return fmt.Errorf("(pruning) %w: unlink %s: %w", ErrRemoval, entry.Name, err)
			}
		}
		p.FilesRemoved++

	case walker.DirExit:
		slog.Info("rmdir:", "path", frame.Name, "dry", p.dryRun)

		if !p.dryRun {
			if err := p.unixHandler.Rmdir(frame.Name); err != nil {
				return fmt.Errorf("(pruning) %w: rmdir %s: %w", ErrRemoval, frame.Name, err)
			}
		}
		p.DirsRemoved++

	case walker.DirStart:
	}

	return nil
}

// Tree removes the directory tree at target, including target itself. It
// changes the working location into the parent of target first, so that the
// final removal of target can happen relative to it.
func Tree(ctx context.Context, osHandler osProvider, w treeWalker, p *Pruner, target string) error {
	target = filepath.Clean(target)

	parent, base := filepath.Dir(target), filepath.Base(target)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return fmt.Errorf("(pruning) %w: %s", ErrInvalidTarget, target)
	}

	if err := osHandler.Chdir(parent); err != nil {
		return fmt.Errorf("(pruning) %w: %s: %w", walker.ErrNavigation, parent, err)
	}

	if err := w.Walk(ctx, base, p); err != nil {
		return fmt.Errorf("(pruning) failed to prune %s: %w", target, err)
	}

	slog.Info("Pruned directory tree.",
		"path", target,
		"files", p.FilesRemoved,
		"dirs", p.DirsRemoved,
	)

	return nil
}
