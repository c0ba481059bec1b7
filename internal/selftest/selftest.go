// Package selftest implements the path evaluation self-test.
//
// The self-test creates a scratch directory below a base directory, descends
// into a chain of nested numbered directories (1/2/.../N) while querying the
// working location at every level, then prunes the scratch directory with the
// walker and finally walks the base directory with a printer.
package selftest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/desertwitch/treewalk/internal/printing"
	"github.com/desertwitch/treewalk/internal/pruning"
	"github.com/desertwitch/treewalk/internal/walker"
	"github.com/google/uuid"
)

// TopPrefix is the name prefix of generated scratch directories.
const TopPrefix = "test-nfs01-"

// ErrSetup is an error that occurs when the scratch directory chain cannot
// be created or entered.
var ErrSetup = errors.New("self-test setup failed")

type osProvider interface {
	Chdir(dir string) error
	Getwd() (string, error)
}

type unixProvider interface {
	Mkdir(path string, mode uint32) error
	Rmdir(path string) error
	Unlink(path string) error
}

type treeWalker interface {
	Walk(ctx context.Context, start string, visitor walker.Visitor) error
}

// Options are the options of a self-test run.
type Options struct {
	// Base is the directory below which the scratch directory is created.
	Base string

	// Top is the name of the scratch directory. An empty Top results in a
	// unique name beginning with [TopPrefix].
	Top string

	// Depth is the amount of nested numbered directories.
	Depth int

	// Out receives the lines of the final print walk, nil discards them.
	Out io.Writer

	// Printing are the options of the final print walk.
	Printing printing.Options
}

// Result is the outcome of a successful self-test run.
type Result struct {
	Top          string
	Levels       []string
	FilesRemoved int
	DirsRemoved  int
	Printed      int
}

// Runner is the principal implementation of the self-test runner.
type Runner struct {
	osHandler   osProvider
	unixHandler unixProvider
	walker      treeWalker
}

// NewRunner returns a pointer to a new [Runner].
func NewRunner(osHandler osProvider, unixHandler unixProvider, w treeWalker) *Runner {
	return &Runner{
		osHandler:   osHandler,
		unixHandler: unixHandler,
		walker:      w,
	}
}

// Run executes the self-test. A relative base is resolved against the
// working location first. Afterwards the working location is the parent of
// the base directory, unless an error occurred.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Top == "" {
		opts.Top = TopPrefix + uuid.NewString()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	if !filepath.IsAbs(opts.Base) {
		wd, err := r.osHandler.Getwd()
		if err != nil {
			return nil, fmt.Errorf("(selftest) %w: getwd: %w", ErrSetup, err)
		}
		opts.Base = filepath.Join(wd, opts.Base)
	}

	res := &Result{Top: opts.Top}

	slog.Info("Running path evaluation self-test.",
		"base", opts.Base,
		"top", opts.Top,
		"depth", opts.Depth,
	)

	if err := r.setup(opts.Base, opts.Top); err != nil {
		return nil, err
	}

	for l := 1; l <= opts.Depth; l++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("(selftest) %w: %w", walker.ErrCancelled, err)
		}

		wd, err := r.descend(strconv.Itoa(l))
		if err != nil {
			return nil, err
		}
		res.Levels = append(res.Levels, wd)
	}

	pruner := pruning.NewPruner(r.unixHandler, false)
	if err := pruning.Tree(ctx, r.osHandler, r.walker, pruner, filepath.Join(opts.Base, opts.Top)); err != nil {
		return nil, fmt.Errorf("(selftest) failed to clean up: %w", err)
	}
	res.FilesRemoved = pruner.FilesRemoved
	res.DirsRemoved = pruner.DirsRemoved

	printer := printing.NewPrinter(opts.Out, opts.Printing)
	if err := r.walker.Walk(ctx, opts.Base, printer); err != nil {
		return nil, fmt.Errorf("(selftest) failed to print %s: %w", opts.Base, err)
	}
	res.Printed = printer.Count()

	return res, nil
}

func (r *Runner) setup(base string, top string) error {
	if err := r.osHandler.Chdir(base); err != nil {
		return fmt.Errorf("(selftest) %w: chdir %s: %w", ErrSetup, base, err)
	}

	if err := r.unixHandler.Mkdir(top, 0o777); err != nil { //nolint:mnd
		return fmt.Errorf("(selftest) %w: mkdir %s: %w", ErrSetup, top, err)
	}

	if err := r.osHandler.Chdir(top); err != nil {
		return fmt.Errorf("(selftest) %w: chdir %s: %w", ErrSetup, top, err)
	}

	return nil
}

func (r *Runner) descend(name string) (string, error) {
	slog.Info("mkdir:", "path", name)

	if err := r.unixHandler.Mkdir(name, 0o777); err != nil { //nolint:mnd
		return "", fmt.Errorf("(selftest) %w: mkdir %s: %w", ErrSetup, name, err)
	}

	slog.Info("chdir:", "path", name)

	if err := r.osHandler.Chdir(name); err != nil {
		return "", fmt.Errorf("(selftest) %w: chdir %s: %w", ErrSetup, name, err)
	}

	wd, err := r.osHandler.Getwd()
	if err != nil {
		return "", fmt.Errorf("(selftest) %w: getwd in %s: %w", ErrSetup, name, err)
	}

	slog.Info("getwd:", "path", wd)

	return wd, nil
}
