package main

import (
	"context"
	"fmt"

	"github.com/desertwitch/treewalk/internal/hashing"
	"github.com/desertwitch/treewalk/internal/walker"
	"github.com/spf13/cobra"
)

func newHashCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <path>",
		Short: "Print the BLAKE3 digest of every regular file of a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := expandPath(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			lines := out
			if app.uiEnabled {
				lines = nil
			}
			hasher := hashing.NewHasher(app.osHandler, lines)

			if err := app.walk(cmd.Context(), "Hashing "+start, start, hasher); err != nil {
				return err
			}

			if app.uiEnabled {
				for _, sum := range hasher.Sums() {
					fmt.Fprintf(out, "%s  %s\n", sum.Hex, sum.Path)
				}
			}

			return nil
		},
	}
}

// trackedWalker adapts [App.walk] to the walker interface expected by
// helpers that drive a walk themselves.
type trackedWalker struct {
	app   *App
	title string
}

func (w *trackedWalker) Walk(ctx context.Context, start string, visitor walker.Visitor) error {
	return w.app.walk(ctx, w.title, start, visitor)
}
