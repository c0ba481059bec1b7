package main

import (
	"fmt"

	"github.com/desertwitch/treewalk/internal/printing"
	"github.com/desertwitch/treewalk/internal/selftest"
	"github.com/spf13/cobra"
)

type selftestOptions struct {
	base  string
	top   string
	depth int
}

func newSelftestCmd(app *App) *cobra.Command {
	opts := &selftestOptions{}

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the path evaluation self-test below a base directory",
		Long: `Selftest creates a scratch directory below the base directory, descends
into a chain of nested numbered directories, querying the working location at
every level, then prunes the scratch directory and prints the base directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base, err := expandPath(opts.base)
			if err != nil {
				return err
			}

			depth := app.config.SelftestDepth
			if cmd.Flags().Changed("depth") {
				depth = opts.depth
			}

			runner := selftest.NewRunner(app.osHandler, app.unixHandler, app.walker)

			res, err := runner.Run(cmd.Context(), selftest.Options{
				Base:     base,
				Top:      opts.top,
				Depth:    depth,
				Out:      cmd.OutOrStdout(),
				Printing: printing.Options{HumanSizes: app.config.HumanSizes},
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "self-test passed: %d levels, %d directories removed, %d entries printed\n",
				len(res.Levels), res.DirsRemoved, res.Printed)

			return err
		},
	}

	cmd.Flags().StringVar(&opts.base, "base", ".", "directory below which the scratch directory is created")
	cmd.Flags().StringVar(&opts.top, "top", "", "name of the scratch directory (default "+selftest.TopPrefix+"<uuid>)")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "amount of nested directories (default from configuration)")

	return cmd
}
