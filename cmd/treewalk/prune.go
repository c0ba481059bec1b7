package main

import (
	"github.com/desertwitch/treewalk/internal/pruning"
	"github.com/spf13/cobra"
)

func newPruneCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune <path>",
		Short: "Remove a directory tree, including the directory itself",
		Long: `Prune walks the directory tree at path, removing every entry that is
not a directory as it is visited, and every directory as it is exited.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := expandPath(args[0])
			if err != nil {
				return err
			}

			pruner := pruning.NewPruner(app.unixHandler, dryRun)

			return pruning.Tree(cmd.Context(), app.osHandler, &trackedWalker{app: app, title: "Pruning " + target}, pruner, target)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only log what would be removed")

	return cmd
}
