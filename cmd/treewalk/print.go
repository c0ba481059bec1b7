package main

import (
	"fmt"
	"io"

	"github.com/desertwitch/treewalk/internal/printing"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

type printOptions struct {
	human   bool
	format  string
	summary bool
}

func newPrintCmd(app *App) *cobra.Command {
	opts := &printOptions{}

	cmd := &cobra.Command{
		Use:   "print <path>",
		Short: "Print every entry of a directory tree",
		Long: `Print walks the directory tree at path and prints a line for every
visited entry: sequence number, depth, frame visit count, type, permission
bits, size and the full path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPrint(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.human, "human", false, "print sizes in human-readable units")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "output format (text, yaml)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print a summary table per entry type")

	return cmd
}

func (app *App) runPrint(cmd *cobra.Command, path string, opts *printOptions) error {
	if opts.format != formatText && opts.format != formatYAML {
		return fmt.Errorf("(main) %w: unknown format: %s", errUsage, opts.format)
	}

	start, err := expandPath(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	printer := printing.NewPrinter(out, printing.Options{
		HumanSizes: opts.human || app.config.HumanSizes,
		Keep:       opts.format == formatYAML,
		Quiet:      opts.format == formatYAML || app.uiEnabled,
	})

	if err := app.walk(cmd.Context(), "Printing "+start, start, printer); err != nil {
		return err
	}

	if opts.format == formatYAML {
		if err := printer.WriteYAML(out); err != nil {
			return err
		}
	}

	if opts.summary || app.uiEnabled {
		writeSummary(out, printer)
	}

	return nil
}

func writeSummary(out io.Writer, printer *printing.Printer) {
	fmt.Fprintln(out)
	printer.WriteSummary(out)
}
