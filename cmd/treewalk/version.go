package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionString() string {
	version := Version
	if version == "" {
		version = "dev"
	}

	return fmt.Sprintf("%s (%s %s/%s)", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "treewalk "+versionString())

			return err
		},
	}
}
