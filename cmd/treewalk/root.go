package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/desertwitch/treewalk/internal/configuration"
	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/desertwitch/treewalk/internal/walker"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// errUsage is an error that occurs when the command-line arguments cannot be
// used as given.
var errUsage = errors.New("invalid usage")

// rootOptions are the flags shared by all subcommands.
type rootOptions struct {
	configFile string
	batchSize  int
	logLevel   string
	ui         bool
	cpuprofile string
	memprofile string
}

// newRootCmd returns the root command, along with a function stopping all
// profilers that were started by it.
func newRootCmd(logManager *SlogManager, cancel context.CancelFunc) (*cobra.Command, func()) {
	opts := &rootOptions{}
	app := &App{
		osHandler:   &schema.OS{},
		unixHandler: &schema.Unix{},
		logManager:  logManager,
		cancel:      cancel,
	}

	var profilers []interface{ Stop() }

	cmd := &cobra.Command{
		Use:   "treewalk",
		Short: "Walk directory trees without recursion",
		Long: `treewalk visits every entry of a directory tree exactly once, in
depth-first order, keeping an explicit stack of directory frames instead of
recursing. Every visited entry can be printed, pruned or hashed.

Exit Codes:
  0  - Success
  1  - Failure (walk, configuration or usage error)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.configure(cmd, opts); err != nil {
				return err
			}

			profilers = append(profilers,
				NewCPUProfiler(cmd.Context(), opts.cpuprofile),
				NewAllocProfiler(cmd.Context(), opts.memprofile),
				newMemoryObserver(cmd.Context()),
			)

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "configuration file (default "+configuration.DefaultConfigFile+", if it exists)")
	flags.IntVar(&opts.batchSize, "batch-size", walker.DefaultBatchSize, "directory entries read from a listing at once")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.ui, "ui", false, "show a terminal user interface while walking")
	flags.StringVar(&opts.cpuprofile, "cpuprofile", "", "write cpu profile to file")
	flags.StringVar(&opts.memprofile, "memprofile", "", "write memory profile to this file")

	cmd.AddCommand(
		newPrintCmd(app),
		newPruneCmd(app),
		newHashCmd(app),
		newSelftestCmd(app),
		newVersionCmd(),
	)

	stop := func() {
		for i := len(profilers) - 1; i >= 0; i-- {
			profilers[i].Stop()
		}
	}

	return cmd, stop
}

// configure reads the configuration file and applies all overrides that
// were given as flags.
func (app *App) configure(cmd *cobra.Command, opts *rootOptions) error {
	configFile, required := configuration.DefaultConfigFile, false
	if opts.configFile != "" {
		expanded, err := homedir.Expand(opts.configFile)
		if err != nil {
			return fmt.Errorf("(main) %w: %s: %w", errUsage, opts.configFile, err)
		}
		configFile, required = expanded, true
	}

	config, err := configuration.NewHandler(&configuration.GodotenvProvider{}).Load(configFile, required)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("batch-size") {
		config.BatchSize = opts.batchSize
	}

	if flags.Changed("log-level") {
		if err := config.LogLevel.UnmarshalText([]byte(opts.logLevel)); err != nil {
			return fmt.Errorf("(main) %w: --log-level: %w", errUsage, err)
		}
	}

	app.logManager.SetLevel(config.LogLevel)

	app.config = config
	app.uiEnabled = opts.ui && isInteractive()
	app.walker = walker.NewWalker(app.osHandler, app.unixHandler, config.BatchSize)

	if opts.ui && !app.uiEnabled {
		slog.Warn("Not running in an interactive terminal: UI is disabled.")
	}

	slog.Debug("Configuration loaded.",
		"file", configFile,
		"batchSize", config.BatchSize,
		"humanSizes", config.HumanSizes,
		"logLevel", config.LogLevel,
	)

	return nil
}

// expandPath expands a leading tilde of a path argument.
func expandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("(main) %w: %s: %w", errUsage, path, err)
	}

	return expanded, nil
}
