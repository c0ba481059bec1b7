// Command treewalk walks directory trees without recursion, printing,
// pruning or hashing every visited entry.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

const (
	stackTraceBufMax = 1 << 24
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string
)

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logManager := NewSlogManager()
	setupLogging(logManager, slog.LevelInfo)
	setupSignalHandlers(cancel)

	rootCmd, stopProfilers := newRootCmd(logManager, cancel)
	defer stopProfilers()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Program failed.",
			"err", err,
		)
		ExitCode = 1
	}
}
