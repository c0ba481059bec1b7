package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/desertwitch/treewalk/internal/configuration"
	"github.com/desertwitch/treewalk/internal/progress"
	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/desertwitch/treewalk/internal/ui"
	"github.com/desertwitch/treewalk/internal/walker"
)

const uiPollInterval = 10 * time.Millisecond

// App holds everything the subcommands share once the configuration was
// established.
type App struct {
	osHandler   *schema.OS
	unixHandler *schema.Unix
	walker      *walker.Walker
	config      *configuration.Config
	logManager  *SlogManager
	cancel      context.CancelFunc
	uiEnabled   bool
}

// walk runs a [walker.Walker] with the visitor, behind a [progress.Tracker].
// If enabled, the terminal user interface is shown for the duration of the
// walk, receiving all logs in place of the terminal.
func (app *App) walk(ctx context.Context, title string, start string, visitor walker.Visitor) error {
	tracker := progress.NewTracker(visitor)

	if !app.uiEnabled {
		err := app.walker.Walk(ctx, start, tracker)
		tracker.Finish(err)

		return wrapWalkErr(start, err)
	}

	uiHandler := ui.NewHandler(ctx, app.cancel, title, tracker)

	done := make(chan error, 1)
	go func() {
		for !uiHandler.Ready.Load() && !uiHandler.Failed.Load() && ctx.Err() == nil {
			time.Sleep(uiPollInterval)
		}

		err := app.walker.Walk(ctx, start, tracker)
		tracker.Finish(err)

		if err != nil {
			slog.Error("Walk failed.", "path", start, "err", err)
		} else {
			slog.Info("Walk finished: press q to quit.", "path", start)
		}

		done <- err
	}()

	app.attachUI(uiHandler)

	err := uiHandler.Launch()
	app.detachUI()

	if err != nil {
		slog.Error("UI failure: falling back to terminal.", "err", err)
	}

	return wrapWalkErr(start, <-done)
}

func (app *App) attachUI(uiHandler *ui.Handler) {
	app.logManager.AddHandler(handlerUI, newTintHandler(uiHandler.LogWriter, app.logManager.level))
	app.logManager.RemoveHandler(handlerTerminal)
}

func (app *App) detachUI() {
	app.logManager.AddHandler(handlerTerminal, newTintHandler(os.Stderr, app.logManager.level))
	app.logManager.RemoveHandler(handlerUI)
}

func wrapWalkErr(start string, err error) error {
	if err != nil {
		return fmt.Errorf("(main) failed to walk %s: %w", start, err)
	}

	return nil
}
