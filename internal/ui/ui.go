// Package ui implements a command-line user interface using [tea], showing the
// progress of a running walk alongside its logs.
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/treewalk/internal/progress"
)

type progressProvider interface {
	Snapshot() progress.Progress
}

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	tracker progressProvider
	program *tea.Program

	LogWriter *TeaLogWriter

	Ready  atomic.Bool
	Failed atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler], observing
// the walk that reports its progress to tracker.
func NewHandler(ctx context.Context, cancel context.CancelFunc, title string, tracker progressProvider) *Handler {
	handler := &Handler{
		tracker: tracker,
	}

	model := NewTeaModel(handler, title, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]). It
// blocks until the user quits or the [context.Context] is cancelled.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
