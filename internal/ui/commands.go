package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flowdeck/internal/state"
)

// Messages

// loadedMsg carries the result of a resource load.
type loadedMsg struct {
	key   state.Key
	entry state.Entry
	err   error
}

// actionDoneMsg reports a finished flow or run command.
type actionDoneMsg struct {
	subject string
	success string
	refresh []state.Key
	deleted bool
	err     error
}

// deleteConfirmedMsg is sent when the user accepts the delete dialog.
type deleteConfirmedMsg struct {
	env    string
	target flowTarget
}

// Commands

func loadCmd(ctx context.Context, loader *state.Loader, key state.Key) tea.Cmd {
	return func() tea.Msg {
		entry, err := loader.Load(ctx, key)
		return loadedMsg{key: key, entry: entry, err: err}
	}
}

func actionCmd(ctx context.Context, done actionDoneMsg, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		done.err = fn(ctx)
		return done
	}
}
