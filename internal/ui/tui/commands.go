package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

func cmdLoadRuns(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Store == nil {
			return runsLoadedMsg{err: errors.New("Store is nil")}
		}

		refs, err := deps.Store.ListRuns()
		if err != nil && deps.Logger != nil {
			deps.Logger.Error("browse.list_runs.failed", "err", err)
		}
		return runsLoadedMsg{refs: refs, err: err}
	}
}

func cmdLoadRun(deps Deps, id string) tea.Cmd {
	return func() tea.Msg {
		if deps.Store == nil {
			return runLoadedMsg{id: id, err: errors.New("Store is nil")}
		}

		run, err := deps.Store.LoadRun(id)
		if err != nil && deps.Logger != nil {
			deps.Logger.Error("browse.load_run.failed", "id", id, "err", err)
		}
		return runLoadedMsg{id: id, run: run, err: err}
	}
}
