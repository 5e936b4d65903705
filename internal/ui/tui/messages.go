package tui

import "github.com/krishjag/tealeaf/internal/domain"

type runsLoadedMsg struct {
	refs []domain.RunRef
	err  error
}

type runLoadedMsg struct {
	id  string
	run domain.CountRun
	err error
}
