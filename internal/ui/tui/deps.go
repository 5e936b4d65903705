package tui

import (
	"log/slog"

	"github.com/krishjag/tealeaf/internal/ports"
)

type Deps struct {
	Store ports.ArtifactStore

	Logger *slog.Logger
	Debug  bool
}
