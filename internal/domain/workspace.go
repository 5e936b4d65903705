package domain

import "time"

// WorkspaceSpec describes where to scaffold a workspace.
type WorkspaceSpec struct {
	Root string
}

// ProfileRef is a lightweight reference to a provider profile file on disk.
type ProfileRef struct {
	Name string
	Path string
}

// RunRef is a lightweight reference to a persisted count run.
type RunRef struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Model     string    `json:"model"`
	StartedAt time.Time `json:"started_at"`
}
