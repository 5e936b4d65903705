package domain

// TaskRef is one manifest entry: a task ID plus an optional domain override
// for rollup reporting.
type TaskRef struct {
	ID     string
	Domain string
}

// TaskManifest is the ordered task list loaded from tasks.yaml. When present
// it fixes both the task filter and the display order of a run; without it,
// runs fall back to the sorted directory listing.
type TaskManifest struct {
	Tasks []TaskRef
}

// IDs returns the manifest's task IDs in order.
func (m TaskManifest) IDs() []string {
	out := make([]string, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		out = append(out, t.ID)
	}
	return out
}

// DomainOverrides returns the explicit task-to-domain assignments. Tasks
// without an override resolve through TaskDomain.
func (m TaskManifest) DomainOverrides() map[string]string {
	out := map[string]string{}
	for _, t := range m.Tasks {
		if t.Domain != "" {
			out[t.ID] = t.Domain
		}
	}
	return out
}
