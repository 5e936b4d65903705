package domain

// VerdictLevel grades how closely two independently measured totals agree.
type VerdictLevel string

const (
	VerdictPass     VerdictLevel = "PASS"
	VerdictMarginal VerdictLevel = "MARGINAL"
	VerdictFail     VerdictLevel = "FAIL"
)

// TaskValidation is one task's locally measured split: instruction tokens
// shared by both renderings, data tokens per format, and the record count
// probed from the JSON payload when available (zero when not probed).
type TaskValidation struct {
	TaskID string

	InstructionTokens int
	DataTokens        map[Format]int
	Records           int

	// SavingsPct is the data-only savings of the compact format against the
	// JSON baseline for this task.
	SavingsPct float64
}

// CheckResult is one cross-validation check: a measured total against the
// corresponding reported total, with the relative difference and verdict.
type CheckResult struct {
	Name     string
	Measured int
	Reported int
	DeltaPct float64
	Verdict  VerdictLevel
}

// ValidationReport is the full output of a validate run. The verdict is
// advisory: it never aborts the run.
type ValidationReport struct {
	Tasks []TaskValidation

	WeightedSavingsPct float64
	MedianSavingsPct   float64

	Checks  []CheckResult
	Overall VerdictLevel
}

// DomainRollup aggregates token usage and mean accuracy for one
// (domain, provider, format) bucket.
type DomainRollup struct {
	Key DomainKey

	InputTokens  int
	OutputTokens int

	AvgScore float64
	Tasks    int
}
