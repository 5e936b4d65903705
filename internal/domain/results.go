package domain

// ResponseRow is one row of the results document's responses table. Only the
// identifying fields and the token counts are retained; latency and status
// fields are parsed positionally but not consumed here.
type ResponseRow struct {
	TaskID       string
	Provider     string
	Format       Format
	Model        string // empty when the source row carried a null model
	InputTokens  int
	OutputTokens int
}

// TokensValid reports whether the row's token counts are usable. The source
// document is a diagnostic dump, so negative counts are possible in malformed
// rows and must be rejected by consumers rather than aggregated.
func (r ResponseRow) TokensValid() bool {
	return r.InputTokens >= 0 && r.OutputTokens >= 0
}

// ResultRow is one row of the results document's analysis_results table:
// four quality score components in [0,1] for a (task, provider, format).
type ResultRow struct {
	TaskID   string
	Provider string
	Format   Format

	Completeness    float64
	Relevance       float64
	Coherence       float64
	FactualAccuracy float64
}

// AvgScore is the arithmetic mean of the four score components.
func (r ResultRow) AvgScore() float64 {
	return (r.Completeness + r.Relevance + r.Coherence + r.FactualAccuracy) / 4
}

// ResultsDoc is the parsed view of a structured results document.
type ResultsDoc struct {
	Responses []ResponseRow
	Analysis  []ResultRow
}
