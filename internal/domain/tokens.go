package domain

// Provenance records which counting source produced a token count.
type Provenance string

const (
	// ProvenanceReported marks counts obtained from an external API's
	// counting endpoint.
	ProvenanceReported Provenance = "reported"

	// ProvenanceMeasured marks counts computed locally with a standalone
	// tokenizer.
	ProvenanceMeasured Provenance = "measured"
)

// TokenCount is one non-negative count for a (task, format) prompt, tagged
// with its provenance so reported and measured figures can be diffed.
type TokenCount struct {
	TaskID     string
	Provider   string // empty for local measurements
	Format     Format
	Count      int
	Provenance Provenance
}

// GroupKey identifies a (provider, format) aggregation bucket. It is a value
// type with structural equality so it can key maps directly.
type GroupKey struct {
	Provider string
	Format   Format
}

// DomainKey identifies a (domain, provider, format) rollup bucket.
type DomainKey struct {
	Domain   string
	Provider string
	Format   Format
}
