package domain

import (
	"context"
	"errors"
	"net"
	"time"
)

// ServiceFault is a high-level classification of remote counting failures.
type ServiceFault string

const (
	FaultUnknown ServiceFault = "unknown"
	FaultTimeout ServiceFault = "timeout"
	FaultDNS     ServiceFault = "dns"
	FaultConn    ServiceFault = "connection"
	FaultHTTP    ServiceFault = "http"
	FaultAuth    ServiceFault = "auth"
)

// ClassifyServiceError maps transport-level errors from a counting call to a
// ServiceFault. HTTP-status classification is done by the adapter, which sees
// status codes; this only inspects error chains.
func ClassifyServiceError(err error) ServiceFault {
	if err == nil {
		return FaultUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return FaultTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FaultDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FaultTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FaultConn
	}

	return FaultUnknown
}

// TaskCountRecord holds one task's remote token counts keyed by format.
// Formats missing from the dump directory are simply absent from the map.
type TaskCountRecord struct {
	TaskID string         `json:"task_id"`
	Counts map[Format]int `json:"counts"`
}

// PairSummary is the aggregate comparison of two formats across all tasks.
//
// WeightedPct is computed from the summed totals, not from averaging the
// per-task percentages; MedianPct is the median of per-task percentages.
// The two diverge whenever task sizes vary, so both are always carried.
type PairSummary struct {
	FormatA Format `json:"format_a"`
	FormatB Format `json:"format_b"`

	TotalA int `json:"total_a"`
	TotalB int `json:"total_b"`

	WeightedPct float64 `json:"weighted_pct"`
	MedianPct   float64 `json:"median_pct"`
}

// DataOnlySummary approximates data-only token totals by subtracting each
// task's minimum count across formats (a proxy for the shared instruction
// overhead) from every format's count. It is a conservative estimate kept
// separate from the exact prefix/suffix split measurement.
type DataOnlySummary struct {
	Totals map[Format]int `json:"totals"`
	Pairs  []PairSummary  `json:"pairs"`
}

// CountRun is the persisted artifact of one counting run.
type CountRun struct {
	ID         string `json:"id"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	PromptsDir string `json:"prompts_dir"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Tasks    []TaskCountRecord `json:"tasks"`
	Pairs    []PairSummary     `json:"pairs"`
	DataOnly DataOnlySummary   `json:"data_only"`
}

// TotalByFormat sums the per-task counts for one format. The bool reports
// whether any task carried that format.
func (r CountRun) TotalByFormat(f Format) (int, bool) {
	total := 0
	seen := false
	for _, t := range r.Tasks {
		if c, ok := t.Counts[f]; ok {
			total += c
			seen = true
		}
	}
	return total, seen
}
