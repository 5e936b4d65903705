// Package verdict grades agreement between independently measured token
// totals. Verdicts are advisory output only; they never abort a run.
package verdict

import (
	"fmt"
	"math"
	"sort"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/usecase/aggregate"
)

// Agreement thresholds, in percent of the reported figure.
const (
	PassMaxPct     = 1.0
	MarginalMaxPct = 5.0
)

// Grade maps a relative difference to a verdict level. The boundaries are
// inclusive: exactly 1% still passes, exactly 5% is still marginal.
func Grade(deltaPct float64) domain.VerdictLevel {
	abs := math.Abs(deltaPct)
	switch {
	case abs <= PassMaxPct:
		return domain.VerdictPass
	case abs <= MarginalMaxPct:
		return domain.VerdictMarginal
	default:
		return domain.VerdictFail
	}
}

// Check grades one measured total against its reported counterpart.
func Check(name string, measured, reported int) domain.CheckResult {
	delta := aggregate.Pct(float64(measured), float64(reported))
	return domain.CheckResult{
		Name:     name,
		Measured: measured,
		Reported: reported,
		DeltaPct: delta,
		Verdict:  Grade(delta),
	}
}

// Evaluate pairs measured totals with reported ones by (provider, format)
// bucket. Buckets present on only one side produce no check: there is
// nothing to cross-validate.
func Evaluate(measured, reported map[domain.GroupKey]int) []domain.CheckResult {
	keys := make([]domain.GroupKey, 0, len(measured))
	for k := range measured {
		if _, ok := reported[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Provider != keys[j].Provider {
			return keys[i].Provider < keys[j].Provider
		}
		return keys[i].Format < keys[j].Format
	})

	out := make([]domain.CheckResult, 0, len(keys))
	for _, k := range keys {
		name := fmt.Sprintf("%s/%s input tokens", k.Provider, k.Format)
		out = append(out, Check(name, measured[k], reported[k]))
	}
	return out
}

// Overall is the worst verdict among the checks, or empty when there was
// nothing to check.
func Overall(checks []domain.CheckResult) domain.VerdictLevel {
	if len(checks) == 0 {
		return ""
	}

	worst := domain.VerdictPass
	for _, c := range checks {
		switch c.Verdict {
		case domain.VerdictFail:
			return domain.VerdictFail
		case domain.VerdictMarginal:
			worst = domain.VerdictMarginal
		}
	}
	return worst
}
