// Package report renders aggregates as fixed-width console tables. Output
// is plain text: numeric columns right-aligned, totals computed from sums,
// percentages signed. Verdicts are advisory text only.
package report

import (
	"fmt"
	"strings"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/usecase/aggregate"
)

// table accumulates rows and renders them with per-column widths.
type table struct {
	headers []string
	// rightAlign marks numeric columns.
	rightAlign []bool
	rows       [][]string
}

func newTable(headers []string, rightAlign []bool) *table {
	return &table{headers: headers, rightAlign: rightAlign}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(b *strings.Builder) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i < len(t.rightAlign) && t.rightAlign[i] {
				fmt.Fprintf(b, "%*s", widths[i], cell)
			} else {
				fmt.Fprintf(b, "%-*s", widths[i], cell)
			}
		}
		b.WriteByte('\n')
	}

	writeRow(t.headers)

	total := 0
	for _, w := range widths {
		total += w
	}
	b.WriteString(strings.Repeat("-", total+2*(len(widths)-1)))
	b.WriteByte('\n')

	for _, row := range t.rows {
		writeRow(row)
	}
}

func pctCell(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

func intCell(n int) string {
	return fmt.Sprintf("%d", n)
}

// CountSummary renders a count run: per-task counts by format, the pairwise
// comparison block, and the separately labeled data-only estimate.
func CountSummary(run domain.CountRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Model: %s (provider: %s)\n", run.Model, run.Provider)
	fmt.Fprintf(&b, "Prompts: %s\n\n", run.PromptsDir)

	formats := domain.KnownFormats()

	headers := []string{"Task"}
	align := []bool{false}
	for _, f := range formats {
		headers = append(headers, strings.ToUpper(string(f)))
		align = append(align, true)
	}

	t := newTable(headers, align)
	for _, rec := range run.Tasks {
		cells := []string{rec.TaskID}
		for _, f := range formats {
			if n, ok := rec.Counts[f]; ok {
				cells = append(cells, intCell(n))
			} else {
				cells = append(cells, "-")
			}
		}
		t.addRow(cells...)
	}

	totals := []string{"TOTAL"}
	for _, f := range formats {
		if n, ok := run.TotalByFormat(f); ok {
			totals = append(totals, intCell(n))
		} else {
			totals = append(totals, "-")
		}
	}
	t.addRow(totals...)
	t.render(&b)

	b.WriteByte('\n')
	renderPairs(&b, "Pairwise comparison (full prompts)", run.Pairs)

	b.WriteByte('\n')
	renderPairs(&b, "Data-only estimate (instruction overhead = per-task minimum)", run.DataOnly.Pairs)

	return b.String()
}

func renderPairs(b *strings.Builder, title string, pairs []domain.PairSummary) {
	fmt.Fprintf(b, "%s\n", title)

	t := newTable(
		[]string{"Pair", "Total A", "Total B", "Weighted", "Median"},
		[]bool{false, true, true, true, true},
	)
	for _, p := range pairs {
		t.addRow(
			fmt.Sprintf("%s vs %s", strings.ToUpper(string(p.FormatA)), strings.ToUpper(string(p.FormatB))),
			intCell(p.TotalA),
			intCell(p.TotalB),
			pctCell(p.WeightedPct),
			pctCell(p.MedianPct),
		)
	}
	t.render(b)
}

// Validation renders the per-task split table, the savings summary, and the
// cross-check verdict block.
func Validation(rep domain.ValidationReport, encoding string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Local tokenizer: %s\n\n", encoding)

	t := newTable(
		[]string{"Task", "Records", "Instr", "TL data", "TOON data", "JSON data", "Savings"},
		[]bool{false, true, true, true, true, true, true},
	)
	for _, tv := range rep.Tasks {
		cell := func(f domain.Format) string {
			if n, ok := tv.DataTokens[f]; ok {
				return intCell(n)
			}
			return "-"
		}
		t.addRow(
			tv.TaskID,
			intCell(tv.Records),
			intCell(tv.InstructionTokens),
			cell(domain.FormatTL),
			cell(domain.FormatTOON),
			cell(domain.FormatJSON),
			pctCell(tv.SavingsPct),
		)
	}
	t.render(&b)

	b.WriteByte('\n')
	fmt.Fprintf(&b, "Weighted data-only savings: %s\n", pctCell(rep.WeightedSavingsPct))
	fmt.Fprintf(&b, "Median data-only savings:   %s\n", pctCell(rep.MedianSavingsPct))

	if len(rep.Checks) > 0 {
		b.WriteByte('\n')
		b.WriteString("Cross-validation (measured vs reported input tokens)\n")

		ct := newTable(
			[]string{"Check", "Measured", "Reported", "Delta", "Verdict"},
			[]bool{false, true, true, true, false},
		)
		for _, c := range rep.Checks {
			ct.addRow(c.Name, intCell(c.Measured), intCell(c.Reported), pctCell(c.DeltaPct), string(c.Verdict))
		}
		ct.render(&b)

		fmt.Fprintf(&b, "\nOverall: %s\n", rep.Overall)
	}

	return b.String()
}

// Domains renders the per-domain rollup table followed by the
// per-(provider, format) summary.
func Domains(rollups []domain.DomainRollup, formats []aggregate.FormatStat) string {
	var b strings.Builder

	b.WriteString("Domain rollup\n")
	t := newTable(
		[]string{"Domain", "Provider", "Format", "Input", "Output", "Avg score", "Tasks"},
		[]bool{false, false, false, true, true, true, true},
	)
	for _, r := range rollups {
		t.addRow(
			r.Key.Domain,
			r.Key.Provider,
			strings.ToUpper(string(r.Key.Format)),
			intCell(r.InputTokens),
			intCell(r.OutputTokens),
			fmt.Sprintf("%.4f", r.AvgScore),
			intCell(r.Tasks),
		)
	}
	t.render(&b)

	b.WriteByte('\n')
	b.WriteString("Format summary\n")
	ft := newTable(
		[]string{"Provider", "Format", "Input", "Output", "Avg score", "Rows"},
		[]bool{false, false, true, true, true, true},
	)
	for _, s := range formats {
		ft.addRow(
			s.Key.Provider,
			strings.ToUpper(string(s.Key.Format)),
			intCell(s.InputTokens),
			intCell(s.OutputTokens),
			fmt.Sprintf("%.4f", s.AvgScore),
			intCell(s.Rows),
		)
	}
	ft.render(&b)

	return b.String()
}
