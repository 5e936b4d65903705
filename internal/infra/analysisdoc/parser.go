// Package analysisdoc parses the structured results document emitted by the
// benchmark's analyze step (analysis.tl).
//
// The document is a diagnostic dump, not a wire contract: sections are read
// by an explicit tokenizer and row reader, each section is bounded by its own
// closing bracket rather than by the position of the next section marker, and
// rows that fail the grammar are skipped with a warning.
package analysisdoc

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
)

const (
	sectionResponses = "responses"
	sectionAnalysis  = "analysis_results"
)

type Parser struct {
	log *slog.Logger
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type Option func(*Parser)

func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

var _ ports.ResultsSource = (*Parser)(nil)

// LoadResults reads and parses the document at path. A missing file is a
// fatal missing_input; malformed rows inside an existing file are not.
func (p *Parser) LoadResults(path string) (domain.ResultsDoc, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.ResultsDoc{}, &domain.OpError{
			Op:   "analysisdoc.load",
			Kind: domain.KindMissingInput,
			Path: path,
			Hint: "run the benchmark analyze step first, or point --results at an existing analysis document",
			Err:  err,
		}
	}
	return p.Parse(string(b)), nil
}

// Parse extracts the responses and analysis_results tables from the
// document text. Unknown sections, schema lines, comments, and the
// run_metadata block are passed over; their content never affects the
// extracted rows.
func (p *Parser) Parse(text string) domain.ResultsDoc {
	var doc domain.ResultsDoc

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	section := "" // current open @table section, "" outside
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		if section == "" {
			if name, ok := tableSectionStart(line); ok {
				section = name
			}
			continue
		}

		switch {
		case line == "]":
			section = ""
		case line == "" || strings.HasPrefix(line, "#"):
			// blank or comment inside a table
		case section == sectionResponses:
			row, err := mapResponseRow(line)
			if err != nil {
				p.log.Warn("skipping responses row", "line", lineNo, "err", err)
				continue
			}
			doc.Responses = append(doc.Responses, row)
		case section == sectionAnalysis:
			row, err := mapAnalysisRow(line)
			if err != nil {
				p.log.Warn("skipping analysis row", "line", lineNo, "err", err)
				continue
			}
			doc.Analysis = append(doc.Analysis, row)
		default:
			// Row of a table we do not consume (e.g. comparisons).
		}
	}

	return doc
}

// tableSectionStart recognizes lines of the form `name: @table schema [`.
func tableSectionStart(line string) (string, bool) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", false
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t\"(") {
		return "", false
	}

	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "@table") {
		return "", false
	}
	if !strings.HasSuffix(rest, "[") {
		return "", false
	}
	return name, true
}

// mapResponseRow maps a responses tuple:
// (taskID, provider, format, model, inputTokens, outputTokens, ...).
// Trailing fields (latency, status, retries, response length, timestamp,
// status string) are lexed but not consumed. Rows whose format tag is not in
// the known set are rejected, which also covers the legacy untagged layout.
func mapResponseRow(line string) (domain.ResponseRow, error) {
	fields, err := parseRow(line)
	if err != nil {
		return domain.ResponseRow{}, err
	}
	if len(fields) < 6 {
		return domain.ResponseRow{}, errArity(len(fields), 6)
	}

	taskID, err := fields[0].AsString()
	if err != nil {
		return domain.ResponseRow{}, err
	}
	provider, err := fields[1].AsString()
	if err != nil {
		return domain.ResponseRow{}, err
	}
	tag, err := fields[2].AsString()
	if err != nil {
		return domain.ResponseRow{}, err
	}
	format := domain.ParseFormat(tag)
	if format == domain.FormatUnknown {
		return domain.ResponseRow{}, errUnknownFormat(tag)
	}

	row := domain.ResponseRow{TaskID: taskID, Provider: provider, Format: format}

	if fields[3].Kind != LitNull {
		model, err := fields[3].AsString()
		if err != nil {
			return domain.ResponseRow{}, err
		}
		row.Model = model
	}

	if row.InputTokens, err = fields[4].AsInt(); err != nil {
		return domain.ResponseRow{}, err
	}
	if row.OutputTokens, err = fields[5].AsInt(); err != nil {
		return domain.ResponseRow{}, err
	}
	return row, nil
}

// mapAnalysisRow maps an analysis_results tuple:
// (taskID, provider, format, completeness, relevance, coherence, factual).
func mapAnalysisRow(line string) (domain.ResultRow, error) {
	fields, err := parseRow(line)
	if err != nil {
		return domain.ResultRow{}, err
	}
	if len(fields) != 7 {
		return domain.ResultRow{}, errArity(len(fields), 7)
	}

	taskID, err := fields[0].AsString()
	if err != nil {
		return domain.ResultRow{}, err
	}
	provider, err := fields[1].AsString()
	if err != nil {
		return domain.ResultRow{}, err
	}
	tag, err := fields[2].AsString()
	if err != nil {
		return domain.ResultRow{}, err
	}
	format := domain.ParseFormat(tag)
	if format == domain.FormatUnknown {
		return domain.ResultRow{}, errUnknownFormat(tag)
	}

	row := domain.ResultRow{TaskID: taskID, Provider: provider, Format: format}

	scores := []*float64{&row.Completeness, &row.Relevance, &row.Coherence, &row.FactualAccuracy}
	for i, dst := range scores {
		v, err := fields[3+i].AsFloat()
		if err != nil {
			return domain.ResultRow{}, err
		}
		*dst = v
	}
	return row, nil
}

func errArity(got, want int) error {
	return fmt.Errorf("unexpected field count: got %d, want at least %d", got, want)
}

func errUnknownFormat(tag string) error {
	return fmt.Errorf("unknown format tag %q", tag)
}
