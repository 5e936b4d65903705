package domain

import "strings"

// Format identifies one serialization rendering of a benchmark payload.
type Format string

const (
	FormatTL   Format = "tl"
	FormatTOON Format = "toon"
	FormatJSON Format = "json"

	// FormatUnknown is the sentinel for filenames whose format tag is not in
	// the known set. Rows carrying it are skipped downstream, never errored.
	FormatUnknown Format = "unknown"
)

// KnownFormats returns the closed format set in display order.
func KnownFormats() []Format {
	return []Format{FormatTL, FormatTOON, FormatJSON}
}

// ParseFormat maps a filename tag to a Format. Unrecognized tags yield
// FormatUnknown.
func ParseFormat(tag string) Format {
	switch strings.ToLower(tag) {
	case "tl":
		return FormatTL
	case "toon":
		return FormatTOON
	case "json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// FormatPair names an ordered comparison between two formats: savings of A
// relative to the B baseline.
type FormatPair struct {
	A Format
	B Format
}

// DefaultFormatPairs returns the comparisons every report carries: each
// compact format against the JSON baseline, then the compact formats against
// each other.
func DefaultFormatPairs() []FormatPair {
	return []FormatPair{
		{A: FormatTL, B: FormatJSON},
		{A: FormatTOON, B: FormatJSON},
		{A: FormatTL, B: FormatTOON},
	}
}

// PromptFile is one dumped prompt, identified by (TaskID, Format).
// RawText is the full file including the metadata header; PromptText is the
// body after the marker line. Immutable once loaded.
type PromptFile struct {
	TaskID string
	Format Format
	Path   string

	RawText    string
	PromptText string
}

// PromptSet groups the prompt files of a single task by format.
type PromptSet struct {
	TaskID  string
	Prompts map[Format]PromptFile
}

// Has reports whether the set contains a prompt for every given format.
func (s PromptSet) Has(formats ...Format) bool {
	for _, f := range formats {
		if _, ok := s.Prompts[f]; !ok {
			return false
		}
	}
	return true
}
