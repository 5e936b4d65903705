package domain

import (
	"strings"
	"testing"
)

func assertReconstructs(t *testing.T, a, b string, s AffixSplit) {
	t.Helper()
	if got := s.Prefix + s.DataA + s.Suffix; got != a {
		t.Fatalf("prefix+dataA+suffix = %q, want %q", got, a)
	}
	if got := s.Prefix + s.DataB + s.Suffix; got != b {
		t.Fatalf("prefix+dataB+suffix = %q, want %q", got, b)
	}
}

func TestSplitCommonAffix_Reconstructs(t *testing.T) {
	cases := []struct{ a, b string }{
		{"analyze {1,2,3} rows", "analyze [1, 2, 3] rows"},
		{"same head, tail differs", "same head; tail differs"},
		{"abcabc", "abc"},
		{"xy", "y"},
		{"no overlap at all", "1234567890"},
		{"", "entirely new"},
	}

	for _, tc := range cases {
		s := SplitCommonAffix(tc.a, tc.b)
		assertReconstructs(t, tc.a, tc.b, s)
		if len(s.DataA) < 0 || len(s.DataB) < 0 {
			t.Fatalf("negative slice for (%q, %q)", tc.a, tc.b)
		}
	}
}

func TestSplitCommonAffix_IdenticalInputs(t *testing.T) {
	s := SplitCommonAffix("instruction only", "instruction only")

	if s.DataA != "" || s.DataB != "" {
		t.Fatalf("expected empty middles, got %q / %q", s.DataA, s.DataB)
	}
	if s.SharedText() != "instruction only" {
		t.Fatalf("expected entire string shared, got %q", s.SharedText())
	}
}

func TestSplitCommonAffix_EmptyInputs(t *testing.T) {
	s := SplitCommonAffix("", "")
	if s.Prefix != "" || s.Suffix != "" || s.DataA != "" || s.DataB != "" {
		t.Fatalf("expected all-empty split, got %+v", s)
	}

	s = SplitCommonAffix("x", "")
	assertReconstructs(t, "x", "", s)
	if s.DataA != "x" || s.DataB != "" {
		t.Fatalf("expected dataA=x dataB empty, got %+v", s)
	}
}

func TestSplitCommonAffix_ClampsOverlappingWindows(t *testing.T) {
	// Prefix scan alone consumes all of b; the suffix scan would also match
	// and must be clamped to zero.
	s := SplitCommonAffix("abcabc", "abc")
	assertReconstructs(t, "abcabc", "abc", s)
	if s.Prefix != "abc" || s.Suffix != "" {
		t.Fatalf("expected clamped suffix, got %+v", s)
	}
}

func TestSplitCommonAffix_PromptPair(t *testing.T) {
	// Two renderings of one task: identical 600-byte instruction prefix and
	// 50-byte suffix, payloads of 150 and 750 bytes.
	prefix := strings.Repeat("P", 600)
	suffix := strings.Repeat("S", 50)
	dataTL := "A" + strings.Repeat("t", 148) + "x"
	dataJSON := "B" + strings.Repeat("j", 748) + "y"

	promptTL := prefix + dataTL + suffix
	promptJSON := prefix + dataJSON + suffix

	s := SplitCommonAffix(promptTL, promptJSON)
	assertReconstructs(t, promptTL, promptJSON, s)

	if s.SharedLen() != 650 {
		t.Fatalf("shared length = %d, want 650", s.SharedLen())
	}
	if len(s.DataA) != 150 || len(s.DataB) != 750 {
		t.Fatalf("data lengths = %d/%d, want 150/750", len(s.DataA), len(s.DataB))
	}
	if len(s.DataA)+s.SharedLen() != len(promptTL) {
		t.Fatalf("partition of prompt A is not exact")
	}
	if len(s.DataB)+s.SharedLen() != len(promptJSON) {
		t.Fatalf("partition of prompt B is not exact")
	}
}
