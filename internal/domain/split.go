package domain

// AffixSplit is the decomposition of two prompts that share instruction text
// and differ only in their embedded data payload.
//
// Invariant: Prefix+DataA+Suffix reconstructs prompt A exactly, and
// Prefix+DataB+Suffix reconstructs prompt B exactly. The split is a lossless
// partition of both inputs.
type AffixSplit struct {
	Prefix string
	Suffix string
	DataA  string
	DataB  string
}

// SharedText is the instruction portion common to both prompts.
func (s AffixSplit) SharedText() string {
	return s.Prefix + s.Suffix
}

// SharedLen is the byte length of the shared instruction portion.
func (s AffixSplit) SharedLen() int {
	return len(s.Prefix) + len(s.Suffix)
}

// SplitCommonAffix computes the longest common prefix and suffix of a and b
// and returns the split. Comparison is byte-wise.
//
// When prefix and suffix windows would overlap (possible when one payload is
// empty or very short), the suffix is clamped to min(len(a),len(b))-prefixLen
// so that no slice goes negative and the partition stays lossless.
//
// The split is a heuristic isolation of the data payload: it assumes the
// surrounding instruction text is byte-identical across both inputs. If that
// does not hold, the shared portion degenerates toward zero and the "data"
// slices absorb the divergence.
func SplitCommonAffix(a, b string) AffixSplit {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	prefixLen := 0
	for prefixLen < minLen && a[prefixLen] == b[prefixLen] {
		prefixLen++
	}

	suffixLen := 0
	for suffixLen < minLen &&
		a[len(a)-1-suffixLen] == b[len(b)-1-suffixLen] {
		suffixLen++
	}

	// Clamp so prefix and suffix never overlap within the shorter input.
	if prefixLen+suffixLen > minLen {
		suffixLen = minLen - prefixLen
	}

	return AffixSplit{
		Prefix: a[:prefixLen],
		Suffix: a[len(a)-suffixLen:],
		DataA:  a[prefixLen : len(a)-suffixLen],
		DataB:  b[prefixLen : len(b)-suffixLen],
	}
}
