package tokenizers

// NormalizedString carries a byte string through arbitrary transformations
// (normalization, pre-tokenization) while tracking, for every byte of the
// "normalized" form, the byte range in the "original" form it came from.
// This is what lets the pipeline hand back token offsets in terms of the
// caller's own input, even after case-folding, Unicode normalization, or
// other edits that change the string's length or byte layout.
//
// The zero value is not useful; construct one with NewNormalizedString or
// From.
type NormalizedString struct {
	original   []byte
	normalized []byte
	// alignment[i] is the half-open byte range in original that
	// normalized byte i was derived from. len(alignment) == len(normalized).
	alignment []Offsets
}

// NewNormalizedString builds a NormalizedString from explicit parts. Most
// callers want From instead; this is exposed for normalizers/pre-tokenizers
// that need to hand back an already-aligned result.
func NewNormalizedString(original, normalized []byte, alignment []Offsets) NormalizedString {
	return NormalizedString{original: original, normalized: normalized, alignment: alignment}
}

// From creates a NormalizedString whose normalized form is identical to
// the input: original == normalized, and the alignment is the identity map
// (each normalized byte maps 1:1 to the same byte in original).
func From(s string) NormalizedString {
	b := []byte(s)
	alignment := make([]Offsets, len(b))
	for i := range b {
		alignment[i] = Offsets{Start: i, End: i + 1}
	}
	original := make([]byte, len(b))
	copy(original, b)
	normalized := make([]byte, len(b))
	copy(normalized, b)
	return NormalizedString{original: original, normalized: normalized, alignment: alignment}
}

// Get returns the normalized string, the form pre-tokenizers and models
// operate on.
func (n *NormalizedString) Get() string {
	return string(n.normalized)
}

// Original returns the original, untransformed string.
func (n *NormalizedString) Original() string {
	return string(n.original)
}

// Len returns the byte length of the normalized string.
func (n *NormalizedString) Len() int {
	return len(n.normalized)
}

// OriginalLen returns the byte length of the original string.
func (n *NormalizedString) OriginalLen() int {
	return len(n.original)
}

// MergeWith appends other's original and normalized strings to n's, and
// concatenates the alignment, shifting other's alignment ranges by n's
// current original length so they keep pointing into the combined
// original string.
func (n *NormalizedString) MergeWith(other *NormalizedString) {
	shift := len(n.original)
	n.original = append(n.original, other.original...)
	n.normalized = append(n.normalized, other.normalized...)
	for _, a := range other.alignment {
		n.alignment = append(n.alignment, Offsets{Start: a.Start + shift, End: a.End + shift})
	}
}

// ConvertOffsets maps a byte range [start, end) in the normalized string to
// the tightest enclosing byte range in the original string. It returns
// ok=false iff start or end lie outside 0..=Len() or start > end, per
// spec.md §4.1.
func (n *NormalizedString) ConvertOffsets(start, end int) (Offsets, bool) {
	length := len(n.normalized)
	if start > end || start < 0 || end > length {
		return Offsets{}, false
	}
	if start == end {
		switch {
		case length == 0:
			return Offsets{}, true
		case start < length:
			lo := n.alignment[start].Start
			return Offsets{Start: lo, End: lo}, true
		default: // start == length
			hi := n.alignment[start-1].End
			return Offsets{Start: hi, End: hi}, true
		}
	}

	lo := n.alignment[start].Start
	hi := n.alignment[start].End
	for i := start + 1; i < end; i++ {
		if n.alignment[i].Start < lo {
			lo = n.alignment[i].Start
		}
		if n.alignment[i].End > hi {
			hi = n.alignment[i].End
		}
	}
	return Offsets{Start: lo, End: hi}, true
}
