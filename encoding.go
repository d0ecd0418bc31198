package tokenizers

import "fmt"

// PaddingDirection selects which end of an Encoding padding is added to.
type PaddingDirection int

const (
	Left PaddingDirection = iota
	Right
)

// Encoding is the output of the tokenization pipeline for one input. Every
// field below is a parallel array of the same length n (spec.md §3
// invariant): Ids[i], TypeIds[i], Tokens[i], Offsets[i],
// SpecialTokensMask[i] and AttentionMask[i] all describe the same i'th
// token.
type Encoding struct {
	Ids               []uint32
	TypeIds           []uint32
	Tokens            []string
	Offsets           []Offsets
	SpecialTokensMask []uint32
	AttentionMask     []uint32
	// Overflowing holds the pieces truncation discarded, preserved for
	// optional inspection. Only TruncateEncodings creates these fragments;
	// MergeWith concatenates those of both sides.
	Overflowing []Encoding
}

// NewEncoding builds an Encoding from its parallel arrays. It panics if the
// arrays don't all have the same length -- a caller bug, not a runtime
// condition this package recovers from.
func NewEncoding(ids, typeIds []uint32, tokens []string, offsets []Offsets, specialTokensMask, attentionMask []uint32, overflowing []Encoding) Encoding {
	n := len(ids)
	if len(typeIds) != n || len(tokens) != n || len(offsets) != n || len(specialTokensMask) != n || len(attentionMask) != n {
		panic(fmt.Sprintf("tokenizers: NewEncoding: mismatched array lengths: ids=%d typeIds=%d tokens=%d offsets=%d specialTokensMask=%d attentionMask=%d",
			n, len(typeIds), len(tokens), len(offsets), len(specialTokensMask), len(attentionMask)))
	}
	if overflowing == nil {
		overflowing = []Encoding{}
	}
	return Encoding{
		Ids:               ids,
		TypeIds:           typeIds,
		Tokens:            tokens,
		Offsets:           offsets,
		SpecialTokensMask: specialTokensMask,
		AttentionMask:     attentionMask,
		Overflowing:       overflowing,
	}
}

// DefaultEncoding returns the empty Encoding (n = 0).
func DefaultEncoding() Encoding {
	return Encoding{
		Ids:               []uint32{},
		TypeIds:           []uint32{},
		Tokens:            []string{},
		Offsets:           []Offsets{},
		SpecialTokensMask: []uint32{},
		AttentionMask:     []uint32{},
		Overflowing:       []Encoding{},
	}
}

// NewEncodingFromTokens builds an Encoding directly from Model output, all
// entries tagged with typeID and marked as real (non-special, attended)
// tokens -- the shape used for every non-added-token fragment of Encode.
func NewEncodingFromTokens(tokens []Token, typeID uint32) Encoding {
	n := len(tokens)
	ids := make([]uint32, n)
	offsets := make([]Offsets, n)
	values := make([]string, n)
	typeIds := make([]uint32, n)
	specialMask := make([]uint32, n)
	attention := make([]uint32, n)
	for i, t := range tokens {
		ids[i] = t.ID
		offsets[i] = t.Offsets
		values[i] = t.Value
		typeIds[i] = typeID
		attention[i] = 1
	}
	return NewEncoding(ids, typeIds, values, offsets, specialMask, attention, nil)
}

// IsEmpty reports whether the Encoding has zero tokens.
func (e Encoding) IsEmpty() bool { return len(e.Ids) == 0 }

// Len returns the number of tokens.
func (e Encoding) Len() int { return len(e.Ids) }

// GetIds returns the token ids.
func (e Encoding) GetIds() []uint32 { return e.Ids }

// GetTypeIds returns the segment type ids.
func (e Encoding) GetTypeIds() []uint32 { return e.TypeIds }

// GetTokens returns the display form of each token.
func (e Encoding) GetTokens() []string { return e.Tokens }

// GetOffsets returns the per-token byte offsets.
func (e Encoding) GetOffsets() []Offsets { return e.Offsets }

// GetOffsetsMut returns the per-token offsets by reference, for in-place
// rewriting; Go slices already alias their backing array, so this is the
// same slice as GetOffsets -- it exists to make the orchestrator's intent
// (mutate in place) explicit at call sites, mirroring the collaborator
// contract's get_offsets_mut.
func (e *Encoding) GetOffsetsMut() []Offsets { return e.Offsets }

// GetSpecialTokensMask returns the special-token mask.
func (e Encoding) GetSpecialTokensMask() []uint32 { return e.SpecialTokensMask }

// GetAttentionMask returns the attention mask.
func (e Encoding) GetAttentionMask() []uint32 { return e.AttentionMask }

// GetOverflowing returns the overflow fragments produced by truncation.
func (e Encoding) GetOverflowing() []Encoding { return e.Overflowing }

// TakeOverflowing returns the overflow fragments and clears them from e.
func (e *Encoding) TakeOverflowing() []Encoding {
	o := e.Overflowing
	e.Overflowing = []Encoding{}
	return o
}

// MergeWith concatenates all parallel arrays of other onto e, returning the
// merged Encoding. When growingOffsets is true, other's offsets are shifted
// by e's current last offset end (0 if e is empty) before concatenation;
// when false, other's offsets are appended unchanged -- used by
// DefaultProcess, whose pair offsets stay in the pair's own normalized
// coordinates so Tokenizer.Encode's offset-remap can detect the seam
// between the two sequences by watching for an offset decrease.
func (e Encoding) MergeWith(other Encoding, growingOffsets bool) Encoding {
	shift := 0
	if growingOffsets && len(e.Offsets) > 0 {
		shift = e.Offsets[len(e.Offsets)-1].End
	}

	merged := Encoding{
		Ids:               append(append([]uint32{}, e.Ids...), other.Ids...),
		TypeIds:           append(append([]uint32{}, e.TypeIds...), other.TypeIds...),
		Tokens:            append(append([]string{}, e.Tokens...), other.Tokens...),
		SpecialTokensMask: append(append([]uint32{}, e.SpecialTokensMask...), other.SpecialTokensMask...),
		AttentionMask:     append(append([]uint32{}, e.AttentionMask...), other.AttentionMask...),
	}

	merged.Offsets = append([]Offsets{}, e.Offsets...)
	for _, o := range other.Offsets {
		if growingOffsets {
			merged.Offsets = append(merged.Offsets, Offsets{Start: o.Start + shift, End: o.End + shift})
		} else {
			merged.Offsets = append(merged.Offsets, o)
		}
	}

	merged.Overflowing = append(append([]Encoding{}, e.Overflowing...), other.Overflowing...)

	return merged
}

// Pad extends every parallel array to targetLength, adding padToken
// entries on the given direction. Its own arrays are left unchanged if the
// Encoding already has at least targetLength tokens (spec.md §4.2 /
// invariant 6); its Overflowing fragments are padded to targetLength in
// either case.
func (e Encoding) Pad(targetLength int, padID, padTypeID uint32, padToken string, direction PaddingDirection) Encoding {
	for i := range e.Overflowing {
		e.Overflowing[i] = e.Overflowing[i].Pad(targetLength, padID, padTypeID, padToken, direction)
	}

	if len(e.Ids) >= targetLength {
		return e
	}
	padLength := targetLength - len(e.Ids)

	padIds := make([]uint32, padLength)
	padTypeIds := make([]uint32, padLength)
	padTokens := make([]string, padLength)
	padSpecial := make([]uint32, padLength)
	padAttention := make([]uint32, padLength)
	padOffsets := make([]Offsets, padLength)
	for i := 0; i < padLength; i++ {
		padIds[i] = padID
		padTypeIds[i] = padTypeID
		padTokens[i] = padToken
		padSpecial[i] = 1
		padAttention[i] = 0
		padOffsets[i] = Offsets{}
	}

	switch direction {
	case Left:
		e.Ids = append(padIds, e.Ids...)
		e.TypeIds = append(padTypeIds, e.TypeIds...)
		e.Tokens = append(padTokens, e.Tokens...)
		e.SpecialTokensMask = append(padSpecial, e.SpecialTokensMask...)
		e.AttentionMask = append(padAttention, e.AttentionMask...)
		e.Offsets = append(padOffsets, e.Offsets...)
	case Right:
		e.Ids = append(e.Ids, padIds...)
		e.TypeIds = append(e.TypeIds, padTypeIds...)
		e.Tokens = append(e.Tokens, padTokens...)
		e.SpecialTokensMask = append(e.SpecialTokensMask, padSpecial...)
		e.AttentionMask = append(e.AttentionMask, padAttention...)
		e.Offsets = append(e.Offsets, padOffsets...)
	}

	return e
}
