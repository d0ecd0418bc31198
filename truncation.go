package tokenizers

import "github.com/pkg/errors"

// TruncationStrategy selects how a pair of encodings is cut down to a
// shared length budget.
type TruncationStrategy int

const (
	// LongestFirst repeatedly drops one token from whichever sequence is
	// currently longer, ties dropping from the first sequence, until the
	// combined length fits.
	LongestFirst TruncationStrategy = iota
	// OnlyFirst truncates only the first sequence; fails with
	// ErrSequenceTooShort if the second sequence alone already exceeds
	// the budget.
	OnlyFirst
	// OnlySecond is the symmetric counterpart of OnlyFirst.
	OnlySecond
)

// TruncationParams configures TruncateEncodings.
type TruncationParams struct {
	MaxLength int
	Strategy  TruncationStrategy
	// Stride is how many tokens of the kept tail each overflow chunk
	// overlaps, so a sliding window of overflow fragments can be
	// re-encoded with some shared context.
	Stride int
}

// TruncateEncodings shortens a (and b, if present) so that their combined
// length fits params.MaxLength, truncating from the right end of each
// sequence per the configured strategy. Tokens that are cut off are
// preserved as Overflowing fragments on the side they came from, each
// overlapping the kept tail (or the previous fragment) by params.Stride
// tokens.
func TruncateEncodings(a Encoding, b *Encoding, params TruncationParams) (Encoding, *Encoding, error) {
	lenA := a.Len()
	lenB := 0
	if b != nil {
		lenB = b.Len()
	}

	if lenA+lenB <= params.MaxLength {
		return a, b, nil
	}

	keepA, keepB := lenA, lenB

	if b == nil {
		// No pair: nothing to protect, just cut a down to the budget
		// regardless of the configured strategy.
		keepA = params.MaxLength
		if keepA < 0 {
			keepA = 0
		}
	} else {
		switch params.Strategy {
		case OnlyFirst:
			if lenB > params.MaxLength {
				return Encoding{}, nil, errors.Wrap(ErrSequenceTooShort, "truncation: OnlyFirst strategy, pair alone exceeds max_length")
			}
			keepB = lenB
			keepA = params.MaxLength - lenB
			if keepA < 0 {
				keepA = 0
			}
		case OnlySecond:
			if lenA > params.MaxLength {
				return Encoding{}, nil, errors.Wrap(ErrSequenceTooShort, "truncation: OnlySecond strategy, first sequence alone exceeds max_length")
			}
			keepA = lenA
			keepB = params.MaxLength - lenA
			if keepB < 0 {
				keepB = 0
			}
		default: // LongestFirst
			for keepA+keepB > params.MaxLength {
				switch {
				case keepA > keepB:
					keepA--
				case keepB > keepA:
					keepB--
				case keepA > 0:
					// tie: drop from the first sequence
					keepA--
				default:
					keepB--
				}
			}
		}
	}

	newA := truncateOne(a, keepA, params.Stride)
	if b == nil {
		return newA, nil, nil
	}
	newB := truncateOne(*b, keepB, params.Stride)
	return newA, &newB, nil
}

// truncateOne cuts enc down to its first keep tokens, chunking the
// remainder into overflow fragments that each overlap the preceding kept
// material by stride tokens.
func truncateOne(enc Encoding, keep, stride int) Encoding {
	n := enc.Len()
	if keep >= n {
		return enc
	}
	if keep < 0 {
		keep = 0
	}

	kept := Encoding{
		Ids:               append([]uint32{}, enc.Ids[:keep]...),
		TypeIds:           append([]uint32{}, enc.TypeIds[:keep]...),
		Tokens:            append([]string{}, enc.Tokens[:keep]...),
		Offsets:           append([]Offsets{}, enc.Offsets[:keep]...),
		SpecialTokensMask: append([]uint32{}, enc.SpecialTokensMask[:keep]...),
		AttentionMask:     append([]uint32{}, enc.AttentionMask[:keep]...),
		Overflowing:       []Encoding{},
	}

	overflowIds := enc.Ids[keep:]
	overflowTypeIds := enc.TypeIds[keep:]
	overflowTokens := enc.Tokens[keep:]
	overflowOffsets := enc.Offsets[keep:]
	overflowSpecial := enc.SpecialTokensMask[keep:]
	overflowAttention := enc.AttentionMask[keep:]

	partSize := keep - stride
	if partSize <= 0 {
		partSize = len(overflowIds)
	}
	if partSize <= 0 {
		partSize = 1
	}

	var chunks []Encoding
	prev := kept
	for start := 0; start < len(overflowIds); start += partSize {
		end := start + partSize
		if end > len(overflowIds) {
			end = len(overflowIds)
		}
		chunk := Encoding{
			Ids:               append(tailU32(prev.Ids, stride), overflowIds[start:end]...),
			TypeIds:           append(tailU32(prev.TypeIds, stride), overflowTypeIds[start:end]...),
			Tokens:            append(tailStr(prev.Tokens, stride), overflowTokens[start:end]...),
			Offsets:           append(tailOff(prev.Offsets, stride), overflowOffsets[start:end]...),
			SpecialTokensMask: append(tailU32(prev.SpecialTokensMask, stride), overflowSpecial[start:end]...),
			AttentionMask:     append(tailU32(prev.AttentionMask, stride), overflowAttention[start:end]...),
			Overflowing:       []Encoding{},
		}
		chunks = append(chunks, chunk)
		prev = chunk
	}

	kept.Overflowing = chunks
	return kept
}

func tailU32(s []uint32, n int) []uint32 {
	if n > len(s) {
		n = len(s)
	}
	if n <= 0 {
		return []uint32{}
	}
	return append([]uint32{}, s[len(s)-n:]...)
}

func tailStr(s []string, n int) []string {
	if n > len(s) {
		n = len(s)
	}
	if n <= 0 {
		return []string{}
	}
	return append([]string{}, s[len(s)-n:]...)
}

func tailOff(s []Offsets, n int) []Offsets {
	if n > len(s) {
		n = len(s)
	}
	if n <= 0 {
		return []Offsets{}
	}
	return append([]Offsets{}, s[len(s)-n:]...)
}
