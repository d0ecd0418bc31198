package tokenizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodingOfWords(words ...string) Encoding {
	toks := make([]Token, len(words))
	offset := 0
	for i, w := range words {
		toks[i] = NewToken(uint32(i), w, Offsets{Start: offset, End: offset + len(w)})
		offset += len(w) + 1
	}
	return NewEncodingFromTokens(toks, 0)
}

func TestTruncateEncodingsNoPairCutsToMaxLength(t *testing.T) {
	a := encodingOfWords("the", "quick", "brown", "fox", "jumps")
	got, pair, err := TruncateEncodings(a, nil, TruncationParams{MaxLength: 3, Strategy: LongestFirst})
	require.NoError(t, err)
	assert.Nil(t, pair)
	assert.Equal(t, []string{"the", "quick", "brown"}, got.GetTokens())
	require.Len(t, got.GetOverflowing(), 1)
	assert.Equal(t, []string{"fox", "jumps"}, got.GetOverflowing()[0].GetTokens())
}

func TestTruncateEncodingsUnderBudgetIsNoOp(t *testing.T) {
	a := encodingOfWords("fox", "dog")
	got, pair, err := TruncateEncodings(a, nil, TruncationParams{MaxLength: 10, Strategy: LongestFirst})
	require.NoError(t, err)
	assert.Nil(t, pair)
	assert.Equal(t, a, got)
}

func TestTruncateEncodingsLongestFirst(t *testing.T) {
	a := encodingOfWords("a", "b", "c", "d")
	b := encodingOfWords("w", "x")
	got, gotPair, err := TruncateEncodings(a, &b, TruncationParams{MaxLength: 4, Strategy: LongestFirst})
	require.NoError(t, err)
	require.NotNil(t, gotPair)
	assert.Equal(t, []string{"a", "b"}, got.GetTokens())
	assert.Equal(t, []string{"w", "x"}, gotPair.GetTokens())
}

func TestTruncateEncodingsLongestFirstTieBreaksOnFirst(t *testing.T) {
	a := encodingOfWords("a", "b")
	b := encodingOfWords("w", "x")
	got, gotPair, err := TruncateEncodings(a, &b, TruncationParams{MaxLength: 3, Strategy: LongestFirst})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.GetTokens())
	assert.Equal(t, []string{"w", "x"}, gotPair.GetTokens())
}

func TestTruncateEncodingsOnlyFirst(t *testing.T) {
	a := encodingOfWords("a", "b", "c")
	b := encodingOfWords("w", "x")
	got, gotPair, err := TruncateEncodings(a, &b, TruncationParams{MaxLength: 3, Strategy: OnlyFirst})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.GetTokens())
	assert.Equal(t, []string{"w", "x"}, gotPair.GetTokens())
}

func TestTruncateEncodingsOnlyFirstFailsWhenPairAloneExceeds(t *testing.T) {
	a := encodingOfWords("a", "b", "c")
	b := encodingOfWords("w", "x", "y", "z")
	_, _, err := TruncateEncodings(a, &b, TruncationParams{MaxLength: 3, Strategy: OnlyFirst})
	assert.ErrorIs(t, err, ErrSequenceTooShort)
}

func TestTruncateEncodingsOnlySecond(t *testing.T) {
	a := encodingOfWords("a", "b")
	b := encodingOfWords("w", "x", "y")
	got, gotPair, err := TruncateEncodings(a, &b, TruncationParams{MaxLength: 3, Strategy: OnlySecond})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.GetTokens())
	assert.Equal(t, []string{"w"}, gotPair.GetTokens())
}

func TestTruncateEncodingsOverflowOverlapsByStride(t *testing.T) {
	a := encodingOfWords("a", "b", "c", "d", "e")
	got, _, err := TruncateEncodings(a, nil, TruncationParams{MaxLength: 2, Strategy: LongestFirst, Stride: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.GetTokens())
	require.NotEmpty(t, got.GetOverflowing())
	assert.Equal(t, []string{"b", "c"}, got.GetOverflowing()[0].GetTokens())
}
