package tokenizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEncodingFromTokens(t *testing.T) {
	toks := []Token{
		NewToken(1, "brown", Offsets{Start: 0, End: 5}),
		NewToken(2, "fox", Offsets{Start: 6, End: 9}),
	}
	enc := NewEncodingFromTokens(toks, 0)

	assert.Equal(t, []uint32{1, 2}, enc.GetIds())
	assert.Equal(t, []string{"brown", "fox"}, enc.GetTokens())
	assert.Equal(t, []uint32{0, 0}, enc.GetTypeIds())
	assert.Equal(t, []uint32{0, 0}, enc.GetSpecialTokensMask())
	assert.Equal(t, []uint32{1, 1}, enc.GetAttentionMask())
	assert.Equal(t, 2, enc.Len())
}

func TestNewEncodingPanicsOnMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewEncoding([]uint32{1, 2}, []uint32{0}, []string{"a", "b"}, []Offsets{{}, {}}, []uint32{0, 0}, []uint32{1, 1}, nil)
	})
}

func TestEncodingMergeWithGrowingOffsets(t *testing.T) {
	a := NewEncodingFromTokens([]Token{NewToken(1, "brown", Offsets{Start: 0, End: 5})}, 0)
	b := NewEncodingFromTokens([]Token{NewToken(2, "fox", Offsets{Start: 0, End: 3})}, 1)

	merged := a.MergeWith(b, true)

	require.Equal(t, 2, merged.Len())
	assert.Equal(t, []uint32{1, 2}, merged.GetIds())
	assert.Equal(t, []uint32{0, 1}, merged.GetTypeIds())
	assert.Equal(t, Offsets{Start: 0, End: 5}, merged.GetOffsets()[0])
	assert.Equal(t, Offsets{Start: 5, End: 8}, merged.GetOffsets()[1])
}

func TestEncodingMergeWithoutGrowingOffsets(t *testing.T) {
	a := NewEncodingFromTokens([]Token{NewToken(1, "brown", Offsets{Start: 0, End: 5})}, 0)
	b := NewEncodingFromTokens([]Token{NewToken(2, "fox", Offsets{Start: 0, End: 3})}, 1)

	merged := a.MergeWith(b, false)

	assert.Equal(t, Offsets{Start: 0, End: 5}, merged.GetOffsets()[0])
	assert.Equal(t, Offsets{Start: 0, End: 3}, merged.GetOffsets()[1])
}

func TestEncodingPadRight(t *testing.T) {
	enc := NewEncodingFromTokens([]Token{NewToken(1, "fox", Offsets{Start: 0, End: 3})}, 0)
	padded := enc.Pad(3, 0, 0, "[PAD]", Right)

	assert.Equal(t, []uint32{1, 0, 0}, padded.GetIds())
	assert.Equal(t, []string{"fox", "[PAD]", "[PAD]"}, padded.GetTokens())
	assert.Equal(t, []uint32{0, 1, 1}, padded.GetSpecialTokensMask())
	assert.Equal(t, []uint32{1, 0, 0}, padded.GetAttentionMask())
}

func TestEncodingPadLeft(t *testing.T) {
	enc := NewEncodingFromTokens([]Token{NewToken(1, "fox", Offsets{Start: 0, End: 3})}, 0)
	padded := enc.Pad(3, 0, 0, "[PAD]", Left)

	assert.Equal(t, []uint32{0, 0, 1}, padded.GetIds())
	assert.Equal(t, []string{"[PAD]", "[PAD]", "fox"}, padded.GetTokens())
	assert.Equal(t, []uint32{0, 0, 1}, padded.GetAttentionMask())
}

func TestEncodingPadIsNoOpWhenAlreadyLongEnough(t *testing.T) {
	enc := NewEncodingFromTokens([]Token{
		NewToken(1, "fox", Offsets{Start: 0, End: 3}),
		NewToken(2, "dog", Offsets{Start: 4, End: 7}),
	}, 0)
	padded := enc.Pad(1, 0, 0, "[PAD]", Right)
	assert.Equal(t, enc, padded)
}
