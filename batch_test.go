package tokenizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBatchPreservesOrder(t *testing.T) {
	tk := newTestTokenizer()
	inputs := []EncodeInput{
		NewSingleInput("the lazy dog"),
		NewSingleInput("brown fox"),
		NewSingleInput("jumps over the dog"),
	}

	results, err := tk.EncodeBatch(inputs, false)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"the", "lazy", "dog"}, results[0].GetTokens())
	assert.Equal(t, []string{"brown", "fox"}, results[1].GetTokens())
	assert.Equal(t, []string{"jumps", "over", "the", "dog"}, results[2].GetTokens())
}

func TestEncodeBatchAppliesBatchLongestPadding(t *testing.T) {
	tk := newTestTokenizer()
	tk.WithPadding(&PaddingParams{Strategy: BatchLongest, PadToken: "[PAD]", Direction: Right})

	inputs := []EncodeInput{
		NewSingleInput("fox"),
		NewSingleInput("brown fox jumps over"),
	}
	results, err := tk.EncodeBatch(inputs, false)
	require.NoError(t, err)
	assert.Equal(t, 4, results[0].Len())
	assert.Equal(t, 4, results[1].Len())
	assert.Equal(t, "[PAD]", results[0].GetTokens()[1])
}

func TestDecodeBatchPreservesOrder(t *testing.T) {
	tk := newTestTokenizer()
	brownID, _ := tk.TokenToID("brown")
	foxID, _ := tk.TokenToID("fox")
	dogID, _ := tk.TokenToID("dog")

	out, err := tk.DecodeBatch([][]uint32{{brownID, foxID}, {dogID}}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"brown fox", "dog"}, out)
}
