package tokenizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadEncodingsBatchLongest(t *testing.T) {
	short := encodingOfWords("a", "b")
	long := encodingOfWords("a", "b", "c", "d")

	padded := PadEncodings([]Encoding{short, long}, PaddingParams{
		Strategy:  BatchLongest,
		Direction: Right,
		PadToken:  "[PAD]",
	})

	assert.Equal(t, 4, padded[0].Len())
	assert.Equal(t, 4, padded[1].Len())
	assert.Equal(t, []string{"a", "b", "[PAD]", "[PAD]"}, padded[0].GetTokens())
}

func TestPadEncodingsFixed(t *testing.T) {
	short := encodingOfWords("a")

	padded := PadEncodings([]Encoding{short}, PaddingParams{
		Strategy:    Fixed,
		Direction:   Left,
		FixedLength: 3,
		PadToken:    "[PAD]",
	})

	assert.Equal(t, []string{"[PAD]", "[PAD]", "a"}, padded[0].GetTokens())
}

func TestPadEncodingsIdempotentWhenAlreadyLongEnough(t *testing.T) {
	enc := encodingOfWords("a", "b", "c")
	padded := PadEncodings([]Encoding{enc}, PaddingParams{Strategy: Fixed, FixedLength: 2, PadToken: "[PAD]"})
	assert.Equal(t, enc.GetTokens(), padded[0].GetTokens())
}
