package tokenizers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTrainer counts whole pre-tokens verbatim and requests a couple
// of special tokens, enough to exercise Tokenizer.Train end to end without
// a real BPE/WordPiece trainer.
type countingTrainer struct {
	seen map[string]uint32
}

func newCountingTrainer() *countingTrainer { return &countingTrainer{seen: map[string]uint32{}} }

func (c *countingTrainer) ShouldShowProgress() bool { return false }

func (c *countingTrainer) ProcessTokens(words map[string]uint32, tokens []string) {
	for _, tok := range tokens {
		words[tok]++
	}
}

func (c *countingTrainer) Train(words map[string]uint32) (Model, []string, error) {
	for w, n := range words {
		c.seen[w] += n
	}
	vocab := make([]string, 0, len(words))
	for w := range words {
		vocab = append(vocab, w)
	}
	return newWordModel(vocab...), []string{"[CLS]", "[SEP]"}, nil
}

func writeTempCorpus(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	var content string
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTrainCountsWordsAndSwapsModel(t *testing.T) {
	path := writeTempCorpus(t, "brown fox", "brown fox jumps")

	tk := New(newWordModel()).WithPreTokenizer(whitespacePreTokenizer{})
	trainer := newCountingTrainer()

	require.NoError(t, tk.Train(trainer, []string{path}))

	assert.Equal(t, uint32(2), trainer.seen["brown"])
	assert.Equal(t, uint32(2), trainer.seen["fox"])
	assert.Equal(t, uint32(1), trainer.seen["jumps"])

	id, ok := tk.TokenToID("[CLS]")
	require.True(t, ok)
	_, ok = tk.TokenToID("[SEP]")
	require.True(t, ok)
	assert.True(t, tk.vocab.IsSpecial("[CLS]"))
	_ = id
}

func TestTrainSkipsBlankLines(t *testing.T) {
	path := writeTempCorpus(t, "brown fox", "", "   ")

	tk := New(newWordModel()).WithPreTokenizer(whitespacePreTokenizer{})
	trainer := newCountingTrainer()
	require.NoError(t, tk.Train(trainer, []string{path}))

	assert.Equal(t, uint32(1), trainer.seen["brown"])
}
