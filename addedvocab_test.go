package tokenizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noModelTokens(string) (uint32, bool) { return 0, false }

func TestAddedVocabularySplitNoPattern(t *testing.T) {
	v := newAddedVocabulary()
	splits := v.Split("brown fox")
	require.Len(t, splits, 1)
	assert.Equal(t, "brown fox", splits[0].Value)
	assert.Nil(t, splits[0].ID)
}

func TestAddedVocabularyAddAndSplit(t *testing.T) {
	v := newAddedVocabulary()
	added := v.AddTokens([]AddedToken{{Content: "[CLS]"}, {Content: "[SEP]"}}, 100, noModelTokens)
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, v.Len())

	splits := v.Split("[CLS] brown fox [SEP]")
	require.Len(t, splits, 4)
	assert.Equal(t, "[CLS]", splits[0].Value)
	require.NotNil(t, splits[0].ID)
	assert.Equal(t, uint32(100), *splits[0].ID)
	assert.Equal(t, " brown fox ", splits[1].Value)
	assert.Nil(t, splits[1].ID)
	assert.Equal(t, "[SEP]", splits[2].Value)
	require.NotNil(t, splits[2].ID)
	assert.Equal(t, uint32(101), *splits[2].ID)
	assert.Equal(t, "", splits[3].Value)
}

func TestAddedVocabularyDuplicateContentIgnored(t *testing.T) {
	v := newAddedVocabulary()
	v.AddTokens([]AddedToken{{Content: "[CLS]"}}, 100, noModelTokens)
	added := v.AddTokens([]AddedToken{{Content: "[CLS]"}}, 100, noModelTokens)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, v.Len())
}

func TestAddedVocabularySkipsContentAlreadyInModel(t *testing.T) {
	v := newAddedVocabulary()
	modelTokens := func(s string) (uint32, bool) {
		if s == "the" {
			return 7, true
		}
		return 0, false
	}
	added := v.AddTokens([]AddedToken{{Content: "the"}}, 100, modelTokens)
	assert.Equal(t, 0, added)
}

func TestAddedVocabularySingleWordBoundary(t *testing.T) {
	v := newAddedVocabulary()
	v.AddTokens([]AddedToken{{Content: "ing", SingleWord: true}}, 100, noModelTokens)

	splits := v.Split("running ing thing")
	var matched []string
	for _, s := range splits {
		if s.ID != nil {
			matched = append(matched, s.Value)
		}
	}
	assert.Equal(t, []string{"ing"}, matched)
}

func TestAddedVocabularySingleWordBoundaryUnicode(t *testing.T) {
	v := newAddedVocabulary()
	v.AddTokens([]AddedToken{{Content: "café", SingleWord: true}}, 100, noModelTokens)

	splits := v.Split("café time")
	var matched []string
	for _, s := range splits {
		if s.ID != nil {
			matched = append(matched, s.Value)
		}
	}
	assert.Equal(t, []string{"café"}, matched)

	// "café" is followed directly by the ASCII word character 's': the
	// word-boundary constraint must reject this occurrence even though
	// Go's stdlib regexp \b is ASCII-only and would have let it slide.
	splits = v.Split("cafés nocturnes")
	matched = nil
	for _, s := range splits {
		if s.ID != nil {
			matched = append(matched, s.Value)
		}
	}
	assert.Empty(t, matched)
}

func TestAddedVocabularySpecialTokensAreSuppressedOnDecodeCheck(t *testing.T) {
	v := newAddedVocabulary()
	combined := func(s string) (uint32, bool) { return v.TokenToID(s) }
	v.AddSpecialTokens([]string{"[PAD]"}, 100, noModelTokens, combined)

	assert.True(t, v.IsSpecial("[PAD]"))
	id, ok := v.TokenToID("[PAD]")
	require.True(t, ok)
	assert.Equal(t, uint32(100), id)
}

func TestAddedVocabularyIDToToken(t *testing.T) {
	v := newAddedVocabulary()
	v.AddTokens([]AddedToken{{Content: "[MASK]"}}, 50, noModelTokens)
	tok, ok := v.IDToToken(50)
	require.True(t, ok)
	assert.Equal(t, "[MASK]", tok)

	_, ok = v.IDToToken(999)
	assert.False(t, ok)
}
