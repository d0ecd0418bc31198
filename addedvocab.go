package tokenizers

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/subtok/tokenizers/internal/wordchar"
)

// AddedToken is a literal string registered by the caller, pre-cut from
// input before normalization and mapped to a reserved id. Equality is on
// Content only: a token cannot be added twice with differing flags -- a
// later AddTokens call for the same content is ignored (spec.md §3).
type AddedToken struct {
	Content    string
	SingleWord bool
}

// AddedSplit is one piece of Split's output: either a
// fragment of ordinary text (ID == nil) or a matched added token (ID
// points at its resolved id).
type AddedSplit struct {
	Value string
	ID    *uint32
}

// addedVocabulary is the added-token/special-token registry and compiled
// split pattern described in spec.md §4.5 (component C5). It is owned
// exclusively by a Tokenizer.
type addedVocabulary struct {
	// tokens holds every added token keyed by content, independent of
	// whether it is also a special token.
	tokens map[string]AddedToken
	ids    map[string]uint32
	idsR   map[uint32]AddedToken
	// special is the subset of tokens additionally marked for
	// suppression on decode.
	special map[string]uint32
	// splitRe is rebuilt from scratch every time the vocabulary changes;
	// nil means no added tokens are registered.
	splitRe *regexp.Regexp
}

func newAddedVocabulary() *addedVocabulary {
	return &addedVocabulary{
		tokens:  map[string]AddedToken{},
		ids:     map[string]uint32{},
		idsR:    map[uint32]AddedToken{},
		special: map[string]uint32{},
	}
}

// Len returns the number of distinct added tokens (special or not).
func (v *addedVocabulary) Len() int { return len(v.tokens) }

// TokenToID resolves an added token's content to its id.
func (v *addedVocabulary) TokenToID(content string) (uint32, bool) {
	id, ok := v.ids[content]
	return id, ok
}

// IDToToken resolves an added token's id back to its content.
func (v *addedVocabulary) IDToToken(id uint32) (string, bool) {
	t, ok := v.idsR[id]
	if !ok {
		return "", false
	}
	return t.Content, true
}

// IsSpecial reports whether content is registered as a special token.
func (v *addedVocabulary) IsSpecial(content string) bool {
	_, ok := v.special[content]
	return ok
}

// AddTokens registers tokens not already known (by content, either already
// added or already present in the model's own vocabulary per
// modelTokenToID), assigning each a fresh id of
// modelVocabSize + (current number of added tokens) at the moment of
// insertion. Returns the number of tokens actually added.
func (v *addedVocabulary) AddTokens(tokens []AddedToken, modelVocabSize int, modelTokenToID func(string) (uint32, bool)) int {
	added := 0
	for _, tok := range tokens {
		if tok.Content == "" {
			continue
		}
		if _, ok := v.ids[tok.Content]; ok {
			continue
		}
		if _, ok := modelTokenToID(tok.Content); ok {
			continue
		}

		id := uint32(modelVocabSize + len(v.tokens))
		v.tokens[tok.Content] = tok
		v.ids[tok.Content] = id
		v.idsR[id] = tok
		added++
	}
	v.refresh()
	return added
}

// AddSpecialTokens registers the given contents as added tokens (via
// AddTokens), then marks each as special using whatever id it resolves to
// (combinedTokenToID should check the added vocabulary first, then the
// model, matching Tokenizer.TokenToID). Returns the number of tokens newly
// added to the vocabulary (special tokens that were already added tokens,
// or already in the model's vocabulary, count as 0 new additions but are
// still marked special).
func (v *addedVocabulary) AddSpecialTokens(contents []string, modelVocabSize int, modelTokenToID func(string) (uint32, bool), combinedTokenToID func(string) (uint32, bool)) int {
	wrapped := make([]AddedToken, len(contents))
	for i, c := range contents {
		wrapped[i] = AddedToken{Content: c}
	}
	added := v.AddTokens(wrapped, modelVocabSize, modelTokenToID)

	for _, c := range contents {
		if id, ok := combinedTokenToID(c); ok {
			if _, exists := v.special[c]; !exists {
				v.special[c] = id
			}
		}
	}
	v.refresh()
	return added
}

// refresh rebuilds the split pattern from scratch. Special tokens are
// always treated as single_word = true for boundary purposes, even when
// the same content was also added with single_word = false -- both forms
// end up as alternatives in the regex, mirroring refresh_added_tokens in
// original_source/.../mod.rs exactly (including the resulting, harmless
// duplicate alternative for tokens that are both). The alternatives
// themselves carry no word-boundary assertion: single_word is enforced by
// Split after a match is found, not by the compiled pattern -- see
// isSingleWordMatch/hasWordBoundary.
func (v *addedVocabulary) refresh() {
	var contents []string
	for c := range v.tokens {
		contents = append(contents, c)
	}
	sort.Strings(contents)

	var alternatives []string
	for _, c := range contents {
		alternatives = append(alternatives, regexp.QuoteMeta(c))
	}

	var specialContents []string
	for c := range v.special {
		specialContents = append(specialContents, c)
	}
	sort.Strings(specialContents)
	for _, c := range specialContents {
		alternatives = append(alternatives, regexp.QuoteMeta(c))
	}

	if len(alternatives) == 0 {
		v.splitRe = nil
		return
	}
	v.splitRe = regexp.MustCompile("(" + strings.Join(alternatives, "|") + ")")
}

// isSingleWordMatch reports whether content, as matched by the split
// pattern, must additionally satisfy a word-boundary constraint: special
// tokens always do (refresh forces single_word = true for them), plain
// added tokens do iff they were registered with SingleWord set.
func (v *addedVocabulary) isSingleWordMatch(content string) bool {
	if _, ok := v.special[content]; ok {
		return true
	}
	if tok, ok := v.tokens[content]; ok {
		return tok.SingleWord
	}
	return false
}

// hasWordBoundary reports whether the match [start, end) of content in s
// satisfies the single_word constraint: on an edge whose content rune is a
// word character, the adjacent rune outside the match (if any) must not
// also be a word character. Go's stdlib regexp compiles \b as an
// ASCII-only boundary (RE2), unlike the Rust regex crate's Unicode-aware
// \b the original relies on (original_source/.../mod.rs:726,738), so this
// check is done by hand against wordchar.IsWordChar rather than embedded
// in the compiled pattern. An edge whose content rune is not a word
// character gets no constraint at all, preserving the documented
// single_word+punctuation-edge open question as-is.
func hasWordBoundary(s string, start, end int, content string) bool {
	runes := []rune(content)
	if len(runes) == 0 {
		return true
	}

	if wordchar.IsWordChar(runes[0]) && start > 0 {
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		if wordchar.IsWordChar(before) {
			return false
		}
	}
	if wordchar.IsWordChar(runes[len(runes)-1]) && end < len(s) {
		after, _ := utf8.DecodeRuneInString(s[end:])
		if wordchar.IsWordChar(after) {
			return false
		}
	}
	return true
}

// Split finds all non-overlapping added-token matches in s left to right,
// returning the interleaving of non-matching fragments (ID == nil) and
// matches (ID resolved, special tokens taking precedence over plain added
// tokens). If no pattern is set, it returns the whole input as a single
// unmatched fragment. A candidate match that violates its single_word
// boundary constraint is rejected and the search resumes one rune past its
// start, the same outcome \b-in-the-pattern would have produced had RE2's
// \b been Unicode-aware.
func (v *addedVocabulary) Split(s string) []AddedSplit {
	if v.splitRe == nil {
		return []AddedSplit{{Value: s}}
	}

	var result []AddedSplit
	prevEnd := 0
	pos := 0
	for pos <= len(s) {
		loc := v.splitRe.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		matched := s[start:end]

		if v.isSingleWordMatch(matched) && !hasWordBoundary(s, start, end, matched) {
			_, size := utf8.DecodeRuneInString(s[start:])
			if size == 0 {
				size = 1
			}
			pos = start + size
			continue
		}

		if start > prevEnd {
			result = append(result, AddedSplit{Value: s[prevEnd:start]})
		}
		result = append(result, AddedSplit{Value: matched, ID: v.resolveID(matched)})
		prevEnd = end
		pos = end
	}
	if prevEnd < len(s) {
		result = append(result, AddedSplit{Value: s[prevEnd:]})
	}
	if len(result) == 0 {
		return []AddedSplit{{Value: s}}
	}
	return result
}

func (v *addedVocabulary) resolveID(content string) *uint32 {
	if id, ok := v.special[content]; ok {
		idCopy := id
		return &idCopy
	}
	if id, ok := v.ids[content]; ok {
		idCopy := id
		return &idCopy
	}
	return nil
}
