// Package tokenizers implements a subword tokenization pipeline: it turns
// raw text into a sequence of integer token ids with offsets that map back
// to the original input, and reverses the process on decode. The pipeline
// composes four pluggable stages -- Normalizer, PreTokenizer, Model,
// PostProcessor -- around an Encoding value that tracks per-token
// provenance (see Encoding, NormalizedString).
//
// Concrete Normalizer/PreTokenizer/Model/PostProcessor/Decoder/Trainer
// implementations (BPE, WordPiece, Unicode normalization, whitespace
// splitting, ...) are not provided by this package; only the interfaces
// are. This package owns the orchestration, the added-vocabulary layer,
// truncation, padding, and parallel batch/training drivers.
package tokenizers

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/subtok/tokenizers/internal/obslog"
)

// Tokenizer composes a Model with optional Normalizer, PreTokenizer,
// PostProcessor, and Decoder stages, plus the added-vocabulary, truncation
// and padding configuration. The zero value is not useful; build one with
// New.
//
// A Tokenizer is safe for concurrent read-only use (Encode, EncodeBatch,
// Decode, DecodeBatch, TokenToID, IDToToken, ...); Train requires exclusive
// access, since it replaces the Model and mutates the added-vocabulary
// special-token set.
type Tokenizer struct {
	model         Model
	normalizer    Normalizer
	preTokenizer  PreTokenizer
	postProcessor PostProcessor
	decoder       Decoder

	vocab *addedVocabulary

	trunc   *TruncationParams
	padding *PaddingParams

	logger *obslog.Logger
}

// New builds a Tokenizer around the required Model. All other stages are
// unset; Encode will normalize with the identity normalizer, pre-tokenize
// the whole normalized string as one pre-token, and post-process with
// DefaultProcess.
func New(model Model) *Tokenizer {
	return &Tokenizer{
		model:  model,
		vocab:  newAddedVocabulary(),
		logger: obslog.Default(),
	}
}

// WithNormalizer sets the Normalizer stage.
func (t *Tokenizer) WithNormalizer(n Normalizer) *Tokenizer { t.normalizer = n; return t }

// GetNormalizer returns the configured Normalizer, or nil.
func (t *Tokenizer) GetNormalizer() Normalizer { return t.normalizer }

// WithPreTokenizer sets the PreTokenizer stage.
func (t *Tokenizer) WithPreTokenizer(p PreTokenizer) *Tokenizer { t.preTokenizer = p; return t }

// GetPreTokenizer returns the configured PreTokenizer, or nil.
func (t *Tokenizer) GetPreTokenizer() PreTokenizer { return t.preTokenizer }

// WithPostProcessor sets the PostProcessor stage.
func (t *Tokenizer) WithPostProcessor(p PostProcessor) *Tokenizer { t.postProcessor = p; return t }

// GetPostProcessor returns the configured PostProcessor, or nil.
func (t *Tokenizer) GetPostProcessor() PostProcessor { return t.postProcessor }

// WithDecoder sets the Decoder stage.
func (t *Tokenizer) WithDecoder(d Decoder) *Tokenizer { t.decoder = d; return t }

// GetDecoder returns the configured Decoder, or nil.
func (t *Tokenizer) GetDecoder() Decoder { return t.decoder }

// WithModel replaces the Model wholesale. Added-token ids that were
// assigned relative to the previous model's vocab size are kept as they
// are: AddTokens skips content that is already registered, so adding the
// same tokens again does not reassign their ids (Train registers its
// returned special tokens through AddSpecialTokens, with the same effect).
func (t *Tokenizer) WithModel(m Model) *Tokenizer { t.model = m; return t }

// GetModel returns the configured Model.
func (t *Tokenizer) GetModel() Model { return t.model }

// WithTruncation sets (or, passed nil, clears) the truncation policy.
func (t *Tokenizer) WithTruncation(params *TruncationParams) *Tokenizer { t.trunc = params; return t }

// GetTruncation returns the configured TruncationParams, or nil.
func (t *Tokenizer) GetTruncation() *TruncationParams { return t.trunc }

// WithPadding sets (or, passed nil, clears) the padding policy.
func (t *Tokenizer) WithPadding(params *PaddingParams) *Tokenizer { t.padding = params; return t }

// GetPadding returns the configured PaddingParams, or nil.
func (t *Tokenizer) GetPadding() *PaddingParams { return t.padding }

// WithLogger overrides the structured logger used for stage diagnostics
// and training milestones. The default logs at info level as text.
func (t *Tokenizer) WithLogger(logger *obslog.Logger) *Tokenizer { t.logger = logger; return t }

// GetVocabSize returns the model's vocabulary size, plus the number of
// added tokens when withAddedTokens is true.
func (t *Tokenizer) GetVocabSize(withAddedTokens bool) int {
	n := t.model.VocabSize()
	if withAddedTokens {
		n += t.vocab.Len()
	}
	return n
}

// TokenToID converts a token's surface form to its id, checking the
// added-vocabulary first and falling back to the model -- added tokens
// shadow the model's own vocabulary, matching
// original_source/.../mod.rs's token_to_id.
func (t *Tokenizer) TokenToID(token string) (uint32, bool) {
	if id, ok := t.vocab.TokenToID(token); ok {
		return id, true
	}
	return t.model.TokenToID(token)
}

// IDToToken converts an id back to its surface form, checking the
// added-vocabulary first and falling back to the model.
func (t *Tokenizer) IDToToken(id uint32) (string, bool) {
	if tok, ok := t.vocab.IDToToken(id); ok {
		return tok, true
	}
	return t.model.IDToToken(id)
}

// AddTokens registers tokens in the added vocabulary, assigning each a
// fresh id at the moment of insertion (GetVocabSize(true) just before the
// insertion). Tokens with empty content, or whose content already
// resolves to an id, are skipped. Returns the number of tokens actually
// added.
func (t *Tokenizer) AddTokens(tokens []AddedToken) int {
	return t.vocab.AddTokens(tokens, t.model.VocabSize(), t.model.TokenToID)
}

// AddSpecialTokens registers tokens as added tokens (if not already known)
// and additionally marks them special, so Decode with skipSpecialTokens
// drops them. Returns the number of tokens newly added to the vocabulary.
func (t *Tokenizer) AddSpecialTokens(tokens []string) int {
	return t.vocab.AddSpecialTokens(tokens, t.model.VocabSize(), t.model.TokenToID, t.TokenToID)
}

// Normalize runs the full normalize pipeline (added-token split,
// normalizer, pre-tokenizer) on sentence and returns the resulting
// NormalizedString, without running the Model or any post-processing.
func (t *Tokenizer) Normalize(sentence string) (NormalizedString, error) {
	splits := t.vocab.Split(sentence)

	var pieces []NormalizedString
	for _, sp := range splits {
		if sp.ID != nil {
			pieces = append(pieces, From(sp.Value))
			continue
		}
		n, err := t.doNormalize(sp.Value)
		if err != nil {
			return NormalizedString{}, err
		}
		if _, err := t.preTokenizeNormalized(&n); err != nil {
			return NormalizedString{}, err
		}
		pieces = append(pieces, n)
	}

	if len(pieces) == 0 {
		return From(""), nil
	}
	merged := pieces[0]
	for i := 1; i < len(pieces); i++ {
		merged.MergeWith(&pieces[i])
	}
	return merged, nil
}

// doNormalize wraps sequence in a fresh NormalizedString and runs the
// configured Normalizer over it, if any.
func (t *Tokenizer) doNormalize(sequence string) (NormalizedString, error) {
	n := From(sequence)
	if t.normalizer == nil {
		return n, nil
	}
	if err := t.normalizer.Normalize(&n); err != nil {
		return NormalizedString{}, wrapStage(err, stageNormalizer)
	}
	return n, nil
}

// preTokenizeNormalized runs the configured PreTokenizer over n, or -- if
// none is configured -- returns the whole normalized string as a single
// pre-token.
func (t *Tokenizer) preTokenizeNormalized(n *NormalizedString) ([]PreToken, error) {
	if t.preTokenizer == nil {
		return []PreToken{{Value: n.Get(), Offsets: Offsets{Start: 0, End: n.Len()}}}, nil
	}
	toks, err := t.preTokenizer.PreTokenize(n)
	if err != nil {
		return nil, wrapStage(err, stagePreTokenizer)
	}
	return toks, nil
}

// generateOutput implements spec.md §4.6 step 2: split sentence on added
// tokens, run normalize -> pre-tokenize -> model.tokenize on each
// non-added fragment (emitting a direct one-token Encoding for added-token
// fragments), then fold the per-fragment encodings and normalized strings
// left to right.
func (t *Tokenizer) generateOutput(sentence string, typeID uint32) (Encoding, NormalizedString, error) {
	splits := t.vocab.Split(sentence)

	var encodings []Encoding
	var normalizeds []NormalizedString

	for _, sp := range splits {
		if sp.ID != nil {
			enc := NewEncoding(
				[]uint32{*sp.ID},
				[]uint32{typeID},
				[]string{sp.Value},
				[]Offsets{{Start: 0, End: len(sp.Value)}},
				[]uint32{0},
				[]uint32{1},
				nil,
			)
			encodings = append(encodings, enc)
			normalizeds = append(normalizeds, From(sp.Value))
			continue
		}

		n, err := t.doNormalize(sp.Value)
		if err != nil {
			return Encoding{}, NormalizedString{}, err
		}
		pretoks, err := t.preTokenizeNormalized(&n)
		if err != nil {
			return Encoding{}, NormalizedString{}, err
		}
		toks, err := t.model.Tokenize(pretoks)
		if err != nil {
			return Encoding{}, NormalizedString{}, wrapStage(err, stageModel)
		}

		encodings = append(encodings, NewEncodingFromTokens(toks, typeID))
		normalizeds = append(normalizeds, n)
	}

	if len(encodings) == 0 {
		return DefaultEncoding(), From(""), nil
	}

	merged := encodings[0]
	for i := 1; i < len(encodings); i++ {
		merged = merged.MergeWith(encodings[i], true)
	}
	mergedNormalized := normalizeds[0]
	for i := 1; i < len(normalizeds); i++ {
		mergedNormalized.MergeWith(&normalizeds[i])
	}

	return merged, mergedNormalized, nil
}

// Encode tokenizes input (a single sequence, or a sequence pair), running
// the full pipeline: added-token split, normalize, pre-tokenize, model
// tokenize, truncate, post-process, pad, and finally remap every token
// offset from normalized-string coordinates back to the caller's original
// byte coordinates.
func (t *Tokenizer) Encode(input EncodeInput, addSpecialTokens bool) (Encoding, error) {
	if t.model == nil {
		return Encoding{}, ErrTokenizerFinalized
	}

	encoding, normalized, err := t.generateOutput(input.Sequence, 0)
	if err != nil {
		return Encoding{}, err
	}

	var pairEncoding *Encoding
	var pairNormalized *NormalizedString
	if input.Pair != nil {
		pe, pn, err := t.generateOutput(*input.Pair, 1)
		if err != nil {
			return Encoding{}, err
		}
		pairEncoding = &pe
		pairNormalized = &pn
	}

	output, err := t.postProcess(encoding, pairEncoding, addSpecialTokens)
	if err != nil {
		return Encoding{}, err
	}

	t.remapOffsets(&output, &normalized, pairNormalized)

	return output, nil
}

// remapOffsets walks output's offsets in order, switching the active
// source NormalizedString from the first sequence's to the pair's the
// moment an offset is lexicographically less than the previous one --
// the seam between the two sequences in the merged encoding, per
// spec.md §4.6 step 4 and §9's offset-remap seam-detection note.
func (t *Tokenizer) remapOffsets(output *Encoding, normalized, pairNormalized *NormalizedString) {
	var current Offsets
	source := normalized

	offsets := output.GetOffsetsMut()
	for i, o := range offsets {
		if lessOffsets(o, current) && pairNormalized != nil {
			source = pairNormalized
		}
		current = o
		if converted, ok := source.ConvertOffsets(o.Start, o.End); ok {
			offsets[i] = converted
		} else {
			t.logger.WithStage("offset_remap").Debug("offset out of normalized range, keeping normalized coordinates",
				"start", o.Start, "end", o.End)
		}
	}
}

func lessOffsets(a, b Offsets) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// postProcess implements spec.md §4.6's post_process: truncate (shrinking
// the budget by the post-processor's added-token count when special
// tokens will be added), process (post-processor, or DefaultProcess), then
// pad.
func (t *Tokenizer) postProcess(encoding Encoding, pairEncoding *Encoding, addSpecialTokens bool) (Encoding, error) {
	enc := encoding
	pair := pairEncoding

	if t.trunc != nil {
		params := *t.trunc
		if addSpecialTokens && t.postProcessor != nil {
			n := t.postProcessor.AddedTokens(pair != nil)
			if n > 0 {
				params.MaxLength -= n
				if params.MaxLength < 0 {
					return Encoding{}, errors.Wrap(ErrPaddingTruncationConflict, "truncation: max_length smaller than the post-processor's added tokens")
				}
			}
		}

		newEnc, newPair, err := TruncateEncodings(enc, pair, params)
		if err != nil {
			return Encoding{}, wrapStage(err, "truncation")
		}
		enc, pair = newEnc, newPair
	}

	var final Encoding
	var err error
	if t.postProcessor != nil {
		final, err = t.postProcessor.Process(enc, pair, addSpecialTokens)
		if err != nil {
			return Encoding{}, wrapStage(err, stagePostProcessor)
		}
	} else {
		final, err = DefaultProcess(enc, pair, addSpecialTokens)
		if err != nil {
			return Encoding{}, err
		}
	}

	if t.padding != nil {
		size := final.Len()
		if t.padding.Strategy == Fixed {
			size = t.padding.FixedLength
		}
		final = final.Pad(size, t.padding.PadID, t.padding.PadTypeID, t.padding.PadToken, t.padding.Direction)
	}

	return final, nil
}

// Decode maps ids back to a string: each id resolves through the added
// vocabulary first, then the model; unresolved ids are dropped; if
// skipSpecialTokens is set, ids whose surface form is a registered special
// token are dropped too. The configured Decoder joins the surviving
// tokens, or they are space-joined if none is configured.
func (t *Tokenizer) Decode(ids []uint32, skipSpecialTokens bool) (string, error) {
	var tokens []string
	for _, id := range ids {
		tok, ok := t.IDToToken(id)
		if !ok {
			continue
		}
		if skipSpecialTokens && t.vocab.IsSpecial(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	if t.decoder != nil {
		decoded, err := t.decoder.Decode(tokens)
		if err != nil {
			return "", wrapStage(err, stageDecoder)
		}
		return decoded, nil
	}
	return strings.Join(tokens, " "), nil
}

// String implements fmt.Stringer, summarizing the configured stages and
// policies for debugging.
func (t *Tokenizer) String() string {
	var b strings.Builder
	b.WriteString("Tokenizer(\n")
	b.WriteString("  VocabSize=" + itoa(t.GetVocabSize(true)) + "\n")
	b.WriteString("  HasNormalizer=" + boolStr(t.normalizer != nil) + "\n")
	b.WriteString("  HasPreTokenizer=" + boolStr(t.preTokenizer != nil) + "\n")
	b.WriteString("  HasPostProcessor=" + boolStr(t.postProcessor != nil) + "\n")
	b.WriteString("  HasDecoder=" + boolStr(t.decoder != nil) + "\n")
	b.WriteString("  TruncationSet=" + boolStr(t.trunc != nil) + "\n")
	b.WriteString("  PaddingSet=" + boolStr(t.padding != nil) + "\n")
	b.WriteString(")\n")
	return b.String()
}

func boolStr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func itoa(n int) string {
	// Tiny local itoa to avoid pulling in strconv just for String(); n is
	// always small and non-negative here (a vocabulary size).
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
