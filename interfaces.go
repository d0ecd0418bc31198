package tokenizers

// Offsets is a half-open byte range [Start, End) into some string. It is
// used both for a Token's position in the normalized source and for an
// Encoding entry's position (normalized at construction time, rewritten to
// original coordinates by Encode's final offset-remap pass).
type Offsets struct {
	Start int
	End   int
}

// Token is emitted by a Model for one pre-token.
type Token struct {
	ID      uint32
	Value   string
	Offsets Offsets
}

// NewToken builds a Token, mirroring the collaborator contract's
// Token::new.
func NewToken(id uint32, value string, offsets Offsets) Token {
	return Token{ID: id, Value: value, Offsets: offsets}
}

// Normalizer takes care of text normalization (Unicode normalization, case
// folding, accent stripping, ...). Implementations mutate normalized in
// place and are responsible for keeping its alignment consistent with
// whatever edits they make.
type Normalizer interface {
	Normalize(normalized *NormalizedString) error
}

// NormalizerFunc adapts a plain function to a Normalizer.
type NormalizerFunc func(*NormalizedString) error

func (f NormalizerFunc) Normalize(n *NormalizedString) error { return f(n) }

// PreTokenizer performs the pre-segmentation step: it splits the current
// normalized string into pre-tokens, each carrying its byte offsets into
// that normalized string. It may further mutate the normalized string.
type PreTokenizer interface {
	PreTokenize(normalized *NormalizedString) ([]PreToken, error)
}

// PreTokenizerFunc adapts a plain function to a PreTokenizer.
type PreTokenizerFunc func(*NormalizedString) ([]PreToken, error)

func (f PreTokenizerFunc) PreTokenize(n *NormalizedString) ([]PreToken, error) { return f(n) }

// PreToken is one pre-tokenizer output: a substring plus its offsets into
// the normalized string it was cut from.
type PreToken struct {
	Value   string
	Offsets Offsets
}

// Model encapsulates the tokenization algorithm itself (BPE, WordPiece,
// Unigram, ...). Concrete models are out of scope for this package; only
// the interface is specified.
type Model interface {
	Tokenize(pretokens []PreToken) ([]Token, error)
	TokenToID(token string) (uint32, bool)
	IDToToken(id uint32) (string, bool)
	VocabSize() int
	Save(folder string, name string) ([]string, error)
}

// PostProcessor adds any special tokens a downstream model requires and
// merges a pair of encodings into the final shape. Process must keep each
// sequence's offsets non-decreasing: Tokenizer.Encode finds the seam
// between the two sequences by watching for an offset decrease.
type PostProcessor interface {
	// AddedTokens returns how many tokens Process will add, given whether
	// a pair sequence is present. The orchestrator uses this to shrink the
	// truncation budget before truncating.
	AddedTokens(isPair bool) int
	Process(encoding Encoding, pairEncoding *Encoding, addSpecialTokens bool) (Encoding, error)
}

// DefaultProcess implements the fallback behavior used when no
// PostProcessor is configured: pass the single encoding through unchanged,
// or merge a pair with growing_offsets=false (pair offsets are kept as the
// pair's own normalized-coordinate offsets; see Tokenizer.Encode's seam
// detection, which relies on this specific choice).
func DefaultProcess(encoding Encoding, pairEncoding *Encoding, _ bool) (Encoding, error) {
	if pairEncoding == nil {
		return encoding, nil
	}
	return encoding.MergeWith(*pairEncoding, false), nil
}

// Decoder merges a token sequence back into a single string.
type Decoder interface {
	Decode(tokens []string) (string, error)
}

// DecoderFunc adapts a plain function to a Decoder.
type DecoderFunc func([]string) (string, error)

func (f DecoderFunc) Decode(tokens []string) (string, error) { return f(tokens) }

// Trainer produces a new Model from word counts aggregated across a
// corpus.
type Trainer interface {
	ShouldShowProgress() bool
	// Train returns the freshly trained Model, plus any special tokens
	// that should be registered on the Tokenizer alongside it.
	Train(words map[string]uint32) (Model, []string, error)
	// ProcessTokens folds a pre-tokenized line's surface strings into the
	// running word-count map.
	ProcessTokens(words map[string]uint32, tokens []string)
}

// EncodeInput is either a single sequence or a pair of sequences (e.g. a
// question and a context passage) to be jointly encoded.
type EncodeInput struct {
	Sequence string
	Pair     *string
}

// NewSingleInput wraps a single sequence for Encode.
func NewSingleInput(sequence string) EncodeInput {
	return EncodeInput{Sequence: sequence}
}

// NewPairInput wraps a sequence pair for Encode.
func NewPairInput(sequence, pair string) EncodeInput {
	return EncodeInput{Sequence: sequence, Pair: &pair}
}
