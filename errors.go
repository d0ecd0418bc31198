package tokenizers

import "github.com/pkg/errors"

// Sentinel errors identifying the failure kinds from spec.md §7. Stage
// wrappers (wrapStage) attach collaborator context on top of these via
// errors.Wrap, so callers can still recover the kind with errors.Is.
var (
	// ErrSequenceTooShort is returned when a truncation strategy cannot
	// bring the pair under budget (e.g. OnlyFirst with a pair already
	// longer than max_length on its own).
	ErrSequenceTooShort = errors.New("tokenizers: sequence too short for truncation strategy")

	// ErrAlignmentOutOfRange names the offset-conversion miss kind.
	// NormalizedString.ConvertOffsets reports a miss with ok=false rather
	// than with this error, and the orchestrator keeps the
	// normalized-coordinate offset as-is; no function of this package
	// returns it.
	ErrAlignmentOutOfRange = errors.New("tokenizers: offset out of normalized string range")

	// ErrInvalidUTF8 is returned by file ingestion when a training file
	// is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("tokenizers: invalid UTF-8 input")

	// ErrPaddingTruncationConflict is returned when truncation/padding
	// parameters are miscalibrated (e.g. max_length smaller than the
	// number of tokens the post-processor always adds).
	ErrPaddingTruncationConflict = errors.New("tokenizers: max_length too small for added special tokens")

	// ErrTokenizerFinalized guards use of a Tokenizer whose Model has not
	// been configured (the zero value, or WithModel(nil)); returned by
	// Encode instead of panicking on a nil Model dereference.
	ErrTokenizerFinalized = errors.New("tokenizers: tokenizer has no model configured")
)

// stage names used when wrapping collaborator errors with context, per
// spec.md §7 "surfaces the first error with stage context".
const (
	stageNormalizer    = "normalizer"
	stagePreTokenizer  = "pre_tokenizer"
	stageModel         = "model"
	stagePostProcessor = "post_processor"
	stageDecoder       = "decoder"
	stageTrainer       = "trainer"
	stageIO            = "io"
)

// wrapStage attaches stage context to a collaborator error, or returns nil
// unchanged. It is the single choke point through which every pipeline
// stage's error passes before propagating to the caller of Encode/
// EncodeBatch/Train.
func wrapStage(err error, stage string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "tokenizers: %s failed", stage)
}
