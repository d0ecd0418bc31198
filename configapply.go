package tokenizers

import (
	"github.com/pkg/errors"
	"github.com/subtok/tokenizers/config"
	"github.com/subtok/tokenizers/internal/obslog"
)

// ApplyConfig configures t's truncation, padding, seed added tokens and
// logger from a loaded config.Params, translating its string enums into
// this package's typed constants.
func ApplyConfig(t *Tokenizer, params *config.Params) error {
	t.WithLogger(obslog.New(params.LogLevel, params.LogFormat))

	if params.Truncation.Enabled {
		strategy, err := parseTruncationStrategy(params.Truncation.Strategy)
		if err != nil {
			return err
		}
		t.WithTruncation(&TruncationParams{
			MaxLength: params.Truncation.MaxLen,
			Strategy:  strategy,
			Stride:    params.Truncation.Stride,
		})
	}

	if params.Padding.Enabled {
		strategy, err := parsePaddingStrategy(params.Padding.Strategy)
		if err != nil {
			return err
		}
		direction, err := parsePaddingDirection(params.Padding.Direction)
		if err != nil {
			return err
		}
		t.WithPadding(&PaddingParams{
			Strategy:    strategy,
			Direction:   direction,
			FixedLength: params.Padding.FixedLength,
			PadID:       params.Padding.PadID,
			PadTypeID:   params.Padding.PadTypeID,
			PadToken:    params.Padding.PadToken,
		})
	}

	var special []string
	var plain []AddedToken
	for _, at := range params.AddedTokens {
		if at.Special {
			special = append(special, at.Content)
		} else {
			plain = append(plain, AddedToken{Content: at.Content, SingleWord: at.SingleWord})
		}
	}
	if len(plain) > 0 {
		t.AddTokens(plain)
	}
	if len(special) > 0 {
		t.AddSpecialTokens(special)
	}

	return nil
}

func parseTruncationStrategy(s string) (TruncationStrategy, error) {
	switch s {
	case "longest_first", "":
		return LongestFirst, nil
	case "only_first":
		return OnlyFirst, nil
	case "only_second":
		return OnlySecond, nil
	default:
		return 0, errors.Errorf("tokenizers: config: unknown truncation strategy %q", s)
	}
}

func parsePaddingStrategy(s string) (PaddingStrategy, error) {
	switch s {
	case "batch_longest", "":
		return BatchLongest, nil
	case "fixed":
		return Fixed, nil
	default:
		return 0, errors.Errorf("tokenizers: config: unknown padding strategy %q", s)
	}
}

func parsePaddingDirection(s string) (PaddingDirection, error) {
	switch s {
	case "right", "":
		return Right, nil
	case "left":
		return Left, nil
	default:
		return 0, errors.Errorf("tokenizers: config: unknown padding direction %q", s)
	}
}
