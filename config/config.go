// Package config loads a Tokenizer's truncation/padding policy and seed
// added tokens from a YAML file, with environment-variable overrides for
// the scalar fields -- the same two-library combination
// (gopkg.in/yaml.v3 + github.com/kelseyhightower/envconfig) used by
// rice-search's own config package. It never serializes the
// Model/Normalizer/PreTokenizer/PostProcessor/Decoder graph itself: that
// remains out of scope (spec.md's "no serialization of the tokenizer
// configuration" non-goal covers the pipeline's collaborators, not its
// truncation/padding policy).
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TruncationConfig mirrors tokenizers.TruncationParams in a serializable
// shape. Strategy is a string so it round-trips through YAML/env cleanly;
// the root package's ApplyConfig converts it.
type TruncationConfig struct {
	Enabled  bool   `envconfig:"TOKENIZER_TRUNCATION_ENABLED" yaml:"enabled"`
	MaxLen   int    `envconfig:"TOKENIZER_TRUNCATION_MAX_LEN" yaml:"max_length"`
	Strategy string `envconfig:"TOKENIZER_TRUNCATION_STRATEGY" yaml:"strategy"`
	Stride   int    `envconfig:"TOKENIZER_TRUNCATION_STRIDE" yaml:"stride"`
}

// PaddingConfig mirrors tokenizers.PaddingParams in a serializable shape.
type PaddingConfig struct {
	Enabled     bool   `envconfig:"TOKENIZER_PADDING_ENABLED" yaml:"enabled"`
	Strategy    string `envconfig:"TOKENIZER_PADDING_STRATEGY" yaml:"strategy"`
	FixedLength int    `envconfig:"TOKENIZER_PADDING_FIXED_LENGTH" yaml:"fixed_length"`
	Direction   string `envconfig:"TOKENIZER_PADDING_DIRECTION" yaml:"direction"`
	PadID       uint32 `envconfig:"TOKENIZER_PADDING_PAD_ID" yaml:"pad_id"`
	PadTypeID   uint32 `envconfig:"TOKENIZER_PADDING_PAD_TYPE_ID" yaml:"pad_type_id"`
	PadToken    string `envconfig:"TOKENIZER_PADDING_PAD_TOKEN" yaml:"pad_token"`
}

// AddedTokenConfig mirrors tokenizers.AddedToken.
type AddedTokenConfig struct {
	Content    string `yaml:"content"`
	SingleWord bool   `yaml:"single_word"`
	Special    bool   `yaml:"special"`
}

// Params is the full set of Tokenizer policy knobs this package can load.
type Params struct {
	Truncation   TruncationConfig   `yaml:"truncation"`
	Padding      PaddingConfig      `yaml:"padding"`
	AddedTokens  []AddedTokenConfig `yaml:"added_tokens"`
	LogLevel     string             `envconfig:"TOKENIZER_LOG_LEVEL" yaml:"log_level"`
	LogFormat    string             `envconfig:"TOKENIZER_LOG_FORMAT" yaml:"log_format"`
}

// Load reads Params from the YAML file at path (defaults applied first),
// then applies environment-variable overrides. path may be empty, in which
// case only defaults and environment variables apply.
func Load(path string) (*Params, error) {
	p := &Params{}
	setDefaults(p)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("tokenizers/config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("tokenizers/config: parsing %s: %w", path, err)
		}
	}

	if err := envconfig.Process("", p); err != nil {
		return nil, fmt.Errorf("tokenizers/config: processing env overrides: %w", err)
	}

	return p, nil
}

func setDefaults(p *Params) {
	p.Truncation = TruncationConfig{
		Enabled:  false,
		MaxLen:   512,
		Strategy: "longest_first",
		Stride:   0,
	}
	p.Padding = PaddingConfig{
		Enabled:   false,
		Strategy:  "batch_longest",
		Direction: "right",
		PadToken:  "[PAD]",
	}
	p.LogLevel = "info"
	p.LogFormat = "text"
}
