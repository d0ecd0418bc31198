package tokenizers

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Train expands patterns (plain paths or doublestar globs, e.g.
// "corpus/**/*.txt") into a file list, counts pre-tokenized word
// frequencies across all of them in parallel, hands the aggregated counts
// to trainer, and swaps in the resulting Model plus any special tokens the
// trainer asks for. Each matching file is read line by line with its line
// terminators intact (spec.md §4.7/§9: an ingestion pass must not silently
// normalize line endings out from under the pre-tokenizer).
func (t *Tokenizer) Train(trainer Trainer, patterns []string) error {
	runID := newRunID()
	logger := t.logger.WithRun(runID).WithStage(stageTrainer)

	files, err := expandPatterns(patterns)
	if err != nil {
		return wrapStage(err, stageIO)
	}
	logger.Info("training started", "files", len(files))

	var bar *progressbar.ProgressBar
	if trainer.ShouldShowProgress() {
		bar = progressbar.Default(int64(len(files)), "training")
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	perFile := make([]map[string]uint32, len(files))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			words, err := countWordsInFile(ctx, t, trainer, path)
			if err != nil {
				return errors.Wrapf(err, "tokenizers: training: reading %s", path)
			}
			perFile[i] = words
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return wrapStage(err, stageIO)
	}

	words := map[string]uint32{}
	for _, m := range perFile {
		for w, c := range m {
			words[w] += c
		}
	}
	logger.Info("word counting complete", "distinct_words", len(words))

	model, specialTokens, err := trainer.Train(words)
	if err != nil {
		return wrapStage(err, stageTrainer)
	}

	t.model = model
	if len(specialTokens) > 0 {
		t.AddSpecialTokens(specialTokens)
	}

	logger.Info("training complete", "vocab_size", t.GetVocabSize(true))
	return nil
}

// expandPatterns expands each pattern with doublestar.FilepathGlob, keeping
// the pattern itself as a literal path when it matches nothing, and
// returns the files in pattern order with duplicates removed.
func expandPatterns(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("tokenizers: invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "tokenizers: expanding pattern %q", pattern)
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, m := range matches {
			abs := filepath.Clean(m)
			if !seen[abs] {
				seen[abs] = true
				files = append(files, abs)
			}
		}
	}
	return files, nil
}

// countWordsInFile reads path line by line, preserving terminators, runs
// each line through normalize + pre-tokenize, and folds the resulting
// surface strings into a per-file word count map via the trainer's
// ProcessTokens.
func countWordsInFile(ctx context.Context, t *Tokenizer, trainer Trainer, path string) (map[string]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := map[string]uint32{}
	reader := bufio.NewReader(f)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			if !utf8.ValidString(line) {
				return nil, ErrInvalidUTF8
			}
			if err := addLineToWordCounts(t, trainer, line, words); err != nil {
				return nil, err
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return nil, readErr
		}
	}
	return words, nil
}

func addLineToWordCounts(t *Tokenizer, trainer Trainer, line string, words map[string]uint32) error {
	if strings.TrimRight(line, "\r\n") == "" {
		return nil
	}

	// line keeps its terminator here: do_normalize in
	// original_source/.../mod.rs runs on the raw read_line buffer, not a
	// terminator-stripped copy.
	normalized, err := t.Normalize(line)
	if err != nil {
		return err
	}
	pretoks, err := t.preTokenizeNormalized(&normalized)
	if err != nil {
		return err
	}

	tokens := make([]string, len(pretoks))
	for i, p := range pretoks {
		tokens[i] = p.Value
	}

	// A Trainer's ProcessTokens owns the word<->token boundary (e.g. BPE
	// trainers count whole pre-tokens; others may split further), so hand
	// it the full set rather than counting here.
	trainerWords := map[string]uint32{}
	trainer.ProcessTokens(trainerWords, tokens)
	for w, c := range trainerWords {
		words[w] += c
	}
	return nil
}
