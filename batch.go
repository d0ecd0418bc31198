package tokenizers

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EncodeBatch encodes every input concurrently, bounded by GOMAXPROCS, and
// returns results in the same order as inputs -- order is preserved by
// writing into an index-addressed slice, not by channel completion order,
// so a slow item never reshuffles the batch (spec.md §6's "fork-join,
// order-preserving" requirement).
func (t *Tokenizer) EncodeBatch(inputs []EncodeInput, addSpecialTokens bool) ([]Encoding, error) {
	results := make([]Encoding, len(inputs))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			enc, err := t.Encode(input, addSpecialTokens)
			if err != nil {
				return err
			}
			results[i] = enc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if t.padding != nil {
		results = PadEncodings(results, *t.padding)
	}

	return results, nil
}

// DecodeBatch decodes every id sequence concurrently, bounded by
// GOMAXPROCS, preserving input order.
func (t *Tokenizer) DecodeBatch(sequences [][]uint32, skipSpecialTokens bool) ([]string, error) {
	results := make([]string, len(sequences))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, ids := range sequences {
		i, ids := i, ids
		g.Go(func() error {
			s, err := t.Decode(ids, skipSpecialTokens)
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
