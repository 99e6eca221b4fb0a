package postag

import (
	"context"

	"github.com/happyhackingspace/postag/internal/corpus"
	"golang.org/x/sync/errgroup"
)

// Fold is the set of shard indices held out of a training pass.
// A nil Fold excludes nothing.
type Fold map[int]struct{}

// NewFold creates a fold holding out the given shards.
func NewFold(shards ...int) Fold {
	f := make(Fold, len(shards))
	for _, i := range shards {
		f[i] = struct{}{}
	}
	return f
}

// Excludes reports whether shard i is held out.
func (f Fold) Excludes(i int) bool {
	_, ok := f[i]
	return ok
}

// scanFiles reads every shard not held out by fold, normalizes its
// sentences and passes them to fn. Files are processed by up to workers
// goroutines; results come back in file order.
func scanFiles[T any](ctx context.Context, c *corpus.Corpus, fold Fold, workers int, fn func([]corpus.Sentence) (T, error)) ([]T, error) {
	var included []int
	for i := range c.Files {
		if !fold.Excludes(i) {
			included = append(included, i)
		}
	}

	results := make([]T, len(included))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, i := range included {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sentences, err := corpus.ReadAll(c.Open, c.Files[i])
			if err != nil {
				return err
			}
			for _, s := range sentences {
				corpus.Normalize(s)
			}
			r, err := fn(sentences)
			if err != nil {
				return err
			}
			results[k] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
