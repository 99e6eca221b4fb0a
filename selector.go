package postag

import (
	"context"
	"runtime"

	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/happyhackingspace/postag/tagger"
	"golang.org/x/sync/errgroup"
)

// Selector tags each sentence with the domain tagger when the sentence is
// similar enough to the domain vocabulary, otherwise with the general one.
type Selector struct {
	Domain    *tagger.Tagger
	General   *tagger.Tagger
	Threshold float64
}

// NewSelector creates a selector.
func NewSelector(domain, general *tagger.Tagger, threshold float64) *Selector {
	return &Selector{Domain: domain, General: general, Threshold: threshold}
}

// Choose returns the slot to use for s and the similarity it was based on.
// A similarity equal to the threshold selects the domain model.
func (sel *Selector) Choose(s corpus.Sentence) (int, float64) {
	similarity := sel.Domain.CosineSimilarity(s)
	if similarity >= sel.Threshold {
		return SlotDomain, similarity
	}
	return SlotGeneral, similarity
}

// Tag tags s with the chosen tagger and returns its slot.
func (sel *Selector) Tag(s corpus.Sentence) int {
	slot, _ := sel.Choose(s)
	if slot == SlotDomain {
		sel.Domain.Tag(s)
	} else {
		sel.General.Tag(s)
	}
	return slot
}

// TagAll tags sentences in parallel and returns the slot used for each.
func (sel *Selector) TagAll(ctx context.Context, sentences []corpus.Sentence, workers int) ([]int, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	slots := make([]int, len(sentences))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range sentences {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i] = sel.Tag(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots, nil
}
