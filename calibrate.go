package postag

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/happyhackingspace/postag/internal/corpus"
	"golang.org/x/sync/errgroup"
)

// ErrNoDomainAdvantage is returned when no held-out sentence was tagged
// better by the domain model than by the general model.
var ErrNoDomainAdvantage = errors.New("domain model never outperformed the general model")

// thresholdPercentile picks the similarity used as threshold.
const thresholdPercentile = 0.05

// FoldResult is the outcome of one leave-one-shard-out iteration.
type FoldResult struct {
	Shard int
	// Similarities of the sentences where the domain model got strictly
	// more tags right than the general model.
	Similarities []float64
	Correct      [2]int // by slot
	Total        int
}

// Accuracy returns the token accuracy of a slot's model on the held-out shard.
func (r FoldResult) Accuracy(slot int) float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct[slot]) / float64(r.Total)
}

// EvaluateFold trains both models without shard and compares them on it.
func EvaluateFold(ctx context.Context, c *corpus.Corpus, shard int, opts Options) (FoldResult, error) {
	res := FoldResult{Shard: shard}
	if shard < 0 || shard >= len(c.Files) {
		return res, errors.Newf("shard %d out of range [0,%d)", shard, len(c.Files))
	}

	taggers, err := TrainTaggers(ctx, c, NewFold(shard), opts, SlotDomain, SlotGeneral)
	if err != nil {
		return res, errors.Wrapf(err, "fold %d", shard)
	}
	domain, general := taggers[0], taggers[1]

	sentences, err := corpus.ReadAll(c.Open, c.Files[shard])
	if err != nil {
		return res, errors.Wrapf(err, "fold %d", shard)
	}
	for _, s := range sentences {
		corpus.Normalize(s)
		gold := s.Gold()
		similarity := domain.CosineSimilarity(s)

		domain.Tag(s)
		dc := s.CountCorrect(gold)
		general.Tag(s)
		gc := s.CountCorrect(gold)

		res.Correct[SlotDomain] += dc
		res.Correct[SlotGeneral] += gc
		res.Total += len(s)
		if dc > gc && similarity > 0 {
			res.Similarities = append(res.Similarities, similarity)
		}
	}
	return res, nil
}

// CrossValidate runs EvaluateFold for every shard and reduces the results
// to a similarity threshold. Any failing fold aborts the calibration.
func CrossValidate(ctx context.Context, c *corpus.Corpus, opts Options) (float64, error) {
	opts = opts.withDefaults()
	if opts.Descriptor == nil {
		return 0, errNoDescriptor
	}
	if err := opts.Descriptor.Validate(SlotDomain, SlotGeneral); err != nil {
		return 0, err
	}
	results := make([]FoldResult, len(c.Files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.FoldWorkers)
	for i := range c.Files {
		g.Go(func() error {
			r, err := EvaluateFold(ctx, c, i, opts)
			if err != nil {
				return err
			}
			slog.Info("Fold evaluated", "fold", i, "file", c.Files[i],
				"domain_accuracy", r.Accuracy(SlotDomain),
				"general_accuracy", r.Accuracy(SlotGeneral),
				"domain_wins", len(r.Similarities))
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	threshold, err := ReduceThreshold(results)
	if err != nil {
		return 0, err
	}
	slog.Info("Threshold calibrated", "threshold", threshold)
	return threshold, nil
}

// ReduceThreshold sorts the similarities of all folds and returns the one
// at index round(0.05*n), rounded up to three decimals.
func ReduceThreshold(results []FoldResult) (float64, error) {
	var all []float64
	for _, r := range results {
		all = append(all, r.Similarities...)
	}
	if len(all) == 0 {
		return 0, errors.WithHint(ErrNoDomainAdvantage,
			"pass an explicit --threshold or train a single model with --mode")
	}
	sort.Float64s(all)
	n := int(math.Round(thresholdPercentile * float64(len(all))))
	n = min(n, len(all)-1)
	return roundUp3(all[n]), nil
}

// roundUp3 rounds x up to three decimals, ignoring float noise below 1e-9.
func roundUp3(x float64) float64 {
	return math.Min(1, math.Ceil(x*1000-1e-9)/1000)
}
