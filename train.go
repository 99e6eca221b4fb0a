package postag

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/happyhackingspace/postag/tagger"
)

var errNoDescriptor = errors.New("no feature descriptor")

// TrainTagger builds the vocabularies of a slot over the shards not held
// out by fold, then trains its model.
func TrainTagger(ctx context.Context, c *corpus.Corpus, fold Fold, slotID int, opts Options) (*tagger.Tagger, error) {
	opts = opts.withDefaults()
	d := opts.Descriptor
	if d == nil {
		return nil, errNoDescriptor
	}
	slot, err := d.Slot(slotID)
	if err != nil {
		return nil, err
	}

	lemmas, err := CollectLemmas(ctx, c, fold, slot.DocumentFrequency, opts.Workers)
	if err != nil {
		return nil, err
	}
	lex, err := CollectLexicon(ctx, c, fold, lemmas, slot, opts.Workers)
	if err != nil {
		return nil, err
	}
	ts, err := BuildTrainingSet(ctx, c, fold, lex, d.Templates, slot, opts.Workers)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	model, err := opts.Trainer(ts)
	if err != nil {
		return nil, errors.Wrapf(err, "train %s model", SlotName(slotID))
	}
	slog.Debug("Model trained", "slot", SlotName(slotID),
		"labels", model.NumLabels, "features", model.Attributes.Size(), "duration", time.Since(start))
	return tagger.New(lex, model, d.Templates), nil
}

// TrainTaggers trains a tagger for every slot, in order.
func TrainTaggers(ctx context.Context, c *corpus.Corpus, fold Fold, opts Options, slots ...int) ([]*tagger.Tagger, error) {
	taggers := make([]*tagger.Tagger, len(slots))
	for i, slot := range slots {
		t, err := TrainTagger(ctx, c, fold, slot, opts)
		if err != nil {
			return nil, err
		}
		taggers[i] = t
	}
	return taggers, nil
}

// Train trains the models of mode on the whole corpus. In dynamic mode a
// negative threshold is calibrated by cross-validation first.
func Train(ctx context.Context, c *corpus.Corpus, opts Options, mode Mode, threshold float64) (*Artifact, error) {
	opts = opts.withDefaults()
	if opts.Descriptor == nil {
		return nil, errNoDescriptor
	}
	slots := mode.Slots()
	if err := opts.Descriptor.Validate(slots...); err != nil {
		return nil, err
	}

	art := &Artifact{Descriptor: opts.Descriptor, Threshold: threshold}
	if mode == ModeDynamic && threshold < 0 {
		slog.Info("Calibrating threshold", "shards", len(c.Files))
		th, err := CrossValidate(ctx, c, opts)
		if err != nil {
			return nil, err
		}
		art.Threshold = th
	}

	taggers, err := TrainTaggers(ctx, c, nil, opts, slots...)
	if err != nil {
		return nil, err
	}
	art.Taggers = taggers
	if mode != ModeDynamic {
		art.Threshold = 0
	}
	slog.Info("Training completed", "mode", mode, "models", len(taggers), "threshold", art.Threshold)
	return art, nil
}
