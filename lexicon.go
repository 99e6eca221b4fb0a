package postag

import (
	"context"
	"log/slog"

	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/happyhackingspace/postag/internal/feature"
	"github.com/happyhackingspace/postag/internal/vectorizer"
	"github.com/happyhackingspace/postag/maxent"
	"github.com/happyhackingspace/postag/tagger"
)

// CollectLemmas returns the lemmas whose document frequency over the
// included shards is strictly greater than cutoff. Each shard is one document.
func CollectLemmas(ctx context.Context, c *corpus.Corpus, fold Fold, cutoff, workers int) (tagger.Set, error) {
	perFile, err := scanFiles(ctx, c, fold, workers, func(sentences []corpus.Sentence) (*vectorizer.DocumentFrequency, error) {
		var lemmas []string
		for _, s := range sentences {
			lemmas = append(lemmas, s.Lemmas()...)
		}
		df := vectorizer.NewDocumentFrequency()
		df.AddDocument(lemmas)
		return df, nil
	})
	if err != nil {
		return nil, err
	}

	df := vectorizer.NewDocumentFrequency()
	for _, d := range perFile {
		df.Merge(d)
	}
	kept := df.Above(cutoff)
	slog.Info("Lemma reduction", "from", df.Size(), "to", len(kept), "cutoff", cutoff)
	return tagger.NewSet(kept...), nil
}

// CollectLexicon runs the collect pass and derives the form vocabulary and
// ambiguity map of a slot.
func CollectLexicon(ctx context.Context, c *corpus.Corpus, fold Fold, lemmas tagger.Set, slot feature.Slot, workers int) (*tagger.Lexicon, error) {
	perFile, err := scanFiles(ctx, c, fold, workers, func(sentences []corpus.Sentence) (*tagger.Counts, error) {
		counts := tagger.NewCounts()
		collect := tagger.Collect{Counts: counts}
		for _, s := range sentences {
			tagger.Traverse(s, collect)
		}
		return counts, nil
	})
	if err != nil {
		return nil, err
	}

	counts := tagger.NewCounts()
	for _, fc := range perFile {
		counts.Merge(fc)
	}
	lex := tagger.NewLexicon(lemmas)
	lex.Forms = counts.FormSet(slot.FeatureCutoff)
	lex.Ambiguity = counts.AmbiguityMap(slot.AmbiguityThreshold)
	slog.Info("Lexicon collected", "slot", SlotName(slot.ID),
		"forms", len(lex.Forms), "ambiguity_classes", len(lex.Ambiguity))
	return lex, nil
}

// BuildTrainingSet runs the extract pass and returns the slot's training set.
// Instances keep file order regardless of the number of workers.
func BuildTrainingSet(ctx context.Context, c *corpus.Corpus, fold Fold, lex *tagger.Lexicon, templates []feature.Template, slot feature.Slot, workers int) (*maxent.TrainingSet, error) {
	extractor := &tagger.Extractor{Lexicon: lex, Templates: templates}
	perFile, err := scanFiles(ctx, c, fold, workers, func(sentences []corpus.Sentence) ([]maxent.Instance, error) {
		sink := maxent.NewTrainingSet(0, 0)
		extract := tagger.Extract{Extractor: extractor, Sink: sink}
		for _, s := range sentences {
			tagger.Traverse(s, extract)
		}
		return sink.Instances(), nil
	})
	if err != nil {
		return nil, err
	}

	ts := maxent.NewTrainingSet(slot.LabelCutoff, slot.FeatureCutoff)
	for _, instances := range perFile {
		ts.Append(instances)
	}
	slog.Info("Training set built", "slot", SlotName(slot.ID), "instances", ts.Len())
	return ts, nil
}
