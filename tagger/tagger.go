// Package tagger applies a trained model, together with the lexicon it was
// trained with, to sentences. One traversal serves collecting, feature
// extraction and prediction; see Traverse.
package tagger

import (
	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/happyhackingspace/postag/internal/feature"
	"github.com/happyhackingspace/postag/internal/vectorizer"
	"github.com/happyhackingspace/postag/maxent"
)

// Tagger is a model and the lexicon it was trained with.
type Tagger struct {
	Lexicon *Lexicon      `json:"lexicon"`
	Model   *maxent.Model `json:"model"`

	extractor *Extractor
}

// New creates a tagger ready to tag.
func New(lex *Lexicon, model *maxent.Model, templates []feature.Template) *Tagger {
	t := &Tagger{Lexicon: lex, Model: model}
	t.Bind(templates)
	return t
}

// Bind sets the feature templates; required after decoding a tagger.
func (t *Tagger) Bind(templates []feature.Template) {
	t.extractor = &Extractor{Lexicon: t.Lexicon, Templates: templates}
}

// Tag predicts the tag of every token, writing Token.Predicted, and
// returns the predicted tags.
func (t *Tagger) Tag(s corpus.Sentence) []string {
	corpus.Normalize(s)
	return Traverse(s, Predict{Extractor: t.extractor, Scorer: t.Model})
}

// CosineSimilarity scores how much of the sentence the lemma vocabulary
// covers: the cosine between the lemma count vector and its projection
// onto the vocabulary. 0 for an empty sentence.
func (t *Tagger) CosineSimilarity(s corpus.Sentence) float64 {
	corpus.Normalize(s)
	return vectorizer.Count(s.Lemmas()).ProjectionCosine(t.Lexicon.Lemmas.Has)
}
