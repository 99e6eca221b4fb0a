package tagger

import "github.com/happyhackingspace/postag/internal/corpus"

// History holds the tags emitted so far in the current sentence.
type History []string

// Strategy decides what happens at each token of a traversal and returns
// the tag that enters the history.
type Strategy interface {
	OnToken(s corpus.Sentence, i int, history History) string
}

// Traverse visits the tokens of s left to right, threading the history
// through strategy, and returns the final history.
func Traverse(s corpus.Sentence, strategy Strategy) History {
	history := make(History, 0, len(s))
	for i := range s {
		history = append(history, strategy.OnToken(s, i, history))
	}
	return history
}

// Collect counts forms and their gold tags.
type Collect struct {
	Counts *Counts
}

func (c Collect) OnToken(s corpus.Sentence, i int, _ History) string {
	tok := s[i]
	c.Counts.Add(tok.Simple, tok.Tag)
	return tok.Tag
}

// Sink receives training instances. *maxent.TrainingSet implements it.
type Sink interface {
	Add(features []string, label string)
}

// Extract emits (features, gold tag) for every token; the history holds
// gold tags.
type Extract struct {
	Extractor *Extractor
	Sink      Sink
}

func (e Extract) OnToken(s corpus.Sentence, i int, history History) string {
	tok := s[i]
	e.Sink.Add(e.Extractor.Features(s, i, history), tok.Tag)
	return tok.Tag
}

// Scorer picks a label for a feature set. *maxent.Model implements it.
type Scorer interface {
	Predict(features []string) string
}

// Predict tags every token with the scorer; the history holds the
// tagger's own predictions.
type Predict struct {
	Extractor *Extractor
	Scorer    Scorer
}

func (p Predict) OnToken(s corpus.Sentence, i int, history History) string {
	tag := p.Scorer.Predict(p.Extractor.Features(s, i, history))
	s[i].Predicted = tag
	return tag
}
