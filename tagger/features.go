package tagger

import (
	"strings"

	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/happyhackingspace/postag/internal/feature"
	"github.com/happyhackingspace/postag/internal/textutil"
)

// Boundary markers for positions outside the sentence.
const (
	BOS = "<s>"
	EOS = "</s>"
)

// Extractor turns a token in context into feature strings.
type Extractor struct {
	Lexicon   *Lexicon
	Templates []feature.Template
}

// Features returns the features of token i. A template fires only when
// every atom has a value; its feature is "name=v1|v2|...".
func (e *Extractor) Features(s corpus.Sentence, i int, history History) []string {
	features := make([]string, 0, len(e.Templates))
	values := make([]string, 0, 4)
	for _, t := range e.Templates {
		values = values[:0]
		for _, a := range t.Atoms {
			v := e.value(s, i, history, a)
			if v == "" {
				break
			}
			values = append(values, v)
		}
		if len(values) != len(t.Atoms) {
			continue
		}
		features = append(features, t.Name()+"="+strings.Join(values, "|"))
	}
	return features
}

func (e *Extractor) value(s corpus.Sentence, i int, history History, a feature.Atom) string {
	j := i + a.Offset
	if j < 0 {
		return BOS
	}
	if j >= len(s) {
		return EOS
	}

	if a.Field == feature.FieldTag {
		if j >= len(history) {
			return ""
		}
		return history[j]
	}

	tok := s[j]
	switch a.Field {
	case feature.FieldForm:
		if e.Lexicon.Forms.Has(tok.Simple) {
			return tok.Simple
		}
	case feature.FieldLemma:
		if e.Lexicon.Lemmas.Has(tok.Lemma) {
			return tok.Lemma
		}
	case feature.FieldAmbiguity:
		return e.Lexicon.Ambiguity[tok.Simple]
	case feature.FieldShape:
		return textutil.Shape(tok.Form)
	case feature.FieldPrefix:
		if !e.Lexicon.Forms.Has(tok.Simple) {
			return textutil.Prefix(strings.ToLower(tok.Simple), a.N)
		}
	case feature.FieldSuffix:
		if !e.Lexicon.Forms.Has(tok.Simple) {
			return textutil.Suffix(strings.ToLower(tok.Simple), a.N)
		}
	}
	return ""
}
