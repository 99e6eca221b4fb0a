// Package corpus reads POS-annotated corpora.
package corpus

import (
	"strings"

	"github.com/happyhackingspace/postag/internal/textutil"
)

// Token is a single word of a sentence.
type Token struct {
	Form      string // surface form as read
	Lemma     string // normalized lemma after Normalize
	Tag       string // gold tag, empty when unannotated
	Predicted string // set by tagging

	// Simple is the simplified form, set by Normalize.
	Simple string

	normalized bool
}

// Sentence is an ordered list of tokens.
type Sentence []*Token

// Normalize fills Simple and replaces Lemma with its normalized form.
// Tokens already normalized are left alone, so it is safe to call repeatedly.
func Normalize(s Sentence) {
	for _, tok := range s {
		if tok.normalized {
			continue
		}
		tok.normalized = true
		tok.Simple = textutil.Simplify(tok.Form)
		lemma := tok.Lemma
		if lemma == "" || lemma == "_" {
			lemma = tok.Form
		}
		tok.Lemma = textutil.Lemma(lemma)
	}
}

// Lemmas returns the lemmas of a normalized sentence.
func (s Sentence) Lemmas() []string {
	lemmas := make([]string, len(s))
	for i, tok := range s {
		lemmas[i] = tok.Lemma
	}
	return lemmas
}

// Gold returns the gold tags of the sentence.
func (s Sentence) Gold() []string {
	tags := make([]string, len(s))
	for i, tok := range s {
		tags[i] = tok.Tag
	}
	return tags
}

// CountCorrect returns how many predicted tags equal the given gold tags.
func (s Sentence) CountCorrect(gold []string) int {
	correct := 0
	for i, tok := range s {
		if i < len(gold) && tok.Predicted == gold[i] {
			correct++
		}
	}
	return correct
}

// String renders the sentence as space-separated form/tag pairs.
func (s Sentence) String() string {
	parts := make([]string, len(s))
	for i, tok := range s {
		tag := tok.Predicted
		if tag == "" {
			tag = tok.Tag
		}
		parts[i] = tok.Form + "/" + tag
	}
	return strings.Join(parts, " ")
}
