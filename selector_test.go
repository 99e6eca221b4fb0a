package postag

import (
	"context"
	"math"
	"testing"

	"github.com/happyhackingspace/postag/internal/corpus"
	"github.com/happyhackingspace/postag/internal/feature"
	"github.com/happyhackingspace/postag/maxent"
	"github.com/happyhackingspace/postag/tagger"
)

func toyTagger(t *testing.T, lemmas ...string) *tagger.Tagger {
	t.Helper()
	tmpl, err := feature.ParseTemplate("lemma[0]")
	if err != nil {
		t.Fatal(err)
	}
	ts := maxent.NewTrainingSet(0, 0)
	ts.Add([]string{"lemma[0]=the"}, "DET")
	ts.Add([]string{"lemma[0]=dog"}, "NOUN")
	model, err := maxent.Train(ts, maxent.DefaultTrainerConfig())
	if err != nil {
		t.Fatal(err)
	}
	lex := tagger.NewLexicon(tagger.NewSet(lemmas...))
	return tagger.New(lex, model, []feature.Template{tmpl})
}

func words(forms ...string) corpus.Sentence {
	s := make(corpus.Sentence, len(forms))
	for i, f := range forms {
		s[i] = &corpus.Token{Form: f}
	}
	return s
}

func TestSelectorBoundary(t *testing.T) {
	domain := toyTagger(t, "the", "dog")
	general := toyTagger(t, "the", "dog", "cat")

	s := words("the", "cat")
	similarity := domain.CosineSimilarity(s)
	if math.Abs(similarity-1/math.Sqrt2) > 1e-9 {
		t.Fatalf("similarity = %v", similarity)
	}

	sel := NewSelector(domain, general, similarity)
	if slot, got := sel.Choose(s); slot != SlotDomain || got != similarity {
		t.Errorf("Choose at threshold = (%d, %v), want domain", slot, got)
	}

	sel.Threshold = math.Nextafter(similarity, 2)
	if slot, _ := sel.Choose(s); slot != SlotGeneral {
		t.Errorf("Choose just below threshold = %d, want general", slot)
	}

	sel.Threshold = 0
	if slot, _ := sel.Choose(words("zebra")); slot != SlotDomain {
		t.Error("threshold 0 should always choose the domain model")
	}
}

func TestSelectorDeterministic(t *testing.T) {
	sel := NewSelector(toyTagger(t, "the", "dog"), toyTagger(t), 0.6)
	inputs := []corpus.Sentence{
		words("the", "dog"),
		words("the", "cat"),
		words("a", "cat", "sat"),
		words(),
	}
	for _, s := range inputs {
		first, sim := sel.Choose(s)
		for range 5 {
			slot, again := sel.Choose(words(formsOf(s)...))
			if slot != first || again != sim {
				t.Errorf("Choose(%v) not deterministic: %d/%v then %d/%v", s, first, sim, slot, again)
			}
		}
	}
}

func formsOf(s corpus.Sentence) []string {
	forms := make([]string, len(s))
	for i, tok := range s {
		forms[i] = tok.Form
	}
	return forms
}

func TestSelectorTag(t *testing.T) {
	sel := NewSelector(toyTagger(t, "the", "dog"), toyTagger(t), 0.9)

	s := words("the", "dog")
	if slot := sel.Tag(s); slot != SlotDomain {
		t.Errorf("slot = %d, want domain", slot)
	}
	if s[0].Predicted != "DET" || s[1].Predicted != "NOUN" {
		t.Errorf("predicted = %s", s)
	}

	sentences := []corpus.Sentence{words("the", "dog"), words("the", "cat"), words("dog"), words()}
	slots, err := sel.TagAll(context.Background(), sentences, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range sentences {
		want, _ := sel.Choose(s)
		if slots[i] != want {
			t.Errorf("sentence %d: slot %d, want %d", i, slots[i], want)
		}
		for _, tok := range s {
			if tok.Predicted == "" {
				t.Errorf("sentence %d: token %q not tagged", i, tok.Form)
			}
		}
	}
}
