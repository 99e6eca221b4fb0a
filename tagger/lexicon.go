package tagger

import (
	"encoding/json"
	"sort"
)

// Set is an immutable string set. It encodes as a sorted JSON array.
type Set map[string]struct{}

// NewSet builds a set from items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Has reports whether item is in the set.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Sorted returns the items in sorted order.
func (s Set) Sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}

// AmbiguityMap maps a simplified form to its ambiguity class.
type AmbiguityMap map[string]string

// Lexicon holds the vocabularies a model was trained with.
type Lexicon struct {
	Lemmas    Set          `json:"lemmas"`
	Forms     Set          `json:"forms"`
	Ambiguity AmbiguityMap `json:"ambiguity"`
}

// NewLexicon returns a lexicon with only a lemma vocabulary, as used
// while collecting forms.
func NewLexicon(lemmas Set) *Lexicon {
	if lemmas == nil {
		lemmas = NewSet()
	}
	return &Lexicon{Lemmas: lemmas, Forms: NewSet(), Ambiguity: AmbiguityMap{}}
}
