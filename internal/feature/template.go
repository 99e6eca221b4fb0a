package feature

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Field names usable in templates.
const (
	FieldForm      = "form"  // simplified form, if in the form vocabulary
	FieldLemma     = "lemma" // lemma, if in the lemma vocabulary
	FieldAmbiguity = "amb"   // ambiguity class of the form
	FieldTag       = "tag"   // tag already assigned to a previous token
	FieldShape     = "shape" // orthographic shape of the form
	FieldPrefix    = "pre"   // preNN: prefix of an out-of-vocabulary form
	FieldSuffix    = "suf"   // sufNN: suffix of an out-of-vocabulary form
)

// ErrBadTemplate is returned for templates that cannot be parsed.
var ErrBadTemplate = errors.New("bad feature template")

// Atom reads one field at a position relative to the current token.
type Atom struct {
	Field  string
	Offset int
	N      int // affix length for pre/suf
}

func (a Atom) String() string {
	name := a.Field
	if a.N > 0 {
		name += strconv.Itoa(a.N)
	}
	return name + "[" + strconv.Itoa(a.Offset) + "]"
}

// Template is a conjunction of atoms; it fires only when every atom has a value.
type Template struct {
	Atoms []Atom
	name  string
}

// Name is the canonical spelling of the template, used as the feature prefix.
func (t Template) Name() string {
	if t.name == "" {
		parts := make([]string, len(t.Atoms))
		for i, a := range t.Atoms {
			parts[i] = a.String()
		}
		return strings.Join(parts, "+")
	}
	return t.name
}

var atomRe = regexp.MustCompile(`^([a-z]+?)([0-9]?)\[(-?[0-9]+)\]$`)

// ParseTemplate parses "field[offset]" atoms joined by "+",
// e.g. "lemma[0]", "tag[-2]+tag[-1]", "suf3[0]".
func ParseTemplate(s string) (Template, error) {
	var t Template
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		m := atomRe.FindStringSubmatch(part)
		if m == nil {
			return Template{}, errors.Wrapf(ErrBadTemplate, "%q", s)
		}
		offset, err := strconv.Atoi(m[3])
		if err != nil {
			return Template{}, errors.Wrapf(ErrBadTemplate, "%q: offset", s)
		}
		a := Atom{Field: m[1], Offset: offset}
		if m[2] != "" {
			a.N, _ = strconv.Atoi(m[2])
		}
		if err := a.validate(); err != nil {
			return Template{}, errors.Wrapf(err, "%q", s)
		}
		t.Atoms = append(t.Atoms, a)
	}
	t.name = t.Name()
	return t, nil
}

func (a Atom) validate() error {
	switch a.Field {
	case FieldForm, FieldLemma, FieldAmbiguity, FieldShape:
		if a.N != 0 {
			return errors.Wrapf(ErrBadTemplate, "%s takes no length", a.Field)
		}
	case FieldTag:
		if a.N != 0 {
			return errors.Wrapf(ErrBadTemplate, "%s takes no length", a.Field)
		}
		if a.Offset >= 0 {
			return errors.Wrapf(ErrBadTemplate, "tag offset %d is not in the history", a.Offset)
		}
	case FieldPrefix, FieldSuffix:
		if a.N == 0 {
			return errors.Wrapf(ErrBadTemplate, "%s needs a length", a.Field)
		}
	default:
		return errors.Wrapf(ErrBadTemplate, "unknown field %q", a.Field)
	}
	return nil
}
