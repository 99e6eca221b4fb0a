// Package feature reads the feature descriptor: per-model cutoffs and
// the feature templates shared by all models.
//
//	slots:
//	  - id: 0
//	    document_frequency: 2
//	    feature_cutoff: 1
//	    label_cutoff: 0
//	    ambiguity_threshold: 0.4
//	templates:
//	  - lemma[0]
//	  - tag[-2]+tag[-1]
//	  - suf3[0]
package feature

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ErrMissingSlot is returned when the descriptor lacks a requested model slot
// or one of its cutoffs.
var ErrMissingSlot = errors.New("missing model slot")

// Slot holds the hyperparameters of one model slot.
type Slot struct {
	ID                 int
	DocumentFrequency  int
	FeatureCutoff      int
	LabelCutoff        int
	AmbiguityThreshold float64
}

// Descriptor is a parsed feature descriptor together with its source.
type Descriptor struct {
	Slots     map[int]Slot
	Templates []Template
	Source    []byte
}

type rawSlot struct {
	ID                 *int     `yaml:"id"`
	DocumentFrequency  *int     `yaml:"document_frequency"`
	FeatureCutoff      *int     `yaml:"feature_cutoff"`
	LabelCutoff        *int     `yaml:"label_cutoff"`
	AmbiguityThreshold *float64 `yaml:"ambiguity_threshold"`
}

type rawDescriptor struct {
	Slots     []rawSlot `yaml:"slots"`
	Templates []string  `yaml:"templates"`
}

// ReadFile reads and parses a descriptor file.
func ReadFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read feature descriptor")
	}
	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return d, nil
}

// Parse parses descriptor source. Slots with missing fields are kept out of
// Slots so that Validate can report them for the slots actually requested.
func Parse(data []byte) (*Descriptor, error) {
	var raw rawDescriptor
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}

	d := &Descriptor{
		Slots:  make(map[int]Slot, len(raw.Slots)),
		Source: append([]byte(nil), data...),
	}
	seen := make(map[int]bool, len(raw.Slots))
	for _, rs := range raw.Slots {
		if rs.ID == nil {
			return nil, errors.Wrap(ErrMissingSlot, "slot without id")
		}
		if seen[*rs.ID] {
			return nil, errors.Newf("duplicate slot %d", *rs.ID)
		}
		seen[*rs.ID] = true
		if rs.DocumentFrequency == nil || rs.FeatureCutoff == nil || rs.LabelCutoff == nil || rs.AmbiguityThreshold == nil {
			continue
		}
		d.Slots[*rs.ID] = Slot{
			ID:                 *rs.ID,
			DocumentFrequency:  *rs.DocumentFrequency,
			FeatureCutoff:      *rs.FeatureCutoff,
			LabelCutoff:        *rs.LabelCutoff,
			AmbiguityThreshold: *rs.AmbiguityThreshold,
		}
	}
	for _, s := range raw.Templates {
		t, err := ParseTemplate(s)
		if err != nil {
			return nil, err
		}
		d.Templates = append(d.Templates, t)
	}
	if len(d.Templates) == 0 {
		return nil, errors.Wrap(ErrBadTemplate, "no templates")
	}
	return d, nil
}

// Slot returns the hyperparameters of a model slot.
func (d *Descriptor) Slot(id int) (Slot, error) {
	s, ok := d.Slots[id]
	if !ok {
		return Slot{}, errors.WithHintf(
			errors.Wrapf(ErrMissingSlot, "slot %d", id),
			"slot %d needs id, document_frequency, feature_cutoff, label_cutoff and ambiguity_threshold", id)
	}
	return s, nil
}

// Validate checks that every requested slot is fully specified.
func (d *Descriptor) Validate(ids ...int) error {
	for _, id := range ids {
		if _, err := d.Slot(id); err != nil {
			return err
		}
	}
	return nil
}
