// Package postag trains part-of-speech taggers from annotated corpora and
// picks, per sentence, between a domain model and a general model.
//
//	c, _ := corpus.Load("train", opener)
//	art, _ := postag.Train(ctx, c, opts, postag.ModeDynamic, -1)
//	_ = art.Save("model.zip")
//
//	art, _ = postag.LoadArtifact("model.zip")
//	sel, _ := art.Selector()
//	slot := sel.Tag(sentence) // SlotDomain or SlotGeneral
package postag

import (
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/happyhackingspace/postag/internal/feature"
	"github.com/happyhackingspace/postag/maxent"
)

// Model slot ids, shared with the feature descriptor.
const (
	SlotDomain  = 0
	SlotGeneral = 1
)

// SlotName returns a readable name for a slot id.
func SlotName(slot int) string {
	switch slot {
	case SlotDomain:
		return "domain"
	case SlotGeneral:
		return "general"
	}
	return "unknown"
}

// Mode selects which models a training run produces.
type Mode int

const (
	ModeGeneral Mode = iota
	ModeDomain
	ModeDynamic
)

// ParseMode parses "general", "domain" or "dynamic".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "general":
		return ModeGeneral, nil
	case "domain":
		return ModeDomain, nil
	case "dynamic":
		return ModeDynamic, nil
	}
	return 0, errors.Newf("unknown mode %q (want domain, general or dynamic)", s)
}

func (m Mode) String() string {
	switch m {
	case ModeDomain:
		return "domain"
	case ModeDynamic:
		return "dynamic"
	}
	return "general"
}

// Slots returns the model slots trained in this mode, in slot order.
func (m Mode) Slots() []int {
	switch m {
	case ModeDomain:
		return []int{SlotDomain}
	case ModeDynamic:
		return []int{SlotDomain, SlotGeneral}
	}
	return []int{SlotGeneral}
}

// Trainer fits a model on a training set.
type Trainer func(*maxent.TrainingSet) (*maxent.Model, error)

// NewTrainer returns a Trainer backed by maxent.Train.
func NewTrainer(config maxent.TrainerConfig) Trainer {
	return func(ts *maxent.TrainingSet) (*maxent.Model, error) {
		return maxent.Train(ts, config)
	}
}

// Options configure training and calibration.
type Options struct {
	Descriptor  *feature.Descriptor
	Trainer     Trainer // defaults to maxent with default config
	Workers     int     // parallel file passes, defaults to NumCPU
	FoldWorkers int     // parallel calibration folds, defaults to 1
}

func (o Options) withDefaults() Options {
	if o.Trainer == nil {
		o.Trainer = NewTrainer(maxent.DefaultTrainerConfig())
	}
	if o.Workers < 1 {
		o.Workers = runtime.NumCPU()
	}
	if o.FoldWorkers < 1 {
		o.FoldWorkers = 1
	}
	return o
}
