package maxent

// Instance is one labeled observation.
type Instance struct {
	Features []string
	Label    string
}

// TrainingSet accumulates instances and prunes rare labels and features
// when compiled. A label (feature) survives only if its count is strictly
// greater than the corresponding cutoff.
type TrainingSet struct {
	LabelCutoff   int
	FeatureCutoff int
	instances     []Instance
}

// NewTrainingSet creates an empty training set with the given cutoffs.
func NewTrainingSet(labelCutoff, featureCutoff int) *TrainingSet {
	return &TrainingSet{LabelCutoff: labelCutoff, FeatureCutoff: featureCutoff}
}

// Add appends an instance.
func (ts *TrainingSet) Add(features []string, label string) {
	ts.instances = append(ts.instances, Instance{Features: features, Label: label})
}

// Append appends all instances of other, keeping their order.
func (ts *TrainingSet) Append(other []Instance) {
	ts.instances = append(ts.instances, other...)
}

// Len returns the number of instances added so far.
func (ts *TrainingSet) Len() int {
	return len(ts.instances)
}

// Instances returns the raw instances.
func (ts *TrainingSet) Instances() []Instance {
	return ts.instances
}

type compiled struct {
	labels   *Alphabet
	attrs    *Alphabet
	features [][]int // [instance] attribute IDs
	gold     []int   // [instance] label ID
}

// compile applies the cutoffs and maps strings to IDs. Alphabet order is
// first-seen order so that training is deterministic.
func (ts *TrainingSet) compile() compiled {
	labelCounts := make(map[string]int)
	for _, in := range ts.instances {
		labelCounts[in.Label]++
	}

	c := compiled{labels: NewAlphabet(), attrs: NewAlphabet()}
	featCounts := make(map[string]int)
	var kept []Instance
	for _, in := range ts.instances {
		if labelCounts[in.Label] <= ts.LabelCutoff {
			continue
		}
		c.labels.Add(in.Label)
		kept = append(kept, in)
		for _, f := range in.Features {
			featCounts[f]++
		}
	}

	for _, in := range kept {
		var ids []int
		for _, f := range in.Features {
			if featCounts[f] <= ts.FeatureCutoff {
				continue
			}
			ids = append(ids, c.attrs.Add(f))
		}
		c.features = append(c.features, ids)
		c.gold = append(c.gold, c.labels.Get(in.Label))
	}
	return c
}
