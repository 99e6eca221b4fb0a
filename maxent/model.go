package maxent

import "encoding/json"

// Model holds the classifier parameters.
type Model struct {
	Labels     *Alphabet `json:"labels"`
	Attributes *Alphabet `json:"attributes"`
	Weights    []float64 `json:"weights"`
	NumLabels  int       `json:"num_labels"`
	// Weight layout: [feature weights... | label biases...]
	// Feature weight index: attrID * numLabels + labelID
	// Bias index: biasOffset + labelID
}

// NewModel creates a new empty model.
func NewModel() *Model {
	return &Model{
		Labels:     NewAlphabet(),
		Attributes: NewAlphabet(),
	}
}

// BiasOffset returns the offset where label biases start in the weight vector.
func (m *Model) BiasOffset() int {
	return m.Attributes.Size() * m.NumLabels
}

// NumWeights returns the total number of weights.
func (m *Model) NumWeights() int {
	return m.BiasOffset() + m.NumLabels
}

// Scores returns the unnormalized score of every label for a feature set.
// Unknown features are ignored.
func (m *Model) Scores(features []string) []float64 {
	L := m.NumLabels
	scores := make([]float64, L)
	bias := m.BiasOffset()
	for y := range L {
		if bias+y < len(m.Weights) {
			scores[y] = m.Weights[bias+y]
		}
	}
	for _, f := range features {
		attrID := m.Attributes.Get(f)
		if attrID < 0 {
			continue
		}
		for y := range L {
			idx := attrID*L + y
			if idx < len(m.Weights) {
				scores[y] += m.Weights[idx]
			}
		}
	}
	return scores
}

// Predict returns the best label for a feature set; ties go to the label
// seen first in training. Returns "" for a model without labels.
func (m *Model) Predict(features []string) string {
	if m.NumLabels == 0 {
		return ""
	}
	scores := m.Scores(features)
	best := 0
	for y := 1; y < len(scores); y++ {
		if scores[y] > scores[best] {
			best = y
		}
	}
	return m.Labels.ToStr[best]
}

// UnmarshalJSON restores the lookup tables of the alphabets.
func (m *Model) UnmarshalJSON(data []byte) error {
	type Alias Model
	if err := json.Unmarshal(data, (*Alias)(m)); err != nil {
		return err
	}
	if m.Labels == nil {
		m.Labels = NewAlphabet()
	}
	if m.Attributes == nil {
		m.Attributes = NewAlphabet()
	}
	m.Labels.reindex()
	m.Attributes.reindex()
	return nil
}
