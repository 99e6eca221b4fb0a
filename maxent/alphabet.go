// Package maxent implements a multinomial logistic regression (maximum
// entropy) classifier over sparse binary string features.
package maxent

// Alphabet maps between string labels/features and integer IDs.
type Alphabet struct {
	ToID  map[string]int `json:"-"`
	ToStr []string       `json:"entries"`
}

// NewAlphabet creates an empty alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{
		ToID: make(map[string]int),
	}
}

// Add adds a string to the alphabet if not already present, returns its ID.
func (a *Alphabet) Add(s string) int {
	if id, ok := a.ToID[s]; ok {
		return id
	}
	id := len(a.ToStr)
	a.ToID[s] = id
	a.ToStr = append(a.ToStr, s)
	return id
}

// Get returns the ID for a string, or -1 if not found.
func (a *Alphabet) Get(s string) int {
	if id, ok := a.ToID[s]; ok {
		return id
	}
	return -1
}

// Size returns the number of entries.
func (a *Alphabet) Size() int {
	return len(a.ToStr)
}

// reindex rebuilds ToID after decoding.
func (a *Alphabet) reindex() {
	a.ToID = make(map[string]int, len(a.ToStr))
	for i, s := range a.ToStr {
		a.ToID[s] = i
	}
}
