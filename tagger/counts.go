package tagger

import (
	"sort"
	"strings"
)

// Counts accumulates form and per-form tag frequencies during the
// collect pass.
type Counts struct {
	Forms map[string]int
	Tags  map[string]map[string]int // form -> tag -> count
}

// NewCounts creates an empty accumulator.
func NewCounts() *Counts {
	return &Counts{
		Forms: make(map[string]int),
		Tags:  make(map[string]map[string]int),
	}
}

// Add records one occurrence of form with tag.
func (c *Counts) Add(form, tag string) {
	c.Forms[form]++
	if tag == "" {
		return
	}
	tags := c.Tags[form]
	if tags == nil {
		tags = make(map[string]int)
		c.Tags[form] = tags
	}
	tags[tag]++
}

// Merge adds other into c.
func (c *Counts) Merge(other *Counts) {
	if other == nil {
		return
	}
	for form, n := range other.Forms {
		c.Forms[form] += n
	}
	for form, tags := range other.Tags {
		dst := c.Tags[form]
		if dst == nil {
			dst = make(map[string]int, len(tags))
			c.Tags[form] = dst
		}
		for tag, n := range tags {
			dst[tag] += n
		}
	}
}

// FormSet returns the forms seen strictly more than cutoff times.
func (c *Counts) FormSet(cutoff int) Set {
	s := make(Set)
	for form, n := range c.Forms {
		if n > cutoff {
			s[form] = struct{}{}
		}
	}
	return s
}

// AmbiguityMap returns the ambiguity class of every form whose most
// frequent tag has a share strictly below threshold.
func (c *Counts) AmbiguityMap(threshold float64) AmbiguityMap {
	m := make(AmbiguityMap)
	for form, tags := range c.Tags {
		total, top := 0, 0
		for _, n := range tags {
			total += n
			top = max(top, n)
		}
		if total == 0 || float64(top)/float64(total) >= threshold {
			continue
		}
		m[form] = ambiguityClass(tags)
	}
	return m
}

// ambiguityClass joins tags by descending count, ties in alphabetical order.
func ambiguityClass(tags map[string]int) string {
	names := make([]string, 0, len(tags))
	for tag := range tags {
		names = append(names, tag)
	}
	sort.Slice(names, func(i, j int) bool {
		if tags[names[i]] != tags[names[j]] {
			return tags[names[i]] > tags[names[j]]
		}
		return names[i] < names[j]
	})
	return strings.Join(names, "_")
}
