// Package genre holds the closed genre label set and the selection policy
// applied to raw records before tokenization.
package genre

import "fmt"

// Index maps each configured genre label to a fixed integer code. Codes are
// assigned by position in the configured label list.
type Index struct {
	codes  map[string]int
	labels []string
}

// NewIndex builds an Index from an ordered label list. Duplicate or empty
// labels are rejected so that codes stay unique.
func NewIndex(labels []string) (*Index, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("genre: empty label set")
	}
	idx := &Index{
		codes:  make(map[string]int, len(labels)),
		labels: make([]string, 0, len(labels)),
	}
	for _, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("genre: empty label")
		}
		if _, dup := idx.codes[l]; dup {
			return nil, fmt.Errorf("genre: duplicate label %q", l)
		}
		idx.codes[l] = len(idx.labels)
		idx.labels = append(idx.labels, l)
	}
	return idx, nil
}

// Code returns the integer code for a label.
func (x *Index) Code(label string) (int, bool) {
	c, ok := x.codes[label]
	return c, ok
}

// Contains reports whether the label is part of the index.
func (x *Index) Contains(label string) bool {
	_, ok := x.codes[label]
	return ok
}

// Labels returns the labels in code order.
func (x *Index) Labels() []string {
	out := make([]string, len(x.labels))
	copy(out, x.labels)
	return out
}

// Len returns the number of labels.
func (x *Index) Len() int {
	return len(x.labels)
}

// Codes maps labels to codes, skipping labels outside the index.
func (x *Index) Codes(labels []string) []int {
	out := make([]int, 0, len(labels))
	for _, l := range labels {
		if c, ok := x.codes[l]; ok {
			out = append(out, c)
		}
	}
	return out
}
