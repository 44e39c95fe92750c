package feature

import (
	"sort"
)

// Data is a generated column along with the feature describing it
type Data struct {
	F    Feature
	Data []float64
}

// Set represents a mapping to each feature data keyed by the string representation
// of the feature.
type Set struct {
	set map[string]Data
}

func NewSet() *Set {
	return &Set{set: make(map[string]Data)}
}

// Len returns the number of features in the set
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.set)
}

// Set stores the data for a feature replacing any previous value
func (s *Set) Set(f Feature, data []float64) *Set {
	s.set[f.String()] = Data{F: f, Data: data}
	return s
}

// Get returns the data of a feature and whether it exists
func (s *Set) Get(f Feature) ([]float64, bool) {
	if s == nil {
		return nil, false
	}
	d, exists := s.set[f.String()]
	if !exists {
		return nil, false
	}
	return d.Data, true
}

// Update copies all features from the input set into this set
func (s *Set) Update(other *Set) *Set {
	if other == nil {
		return s
	}
	for label, d := range other.set {
		s.set[label] = d
	}
	return s
}

// Filter returns a new set with only the features of the given type
func (s *Set) Filter(ftype FeatureType) *Set {
	res := NewSet()
	if s == nil {
		return res
	}
	for label, d := range s.set {
		if d.F.Type() == ftype {
			res.set[label] = d
		}
	}
	return res
}

// Labels returns the sorted slice of all tracked features in the Set
func (s *Set) Labels() *Labels {
	if s == nil {
		return NewLabels(nil)
	}

	labels := make([]Feature, 0, len(s.set))
	for _, d := range s.set {
		labels = append(labels, d.F)
	}
	sort.Slice(
		labels,
		func(i, j int) bool {
			return labels[i].String() < labels[j].String()
		},
	)
	return NewLabels(labels)
}
