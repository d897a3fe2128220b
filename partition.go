package id3

import (
	"github.com/pbanos/id3/dataset"
)

/*
Partition represents a partition of a dataset according to an attribute into
subsets, one per value the attribute takes on the dataset, with the
information gain the split provides to predict the class
*/
type Partition struct {
	Attribute       string
	values          []string
	subsets         map[string]dataset.Dataset
	informationGain float64
}

/*
NewPartition takes a dataset and an attribute and returns the partition of the
dataset by the values of the attribute. Its information gain is the entropy of
the dataset minus the entropy of each subset weighted by its share of the
dataset's examples.
*/
func NewPartition(s dataset.Dataset, attribute string) *Partition {
	values := s.Values(attribute)
	subsets := make(map[string]dataset.Dataset, len(values))
	informationGain := s.Entropy()
	totalCount := float64(s.Count())
	for _, value := range values {
		ss := s.SubsetWith(attribute, value)
		subsets[value] = ss
		informationGain -= ss.Entropy() * float64(ss.Count()) / totalCount
	}
	return &Partition{attribute, values, subsets, informationGain}
}

// InformationGain returns the entropy reduction achieved by the partition.
func (p *Partition) InformationGain() float64 {
	return p.informationGain
}

// Values returns, sorted, the values of the attribute the partition splits by.
func (p *Partition) Values() []string {
	return append([]string(nil), p.values...)
}

/*
Subset returns the subset of the partitioned dataset for the given value of
the attribute, which no longer defines the attribute.
*/
func (p *Partition) Subset(value string) dataset.Dataset {
	if ss, ok := p.subsets[value]; ok {
		return ss
	}
	return dataset.NewMemoryIntensive(nil)
}

/*
bestPartition takes a dataset and the attributes available to split it and
returns the partition with the highest information gain along with the gain of
every attribute. Attributes are expected sorted, so ties go to the attribute
whose name sorts first.
*/
func bestPartition(s dataset.Dataset, attributes []string) (*Partition, map[string]float64) {
	var best *Partition
	gains := make(map[string]float64, len(attributes))
	for _, a := range attributes {
		p := NewPartition(s, a)
		gains[a] = p.informationGain
		if best == nil || p.informationGain > best.informationGain {
			best = p
		}
	}
	return best, gains
}

/*
majority takes the number of examples of each class and returns the class
with the most examples, ties going to the class whose name sorts first.
*/
func majority(classes map[string]int) string {
	var label string
	best := -1
	for c, count := range classes {
		if count > best || (count == best && c < label) {
			label = c
			best = count
		}
	}
	return label
}
