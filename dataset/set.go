package dataset

import (
	"fmt"
	"math"
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
	"gonum.org/v1/gonum/stat"
)

const (
	sampleCountThresholdForDatasetImplementation = 1000
)

/*
Dataset represents a collection of examples.

Its Entropy method returns the entropy in bits of the classes of the examples
that belong to it: a measure of the disinformation we have on them.

Its CountClasses method returns how many examples there are of each class.

Its Attributes method returns, sorted, the names of the attributes defined by
its examples other than the class.

Its Values method returns, sorted, the distinct values an attribute takes on
its examples.

Its SubsetWith method takes an attribute and a value and returns a subset that
only contains the examples with that value for the attribute, and where the
attribute is no longer defined.

Its Examples method returns copies of the examples it contains.
*/
type Dataset interface {
	Count() int
	Examples() []Example
	Attributes() []string
	Values(attribute string) []string
	CountClasses() map[string]int
	Entropy() float64
	SubsetWith(attribute, value string) Dataset
}

/*
Generator is a function that takes a slice of examples and generates a
dataset with them.
*/
type Generator func([]Example) Dataset

type memoryIntensiveSubsettingDataset struct {
	entropy  *float64
	examples []Example
}

type criterion struct {
	attribute, value string
}

type cpuIntensiveSubsettingDataset struct {
	entropy  *float64
	count    *int
	examples []Example
	criteria []criterion
}

/*
New takes a slice of examples and returns a dataset built with them.
The dataset will be a CPU intensive one when the number of examples is
over sampleCountThresholdForDatasetImplementation
*/
func New(examples []Example) Dataset {
	if len(examples) > sampleCountThresholdForDatasetImplementation {
		return NewCPUIntensive(examples)
	}
	return NewMemoryIntensive(examples)
}

/*
NewMemoryIntensive takes a slice of examples and returns a Dataset
built with them. A memory-intensive dataset is an implementation that
replicates the examples when subsetting to reduce calculations at the
cost of increased memory.
*/
func NewMemoryIntensive(examples []Example) Dataset {
	return &memoryIntensiveSubsettingDataset{nil, examples}
}

/*
NewCPUIntensive takes a slice of examples and returns a Dataset
built with them. A cpu-intensive dataset is an implementation that
instead of replicating the examples when subsetting, stores the
attribute values that define the subset and keeps the same example
slice. This can achieve a drastic reduction in memory use that comes
at the cost of CPU time: every calculation that goes over the examples
of the dataset will check those values on all original examples (the
ones provided to this method).
*/
func NewCPUIntensive(examples []Example) Dataset {
	return &cpuIntensiveSubsettingDataset{nil, nil, examples, nil}
}

/*
Attributes takes a slice of examples and returns, sorted, the names of every
attribute defined by at least one of them, excluding ClassKey.
*/
func Attributes(examples []Example) []string {
	set := treeset.NewWithStringComparator()
	for _, e := range examples {
		for k := range e {
			if k != ClassKey {
				set.Add(k)
			}
		}
	}
	return stringValues(set)
}

/*
Entropy takes the number of examples of each class in a collection and returns
the entropy of the collection in bits. Classes with no examples contribute
nothing.
*/
func Entropy(classes map[string]int) float64 {
	var total float64
	for _, c := range classes {
		total += float64(c)
	}
	if total == 0 {
		return 0
	}
	keys := make([]string, 0, len(classes))
	for k := range classes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	probs := make([]float64, 0, len(keys))
	for _, k := range keys {
		if c := classes[k]; c > 0 {
			probs = append(probs, float64(c)/total)
		}
	}
	result := stat.Entropy(probs) / math.Ln2
	if result <= 0 {
		return 0
	}
	return result
}

func (s *memoryIntensiveSubsettingDataset) Count() int {
	return len(s.examples)
}

func (s *cpuIntensiveSubsettingDataset) Count() int {
	if s.count != nil {
		return *s.count
	}
	var length int
	s.iterateOnDataset(func(_ Example) bool {
		length++
		return true
	})
	s.count = &length
	return length
}

func (s *memoryIntensiveSubsettingDataset) Examples() []Example {
	return CloneAll(s.examples)
}

func (s *cpuIntensiveSubsettingDataset) Examples() []Example {
	var examples []Example
	s.iterateOnDataset(func(e Example) bool {
		c := e.Clone()
		for _, cr := range s.criteria {
			delete(c, cr.attribute)
		}
		examples = append(examples, c)
		return true
	})
	return examples
}

func (s *memoryIntensiveSubsettingDataset) Attributes() []string {
	return Attributes(s.examples)
}

func (s *cpuIntensiveSubsettingDataset) Attributes() []string {
	set := treeset.NewWithStringComparator()
	s.iterateOnDataset(func(e Example) bool {
		for k := range e {
			if k != ClassKey && !s.constrains(k) {
				set.Add(k)
			}
		}
		return true
	})
	return stringValues(set)
}

func (s *memoryIntensiveSubsettingDataset) Values(attribute string) []string {
	set := treeset.NewWithStringComparator()
	for _, e := range s.examples {
		set.Add(e.ValueFor(attribute))
	}
	return stringValues(set)
}

func (s *cpuIntensiveSubsettingDataset) Values(attribute string) []string {
	set := treeset.NewWithStringComparator()
	s.iterateOnDataset(func(e Example) bool {
		set.Add(s.valueFor(e, attribute))
		return true
	})
	return stringValues(set)
}

func (s *memoryIntensiveSubsettingDataset) CountClasses() map[string]int {
	result := make(map[string]int)
	for _, e := range s.examples {
		result[e.ValueFor(ClassKey)]++
	}
	return result
}

func (s *cpuIntensiveSubsettingDataset) CountClasses() map[string]int {
	result := make(map[string]int)
	s.iterateOnDataset(func(e Example) bool {
		result[e.ValueFor(ClassKey)]++
		return true
	})
	return result
}

func (s *memoryIntensiveSubsettingDataset) Entropy() float64 {
	if s.entropy != nil {
		return *s.entropy
	}
	result := Entropy(s.CountClasses())
	s.entropy = &result
	return result
}

func (s *cpuIntensiveSubsettingDataset) Entropy() float64 {
	if s.entropy != nil {
		return *s.entropy
	}
	result := Entropy(s.CountClasses())
	s.entropy = &result
	return result
}

func (s *memoryIntensiveSubsettingDataset) SubsetWith(attribute, value string) Dataset {
	examples := []Example{}
	for _, e := range s.examples {
		if e.ValueFor(attribute) == value {
			examples = append(examples, e.Without(attribute))
		}
	}
	return &memoryIntensiveSubsettingDataset{nil, examples}
}

func (s *cpuIntensiveSubsettingDataset) SubsetWith(attribute, value string) Dataset {
	criteria := append([]criterion{{attribute, value}}, s.criteria...)
	return &cpuIntensiveSubsettingDataset{nil, nil, s.examples, criteria}
}

func (s *memoryIntensiveSubsettingDataset) String() string {
	return fmt.Sprintf("[ %v ]", s.Count())
}

func (s *cpuIntensiveSubsettingDataset) String() string {
	return fmt.Sprintf("[ %v ]", s.Count())
}

func (s *cpuIntensiveSubsettingDataset) constrains(attribute string) bool {
	for _, cr := range s.criteria {
		if cr.attribute == attribute {
			return true
		}
	}
	return false
}

func (s *cpuIntensiveSubsettingDataset) valueFor(e Example, attribute string) string {
	if s.constrains(attribute) {
		return Missing
	}
	return e.ValueFor(attribute)
}

func (s *cpuIntensiveSubsettingDataset) iterateOnDataset(lambda func(Example) bool) {
	for _, e := range s.examples {
		skip := false
		for _, cr := range s.criteria {
			if e.ValueFor(cr.attribute) != cr.value {
				skip = true
				break
			}
		}
		if !skip && !lambda(e) {
			break
		}
	}
}

func stringValues(set *treeset.Set) []string {
	result := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		result = append(result, v.(string))
	}
	return result
}
