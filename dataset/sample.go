package dataset

import (
	"fmt"
	"sort"
)

const (
	// ClassKey is the attribute holding the class of an example.
	ClassKey = "Class"
	// Missing is the value of an attribute that was not observed.
	Missing = "?"
)

/*
Example is an observation to learn from or to classify: a map of attribute
names to values, with the class under ClassKey.
*/
type Example map[string]string

/*
Class returns the class of the example and whether it has one.
*/
func (e Example) Class() (string, bool) {
	c, ok := e[ClassKey]
	return c, ok
}

/*
ValueFor returns the value of the example for the given attribute, or Missing
if the example does not define it.
*/
func (e Example) ValueFor(attribute string) string {
	v, ok := e[attribute]
	if !ok {
		return Missing
	}
	return v
}

// Clone returns a copy of the example.
func (e Example) Clone() Example {
	c := make(Example, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

/*
Without returns a copy of the example that lacks the given attribute.
*/
func (e Example) Without(attribute string) Example {
	c := make(Example, len(e))
	for k, v := range e {
		if k != attribute {
			c[k] = v
		}
	}
	return c
}

/*
MissingAttributes takes the attributes an example is expected to have and
returns, sorted, those for which the example has the Missing value or none at
all.
*/
func (e Example) MissingAttributes(attributes []string) []string {
	var result []string
	for _, a := range attributes {
		if e.ValueFor(a) == Missing {
			result = append(result, a)
		}
	}
	sort.Strings(result)
	return result
}

func (e Example) String() string {
	return fmt.Sprintf("[%v]", map[string]string(e))
}

/*
CloneAll returns a deep copy of the given slice of examples.
*/
func CloneAll(examples []Example) []Example {
	result := make([]Example, len(examples))
	for i, e := range examples {
		result[i] = e.Clone()
	}
	return result
}
