package id3

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
)

/*
Imputer is an interface wrapping the Impute method, used to fill the missing
values of a slice of examples before growing a tree from them.

The Impute method takes a slice of examples and returns a copy of it where
no value is dataset.Missing, or an error. The given examples must not be
modified.
*/
type Imputer interface {
	Impute(examples []dataset.Example) ([]dataset.Example, error)
}

/*
ImputerFunc wraps a function with the Impute method signature to implement
the Imputer interface
*/
type ImputerFunc func(examples []dataset.Example) ([]dataset.Example, error)

/*
Impute takes a slice of examples and invokes the ImputerFunc with it to
return its result.
*/
func (f ImputerFunc) Impute(examples []dataset.Example) ([]dataset.Example, error) {
	return f(examples)
}

/*
Impute takes a slice of examples and returns a copy with its missing values
imputed by ClassMateImputer.
*/
func Impute(examples []dataset.Example) ([]dataset.Example, error) {
	return ClassMateImputer().Impute(examples)
}

/*
NoImputer returns an Imputer that returns a copy of the examples as they are.
Missing values are then handled as one more value of their attribute.
*/
func NoImputer() Imputer {
	return ImputerFunc(func(examples []dataset.Example) ([]dataset.Example, error) {
		return dataset.CloneAll(examples), nil
	})
}

/*
ClassMateImputer returns an Imputer that fills every missing value of an
example from the examples sharing its class, its class-mates. An attribute is
missing when the example has dataset.Missing for it or does not define it
while other examples do.

For each missing attribute, the value is taken from the first class-mate that
observes the attribute and agrees with the example on every attribute the
example observes. Without such a class-mate, the most frequent value of the
attribute among the class-mates is used, ties going to the value that sorts
first. Matching and counting use the examples as given, so the result does not
depend on their order. An ImputationError is returned if no class-mate
observes the attribute.

Examples without missing values are copied unchanged, so imputing already
imputed examples yields equal examples.
*/
func ClassMateImputer() Imputer {
	return ImputerFunc(imputeFromClassMates)
}

func imputeFromClassMates(examples []dataset.Example) ([]dataset.Example, error) {
	attributes := dataset.Attributes(examples)
	result := dataset.CloneAll(examples)
	classMates := make(map[string][]dataset.Example)
	for _, e := range examples {
		c := e.ValueFor(dataset.ClassKey)
		classMates[c] = append(classMates[c], e)
	}
	for i, e := range examples {
		missing := e.MissingAttributes(attributes)
		if len(missing) == 0 {
			continue
		}
		class := e.ValueFor(dataset.ClassKey)
		mates := classMates[class]
		for _, a := range missing {
			v, ok := exactMatchValue(e, a, attributes, mates)
			if !ok {
				v, ok = mostFrequentValue(a, mates)
			}
			if !ok {
				return nil, errors.NewImputationError(a, class)
			}
			result[i][a] = v
		}
	}
	return result, nil
}

func exactMatchValue(e dataset.Example, attribute string, attributes []string, mates []dataset.Example) (string, bool) {
	for _, m := range mates {
		v := m.ValueFor(attribute)
		if v == dataset.Missing {
			continue
		}
		match := true
		for _, b := range attributes {
			ev := e.ValueFor(b)
			if b == attribute || ev == dataset.Missing {
				continue
			}
			if m.ValueFor(b) != ev {
				match = false
				break
			}
		}
		if match {
			return v, true
		}
	}
	return "", false
}

func mostFrequentValue(attribute string, mates []dataset.Example) (string, bool) {
	counts := treemap.NewWithStringComparator()
	for _, m := range mates {
		v := m.ValueFor(attribute)
		if v == dataset.Missing {
			continue
		}
		c, found := counts.Get(v)
		if !found {
			c = 0
		}
		counts.Put(v, c.(int)+1)
	}
	var value string
	best := 0
	it := counts.Iterator()
	for it.Next() {
		if c := it.Value().(int); c > best {
			value = it.Key().(string)
			best = c
		}
	}
	return value, best > 0
}
