/*
Package feature describes the attributes examples are expected to have,
along with the values each of them can take, so that examples read from a
source can be checked before a tree is grown from them.
*/
package feature

import (
	"sort"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
)

/*
Feature represents a property that can be observed and that can only take a
value among a finite set.
*/
type Feature struct {
	name            string
	availableValues []string
}

/*
New takes a name string and a slice of available value strings and returns a
feature with the given name and available values.
*/
func New(name string, availableValues []string) *Feature {
	values := append([]string(nil), availableValues...)
	sort.Strings(values)
	return &Feature{name, values}
}

/*
Name returns a string with the name of the feature
*/
func (f *Feature) Name() string {
	return f.name
}

/*
Valid receives a value and returns an error if it is not one of the available
values of the feature. The dataset.Missing value is always valid.
*/
func (f *Feature) Valid(value string) error {
	if value == dataset.Missing {
		return nil
	}
	i := sort.SearchStrings(f.availableValues, value)
	if i < len(f.availableValues) && f.availableValues[i] == value {
		return nil
	}
	return errors.Newf("feature %s got unknown value %q", f.name, value)
}

/*
AvailableValues returns a string slice with the values available for the
feature, sorted
*/
func (f *Feature) AvailableValues() []string {
	return append([]string(nil), f.availableValues...)
}

func (f *Feature) String() string {
	return f.name
}

/*
Validate takes an example and a slice of features and returns an
InvalidInputError if the example has a value for a feature that is not
available for it or defines an attribute for which there is no feature. The
class of the example is validated if a feature named dataset.ClassKey is
given, and otherwise only required to be present.
*/
func Validate(e dataset.Example, features []*Feature) error {
	byName := make(map[string]*Feature, len(features))
	for _, f := range features {
		byName[f.Name()] = f
	}
	if _, ok := e.Class(); !ok {
		return errors.NewInvalidInputError("validate", "example has no "+dataset.ClassKey)
	}
	for a, v := range e {
		f, ok := byName[a]
		if !ok {
			if a == dataset.ClassKey {
				continue
			}
			return errors.NewInvalidInputError("validate", "unknown attribute "+a)
		}
		if err := f.Valid(v); err != nil {
			return errors.NewInvalidInputError("validate", err.Error())
		}
	}
	return nil
}
