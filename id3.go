/*
Package id3 grows decision trees with the ID3 algorithm from examples whose
attributes take discrete values, and prunes them against validation data.

Examples are dataset.Example maps with the class under dataset.ClassKey and
dataset.Missing for values that were not observed. Missing values are imputed
before a tree is grown; the resulting *tree.Node can then be evaluated on new
examples or scored with tree.Score.
*/
package id3

import (
	"fmt"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
	"github.com/pbanos/id3/tree"
	"github.com/rs/zerolog"
)

/*
Grower grows decision trees. Its zero value is not usable, build one with New.
*/
type Grower struct {
	logger    zerolog.Logger
	imputer   Imputer
	generator dataset.Generator
}

/*
New takes a list of options and returns a Grower configured with them. Without
options it imputes missing values with ClassMateImputer, uses dataset.New to
hold the examples and does not log.
*/
func New(opts ...Option) *Grower {
	g := &Grower{
		logger:    zerolog.Nop(),
		imputer:   ClassMateImputer(),
		generator: dataset.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

/*
Induce takes a slice of examples and a default label and grows a tree from
them with a Grower built without options.
*/
func Induce(examples []dataset.Example, def string) (*tree.Node, error) {
	return New().Grow(examples, def)
}

/*
Grow takes a slice of examples and a default label and returns the root of a
decision tree grown from them with ID3, or an error.

The examples are not modified: missing values are imputed on a copy before
growing starts. At each node the attribute with the highest information gain
is chosen to split the examples, with one child per value the attribute takes
on them. A node becomes a leaf when all its examples share a class or no
attributes remain. The default label is given to branches that receive no
examples; below the root every node passes down its own majority class
instead.

An InvalidInputError is returned if there are no examples or one lacks a
class, and an ImputationError if a missing value cannot be imputed.
*/
func (g *Grower) Grow(examples []dataset.Example, def string) (*tree.Node, error) {
	if len(examples) == 0 {
		return nil, errors.NewInvalidInputError("induce", "no examples")
	}
	for i, e := range examples {
		if _, ok := e.Class(); !ok {
			return nil, errors.NewInvalidInputError("induce", fmt.Sprintf("example %d has no %s", i, dataset.ClassKey))
		}
	}
	working, err := g.imputer.Impute(examples)
	if err != nil {
		return nil, errors.Wrap(err, "imputing missing values")
	}
	s := g.generator(working)
	g.logger.Debug().
		Int("examples", s.Count()).
		Strs("attributes", s.Attributes()).
		Msg("growing tree")
	root := g.develop(s, def, 0)
	if event := g.logger.Debug(); event.Enabled() {
		p := root.Prediction()
		class, probability := p.PredictedValue()
		event.Int("nodes", root.Size()).
			Int("depth", root.Depth()).
			Int("weight", p.Weight()).
			Str("majority", class).
			Float64("probability", probability).
			Msg("tree grown")
	}
	return root, nil
}

func (g *Grower) develop(s dataset.Dataset, def string, depth int) *tree.Node {
	count := s.Count()
	if count == 0 {
		return tree.NewLeaf(def, nil, nil)
	}
	classes := s.CountClasses()
	label := majority(classes)
	if classes[label] == count {
		g.logger.Debug().Int("depth", depth).Str("label", label).Int("examples", count).Msg("pure leaf")
		return tree.NewLeaf(label, classes, nil)
	}
	attributes := s.Attributes()
	if len(attributes) == 0 {
		g.logger.Debug().Int("depth", depth).Str("label", label).Int("examples", count).Msg("attributes exhausted")
		return tree.NewLeaf(label, classes, attributes)
	}
	partition, gains := bestPartition(s, attributes)
	g.logger.Debug().
		Int("depth", depth).
		Str("attribute", partition.Attribute).
		Float64("gain", partition.InformationGain()).
		Int("examples", count).
		Msg("splitting")
	children := make(map[string]*tree.Node, len(partition.values))
	for _, v := range partition.values {
		children[v] = g.develop(partition.Subset(v), label, depth+1)
	}
	return tree.NewDecision(label, classes, attributes, partition.Attribute, gains, children)
}
