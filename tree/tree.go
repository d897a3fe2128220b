package tree

import (
	"fmt"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
)

/*
Evaluate takes an example and returns the class the tree rooted at the node
assigns to it. It descends from the node following the example's value for
each decision attribute until it reaches a leaf, whose label is returned.

When the example has a value (or no value at all) for a decision attribute
that no training example reaching that node had, the label of that node is
returned instead and the second result is true to signal the fallback.
*/
func (n *Node) Evaluate(e dataset.Example) (string, bool) {
	for !n.IsLeaf() {
		child, ok := n.children[e.ValueFor(n.decisionAttribute)]
		if !ok {
			return n.label, true
		}
		n = child
	}
	return n.label, false
}

/*
Predict takes an example and returns the class the tree rooted at the node
assigns to it like Evaluate does, but returns an UnseenValueError instead of
falling back to the label of a decision node.
*/
func (n *Node) Predict(e dataset.Example) (string, error) {
	for !n.IsLeaf() {
		v := e.ValueFor(n.decisionAttribute)
		child, ok := n.children[v]
		if !ok {
			return "", errors.NewUnseenValueError(n.decisionAttribute, v)
		}
		n = child
	}
	return n.label, nil
}

/*
Score takes a tree and a set of examples and returns three values:
  - the fraction of the examples whose class the tree evaluates correctly
  - the number of examples for which evaluation fell back to the label of
    a decision node because of a value unseen during training
  - an InvalidInputError if the tree is nil, there are no examples or one
    of them has no class. If this is not nil, the other values will be 0.0
    and 0 respectively
*/
func Score(n *Node, examples []dataset.Example) (float64, int, error) {
	if n == nil {
		return 0.0, 0, errors.NewInvalidInputError("score", "nil tree")
	}
	if len(examples) == 0 {
		return 0.0, 0, errors.NewInvalidInputError("score", "no examples to score")
	}
	var hits, fallbacks int
	for i, e := range examples {
		class, ok := e.Class()
		if !ok {
			return 0.0, 0, errors.NewInvalidInputError("score", fmt.Sprintf("example %d has no %s", i, dataset.ClassKey))
		}
		label, fellBack := n.Evaluate(e)
		if fellBack {
			fallbacks++
		}
		if label == class {
			hits++
		}
	}
	return float64(hits) / float64(len(examples)), fallbacks, nil
}

/*
Traverse takes a bottomup boolean and an error-returning function that takes
a node as parameter, and goes through the tree running the function with
every node. Children are visited in the order of their values.
Traverse will call the function with a parent node before calling it for its
children if bottomup is false, and call it after its children if bottomup is
true. If the call to the function returns an error, the traversing is aborted
and the error is returned.
*/
func (n *Node) Traverse(bottomup bool, f func(*Node) error) error {
	if !bottomup {
		if err := f(n); err != nil {
			return err
		}
	}
	for _, v := range n.Values() {
		if err := n.children[v].Traverse(bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n)
	}
	return nil
}

func (n *Node) String() string {
	return n.subtreeString("")
}

func (n *Node) subtreeString(criterion string) string {
	var result string
	if criterion != "" {
		result = fmt.Sprintf("{ %s }\n", criterion)
	}
	result = fmt.Sprintf("%s{ %v }\n", result, n.Prediction())
	if n.IsLeaf() {
		return fmt.Sprintf("%s \n", result)
	}
	result = fmt.Sprintf("%s{ informationGain=%f }\n|\n", result, n.InformationGain())
	values := n.Values()
	for i, v := range values {
		subtree := n.children[v].subtreeString(fmt.Sprintf("%s is %s", n.decisionAttribute, v))
		for j, line := range strings.Split(subtree, "\n") {
			if len(line) == 0 {
				continue
			}
			switch {
			case j == 0:
				result = fmt.Sprintf("%s|__%s\n", result, line)
			case i == len(values)-1:
				result = fmt.Sprintf("%s   %s\n", result, line)
			default:
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
