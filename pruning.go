package id3

import (
	"fmt"
	"math"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
	"github.com/pbanos/id3/tree"
)

/*
Pruner is an interface wrapping the Prune method, that can be used to reduce
a grown tree by collapsing some of its decision nodes into leaves.

The Prune method takes the root of a tree and a slice of validation examples
and returns the root of the pruned tree or an error. The given tree is never
modified: nodes that are kept are shared with the result and nodes that
change are rebuilt.
*/
type Pruner interface {
	Prune(root *tree.Node, validation []dataset.Example) (*tree.Node, error)
}

/*
PrunerFunc wraps a function with the Prune method signature to implement
the Pruner interface
*/
type PrunerFunc func(root *tree.Node, validation []dataset.Example) (*tree.Node, error)

/*
Prune takes the root of a tree and a slice of validation examples and invokes
the PrunerFunc with those parameters to return its result.
*/
func (pf PrunerFunc) Prune(root *tree.Node, validation []dataset.Example) (*tree.Node, error) {
	return pf(root, validation)
}

/*
Prune takes the root of a tree and a slice of validation examples and returns
the tree pruned by ReducedErrorPruner.
*/
func Prune(root *tree.Node, validation []dataset.Example) (*tree.Node, error) {
	return ReducedErrorPruner().Prune(root, validation)
}

/*
NoPruner returns a Pruner whose Prune method always returns the given root,
that is, never prunes.
*/
func NoPruner() Pruner {
	return PrunerFunc(func(root *tree.Node, validation []dataset.Example) (*tree.Node, error) {
		if root == nil {
			return nil, errors.NewInvalidInputError("prune", "nil tree")
		}
		return root, nil
	})
}

/*
ReducedErrorPruner returns a Pruner whose Prune method walks the tree bottom
up and collapses every decision node whose children are all leaves into a
leaf with its label, as long as at least one validation example reaches the
node and the leaf misclassifies no more of those examples than the node does.
Collapsing a node may turn its parent into a candidate, so the walk repeats up
to the root.

An example reaches a node when it follows the branches leading to it. The
validation examples must all have a class and there must be at least one of
them, otherwise an InvalidInputError is returned.
*/
func ReducedErrorPruner() Pruner {
	return PrunerFunc(func(root *tree.Node, validation []dataset.Example) (*tree.Node, error) {
		if root == nil {
			return nil, errors.NewInvalidInputError("prune", "nil tree")
		}
		if len(validation) == 0 {
			return nil, errors.NewInvalidInputError("prune", "no validation examples")
		}
		for i, e := range validation {
			if _, ok := e.Class(); !ok {
				return nil, errors.NewInvalidInputError("prune", fmt.Sprintf("validation example %d has no %s", i, dataset.ClassKey))
			}
		}
		return reducedErrorPrune(root, validation), nil
	})
}

func reducedErrorPrune(n *tree.Node, reaching []dataset.Example) *tree.Node {
	attribute, ok := n.DecisionAttribute()
	if !ok {
		return n
	}
	byValue := make(map[string][]dataset.Example)
	for _, e := range reaching {
		v := e.ValueFor(attribute)
		byValue[v] = append(byValue[v], e)
	}
	children := make(map[string]*tree.Node, len(n.Values()))
	changed := false
	for _, v := range n.Values() {
		c, _ := n.Child(v)
		pc := reducedErrorPrune(c, byValue[v])
		changed = changed || pc != c
		children[v] = pc
	}
	if allLeaves(children) && len(reaching) > 0 {
		var leafErrors, subtreeErrors int
		for _, e := range reaching {
			class, _ := e.Class()
			if n.Label() != class {
				leafErrors++
			}
			label := n.Label()
			if c, ok := children[e.ValueFor(attribute)]; ok {
				label = c.Label()
			}
			if label != class {
				subtreeErrors++
			}
		}
		if leafErrors <= subtreeErrors {
			return collapse(n)
		}
	}
	if !changed {
		return n
	}
	return rebuild(n, children)
}

/*
FixedInformationGainPruner takes an informationGainThreshold float64 value and
returns a Pruner whose Prune method collapses, bottom up, every decision node
whose children are all leaves and whose information gain is lower than or
equal to the threshold. Validation examples are not used.
*/
func FixedInformationGainPruner(informationGainThreshold float64) Pruner {
	return collapsingPruner(func(n *tree.Node) bool {
		return informationGainThreshold >= n.InformationGain()
	})
}

/*
MinimumDescriptionPruner returns a Pruner whose Prune method collapses, bottom
up, every decision node whose children are all leaves and whose information
gain is below a minimum computed from the node's class counts. Validation
examples are not used.

The minimum is calculated as
(1/N) x log2(N-1) + (1/N) x [ log2(3^k-2) - (k x Entropy(S) - k1 x Entropy(S1) - k2 x Entropy(S2) ... - ki x Entropy(Si)) ]
with
 * N being the number of training examples that reached the node
 * k being the number of different classes among them
 * k1, k2, ... ki being the number of different classes among the examples of child 1, 2, ... i
 * S1, S2, ... Si being the training examples of child 1, 2, ... i
Nodes with fewer than two examples are always collapsed.
*/
func MinimumDescriptionPruner() Pruner {
	return collapsingPruner(func(n *tree.Node) bool {
		count := n.Weight()
		if count < 2 {
			return true
		}
		N := float64(count)
		classes := n.Classes()
		k := float64(len(classes))
		minimum := math.Log2(N-1.0) + math.Log2(math.Pow(3.0, k)-2) - k*dataset.Entropy(classes)
		for _, v := range n.Values() {
			c, _ := n.Child(v)
			cc := c.Classes()
			minimum += float64(len(cc)) * dataset.Entropy(cc)
		}
		minimum = minimum / N
		return minimum > n.InformationGain()
	})
}

/*
collapsingPruner takes a predicate on decision nodes and returns a Pruner
that collapses, bottom up, the decision nodes whose children are all leaves
and for which the predicate holds.
*/
func collapsingPruner(shouldCollapse func(*tree.Node) bool) Pruner {
	return PrunerFunc(func(root *tree.Node, validation []dataset.Example) (*tree.Node, error) {
		if root == nil {
			return nil, errors.NewInvalidInputError("prune", "nil tree")
		}
		return collapseWhen(root, shouldCollapse), nil
	})
}

func collapseWhen(n *tree.Node, shouldCollapse func(*tree.Node) bool) *tree.Node {
	if n.IsLeaf() {
		return n
	}
	children := make(map[string]*tree.Node, len(n.Values()))
	changed := false
	for _, v := range n.Values() {
		c, _ := n.Child(v)
		pc := collapseWhen(c, shouldCollapse)
		changed = changed || pc != c
		children[v] = pc
	}
	if changed {
		n = rebuild(n, children)
	}
	if allLeaves(children) && shouldCollapse(n) {
		return collapse(n)
	}
	return n
}

func allLeaves(children map[string]*tree.Node) bool {
	for _, c := range children {
		if !c.IsLeaf() {
			return false
		}
	}
	return true
}

// collapse returns a leaf standing for the given decision node
func collapse(n *tree.Node) *tree.Node {
	return tree.NewLeaf(n.Label(), n.Classes(), n.Attributes())
}

func rebuild(n *tree.Node, children map[string]*tree.Node) *tree.Node {
	attribute, _ := n.DecisionAttribute()
	return tree.NewDecision(n.Label(), n.Classes(), n.Attributes(), attribute, n.AttributeGain(), children)
}
