package tree

import (
	"sort"
)

/*
Node is a node of a decision tree. A node with children is a decision node
that routes examples by their value for its decision attribute; a node without
them is a leaf. Every node, leaf or not, has a label: the majority class among
the training examples that reached it.

Nodes are built bottom-up with NewLeaf and NewDecision and are never modified
afterwards, so a tree can be evaluated from several goroutines at once.
*/
type Node struct {
	// The majority class among the training examples that reached the node
	label string
	// The number of training examples of each class that reached the node
	classes map[string]int
	// The attributes that were still available to split on at the node
	attributes []string
	// The attribute whose values select the child to descend to. Empty on leaves.
	decisionAttribute string
	// The information gain of every candidate attribute at the node
	attributeGain map[string]float64
	// The nodes below this one, by value of the decision attribute
	children map[string]*Node
}

/*
NewLeaf takes a label, the class counts of the training examples that reached
the node and the attributes that remained available there and returns a leaf
node.
*/
func NewLeaf(label string, classes map[string]int, attributes []string) *Node {
	return &Node{
		label:      label,
		classes:    copyCounts(classes),
		attributes: append([]string(nil), attributes...),
	}
}

/*
NewDecision takes the label, class counts and available attributes of a node,
the attribute chosen to split on, the information gain computed for every
candidate attribute and the already built children by value of the decision
attribute, and returns a decision node. The maps are copied, so later changes
by the caller do not affect the node.
*/
func NewDecision(label string, classes map[string]int, attributes []string, decisionAttribute string, attributeGain map[string]float64, children map[string]*Node) *Node {
	n := &Node{
		label:             label,
		classes:           copyCounts(classes),
		attributes:        append([]string(nil), attributes...),
		decisionAttribute: decisionAttribute,
		attributeGain:     make(map[string]float64, len(attributeGain)),
		children:          make(map[string]*Node, len(children)),
	}
	for a, g := range attributeGain {
		n.attributeGain[a] = g
	}
	for v, c := range children {
		n.children[v] = c
	}
	return n
}

// Label returns the majority class of the node.
func (n *Node) Label() string {
	return n.label
}

/*
Classes returns a copy of the number of training examples of each class that
reached the node.
*/
func (n *Node) Classes() map[string]int {
	return copyCounts(n.classes)
}

// Weight returns the number of training examples that reached the node.
func (n *Node) Weight() int {
	var w int
	for _, c := range n.classes {
		w += c
	}
	return w
}

// Attributes returns the attributes that were available to split on at the node.
func (n *Node) Attributes() []string {
	return append([]string(nil), n.attributes...)
}

/*
DecisionAttribute returns the attribute the node splits on and true, or an
empty string and false for leaves.
*/
func (n *Node) DecisionAttribute() (string, bool) {
	return n.decisionAttribute, !n.IsLeaf()
}

/*
AttributeGain returns a copy of the information gain computed for each
candidate attribute at the node. It is empty for leaves.
*/
func (n *Node) AttributeGain() map[string]float64 {
	result := make(map[string]float64, len(n.attributeGain))
	for a, g := range n.attributeGain {
		result[a] = g
	}
	return result
}

// InformationGain returns the gain of the decision attribute, 0 for leaves.
func (n *Node) InformationGain() float64 {
	return n.attributeGain[n.decisionAttribute]
}

// IsLeaf returns whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Values returns, sorted, the values of the decision attribute with a child.
func (n *Node) Values() []string {
	values := make([]string, 0, len(n.children))
	for v := range n.children {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Child returns the child for the given value of the decision attribute.
func (n *Node) Child(value string) (*Node, bool) {
	c, ok := n.children[value]
	return c, ok
}

// Size returns the number of nodes in the subtree rooted at the node.
func (n *Node) Size() int {
	size := 0
	n.Traverse(false, func(*Node) error {
		size++
		return nil
	})
	return size
}

// Depth returns the number of edges on the longest path down to a leaf.
func (n *Node) Depth() int {
	var depth int
	for _, c := range n.children {
		if d := c.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

func copyCounts(counts map[string]int) map[string]int {
	result := make(map[string]int, len(counts))
	for k, v := range counts {
		result[k] = v
	}
	return result
}
