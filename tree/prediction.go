package tree

import (
	"fmt"
	"sort"
	"strings"
)

/*
Prediction represents the class distribution a node of a decision tree
assigns to the examples that reach it.
*/
type Prediction struct {
	label         string
	probabilities map[string]float64
	weight        int
}

/*
Prediction returns the prediction of the node: the probability of each class
among the training examples that reached it, and its label.
*/
func (n *Node) Prediction() *Prediction {
	weight := n.Weight()
	probs := make(map[string]float64, len(n.classes))
	for c, count := range n.classes {
		if weight > 0 {
			probs[c] = float64(count) / float64(weight)
		}
	}
	return &Prediction{n.label, probs, weight}
}

/*
Weight returns the weight of the prediction: the number of
training examples from which it was made
*/
func (p *Prediction) Weight() int {
	return p.weight
}

/*
PredictedValue returns the predicted class and its probability. A prediction
made from no examples returns the label it inherited and 0.
*/
func (p *Prediction) PredictedValue() (string, float64) {
	return p.label, p.probabilities[p.label]
}

func (p *Prediction) String() string {
	classes := make([]string, 0, len(p.probabilities))
	for c := range p.probabilities {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = fmt.Sprintf("%s:%.3f", c, p.probabilities[c])
	}
	return fmt.Sprintf("%s [%s] (%d)", p.label, strings.Join(parts, " "), p.weight)
}
