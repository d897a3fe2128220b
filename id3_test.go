package id3

import (
	"bytes"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
	"github.com/pbanos/id3/tree"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioExamples() []dataset.Example {
	return []dataset.Example{
		{"a": "1", "b": "0", dataset.ClassKey: "2"},
		{"a": "1", "b": "1", dataset.ClassKey: "1"},
		{"a": "2", "b": "0", dataset.ClassKey: "2"},
		{"a": "2", "b": "1", dataset.ClassKey: "3"},
		{"a": "3", "b": "0", dataset.ClassKey: "1"},
		{"a": "3", "b": "1", dataset.ClassKey: "3"},
	}
}

func weatherExamples() []dataset.Example {
	rows := [][5]string{
		{"sunny", "hot", "high", "weak", "no"},
		{"sunny", "hot", "high", "strong", "no"},
		{"overcast", "hot", "high", "weak", "yes"},
		{"rain", "mild", "high", "weak", "yes"},
		{"rain", "cool", "normal", "weak", "yes"},
		{"rain", "cool", "normal", "strong", "no"},
		{"overcast", "cool", "normal", "strong", "yes"},
		{"sunny", "mild", "high", "weak", "no"},
		{"sunny", "cool", "normal", "weak", "yes"},
		{"rain", "mild", "normal", "weak", "yes"},
		{"sunny", "mild", "normal", "strong", "yes"},
		{"overcast", "mild", "high", "strong", "yes"},
		{"overcast", "hot", "normal", "weak", "yes"},
		{"rain", "mild", "high", "strong", "no"},
	}
	examples := make([]dataset.Example, 0, len(rows))
	for _, r := range rows {
		e := dataset.Example{"outlook": r[0], "temperature": r[1], "humidity": r[2], "wind": r[3]}
		e[dataset.ClassKey] = r[4]
		examples = append(examples, e)
	}
	return examples
}

func TestInducePureExamples(t *testing.T) {
	examples := []dataset.Example{
		{"a": "1", dataset.ClassKey: "yes"},
		{"a": "2", dataset.ClassKey: "yes"},
	}
	root, err := Induce(examples, "no")
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, "yes", root.Label())
	assert.Empty(t, root.Attributes())
	assert.Equal(t, map[string]int{"yes": 2}, root.Classes())
}

func TestInduceWithoutAttributes(t *testing.T) {
	examples := []dataset.Example{
		{dataset.ClassKey: "a"},
		{dataset.ClassKey: "b"},
		{dataset.ClassKey: "b"},
	}
	root, err := Induce(examples, "a")
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, "b", root.Label())
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, root.Classes())
}

func TestInduceExhaustsAttributes(t *testing.T) {
	examples := []dataset.Example{
		{"x": "1", dataset.ClassKey: "b"},
		{"x": "1", dataset.ClassKey: "a"},
	}
	root, err := Induce(examples, "z")
	require.NoError(t, err)
	attribute, ok := root.DecisionAttribute()
	require.True(t, ok)
	assert.Equal(t, "x", attribute)
	assert.Equal(t, "a", root.Label())
	child, ok := root.Child("1")
	require.True(t, ok)
	assert.True(t, child.IsLeaf())
	assert.Equal(t, "a", child.Label())
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, child.Classes())
}

func TestInduceScenario(t *testing.T) {
	root, err := Induce(scenarioExamples(), "1")
	require.NoError(t, err)

	attribute, ok := root.DecisionAttribute()
	require.True(t, ok)
	assert.Equal(t, "b", attribute)
	gains := root.AttributeGain()
	assert.InDelta(t, 0.584963, gains["a"], 1e-6)
	assert.InDelta(t, 0.666667, gains["b"], 1e-6)
	assert.Equal(t, []string{"0", "1"}, root.Values())

	for _, v := range root.Values() {
		child, _ := root.Child(v)
		attribute, ok := child.DecisionAttribute()
		require.True(t, ok)
		assert.Equal(t, "a", attribute)
		assert.Equal(t, []string{"1", "2", "3"}, child.Values())
	}

	accuracy, fallbacks, err := tree.Score(root, scenarioExamples())
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)
	assert.Equal(t, 0, fallbacks)

	label, fellBack := root.Evaluate(dataset.Example{"a": "9", "b": "0"})
	assert.True(t, fellBack)
	assert.Equal(t, "2", label)
}

func TestInduceTreeProperties(t *testing.T) {
	examples := weatherExamples()
	root, err := Induce(examples, "yes")
	require.NoError(t, err)

	attribute, _ := root.DecisionAttribute()
	assert.Equal(t, "outlook", attribute)

	var check func(n *tree.Node, used map[string]bool)
	check = func(n *tree.Node, used map[string]bool) {
		attribute, ok := n.DecisionAttribute()
		if !ok {
			assert.Empty(t, n.Values())
			return
		}
		assert.False(t, used[attribute], "attribute %s reused below its split", attribute)
		h := dataset.Entropy(n.Classes())
		for a, g := range n.AttributeGain() {
			assert.GreaterOrEqual(t, g, -1e-9, "gain of %s", a)
			assert.LessOrEqual(t, g, h+1e-9, "gain of %s", a)
			assert.LessOrEqual(t, g, n.InformationGain()+1e-12)
		}
		weight := 0
		for _, v := range n.Values() {
			child, _ := n.Child(v)
			weight += child.Weight()
			assert.NotContains(t, child.Attributes(), attribute)
			next := map[string]bool{attribute: true}
			for k := range used {
				next[k] = true
			}
			check(child, next)
		}
		assert.Equal(t, n.Weight(), weight)
	}
	check(root, map[string]bool{})

	accuracy, fallbacks, err := tree.Score(root, examples)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)
	assert.Equal(t, 0, fallbacks)
}

func TestInduceInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		examples []dataset.Example
	}{
		{"no examples", nil},
		{"empty slice", []dataset.Example{}},
		{"example without class", []dataset.Example{{"a": "1", dataset.ClassKey: "x"}, {"a": "2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Induce(tt.examples, "x")
			assert.Nil(t, root)
			var target *errors.InvalidInputError
			require.True(t, errors.As(err, &target))
			assert.Equal(t, "induce", target.Op)
		})
	}
}

func TestInduceImputesOnACopy(t *testing.T) {
	examples := weatherExamples()
	examples[0]["humidity"] = dataset.Missing
	delete(examples[1], "wind")

	root, err := Induce(examples, "yes")
	require.NoError(t, err)
	assert.Equal(t, dataset.Missing, examples[0]["humidity"])
	_, ok := examples[1]["wind"]
	assert.False(t, ok)

	err = root.Traverse(false, func(n *tree.Node) error {
		assert.NotContains(t, n.Values(), dataset.Missing)
		return nil
	})
	require.NoError(t, err)
}

func TestInduceImputationFailure(t *testing.T) {
	examples := []dataset.Example{
		{"a": "1", dataset.ClassKey: "x"},
		{"a": dataset.Missing, dataset.ClassKey: "y"},
	}
	_, err := Induce(examples, "x")
	var target *errors.ImputationError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "a", target.Attribute)
	assert.Equal(t, "y", target.Class)
}

func TestDevelopEmptyPartition(t *testing.T) {
	g := New()
	leaf := g.develop(dataset.New(nil), "fallback", 3)
	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, "fallback", leaf.Label())
	assert.Equal(t, 0, leaf.Weight())
}

func TestGrowerOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	imputed := false
	imputer := ImputerFunc(func(examples []dataset.Example) ([]dataset.Example, error) {
		imputed = true
		return dataset.CloneAll(examples), nil
	})
	g := New(WithLogger(logger), WithImputer(imputer), WithDatasetGenerator(dataset.NewCPUIntensive))

	root, err := g.Grow(weatherExamples(), "yes")
	require.NoError(t, err)
	assert.True(t, imputed)
	assert.Contains(t, buf.String(), `"message":"splitting"`)
	assert.Contains(t, buf.String(), `"attribute":"outlook"`)
	assert.Contains(t, buf.String(), `"nodes":8,"depth":2,"weight":14,"majority":"yes"`)

	reference, err := Induce(weatherExamples(), "yes")
	require.NoError(t, err)
	assert.Equal(t, reference.String(), root.String())
}

func TestGrowerSkipsDebugSummaryAboveDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	g := New(WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)))
	root, err := g.Grow(weatherExamples(), "yes")
	require.NoError(t, err)
	assert.Equal(t, 8, root.Size())
	assert.Empty(t, buf.String())
}
