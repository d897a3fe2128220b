package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherExamples() []Example {
	return []Example{
		{"outlook": "sunny", "wind": "weak", ClassKey: "no"},
		{"outlook": "sunny", "wind": "strong", ClassKey: "no"},
		{"outlook": "overcast", "wind": "weak", ClassKey: "yes"},
		{"outlook": "rain", "wind": "weak", ClassKey: "yes"},
		{"outlook": "rain", "wind": "strong", ClassKey: "no"},
		{"outlook": "overcast", "wind": "strong", ClassKey: "yes"},
	}
}

func implementations() map[string]Generator {
	return map[string]Generator{
		"memory": NewMemoryIntensive,
		"cpu":    NewCPUIntensive,
	}
}

func TestEntropy(t *testing.T) {
	tests := []struct {
		name    string
		classes map[string]int
		want    float64
	}{
		{"empty", map[string]int{}, 0},
		{"pure", map[string]int{"a": 7}, 0},
		{"zero count ignored", map[string]int{"a": 3, "b": 0}, 0},
		{"even split", map[string]int{"a": 2, "b": 2}, 1},
		{"three even", map[string]int{"a": 1, "b": 1, "c": 1}, math.Log2(3)},
		{"skewed", map[string]int{"a": 1, "b": 3}, -(0.25*math.Log2(0.25) + 0.75*math.Log2(0.75))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Entropy(tt.classes)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestDatasetImplementations(t *testing.T) {
	for name, gen := range implementations() {
		t.Run(name, func(t *testing.T) {
			ds := gen(weatherExamples())
			assert.Equal(t, 6, ds.Count())
			assert.Equal(t, []string{"outlook", "wind"}, ds.Attributes())
			assert.Equal(t, []string{"overcast", "rain", "sunny"}, ds.Values("outlook"))
			assert.Equal(t, map[string]int{"no": 3, "yes": 3}, ds.CountClasses())
			assert.InDelta(t, 1.0, ds.Entropy(), 1e-12)

			sunny := ds.SubsetWith("outlook", "sunny")
			assert.Equal(t, 2, sunny.Count())
			assert.Equal(t, []string{"wind"}, sunny.Attributes())
			assert.Equal(t, map[string]int{"no": 2}, sunny.CountClasses())
			assert.Equal(t, 0.0, sunny.Entropy())
			for _, e := range sunny.Examples() {
				_, ok := e["outlook"]
				assert.False(t, ok, "split attribute must be stripped")
			}

			weak := ds.SubsetWith("wind", "weak").SubsetWith("outlook", "rain")
			require.Equal(t, 1, weak.Count())
			assert.Empty(t, weak.Attributes())
			assert.Equal(t, []Example{{ClassKey: "yes"}}, weak.Examples())

			none := ds.SubsetWith("outlook", "snow")
			assert.Equal(t, 0, none.Count())
			assert.Empty(t, none.CountClasses())
		})
	}
}

func TestExamplesAreCopies(t *testing.T) {
	original := weatherExamples()
	for name, gen := range implementations() {
		t.Run(name, func(t *testing.T) {
			ds := gen(original)
			examples := ds.Examples()
			examples[0]["outlook"] = "changed"
			assert.Equal(t, "sunny", original[0]["outlook"])
		})
	}
}

func TestNewPicksImplementationBySize(t *testing.T) {
	small := New(weatherExamples())
	_, ok := small.(*memoryIntensiveSubsettingDataset)
	assert.True(t, ok)

	large := make([]Example, sampleCountThresholdForDatasetImplementation+1)
	for i := range large {
		large[i] = Example{"a": "x", ClassKey: "c"}
	}
	_, ok = New(large).(*cpuIntensiveSubsettingDataset)
	assert.True(t, ok)
}

func TestExampleHelpers(t *testing.T) {
	e := Example{"a": "1", "b": Missing, ClassKey: "x"}
	c, ok := e.Class()
	assert.True(t, ok)
	assert.Equal(t, "x", c)
	assert.Equal(t, Missing, e.ValueFor("nope"))
	assert.Equal(t, []string{"b", "c"}, e.MissingAttributes([]string{"a", "b", "c"}))
	assert.Equal(t, Example{"b": Missing, ClassKey: "x"}, e.Without("a"))
	assert.Equal(t, []string{"a", "b", "z"}, Attributes([]Example{e, {"z": "1"}}))
}
