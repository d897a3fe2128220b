package id3

import (
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassMateImputer(t *testing.T) {
	tests := []struct {
		name     string
		examples []dataset.Example
		index    int
		want     dataset.Example
	}{
		{
			name: "exact match preferred over most frequent",
			examples: []dataset.Example{
				{"a": "x", "b": dataset.Missing, dataset.ClassKey: "c1"},
				{"a": "y", "b": "p", dataset.ClassKey: "c1"},
				{"a": "x", "b": "q", dataset.ClassKey: "c1"},
				{"a": "y", "b": "p", dataset.ClassKey: "c1"},
				{"a": "x", "b": "r", dataset.ClassKey: "c2"},
			},
			index: 0,
			want:  dataset.Example{"a": "x", "b": "q", dataset.ClassKey: "c1"},
		},
		{
			name: "most frequent among class-mates",
			examples: []dataset.Example{
				{"a": "z", "b": dataset.Missing, dataset.ClassKey: "c1"},
				{"a": "y", "b": "q", dataset.ClassKey: "c1"},
				{"a": "x", "b": "p", dataset.ClassKey: "c1"},
				{"a": "y", "b": "p", dataset.ClassKey: "c1"},
				{"a": "z", "b": "r", dataset.ClassKey: "c2"},
			},
			index: 0,
			want:  dataset.Example{"a": "z", "b": "p", dataset.ClassKey: "c1"},
		},
		{
			name: "most frequent tie goes to smallest value",
			examples: []dataset.Example{
				{"a": "z", "b": dataset.Missing, dataset.ClassKey: "c1"},
				{"a": "y", "b": "t", dataset.ClassKey: "c1"},
				{"a": "x", "b": "s", dataset.ClassKey: "c1"},
			},
			index: 0,
			want:  dataset.Example{"a": "z", "b": "s", dataset.ClassKey: "c1"},
		},
		{
			name: "absent attribute",
			examples: []dataset.Example{
				{"a": "x", dataset.ClassKey: "c1"},
				{"a": "x", "b": "q", dataset.ClassKey: "c1"},
			},
			index: 0,
			want:  dataset.Example{"a": "x", "b": "q", dataset.ClassKey: "c1"},
		},
		{
			name: "several missing attributes",
			examples: []dataset.Example{
				{"a": "y", "b": "p", "c": "1", dataset.ClassKey: "c1"},
				{"a": dataset.Missing, "b": dataset.Missing, "c": "2", dataset.ClassKey: "c1"},
				{"a": "x", "b": "q", "c": "2", dataset.ClassKey: "c1"},
			},
			index: 1,
			want:  dataset.Example{"a": "x", "b": "q", "c": "2", dataset.ClassKey: "c1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := dataset.CloneAll(tt.examples)
			imputed, err := ClassMateImputer().Impute(tt.examples)
			require.NoError(t, err)
			require.Len(t, imputed, len(tt.examples))
			assert.Equal(t, tt.want, imputed[tt.index])
			assert.Equal(t, original, tt.examples)
			for i, e := range imputed {
				if i != tt.index {
					assert.Equal(t, tt.examples[i], e)
				}
			}
		})
	}
}

func TestClassMateImputerFailure(t *testing.T) {
	examples := []dataset.Example{
		{"a": "x", "b": "p", dataset.ClassKey: "c1"},
		{"a": "x", "b": dataset.Missing, dataset.ClassKey: "c2"},
		{"a": "y", "b": dataset.Missing, dataset.ClassKey: "c2"},
	}
	imputed, err := ClassMateImputer().Impute(examples)
	assert.Nil(t, imputed)
	var target *errors.ImputationError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "b", target.Attribute)
	assert.Equal(t, "c2", target.Class)
}

func TestImputeIsIdempotent(t *testing.T) {
	examples := weatherExamples()
	examples[2]["temperature"] = dataset.Missing
	delete(examples[5], "wind")

	once, err := Impute(examples)
	require.NoError(t, err)
	for _, e := range once {
		assert.Empty(t, e.MissingAttributes(dataset.Attributes(once)))
	}
	twice, err := Impute(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	clean := weatherExamples()
	same, err := Impute(clean)
	require.NoError(t, err)
	assert.Equal(t, clean, same)
}

func TestNoImputer(t *testing.T) {
	examples := []dataset.Example{{"a": dataset.Missing, dataset.ClassKey: "c1"}}
	result, err := NoImputer().Impute(examples)
	require.NoError(t, err)
	assert.Equal(t, examples, result)
	result[0]["a"] = "x"
	assert.Equal(t, dataset.Missing, examples[0]["a"])
}
