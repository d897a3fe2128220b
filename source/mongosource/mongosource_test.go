package mongosource

import (
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"
)

func TestExampleFromDocument(t *testing.T) {
	tests := []struct {
		name       string
		doc        bson.M
		classField string
		want       dataset.Example
		wantErr    bool
	}{
		{
			name:       "renames class field",
			doc:        bson.M{"_id": bson.NewObjectId(), "outlook": "sunny", "rooms": 3, "play": "no"},
			classField: "play",
			want:       dataset.Example{"outlook": "sunny", "rooms": "3", dataset.ClassKey: "no"},
		},
		{
			name:       "null as missing",
			doc:        bson.M{"outlook": nil, dataset.ClassKey: "yes"},
			classField: dataset.ClassKey,
			want:       dataset.Example{"outlook": dataset.Missing, dataset.ClassKey: "yes"},
		},
		{
			name:       "no class",
			doc:        bson.M{"outlook": "sunny"},
			classField: "play",
			wantErr:    true,
		},
		{
			name:       "null class",
			doc:        bson.M{"play": nil},
			classField: "play",
			wantErr:    true,
		},
		{
			name:       "clashing class field",
			doc:        bson.M{dataset.ClassKey: "a", "play": "b"},
			classField: "play",
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := exampleFromDocument(tt.doc, tt.classField)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e)
		})
	}
}

func TestDocumentFromExample(t *testing.T) {
	doc, err := documentFromExample(dataset.Example{"outlook": "sunny", "wind": dataset.Missing, dataset.ClassKey: "no"})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"outlook": "sunny", dataset.ClassKey: "no"}, doc)

	_, err = documentFromExample(dataset.Example{"_id": "1"})
	assert.Error(t, err)
	_, err = documentFromExample(dataset.Example{"a.b": "1"})
	assert.Error(t, err)
}

func TestNewDefaultsCollection(t *testing.T) {
	s := New(nil, "")
	assert.Equal(t, DefaultCollection, s.collection)
}
