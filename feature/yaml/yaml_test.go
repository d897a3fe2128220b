package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFeatures(t *testing.T) {
	md := []byte(`
features:
  wind: [weak, strong]
  outlook:
    - sunny
    - overcast
    - rain
  rooms: [1, 2, 3]
`)
	features, err := ReadFeatures(md)
	require.NoError(t, err)
	require.Len(t, features, 3)
	assert.Equal(t, "outlook", features[0].Name())
	assert.Equal(t, []string{"overcast", "rain", "sunny"}, features[0].AvailableValues())
	assert.Equal(t, "rooms", features[1].Name())
	assert.Equal(t, []string{"1", "2", "3"}, features[1].AvailableValues())
	assert.Equal(t, "wind", features[2].Name())
}

func TestReadFeaturesErrors(t *testing.T) {
	tests := []struct {
		name string
		md   string
	}{
		{"invalid yaml", "features: [a"},
		{"no features", "other: 1"},
		{"continuous feature", "features:\n  temperature: continuous\n"},
		{"object declaration", "features:\n  temperature:\n    min: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features, err := ReadFeatures([]byte(tt.md))
			assert.Error(t, err)
			assert.Nil(t, features)
		})
	}
}

func TestReadFeaturesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.yml")
	require.NoError(t, os.WriteFile(path, []byte("features:\n  wind: [weak, strong]\n"), 0o600))
	features, err := ReadFeaturesFromFile(path)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, []string{"strong", "weak"}, features[0].AvailableValues())

	_, err = ReadFeaturesFromFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
