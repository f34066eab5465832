package presets_test

import (
	"testing"

	"github.com/blockwise/ufs/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet__KnownPreset(t *testing.T) {
	g, err := presets.Get("tiny")
	require.NoError(t, err)
	assert.Equal(t, uint(32), g.NumInodes)
	assert.Equal(t, uint(32), g.NumData)
}

func TestGet__UnknownPreset(t *testing.T) {
	_, err := presets.Get("nonexistent")
	assert.Error(t, err)
}

func TestAll__ContainsEveryPreset(t *testing.T) {
	all := presets.All()
	names := make(map[string]bool)
	for _, g := range all {
		names[g.Name] = true
	}
	assert.True(t, names["tiny"])
	assert.True(t, names["small"])
	assert.True(t, names["medium"])
}
