package hash

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestID_Deterministic(t *testing.T) {
	require.Equal(t, ID("plane0.wire42"), ID("plane0.wire42"))
	require.NotEqual(t, ID("plane0.wire42"), ID("plane0.wire43"))
}

func TestID_MatchesXXHash64(t *testing.T) {
	require.Equal(t, xxhash.Sum64String("plane0.wire42"), ID("plane0.wire42"))
	require.Equal(t, xxhash.Sum64([]byte("")), ID(""))
}
