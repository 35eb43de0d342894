package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	threshold int
	name      string
}

func withThreshold(threshold int) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.threshold = threshold
	})
}

func withName(name string) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if name == "" {
			return errors.New("empty name")
		}
		c.name = name

		return nil
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withThreshold(3), withThreshold(7), withName("wire"))
	require.NoError(t, err)
	require.Equal(t, 7, cfg.threshold)
	require.Equal(t, "wire", cfg.name)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withName(""), withThreshold(3))
	require.Error(t, err)
	require.Zero(t, cfg.threshold)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &testConfig{}
	require.NoError(t, Apply(cfg))
}
