package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedConfigIsStricter(t *testing.T) {
	d := DefaultConfig()
	e := EmbeddedConfig()
	require.Greater(t, d.MaxModuleBytes, e.MaxModuleBytes)
	require.Greater(t, d.MaxOperandStack, e.MaxOperandStack)
	require.Equal(t, d.StrictSectionOrder, e.StrictSectionOrder)
}

type fakeDeadline struct{ expired bool }

func (f fakeDeadline) Expired() bool { return f.expired }

func TestCheckDeadline(t *testing.T) {
	c := DefaultConfig()
	require.Nil(t, c.CheckDeadline())

	c.Deadline = fakeDeadline{expired: true}
	err := c.CheckDeadline()
	require.NotNil(t, err)
	require.Equal(t, KindTimeout, err.Kind)
}

func TestCheckVectorCount(t *testing.T) {
	c := DefaultConfig()
	c.MaxVectorElements = 10
	require.Nil(t, c.CheckVectorCount(10, "test", 0))

	err := c.CheckVectorCount(11, "test", 5)
	require.NotNil(t, err)
	require.Equal(t, KindResourceLimit, err.Kind)
	require.Equal(t, uint64(5), err.Offset)
}

func TestFeaturesSetAndGet(t *testing.T) {
	var f Features
	require.False(t, f.Get(FeatureSaturatingTruncation))
	f = f.Set(FeatureSaturatingTruncation, true)
	require.True(t, f.Get(FeatureSaturatingTruncation))
	require.Equal(t, "saturating-truncation", f.String())
	f = f.Set(FeatureSaturatingTruncation, false)
	require.False(t, f.Get(FeatureSaturatingTruncation))
	require.Equal(t, "", f.String())
}
