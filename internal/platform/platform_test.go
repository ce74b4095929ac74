package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentImplementsCapabilities(t *testing.T) {
	var _ Capabilities = Current
}

func TestCacheLineSizeIsPositive(t *testing.T) {
	require.Greater(t, Current.CacheLineSize(), 0)
}

func TestGuaranteesIEEE754(t *testing.T) {
	require.True(t, Current.GuaranteesIEEE754())
}

func TestDefaultTierMatchesArch(t *testing.T) {
	switch runtime.GOARCH {
	case "arm", "mips", "mipsle":
		require.Equal(t, TierEmbedded, Current.DefaultTier())
	default:
		require.Equal(t, TierGeneral, Current.DefaultTier())
	}
}

func TestNativeEndianConsistentWithBigEndian(t *testing.T) {
	isBig := Current.BigEndian()
	require.Equal(t, isBig, nativeEndian() == bigEndian)
}
