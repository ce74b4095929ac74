package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmkit/wasmcore/internal/wasm"
)

func TestScanSectionsMinimal(t *testing.T) {
	infos, err := ScanSections(minimalModule(), wasm.DefaultConfig())
	require.Nil(t, err)
	require.Len(t, infos, 4)

	require.Equal(t, wasm.SectionIDType, infos[0].ID)
	require.Equal(t, uint64(10), infos[0].Offset)
	require.Equal(t, uint64(5), infos[0].Size)

	require.Equal(t, wasm.SectionIDFunction, infos[1].ID)
	require.Equal(t, wasm.SectionIDExport, infos[2].ID)
	require.Equal(t, wasm.SectionIDCode, infos[3].ID)
}

func TestScanSectionsEmptyModule(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	infos, err := ScanSections(data, wasm.DefaultConfig())
	require.Nil(t, err)
	require.Empty(t, infos)
}

func TestScanSectionsReadsCustomSectionName(t *testing.T) {
	data := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x00, 0x05, 0x02, 'h', 'i', 'x', 'y', // custom section, name "hi", payload "xy"
	}
	infos, err := ScanSections(data, wasm.DefaultConfig())
	require.Nil(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, wasm.SectionIDCustom, infos[0].ID)
	require.Equal(t, "hi", infos[0].Name)
	require.Equal(t, uint64(5), infos[0].Size)
}

func TestScanSectionsDoesNotValidateBodies(t *testing.T) {
	// function section references a type index that doesn't exist; ScanSections
	// only frames the section, it never inspects or validates the body.
	data := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x03, 0x02, 0x01, 0x63, // function section: [type 0x63]
	}
	infos, err := ScanSections(data, wasm.DefaultConfig())
	require.Nil(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, wasm.SectionIDFunction, infos[0].ID)
}

func TestScanSectionsBadMagicRejected(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73, 0x00, 0x01, 0x00, 0x00, 0x00}
	_, err := ScanSections(data, wasm.DefaultConfig())
	require.NotNil(t, err)
	require.Equal(t, wasm.KindInvalidMagic, err.Kind)
}

func TestScanSectionsTruncatedSectionSizeRejected(t *testing.T) {
	data := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x05, 0x01, 0x60, // declares 5 bytes but only 3 are present
	}
	_, err := ScanSections(data, wasm.DefaultConfig())
	require.NotNil(t, err)
}

func TestScanSectionsNilConfigUsesDefault(t *testing.T) {
	infos, err := ScanSections(minimalModule(), nil)
	require.Nil(t, err)
	require.Len(t, infos, 4)
}
