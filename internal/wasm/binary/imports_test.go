package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmkit/wasmcore/internal/wasm"
)

// moduleWithImportSection builds: magic+version, type section (one nullary
// func type), then an import section whose body is supplied verbatim.
func moduleWithImportSection(body []byte) []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = append(out, 0x01, 0x04, 0x01, 0x60, 0x00, 0x00) // type section: (func)
	out = append(out, 0x02, byte(len(body)))
	out = append(out, body...)
	return out
}

func TestDecodeImportFunc(t *testing.T) {
	body := []byte{0x01, 0x01, 'm', 0x01, 'f', 0x00, 0x00} // one import: module "m", name "f", func kind, type 0
	m, err := DecodeModule(moduleWithImportSection(body), wasm.DefaultConfig())
	require.Nil(t, err)
	require.Len(t, m.ImportSection, 1)
	imp := m.ImportSection[0]
	require.Equal(t, "m", imp.Module)
	require.Equal(t, "f", imp.Name)
	require.Equal(t, wasm.ExternKindFunc, imp.Kind)
	require.Equal(t, uint32(0), imp.DescFunc)
}

func TestDecodeImportTable(t *testing.T) {
	body := []byte{0x01, 0x01, 'm', 0x01, 't', 0x01, 0x70, 0x00, 0x01} // table, funcref, limits{min:1}
	m, err := DecodeModule(moduleWithImportSection(body), wasm.DefaultConfig())
	require.Nil(t, err)
	require.Equal(t, wasm.ExternKindTable, m.ImportSection[0].Kind)
	require.Equal(t, wasm.ValueTypeFuncref, m.ImportSection[0].DescTable.ElemType)
	require.Equal(t, uint32(1), m.ImportSection[0].DescTable.Limits.Min)
}

func TestDecodeImportMemory(t *testing.T) {
	body := []byte{0x01, 0x01, 'm', 0x01, 'z', 0x02, 0x00, 0x01} // memory, limits{min:1}
	m, err := DecodeModule(moduleWithImportSection(body), wasm.DefaultConfig())
	require.Nil(t, err)
	require.Equal(t, wasm.ExternKindMemory, m.ImportSection[0].Kind)
	require.Equal(t, uint32(1), m.ImportSection[0].DescMemory.Limits.Min)
}

func TestDecodeImportGlobal(t *testing.T) {
	body := []byte{0x01, 0x01, 'm', 0x01, 'g', 0x03, 0x7f, 0x00} // global, i32, immutable
	m, err := DecodeModule(moduleWithImportSection(body), wasm.DefaultConfig())
	require.Nil(t, err)
	require.Equal(t, wasm.ExternKindGlobal, m.ImportSection[0].Kind)
	require.Equal(t, wasm.ValueTypeI32, m.ImportSection[0].DescGlobal.ValType)
	require.False(t, m.ImportSection[0].DescGlobal.Mutable)
}

func TestDecodeImportUnrecognizedKindRejected(t *testing.T) {
	body := []byte{0x01, 0x01, 'm', 0x01, 'x', 0x04} // kind byte 0x04 doesn't exist
	_, err := DecodeModule(moduleWithImportSection(body), wasm.DefaultConfig())
	require.NotNil(t, err)
}
