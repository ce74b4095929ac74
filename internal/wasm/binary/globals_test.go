package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmkit/wasmcore/internal/wasm"
)

func moduleWithGlobalSection(body []byte) []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = append(out, 0x06, byte(len(body)))
	out = append(out, body...)
	return out
}

func TestDecodeGlobalSectionI32Const(t *testing.T) {
	// one mutable i32 global initialized to 7
	body := []byte{0x01, 0x7f, 0x01, 0x41, 0x07, 0x0b}
	m, err := DecodeModule(moduleWithGlobalSection(body), wasm.DefaultConfig())
	require.Nil(t, err)
	require.Len(t, m.GlobalSection, 1)
	g := m.GlobalSection[0]
	require.Equal(t, wasm.ValueTypeI32, g.Type.ValType)
	require.True(t, g.Type.Mutable)
	require.Equal(t, wasm.Expression{0x41, 0x07, 0x0b}, g.Init)
}

func TestDecodeGlobalSectionMultiple(t *testing.T) {
	body := []byte{
		0x02,
		0x7f, 0x00, 0x41, 0x01, 0x0b, // immutable i32 := 1
		0x7e, 0x00, 0x42, 0x02, 0x0b, // immutable i64 := 2
	}
	m, err := DecodeModule(moduleWithGlobalSection(body), wasm.DefaultConfig())
	require.Nil(t, err)
	require.Len(t, m.GlobalSection, 2)
	require.Equal(t, wasm.ValueTypeI64, m.GlobalSection[1].Type.ValType)
}

func TestDecodeGlobalSectionInitializerNotValidatedAtDecodeTime(t *testing.T) {
	// DecodeExpression only frames the raw bytes; a global.get referencing
	// an out-of-range index is rejected later by ValidateModule, not here.
	body := []byte{0x01, 0x7f, 0x00, 0x23, 0x09, 0x0b}
	m, err := DecodeModule(moduleWithGlobalSection(body), wasm.DefaultConfig())
	require.Nil(t, err)
	require.NotNil(t, wasm.ValidateModule(m, nil))
}
