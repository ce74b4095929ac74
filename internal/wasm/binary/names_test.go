package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmkit/wasmcore/internal/wasm"
)

func TestDecodeNameSectionModuleName(t *testing.T) {
	body := []byte{0x00, 0x04, 0x03, 'f', 'o', 'o'} // subsection 0, size 4 ("foo")
	ns, err := decodeNameSection(body, wasm.DefaultConfig())
	require.Nil(t, err)
	require.Equal(t, "foo", ns.ModuleName)
}

func TestDecodeNameSectionFunctionNames(t *testing.T) {
	body := []byte{
		0x01, 0x06, // subsection 1 (function names), size 6
		0x01,             // one entry
		0x00, 0x03, 'a', 'd', 'd', // func index 0 -> "add"
	}
	ns, err := decodeNameSection(body, wasm.DefaultConfig())
	require.Nil(t, err)
	require.Equal(t, "add", ns.FunctionNames[0])
}

func TestDecodeNameSectionLocalNames(t *testing.T) {
	body := []byte{
		0x02, 0x06, // subsection 2 (local names), size 6
		0x01,       // one function entry
		0x00,       // func index 0
		0x01,       // one local name
		0x00, 0x01, 'x', // local index 0 -> "x"
	}
	ns, err := decodeNameSection(body, wasm.DefaultConfig())
	require.Nil(t, err)
	require.Equal(t, "x", ns.LocalNames[0][0])
}

func TestDecodeNameSectionSkipsUnknownSubsection(t *testing.T) {
	body := []byte{
		0x07, 0x02, 0xaa, 0xbb, // unrecognized subsection id 7, arbitrary payload
		0x00, 0x04, 0x03, 'b', 'a', 'r', // module name subsection afterward still parses
	}
	ns, err := decodeNameSection(body, wasm.DefaultConfig())
	require.Nil(t, err)
	require.Equal(t, "bar", ns.ModuleName)
}
