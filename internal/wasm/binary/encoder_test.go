package binary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmkit/wasmcore/internal/wasm"
)

func TestEncodeModuleRoundTripsMinimal(t *testing.T) {
	cfg := wasm.DefaultConfig()
	original := minimalModule()
	m, err := DecodeModule(original, cfg)
	require.Nil(t, err)

	encoded, eerr := EncodeModule(m, cfg)
	require.Nil(t, eerr)
	require.Equal(t, original, encoded)
}

func TestEncodeModuleRoundTripsReDecodes(t *testing.T) {
	cfg := wasm.DefaultConfig()
	m, err := DecodeModule(minimalModule(), cfg)
	require.Nil(t, err)

	encoded, eerr := EncodeModule(m, cfg)
	require.Nil(t, eerr)

	m2, err2 := DecodeModule(encoded, cfg)
	require.Nil(t, err2)
	require.Equal(t, m, m2)
}

func TestEncodeModuleEmpty(t *testing.T) {
	cfg := wasm.DefaultConfig()
	m := &wasm.Module{ExportSection: map[string]*wasm.Export{}}
	encoded, err := EncodeModule(m, cfg)
	require.Nil(t, err)
	require.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, encoded)
}

func TestEncodeModuleExportsSortedByName(t *testing.T) {
	m := &wasm.Module{
		ExportSection: map[string]*wasm.Export{
			"zebra": {Name: "zebra", Kind: wasm.ExternKindFunc, Index: 0},
			"alpha": {Name: "alpha", Kind: wasm.ExternKindFunc, Index: 0},
		},
	}
	body, err := encodeExportSection(m)
	require.Nil(t, err)

	// first export entry should be "alpha": count byte, then name length 5.
	require.Equal(t, byte(2), body[0])
	require.Equal(t, byte(5), body[1])
	require.Equal(t, "alpha", string(body[2:7]))
}

func TestWriteLocalGroupsCollapsesAdjacentRuns(t *testing.T) {
	var buf bytes.Buffer
	writeLocalGroups(&buf, []wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI32, wasm.ValueTypeI64})
	// group count = 2, then (count=2, i32), (count=1, i64)
	require.Equal(t, []byte{0x02, 0x02, 0x7f, 0x01, 0x7e}, buf.Bytes())
}

func TestEncodeModuleRespectsMaxModuleBytes(t *testing.T) {
	cfg := wasm.DefaultConfig()
	m, err := DecodeModule(minimalModule(), cfg)
	require.Nil(t, err)

	tight := wasm.DefaultConfig()
	tight.MaxModuleBytes = 4
	_, eerr := EncodeModule(m, tight)
	require.NotNil(t, eerr)
	require.Equal(t, wasm.KindResourceLimit, eerr.Kind)
}
