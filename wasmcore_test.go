package wasmcore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmkit/wasmcore/internal/wasm"
)

// minimalWasm encodes: (type (func (result i32))) (func (export "main") i32.const 42).
func minimalWasm() []byte {
	return []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x05, 0x01, 0x60, 0x00, 0x01, 0x7f,
		0x03, 0x02, 0x01, 0x00,
		0x07, 0x08, 0x01, 0x04, 'm', 'a', 'i', 'n', 0x00, 0x00,
		0x0a, 0x06, 0x01, 0x04, 0x00, 0x41, 0x2a, 0x0b,
	}
}

func TestIsWasm(t *testing.T) {
	require.True(t, IsWasm(minimalWasm()))
	require.False(t, IsWasm([]byte{0x00, 0x61, 0x73, 0x00, 0x01, 0x00, 0x00, 0x00}))
	require.False(t, IsWasm([]byte{0x00}))
}

func TestParseDecodesAndValidates(t *testing.T) {
	m, err := Parse(minimalWasm(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, m.TypeSection, 1)
}

func TestParseRejectsInvalidModule(t *testing.T) {
	// function section references an undeclared type index.
	data := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x03, 0x02, 0x01, 0x05,
	}
	_, err := Parse(data, DefaultConfig())
	require.Error(t, err)
}

func TestParseUnvalidatedAllowsInvalidModule(t *testing.T) {
	data := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x03, 0x02, 0x01, 0x05,
	}
	m, err := ParseUnvalidated(data, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []uint32{5}, m.FunctionSection)
	require.Error(t, Validate(m, DefaultConfig()))
}

func TestValidateBytesHeaderOnly(t *testing.T) {
	require.NoError(t, ValidateBytes(minimalWasm(), HeaderOnly, DefaultConfig()))
	require.Error(t, ValidateBytes([]byte{0x00, 0x00}, HeaderOnly, DefaultConfig()))
}

func TestValidateBytesStructuralSkipsFunctionValidation(t *testing.T) {
	// local index 9 doesn't exist, which only the type-stack validator
	// (not decoding) would catch.
	data := []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
		0x03, 0x02, 0x01, 0x00,
		0x0a, 0x07, 0x01, 0x05, 0x00, 0x20, 0x09, 0x1a, 0x0b,
	}
	require.NoError(t, ValidateBytes(data, Structural, DefaultConfig()))
	require.Error(t, ValidateBytes(data, Full, DefaultConfig()))
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	m, err := Parse(minimalWasm(), cfg)
	require.NoError(t, err)

	encoded, eerr := Encode(m, cfg)
	require.NoError(t, eerr)
	require.Equal(t, minimalWasm(), encoded)
}

func TestSectionInfoList(t *testing.T) {
	infos, err := SectionInfoList(minimalWasm(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, infos, 4)
	require.Equal(t, byte(wasm.SectionIDType), infos[0].ID)
}

func TestConfigBuildersAreImmutable(t *testing.T) {
	base := DefaultConfig()
	strict := base.WithStrictSectionOrder(false)
	require.NotEqual(t, base.c.StrictSectionOrder, strict.c.StrictSectionOrder)
}

func TestConfigWithMaxModuleBytesAppliesToParse(t *testing.T) {
	cfg := DefaultConfig().WithMaxModuleBytes(4)
	_, err := Parse(minimalWasm(), cfg)
	require.Error(t, err)
}

func TestNewConfigIsAliasForDefault(t *testing.T) {
	require.Equal(t, DefaultConfig(), NewConfig())
}
