package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueTypeName(t *testing.T) {
	require.Equal(t, "i32", ValueTypeName(ValueTypeI32))
	require.Equal(t, "i64", ValueTypeName(ValueTypeI64))
	require.Equal(t, "f32", ValueTypeName(ValueTypeF32))
	require.Equal(t, "f64", ValueTypeName(ValueTypeF64))
	require.Equal(t, "funcref", ValueTypeName(ValueTypeFuncref))
	require.Equal(t, "externref", ValueTypeName(ValueTypeExternref))
	require.Equal(t, "unknown", ValueTypeName(0x00))
}

func TestExternTypeName(t *testing.T) {
	require.Equal(t, ExternTypeFuncName, ExternTypeName(ExternTypeFunc))
	require.Equal(t, ExternTypeTableName, ExternTypeName(ExternTypeTable))
	require.Equal(t, ExternTypeMemoryName, ExternTypeName(ExternTypeMemory))
	require.Equal(t, ExternTypeGlobalName, ExternTypeName(ExternTypeGlobal))
	require.Equal(t, "unknown", ExternTypeName(0xFF))
}
