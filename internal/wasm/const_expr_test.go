package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateConstantExpressionI32Const(t *testing.T) {
	expr := Expression([]byte{OpcodeI32Const, 42, OpcodeEnd})
	err := validateConstantExpression(expr, ValueTypeI32, &Module{}, DefaultConfig())
	require.Nil(t, err)
}

func TestValidateConstantExpressionTypeMismatch(t *testing.T) {
	expr := Expression([]byte{OpcodeI32Const, 42, OpcodeEnd})
	err := validateConstantExpression(expr, ValueTypeI64, &Module{}, DefaultConfig())
	require.NotNil(t, err)
	require.Equal(t, KindTypeMismatch, err.Kind)
}

func TestValidateConstantExpressionGlobalGetImportedImmutable(t *testing.T) {
	m := &Module{
		ImportSection: []*Import{
			{Kind: ExternKindGlobal, DescGlobal: GlobalType{ValType: ValueTypeI32, Mutable: false}},
		},
	}
	expr := Expression([]byte{OpcodeGlobalGet, 0, OpcodeEnd})
	err := validateConstantExpression(expr, ValueTypeI32, m, DefaultConfig())
	require.Nil(t, err)
}

func TestValidateConstantExpressionGlobalGetMutableRejected(t *testing.T) {
	m := &Module{
		ImportSection: []*Import{
			{Kind: ExternKindGlobal, DescGlobal: GlobalType{ValType: ValueTypeI32, Mutable: true}},
		},
	}
	expr := Expression([]byte{OpcodeGlobalGet, 0, OpcodeEnd})
	err := validateConstantExpression(expr, ValueTypeI32, m, DefaultConfig())
	require.NotNil(t, err)
	require.Equal(t, KindConstExprViolation, err.Kind)
}

func TestValidateConstantExpressionGlobalGetLocalRejected(t *testing.T) {
	m := &Module{
		ImportSection: []*Import{
			{Kind: ExternKindGlobal, DescGlobal: GlobalType{ValType: ValueTypeI32, Mutable: false}},
		},
		GlobalSection: []*Global{
			{Type: GlobalType{ValType: ValueTypeI32, Mutable: false}, Init: Expression([]byte{OpcodeI32Const, 1, OpcodeEnd})},
		},
	}
	// index 1 is the locally defined global, not an import.
	expr := Expression([]byte{OpcodeGlobalGet, 1, OpcodeEnd})
	err := validateConstantExpression(expr, ValueTypeI32, m, DefaultConfig())
	require.NotNil(t, err)
	require.Equal(t, KindConstExprViolation, err.Kind)
}

func TestValidateConstantExpressionDisallowedOpcode(t *testing.T) {
	expr := Expression([]byte{OpcodeNop, OpcodeEnd})
	err := validateConstantExpression(expr, ValueTypeI32, &Module{}, DefaultConfig())
	require.NotNil(t, err)
	require.Equal(t, KindConstExprViolation, err.Kind)
}

func TestValidateConstantExpressionMultipleInstructionsRejected(t *testing.T) {
	expr := Expression([]byte{OpcodeI32Const, 1, OpcodeI32Const, 2, OpcodeEnd})
	err := validateConstantExpression(expr, ValueTypeI32, &Module{}, DefaultConfig())
	require.NotNil(t, err)
	require.Equal(t, KindConstExprViolation, err.Kind)
}

func TestValidateConstantExpressionTrailingBytesRejected(t *testing.T) {
	expr := Expression([]byte{OpcodeI32Const, 1, OpcodeEnd, 0xFF})
	err := validateConstantExpression(expr, ValueTypeI32, &Module{}, DefaultConfig())
	require.NotNil(t, err)
	require.Equal(t, KindConstExprViolation, err.Kind)
}
