package wasm

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestValidateModuleEmptyIsValid(t *testing.T) {
	require.Nil(t, ValidateModule(&Module{}, nil))
}

func TestValidateModuleUndefinedFunctionTypeIndex(t *testing.T) {
	m := &Module{FunctionSection: []uint32{0}}
	err := ValidateModule(m, nil)
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	// The function section declares one entry and the code section none, so
	// the count mismatch is reported after the undefined type index.
	require.Len(t, merr.Errors, 2)
	require.Equal(t, KindInvalidTypeIndex, merr.Errors[0].(*Error).Kind)
}

func TestValidateModuleSecondTableRejected(t *testing.T) {
	m := &Module{TableSection: []*TableType{
		{ElemType: ValueTypeFuncref, Limits: Limits{Min: 0}},
		{ElemType: ValueTypeFuncref, Limits: Limits{Min: 0}},
	}}
	err := ValidateModule(m, nil)
	require.NotNil(t, err)
	merr := err.(*multierror.Error)
	found := false
	for _, e := range merr.Errors {
		if e.(*Error).Kind == KindResourceLimit {
			found = true
		}
	}
	require.True(t, found)
}

func TestValidateModuleStartFunctionMustBeNiladic(t *testing.T) {
	startIdx := uint32(0)
	m := &Module{
		TypeSection:     []*FunctionType{{Params: []ValueType{ValueTypeI32}}},
		FunctionSection: []uint32{0},
		CodeSection:     []*Code{{Body: Expression([]byte{OpcodeEnd})}},
		StartSection:    &startIdx,
	}
	err := ValidateModule(m, nil)
	require.NotNil(t, err)
	merr := err.(*multierror.Error)
	found := false
	for _, e := range merr.Errors {
		if e.(*Error).Kind == KindInvalidStart {
			found = true
		}
	}
	require.True(t, found)
}

func TestValidateModuleExportIndexOutOfRange(t *testing.T) {
	m := &Module{
		ExportSection: map[string]*Export{"main": {Name: "main", Kind: ExternKindFunc, Index: 0}},
	}
	err := ValidateModule(m, nil)
	require.NotNil(t, err)
	merr := err.(*multierror.Error)
	require.Equal(t, KindInvalidFunctionIndex, merr.Errors[0].(*Error).Kind)
}

func TestValidateModuleFunctionCodeCountMismatch(t *testing.T) {
	m := &Module{
		TypeSection:     []*FunctionType{{}},
		FunctionSection: []uint32{0, 0},
		CodeSection:     []*Code{{Body: Expression([]byte{OpcodeEnd})}},
	}
	err := ValidateModule(m, nil)
	require.NotNil(t, err)
	merr := err.(*multierror.Error)
	require.Equal(t, KindSectionSizeMismatch, merr.Errors[0].(*Error).Kind)
}

func TestValidateModuleWellFormedFunction(t *testing.T) {
	m := &Module{
		TypeSection:     []*FunctionType{{Params: []ValueType{ValueTypeI32, ValueTypeI32}, Results: []ValueType{ValueTypeI32}}},
		FunctionSection: []uint32{0},
		CodeSection: []*Code{{
			Body: Expression([]byte{OpcodeLocalGet, 0, OpcodeLocalGet, 1, OpcodeI32Add, OpcodeEnd}),
		}},
	}
	require.Nil(t, ValidateModule(m, nil))
}

func TestValidateModuleAggregatesMultipleViolations(t *testing.T) {
	m := &Module{
		FunctionSection: []uint32{0},
		TableSection: []*TableType{
			{Limits: Limits{Min: 0}},
			{Limits: Limits{Min: 0}},
		},
	}
	err := ValidateModule(m, nil)
	require.NotNil(t, err)
	merr := err.(*multierror.Error)
	require.GreaterOrEqual(t, len(merr.Errors), 2)
}

func TestValidateModuleGlobalInitializerTypeMismatch(t *testing.T) {
	m := &Module{
		GlobalSection: []*Global{
			{Type: GlobalType{ValType: ValueTypeI64}, Init: Expression([]byte{OpcodeI32Const, 1, OpcodeEnd})},
		},
	}
	err := ValidateModule(m, nil)
	require.NotNil(t, err)
	merr := err.(*multierror.Error)
	require.Equal(t, KindConstExprViolation, merr.Errors[0].(*Error).Kind)
}
