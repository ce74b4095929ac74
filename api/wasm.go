// Package api holds the public, wire-shaped constants and types that
// describe a WebAssembly 1.0 module's surface: value types and extern
// kinds. Nothing in this package depends on internal/wasm's decoder,
// validator, or encoder, so callers can reason about module shapes without
// pulling in the implementation.
package api

// ValueType describes a numeric type usable as a function parameter,
// result, local, or global.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#binary-valtype
type ValueType = byte

const (
	ValueTypeI32       ValueType = 0x7f
	ValueTypeI64       ValueType = 0x7e
	ValueTypeF32       ValueType = 0x7d
	ValueTypeF64       ValueType = 0x7c
	ValueTypeFuncref   ValueType = 0x70
	ValueTypeExternref ValueType = 0x6f
)

// ValueTypeName returns the WebAssembly text format name of t, or
// "unknown" for an unrecognized byte.
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	case ValueTypeFuncref:
		return "funcref"
	case ValueTypeExternref:
		return "externref"
	default:
		return "unknown"
	}
}

// ExternType classifies an import or export.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#external-types%E2%91%A0
type ExternType = byte

const (
	ExternTypeFunc   ExternType = 0x00
	ExternTypeTable  ExternType = 0x01
	ExternTypeMemory ExternType = 0x02
	ExternTypeGlobal ExternType = 0x03
)

const (
	ExternTypeFuncName   = "func"
	ExternTypeTableName  = "table"
	ExternTypeMemoryName = "memory"
	ExternTypeGlobalName = "global"
)

// ExternTypeName returns the WebAssembly text format field name of et.
func ExternTypeName(et ExternType) string {
	switch et {
	case ExternTypeFunc:
		return ExternTypeFuncName
	case ExternTypeTable:
		return ExternTypeTableName
	case ExternTypeMemory:
		return ExternTypeMemoryName
	case ExternTypeGlobal:
		return ExternTypeGlobalName
	default:
		return "unknown"
	}
}

// FunctionType is a function signature: its parameter and result value
// types.
type FunctionType struct {
	Params  []ValueType
	Results []ValueType
}

// SectionInfo describes one top-level section of a binary module without
// requiring its body to be decoded, used by wasmcore.SectionInfo and by
// cmd/wasminspect's section browser.
type SectionInfo struct {
	ID     byte
	Offset uint64
	Size   uint64
	// Name is non-empty only for custom sections.
	Name string
}
