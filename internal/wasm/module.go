// Package wasm holds the in-memory model of a decoded WebAssembly 1.0
// module, the byte reader and LEB128 plumbing the decoder/encoder share,
// and the validator. It has no dependency on internal/wasm/binary so that
// the model can be constructed and inspected without ever touching the
// wire format (e.g. by a future text-format front end).
package wasm

// ValueType is a WebAssembly value type, encoded in the binary format as a
// single byte.
type ValueType = byte

const (
	ValueTypeI32       ValueType = 0x7f
	ValueTypeI64       ValueType = 0x7e
	ValueTypeF32       ValueType = 0x7d
	ValueTypeF64       ValueType = 0x7c
	ValueTypeV128      ValueType = 0x7b
	ValueTypeFuncref   ValueType = 0x70
	ValueTypeExternref ValueType = 0x6f
)

// ValueTypeName returns a human-readable name for a value type, falling
// back to "unknown" for anything unrecognized.
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
	case ValueTypeV128:
		return "v128"
	case ValueTypeFuncref:
		return "funcref"
	case ValueTypeExternref:
		return "externref"
	default:
		return "unknown"
	}
}

// IsReferenceType reports whether t is funcref or externref.
func IsReferenceType(t ValueType) bool {
	return t == ValueTypeFuncref || t == ValueTypeExternref
}

// ExternKind classifies an Import or Export descriptor.
type ExternKind = byte

const (
	ExternKindFunc   ExternKind = 0x00
	ExternKindTable  ExternKind = 0x01
	ExternKindMemory ExternKind = 0x02
	ExternKindGlobal ExternKind = 0x03
)

// SectionID identifies a top-level section.
type SectionID = byte

const (
	SectionIDCustom   SectionID = 0
	SectionIDType     SectionID = 1
	SectionIDImport   SectionID = 2
	SectionIDFunction SectionID = 3
	SectionIDTable    SectionID = 4
	SectionIDMemory   SectionID = 5
	SectionIDGlobal   SectionID = 6
	SectionIDExport   SectionID = 7
	SectionIDStart    SectionID = 8
	SectionIDElement  SectionID = 9
	SectionIDCode     SectionID = 10
	SectionIDData     SectionID = 11
)

// FunctionType is a pair of parameter and result value type lists,
// identified elsewhere in the module by position in the type section.
type FunctionType struct {
	Params  []ValueType
	Results []ValueType
}

// Equals reports structural equality of the parameter and result lists;
// two nil types are equal, a nil and a non-nil type are not.
func (t *FunctionType) Equals(o *FunctionType) bool {
	if t == nil || o == nil {
		return t == o
	}
	return equalValueTypes(t.Params, o.Params) && equalValueTypes(t.Results, o.Results)
}

func equalValueTypes(a, b []ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Limits is the (min, max) pair shared by table and memory types.
type Limits struct {
	Min uint32
	Max *uint32
}

// MemoryPageSize is the fixed size, in bytes, of one unit of linear memory
// sizing.
const MemoryPageSize = 65536

// MaxMemoryPages is the WebAssembly 1.0 ceiling on a memory's page count.
const MaxMemoryPages = 65536

// TableType describes a table's element type and size limits.
type TableType struct {
	ElemType ValueType // always ValueTypeFuncref in the MVP, but recorded as decoded.
	Limits   Limits
}

// MemoryType is a memory's size limits, expressed in pages.
type MemoryType struct {
	Limits
}

// GlobalType describes a global's value type and mutability.
type GlobalType struct {
	ValType ValueType
	Mutable bool
}

// Import is a single entry of the import section.
type Import struct {
	Module string
	Name   string
	Kind   ExternKind

	DescFunc   uint32 // type index, when Kind == ExternKindFunc
	DescTable  TableType
	DescMemory MemoryType
	DescGlobal GlobalType
}

// Export is a single entry of the export section.
type Export struct {
	Name  string
	Kind  ExternKind
	Index uint32
}

// Global is a module-defined global: its type, and a raw constant
// expression (opcode stream ending in 0x0B) that initializes it.
type Global struct {
	Type GlobalType
	Init Expression
}

// Expression is a raw, undecoded instruction sequence terminated by a
// single outermost 0x0B (end) opcode, kept verbatim for byte-exact
// round-trip and decoded lazily by the validator and by any future
// execution engine. It never includes bytes beyond its own terminal end.
type Expression []byte

// ElementSegment is one entry of the element section. The MVP only ever
// populates table index 0, but the field is retained for forward
// compatibility with inputs produced by more permissive encoders.
type ElementSegment struct {
	TableIndex uint32
	OffsetExpr Expression
	Init       []uint32 // function indices
}

// Code is the decoded body of one function: its locals (already expanded
// from the compact run-length form) and the raw expression bytes of its
// body, terminated by a single outermost end.
type Code struct {
	LocalTypes []ValueType
	Body       Expression
}

// DataSegment is one entry of the data section.
type DataSegment struct {
	MemoryIndex uint32
	OffsetExpr  Expression
	Init        []byte
}

// CustomSection is an opaque, name-tagged blob preserved verbatim. Module
// preserves the ordinal position of each custom section relative to the
// non-custom sections so re-encoding is byte exact; AfterSectionID records
// the id of the last non-custom section the decoder had seen when this
// custom section was encountered (SectionIDCustom itself, i.e. 0, if none).
type CustomSection struct {
	Name           string
	Data           []byte
	AfterSectionID SectionID
}

// NameSection is the decoded form of the well-known "name" custom section
// (MVP subsections only: module, function and local names). The raw bytes
// of that section are also kept in Module.CustomSections, so NameSection is
// a read-only view and EncodeModule re-emits the original bytes.
type NameSection struct {
	ModuleName    string
	FunctionNames map[uint32]string
	LocalNames    map[uint32]map[uint32]string
}

// Module is the fully decoded, owned in-memory representation of a
// WebAssembly binary. Every cross-reference is a dense uint32 index into
// one of the namespaces described in the package doc; there are no
// pointers between sibling entities, so the tree has no cycles.
type Module struct {
	TypeSection     []*FunctionType
	ImportSection   []*Import
	FunctionSection []uint32 // type indices, one per locally defined function
	TableSection    []*TableType
	MemorySection   []*MemoryType
	GlobalSection   []*Global
	ExportSection   map[string]*Export
	StartSection    *uint32
	ElementSection  []*ElementSegment
	CodeSection     []*Code
	DataSection     []*DataSegment

	CustomSections []CustomSection
	NameSection    *NameSection
}

// ImportedFunctionCount returns the number of function imports, i.e. the
// number of low indices in the function namespace occupied by imports
// before locally defined functions begin.
func (m *Module) ImportedFunctionCount() uint32 {
	var n uint32
	for _, i := range m.ImportSection {
		if i.Kind == ExternKindFunc {
			n++
		}
	}
	return n
}

// ImportedTableCount returns the number of table imports.
func (m *Module) ImportedTableCount() uint32 {
	var n uint32
	for _, i := range m.ImportSection {
		if i.Kind == ExternKindTable {
			n++
		}
	}
	return n
}

// ImportedMemoryCount returns the number of memory imports.
func (m *Module) ImportedMemoryCount() uint32 {
	var n uint32
	for _, i := range m.ImportSection {
		if i.Kind == ExternKindMemory {
			n++
		}
	}
	return n
}

// ImportedGlobalCount returns the number of global imports.
func (m *Module) ImportedGlobalCount() uint32 {
	var n uint32
	for _, i := range m.ImportSection {
		if i.Kind == ExternKindGlobal {
			n++
		}
	}
	return n
}

// FunctionCount returns the total number of functions in the function
// namespace: imports followed by locally defined functions.
func (m *Module) FunctionCount() uint32 {
	return m.ImportedFunctionCount() + uint32(len(m.FunctionSection))
}

// TableCount returns the total number of tables: imports followed by
// locally defined tables.
func (m *Module) TableCount() uint32 {
	return m.ImportedTableCount() + uint32(len(m.TableSection))
}

// MemoryCount returns the total number of memories: imports followed by
// locally defined memories.
func (m *Module) MemoryCount() uint32 {
	return m.ImportedMemoryCount() + uint32(len(m.MemorySection))
}

// GlobalCount returns the total number of globals: imports followed by
// locally defined globals.
func (m *Module) GlobalCount() uint32 {
	return m.ImportedGlobalCount() + uint32(len(m.GlobalSection))
}

// TypeOfFunction resolves the FunctionType of the function at the given
// index in the combined (imports then locals) function namespace, or nil
// if idx is out of range.
func (m *Module) TypeOfFunction(idx uint32) *FunctionType {
	importedCount := m.ImportedFunctionCount()
	if idx < importedCount {
		var seen uint32
		for _, imp := range m.ImportSection {
			if imp.Kind != ExternKindFunc {
				continue
			}
			if seen == idx {
				if int(imp.DescFunc) >= len(m.TypeSection) {
					return nil
				}
				return m.TypeSection[imp.DescFunc]
			}
			seen++
		}
		return nil
	}
	localIdx := idx - importedCount
	if int(localIdx) >= len(m.FunctionSection) {
		return nil
	}
	typeIdx := m.FunctionSection[localIdx]
	if int(typeIdx) >= len(m.TypeSection) {
		return nil
	}
	return m.TypeSection[typeIdx]
}

// GlobalTypeOf resolves the GlobalType of the global at the given index in
// the combined namespace, or nil if idx is out of range.
func (m *Module) GlobalTypeOf(idx uint32) *GlobalType {
	importedCount := m.ImportedGlobalCount()
	if idx < importedCount {
		var seen uint32
		for _, imp := range m.ImportSection {
			if imp.Kind != ExternKindGlobal {
				continue
			}
			if seen == idx {
				gt := imp.DescGlobal
				return &gt
			}
			seen++
		}
		return nil
	}
	localIdx := idx - importedCount
	if int(localIdx) >= len(m.GlobalSection) {
		return nil
	}
	return &m.GlobalSection[localIdx].Type
}
