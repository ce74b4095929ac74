package binary

import (
	"bytes"
	"sort"

	"github.com/wasmkit/wasmcore/internal/leb128"
	"github.com/wasmkit/wasmcore/internal/wasm"
)

// EncodeModule serializes m back into the WebAssembly 1.0 binary format.
// Every raw Expression (function bodies, global/element/data offsets) is
// emitted verbatim. Decode-then-Encode is not byte exact in these cases:
// Module.ExportSection is a map, so exports are re-emitted sorted by name
// rather than in their original wire order; locals are re-grouped into
// maximal runs (see writeLocalGroups); counts, sizes and indices are
// written in minimal LEB128 form; and empty non-custom sections are
// omitted. See DESIGN.md.
func EncodeModule(m *wasm.Module, cfg *wasm.Config) ([]byte, *wasm.Error) {
	if cfg == nil {
		cfg = wasm.DefaultConfig()
	}
	var out bytes.Buffer
	out.Write(magic[:])
	writeU32LE(&out, version1)

	custIdx := 0
	emitCustomsUpTo := func(id wasm.SectionID) {
		for custIdx < len(m.CustomSections) && m.CustomSections[custIdx].AfterSectionID <= id {
			writeCustomSection(&out, m.CustomSections[custIdx])
			custIdx++
		}
	}

	emitCustomsUpTo(wasm.SectionIDCustom)

	if len(m.TypeSection) > 0 {
		writeSection(&out, wasm.SectionIDType, encodeTypeSection(m))
	}
	emitCustomsUpTo(wasm.SectionIDType)

	if len(m.ImportSection) > 0 {
		body, err := encodeImportSection(m, cfg)
		if err != nil {
			return nil, err
		}
		writeSection(&out, wasm.SectionIDImport, body)
	}
	emitCustomsUpTo(wasm.SectionIDImport)

	if len(m.FunctionSection) > 0 {
		writeSection(&out, wasm.SectionIDFunction, encodeFunctionSection(m))
	}
	emitCustomsUpTo(wasm.SectionIDFunction)

	if len(m.TableSection) > 0 {
		writeSection(&out, wasm.SectionIDTable, encodeTableSection(m))
	}
	emitCustomsUpTo(wasm.SectionIDTable)

	if len(m.MemorySection) > 0 {
		writeSection(&out, wasm.SectionIDMemory, encodeMemorySection(m))
	}
	emitCustomsUpTo(wasm.SectionIDMemory)

	if len(m.GlobalSection) > 0 {
		writeSection(&out, wasm.SectionIDGlobal, encodeGlobalSection(m))
	}
	emitCustomsUpTo(wasm.SectionIDGlobal)

	if len(m.ExportSection) > 0 {
		body, err := encodeExportSection(m)
		if err != nil {
			return nil, err
		}
		writeSection(&out, wasm.SectionIDExport, body)
	}
	emitCustomsUpTo(wasm.SectionIDExport)

	if m.StartSection != nil {
		writeSection(&out, wasm.SectionIDStart, leb128.EncodeUint32(*m.StartSection))
	}
	emitCustomsUpTo(wasm.SectionIDStart)

	if len(m.ElementSection) > 0 {
		writeSection(&out, wasm.SectionIDElement, encodeElementSection(m))
	}
	emitCustomsUpTo(wasm.SectionIDElement)

	if len(m.CodeSection) > 0 {
		writeSection(&out, wasm.SectionIDCode, encodeCodeSection(m))
	}
	emitCustomsUpTo(wasm.SectionIDCode)

	if len(m.DataSection) > 0 {
		writeSection(&out, wasm.SectionIDData, encodeDataSection(m))
	}
	emitCustomsUpTo(wasm.SectionIDData)

	if uint64(out.Len()) > cfg.MaxModuleBytes {
		return nil, wasm.NewError(wasm.CategoryModule, wasm.KindResourceLimit, 0, "encoded module exceeds the configured size limit")
	}
	return out.Bytes(), nil
}

func writeU32LE(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 24))
}

func writeSection(buf *bytes.Buffer, id wasm.SectionID, body []byte) {
	buf.WriteByte(id)
	buf.Write(leb128.EncodeUint32(uint32(len(body))))
	buf.Write(body)
}

func writeCustomSection(buf *bytes.Buffer, c wasm.CustomSection) {
	var body bytes.Buffer
	writeName(&body, c.Name)
	body.Write(c.Data)
	writeSection(buf, wasm.SectionIDCustom, body.Bytes())
}

func writeName(buf *bytes.Buffer, s string) {
	buf.Write(leb128.EncodeUint32(uint32(len(s))))
	buf.WriteString(s)
}

func writeValueType(buf *bytes.Buffer, t wasm.ValueType) { buf.WriteByte(t) }

func writeLimits(buf *bytes.Buffer, l wasm.Limits) {
	if l.Max != nil {
		buf.WriteByte(1)
		buf.Write(leb128.EncodeUint32(l.Min))
		buf.Write(leb128.EncodeUint32(*l.Max))
		return
	}
	buf.WriteByte(0)
	buf.Write(leb128.EncodeUint32(l.Min))
}

func writeTableType(buf *bytes.Buffer, t wasm.TableType) {
	writeValueType(buf, t.ElemType)
	writeLimits(buf, t.Limits)
}

func writeMemoryType(buf *bytes.Buffer, t wasm.MemoryType) { writeLimits(buf, t.Limits) }

func writeGlobalType(buf *bytes.Buffer, t wasm.GlobalType) {
	writeValueType(buf, t.ValType)
	if t.Mutable {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func encodeTypeSection(m *wasm.Module) []byte {
	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(m.TypeSection))))
	for _, ft := range m.TypeSection {
		buf.WriteByte(0x60)
		buf.Write(leb128.EncodeUint32(uint32(len(ft.Params))))
		for _, t := range ft.Params {
			writeValueType(&buf, t)
		}
		buf.Write(leb128.EncodeUint32(uint32(len(ft.Results))))
		for _, t := range ft.Results {
			writeValueType(&buf, t)
		}
	}
	return buf.Bytes()
}

func encodeImportSection(m *wasm.Module, cfg *wasm.Config) ([]byte, *wasm.Error) {
	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(m.ImportSection))))
	for _, imp := range m.ImportSection {
		writeName(&buf, imp.Module)
		writeName(&buf, imp.Name)
		buf.WriteByte(imp.Kind)
		switch imp.Kind {
		case wasm.ExternKindFunc:
			buf.Write(leb128.EncodeUint32(imp.DescFunc))
		case wasm.ExternKindTable:
			writeTableType(&buf, imp.DescTable)
		case wasm.ExternKindMemory:
			writeMemoryType(&buf, imp.DescMemory)
		case wasm.ExternKindGlobal:
			writeGlobalType(&buf, imp.DescGlobal)
		default:
			return nil, wasm.NewError(wasm.CategoryModule, wasm.KindEncoderInvariant, 0, "import has an unrecognized kind")
		}
	}
	return buf.Bytes(), nil
}

func encodeFunctionSection(m *wasm.Module) []byte {
	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(m.FunctionSection))))
	for _, idx := range m.FunctionSection {
		buf.Write(leb128.EncodeUint32(idx))
	}
	return buf.Bytes()
}

func encodeTableSection(m *wasm.Module) []byte {
	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(m.TableSection))))
	for _, t := range m.TableSection {
		writeTableType(&buf, *t)
	}
	return buf.Bytes()
}

func encodeMemorySection(m *wasm.Module) []byte {
	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(m.MemorySection))))
	for _, t := range m.MemorySection {
		writeMemoryType(&buf, *t)
	}
	return buf.Bytes()
}

func encodeGlobalSection(m *wasm.Module) []byte {
	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(m.GlobalSection))))
	for _, g := range m.GlobalSection {
		writeGlobalType(&buf, g.Type)
		buf.Write(g.Init)
	}
	return buf.Bytes()
}

func encodeExportSection(m *wasm.Module) ([]byte, *wasm.Error) {
	names := make([]string, 0, len(m.ExportSection))
	for name := range m.ExportSection {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(names))))
	for _, name := range names {
		exp := m.ExportSection[name]
		writeName(&buf, exp.Name)
		buf.WriteByte(exp.Kind)
		buf.Write(leb128.EncodeUint32(exp.Index))
	}
	return buf.Bytes(), nil
}

func encodeElementSection(m *wasm.Module) []byte {
	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(m.ElementSection))))
	for _, el := range m.ElementSection {
		buf.Write(leb128.EncodeUint32(el.TableIndex))
		buf.Write(el.OffsetExpr)
		buf.Write(leb128.EncodeUint32(uint32(len(el.Init))))
		for _, idx := range el.Init {
			buf.Write(leb128.EncodeUint32(idx))
		}
	}
	return buf.Bytes()
}

func encodeDataSection(m *wasm.Module) []byte {
	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(m.DataSection))))
	for _, d := range m.DataSection {
		buf.Write(leb128.EncodeUint32(d.MemoryIndex))
		buf.Write(d.OffsetExpr)
		buf.Write(leb128.EncodeUint32(uint32(len(d.Init))))
		buf.Write(d.Init)
	}
	return buf.Bytes()
}

func encodeCodeSection(m *wasm.Module) []byte {
	var buf bytes.Buffer
	buf.Write(leb128.EncodeUint32(uint32(len(m.CodeSection))))
	for _, code := range m.CodeSection {
		var body bytes.Buffer
		writeLocalGroups(&body, code.LocalTypes)
		body.Write(code.Body)
		buf.Write(leb128.EncodeUint32(uint32(body.Len())))
		buf.Write(body.Bytes())
	}
	return buf.Bytes()
}

// writeLocalGroups re-encodes an expanded local type list as the compact
// run-length groups the wire format uses. It always emits maximal runs, so
// a module decoded then re-encoded never grows a run count it didn't have,
// though a module with an unusually fragmented original encoding (e.g.
// alternating i32/i32/i64/i64 split into four groups of one) will be
// re-grouped into fewer, larger groups. This is semantically equivalent
// but not byte-exact for that specific input shape.
func writeLocalGroups(buf *bytes.Buffer, locals []wasm.ValueType) {
	type group struct {
		t wasm.ValueType
		n uint32
	}
	var groups []group
	for _, t := range locals {
		if len(groups) > 0 && groups[len(groups)-1].t == t {
			groups[len(groups)-1].n++
			continue
		}
		groups = append(groups, group{t: t, n: 1})
	}
	buf.Write(leb128.EncodeUint32(uint32(len(groups))))
	for _, g := range groups {
		buf.Write(leb128.EncodeUint32(g.n))
		writeValueType(buf, g.t)
	}
}
