// Package binary implements the WebAssembly 1.0 binary encoding: decoding
// raw bytes into *wasm.Module and re-encoding a *wasm.Module back into
// bytes. It depends only on internal/wasm for the in-memory model and byte
// reader; it owns no model state of its own.
package binary

import (
	"github.com/wasmkit/wasmcore/internal/wasm"
)

var magic = [4]byte{0x00, 0x61, 0x73, 0x6d} // "\0asm"

const version1 = 0x00000001

// DecodeModule parses data as a complete WebAssembly binary module. It
// performs no semantic validation beyond what is required to produce a
// well-formed Module (framing, ordering, duplicate sections and export
// names); index bounds are not checked here. Call wasm.ValidateModule
// separately to check the result against the full static validation rules.
func DecodeModule(data []byte, cfg *wasm.Config) (*wasm.Module, *wasm.Error) {
	if cfg == nil {
		cfg = wasm.DefaultConfig()
	}
	if uint64(len(data)) > cfg.MaxModuleBytes {
		return nil, wasm.NewError(wasm.CategoryModule, wasm.KindResourceLimit, 0, "module exceeds the configured size limit")
	}

	r := wasm.NewReader(data)
	if err := checkHeader(r); err != nil {
		return nil, err
	}

	m := &wasm.Module{ExportSection: map[string]*wasm.Export{}}
	d := &decoder{m: m, cfg: cfg}

	var lastNonCustomID wasm.SectionID
	var seen [12]bool

	for !r.AtEnd() {
		if err := cfg.CheckDeadline(); err != nil {
			return nil, err
		}

		id, err := r.MustReadByte("section id")
		if err != nil {
			return nil, err
		}
		if id > wasm.SectionIDData {
			return nil, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidSectionId, r.Position()-1, "unknown section id")
		}

		size, err := r.ReadVarUint32("section size")
		if err != nil {
			return nil, err
		}
		if uint64(size) > cfg.MaxSectionBytes {
			return nil, wasm.NewError(wasm.CategoryModule, wasm.KindResourceLimit, r.Position(), "section exceeds the configured size limit")
		}

		sr, err := r.Frame(size)
		if err != nil {
			return nil, err
		}

		if id == wasm.SectionIDCustom {
			if err := d.decodeCustomSection(sr, size, lastNonCustomID); err != nil {
				return nil, err
			}
			continue
		}

		if cfg.StrictSectionOrder && id <= lastNonCustomID {
			return nil, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindSectionOrder, r.Position(), "sections must appear in ascending id order")
		}
		if seen[id] {
			return nil, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindDuplicateSection, r.Position(), "duplicate section id")
		}
		seen[id] = true
		lastNonCustomID = id

		if err := d.decodeKnownSection(id, sr); err != nil {
			return nil, err
		}
		if !sr.AtEnd() {
			return nil, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindSectionSizeMismatch, sr.Position(), "section body shorter than its declared size")
		}
	}

	return m, nil
}

func checkHeader(r *wasm.Reader) *wasm.Error {
	b, err := r.ReadExact(4)
	if err != nil {
		return err
	}
	for i, want := range magic {
		if b[i] != want {
			return wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidMagic, 0, "missing \\0asm magic")
		}
	}
	v, err := r.ReadU32LE()
	if err != nil {
		return err
	}
	if v != version1 {
		return wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidVersion, 4, "only binary format version 1 is supported")
	}
	return nil
}

// decoder carries the in-progress Module and shared config across the
// per-section parse functions in this package.
type decoder struct {
	m   *wasm.Module
	cfg *wasm.Config
}

func (d *decoder) decodeKnownSection(id wasm.SectionID, r *wasm.Reader) *wasm.Error {
	switch id {
	case wasm.SectionIDType:
		return d.decodeTypeSection(r)
	case wasm.SectionIDImport:
		return d.decodeImportSection(r)
	case wasm.SectionIDFunction:
		return d.decodeFunctionSection(r)
	case wasm.SectionIDTable:
		return d.decodeTableSection(r)
	case wasm.SectionIDMemory:
		return d.decodeMemorySection(r)
	case wasm.SectionIDGlobal:
		return d.decodeGlobalSection(r)
	case wasm.SectionIDExport:
		return d.decodeExportSection(r)
	case wasm.SectionIDStart:
		return d.decodeStartSection(r)
	case wasm.SectionIDElement:
		return d.decodeElementSection(r)
	case wasm.SectionIDCode:
		return d.decodeCodeSection(r)
	case wasm.SectionIDData:
		return d.decodeDataSection(r)
	}
	return wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidSectionId, r.Position(), "unhandled section id")
}

func (d *decoder) decodeCustomSection(r *wasm.Reader, size uint32, afterID wasm.SectionID) *wasm.Error {
	name, err := r.ReadName("custom section name", d.cfg.ValidateUTF8)
	if err != nil {
		return err
	}
	data, err := r.ReadExact(r.Remaining())
	if err != nil {
		return err
	}
	if name == "name" {
		ns, err := decodeNameSection(data, d.cfg)
		if err == nil {
			d.m.NameSection = ns
		} else if !d.cfg.AllowUnknownCustomNames {
			return err
		}
		// the raw bytes are kept either way so EncodeModule re-emits them
	}
	d.m.CustomSections = append(d.m.CustomSections, wasm.CustomSection{Name: name, Data: data, AfterSectionID: afterID})
	return nil
}
