package binary

import "github.com/wasmkit/wasmcore/internal/wasm"

func (d *decoder) decodeImportSection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("import section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "import section entries", r.Position()); err != nil {
		return err
	}
	d.m.ImportSection = make([]*wasm.Import, count)
	for i := range d.m.ImportSection {
		imp, err := decodeImport(r, d.cfg)
		if err != nil {
			return err
		}
		d.m.ImportSection[i] = imp
	}
	return nil
}

func decodeImport(r *wasm.Reader, cfg *wasm.Config) (*wasm.Import, *wasm.Error) {
	module, err := r.ReadName("import module name", cfg.ValidateUTF8)
	if err != nil {
		return nil, err
	}
	name, err := r.ReadName("import field name", cfg.ValidateUTF8)
	if err != nil {
		return nil, err
	}
	kind, err := r.MustReadByte("import kind")
	if err != nil {
		return nil, err
	}
	imp := &wasm.Import{Module: module, Name: name, Kind: kind}
	switch kind {
	case wasm.ExternKindFunc:
		idx, err := r.ReadVarUint32("import function type index")
		if err != nil {
			return nil, err
		}
		imp.DescFunc = idx
	case wasm.ExternKindTable:
		tt, err := decodeTableType(r)
		if err != nil {
			return nil, err
		}
		imp.DescTable = tt
	case wasm.ExternKindMemory:
		mt, err := decodeMemoryType(r)
		if err != nil {
			return nil, err
		}
		imp.DescMemory = mt
	case wasm.ExternKindGlobal:
		gt, err := decodeGlobalType(r)
		if err != nil {
			return nil, err
		}
		imp.DescGlobal = gt
	default:
		return nil, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidOpcode, r.Position()-1, "unrecognized import kind")
	}
	return imp, nil
}
