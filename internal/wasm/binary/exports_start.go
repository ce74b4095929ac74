package binary

import "github.com/wasmkit/wasmcore/internal/wasm"

func (d *decoder) decodeExportSection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("export section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "export section entries", r.Position()); err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		name, err := r.ReadName("export name", d.cfg.ValidateUTF8)
		if err != nil {
			return err
		}
		kind, err := r.MustReadByte("export kind")
		if err != nil {
			return err
		}
		idx, err := r.ReadVarUint32("export index")
		if err != nil {
			return err
		}
		if kind > wasm.ExternKindGlobal {
			return wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidOpcode, r.Position(), "unrecognized export kind")
		}
		if _, dup := d.m.ExportSection[name]; dup {
			return wasm.NewError(wasm.CategoryValidation, wasm.KindDuplicateExportName, r.Position(), "export section: "+name)
		}
		d.m.ExportSection[name] = &wasm.Export{Name: name, Kind: kind, Index: idx}
	}
	return nil
}

func (d *decoder) decodeStartSection(r *wasm.Reader) *wasm.Error {
	idx, err := r.ReadVarUint32("start section function index")
	if err != nil {
		return err
	}
	d.m.StartSection = &idx
	return nil
}
