package binary

import "github.com/wasmkit/wasmcore/internal/wasm"

func (d *decoder) decodeDataSection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("data section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "data section entries", r.Position()); err != nil {
		return err
	}
	d.m.DataSection = make([]*wasm.DataSegment, count)
	for i := range d.m.DataSection {
		memIdx, err := r.ReadVarUint32("data segment memory index")
		if err != nil {
			return err
		}
		offset, err := wasm.DecodeExpression(r, d.cfg)
		if err != nil {
			return err
		}
		n, err := r.ReadVarUint32("data segment byte count")
		if err != nil {
			return err
		}
		if uint64(n) > d.cfg.MaxSectionBytes {
			return wasm.NewError(wasm.CategoryModule, wasm.KindResourceLimit, r.Position(), "data segment exceeds the configured size limit")
		}
		init, err := r.ReadExact(int(n))
		if err != nil {
			return err
		}
		d.m.DataSection[i] = &wasm.DataSegment{MemoryIndex: memIdx, OffsetExpr: offset, Init: append([]byte{}, init...)}
	}
	return nil
}
