package binary

import "github.com/wasmkit/wasmcore/internal/wasm"

func (d *decoder) decodeElementSection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("element section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "element section entries", r.Position()); err != nil {
		return err
	}
	d.m.ElementSection = make([]*wasm.ElementSegment, count)
	for i := range d.m.ElementSection {
		tableIdx, err := r.ReadVarUint32("element segment table index")
		if err != nil {
			return err
		}
		offset, err := wasm.DecodeExpression(r, d.cfg)
		if err != nil {
			return err
		}
		n, err := r.ReadVarUint32("element segment function count")
		if err != nil {
			return err
		}
		if err := d.cfg.CheckVectorCount(n, "element segment functions", r.Position()); err != nil {
			return err
		}
		init := make([]uint32, n)
		for j := range init {
			init[j], err = r.ReadVarUint32("element segment function index")
			if err != nil {
				return err
			}
		}
		d.m.ElementSection[i] = &wasm.ElementSegment{TableIndex: tableIdx, OffsetExpr: offset, Init: init}
	}
	return nil
}
