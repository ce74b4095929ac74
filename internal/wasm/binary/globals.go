package binary

import "github.com/wasmkit/wasmcore/internal/wasm"

func (d *decoder) decodeGlobalSection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("global section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "global section entries", r.Position()); err != nil {
		return err
	}
	d.m.GlobalSection = make([]*wasm.Global, count)
	for i := range d.m.GlobalSection {
		gt, err := decodeGlobalType(r)
		if err != nil {
			return err
		}
		init, err := wasm.DecodeExpression(r, d.cfg)
		if err != nil {
			return err
		}
		d.m.GlobalSection[i] = &wasm.Global{Type: gt, Init: init}
	}
	return nil
}
