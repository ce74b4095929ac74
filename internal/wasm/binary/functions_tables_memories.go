package binary

import "github.com/wasmkit/wasmcore/internal/wasm"

func (d *decoder) decodeFunctionSection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("function section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "function section entries", r.Position()); err != nil {
		return err
	}
	d.m.FunctionSection = make([]uint32, count)
	for i := range d.m.FunctionSection {
		idx, err := r.ReadVarUint32("function section type index")
		if err != nil {
			return err
		}
		d.m.FunctionSection[i] = idx
	}
	return nil
}

func (d *decoder) decodeTableSection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("table section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "table section entries", r.Position()); err != nil {
		return err
	}
	d.m.TableSection = make([]*wasm.TableType, count)
	for i := range d.m.TableSection {
		tt, err := decodeTableType(r)
		if err != nil {
			return err
		}
		d.m.TableSection[i] = &tt
	}
	return nil
}

func (d *decoder) decodeMemorySection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("memory section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "memory section entries", r.Position()); err != nil {
		return err
	}
	d.m.MemorySection = make([]*wasm.MemoryType, count)
	for i := range d.m.MemorySection {
		mt, err := decodeMemoryType(r)
		if err != nil {
			return err
		}
		d.m.MemorySection[i] = &mt
	}
	return nil
}
