package binary

import "github.com/wasmkit/wasmcore/internal/wasm"

func (d *decoder) decodeTypeSection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("type section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "type section entries", r.Position()); err != nil {
		return err
	}
	d.m.TypeSection = make([]*wasm.FunctionType, count)
	for i := range d.m.TypeSection {
		ft, err := decodeFunctionType(r, d.cfg)
		if err != nil {
			return err
		}
		d.m.TypeSection[i] = ft
	}
	return nil
}

func decodeFunctionType(r *wasm.Reader, cfg *wasm.Config) (*wasm.FunctionType, *wasm.Error) {
	form, err := r.MustReadByte("function type form")
	if err != nil {
		return nil, err
	}
	const funcForm = 0x60
	if form != funcForm {
		return nil, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidBlockType, r.Position()-1, "function type must begin with 0x60")
	}
	params, err := decodeValueTypeVec(r, cfg, "function type params")
	if err != nil {
		return nil, err
	}
	results, err := decodeValueTypeVec(r, cfg, "function type results")
	if err != nil {
		return nil, err
	}
	return &wasm.FunctionType{Params: params, Results: results}, nil
}

func decodeValueTypeVec(r *wasm.Reader, cfg *wasm.Config, context string) ([]wasm.ValueType, *wasm.Error) {
	count, err := r.ReadVarUint32(context + " count")
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckVectorCount(count, context, r.Position()); err != nil {
		return nil, err
	}
	out := make([]wasm.ValueType, count)
	for i := range out {
		out[i], err = decodeValueType(r, context)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeValueType(r *wasm.Reader, context string) (wasm.ValueType, *wasm.Error) {
	b, err := r.MustReadByte(context)
	if err != nil {
		return 0, err
	}
	switch b {
	case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64,
		wasm.ValueTypeV128, wasm.ValueTypeFuncref, wasm.ValueTypeExternref:
		return b, nil
	}
	return 0, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidBlockType, r.Position()-1, context+": unrecognized value type")
}

func decodeLimits(r *wasm.Reader, context string) (wasm.Limits, *wasm.Error) {
	flag, err := r.MustReadByte(context + " flag")
	if err != nil {
		return wasm.Limits{}, err
	}
	if flag > 1 {
		return wasm.Limits{}, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidBlockType, r.Position()-1, context+": unrecognized limits flag")
	}
	min, err := r.ReadVarUint32(context + " min")
	if err != nil {
		return wasm.Limits{}, err
	}
	l := wasm.Limits{Min: min}
	if flag == 1 {
		max, err := r.ReadVarUint32(context + " max")
		if err != nil {
			return wasm.Limits{}, err
		}
		l.Max = &max
	}
	return l, nil
}

func decodeTableType(r *wasm.Reader) (wasm.TableType, *wasm.Error) {
	elemType, err := decodeValueType(r, "table element type")
	if err != nil {
		return wasm.TableType{}, err
	}
	if !wasm.IsReferenceType(elemType) {
		return wasm.TableType{}, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidBlockType, r.Position(), "table element type must be a reference type")
	}
	limits, err := decodeLimits(r, "table limits")
	if err != nil {
		return wasm.TableType{}, err
	}
	return wasm.TableType{ElemType: elemType, Limits: limits}, nil
}

func decodeMemoryType(r *wasm.Reader) (wasm.MemoryType, *wasm.Error) {
	limits, err := decodeLimits(r, "memory limits")
	if err != nil {
		return wasm.MemoryType{}, err
	}
	return wasm.MemoryType{Limits: limits}, nil
}

func decodeGlobalType(r *wasm.Reader) (wasm.GlobalType, *wasm.Error) {
	vt, err := decodeValueType(r, "global value type")
	if err != nil {
		return wasm.GlobalType{}, err
	}
	mut, err := r.MustReadByte("global mutability")
	if err != nil {
		return wasm.GlobalType{}, err
	}
	if mut > 1 {
		return wasm.GlobalType{}, wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidBlockType, r.Position()-1, "unrecognized global mutability flag")
	}
	return wasm.GlobalType{ValType: vt, Mutable: mut == 1}, nil
}
