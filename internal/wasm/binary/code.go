package binary

import "github.com/wasmkit/wasmcore/internal/wasm"

func (d *decoder) decodeCodeSection(r *wasm.Reader) *wasm.Error {
	count, err := r.ReadVarUint32("code section count")
	if err != nil {
		return err
	}
	if err := d.cfg.CheckVectorCount(count, "code section entries", r.Position()); err != nil {
		return err
	}
	d.m.CodeSection = make([]*wasm.Code, count)
	for i := range d.m.CodeSection {
		size, err := r.ReadVarUint32("function body size")
		if err != nil {
			return err
		}
		if uint64(size) > d.cfg.MaxFunctionBytes {
			return wasm.NewError(wasm.CategoryModule, wasm.KindResourceLimit, r.Position(), "function body exceeds the configured size limit")
		}
		fr, err := r.Frame(size)
		if err != nil {
			return err
		}
		code, err := decodeCode(fr, d.cfg)
		if err != nil {
			return err
		}
		if !fr.AtEnd() {
			return wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindSectionSizeMismatch, fr.Position(), "function body has trailing bytes after its closing end")
		}
		d.m.CodeSection[i] = code
	}
	return nil
}

func decodeCode(r *wasm.Reader, cfg *wasm.Config) (*wasm.Code, *wasm.Error) {
	groupCount, err := r.ReadVarUint32("local declaration count")
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckVectorCount(groupCount, "local declaration groups", r.Position()); err != nil {
		return nil, err
	}
	var locals []wasm.ValueType
	var total uint64
	for i := uint32(0); i < groupCount; i++ {
		n, err := r.ReadVarUint32("local group count")
		if err != nil {
			return nil, err
		}
		total += uint64(n)
		if total > uint64(cfg.MaxLocalsPerFunc) {
			return nil, wasm.NewError(wasm.CategoryValidation, wasm.KindResourceLimit, r.Position(), "function declares too many locals")
		}
		vt, err := decodeValueType(r, "local group value type")
		if err != nil {
			return nil, err
		}
		for j := uint32(0); j < n; j++ {
			locals = append(locals, vt)
		}
	}
	body, err := wasm.DecodeExpression(r, cfg)
	if err != nil {
		return nil, err
	}
	return &wasm.Code{LocalTypes: locals, Body: body}, nil
}
