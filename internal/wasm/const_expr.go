package wasm

// validateConstantExpression checks that expr is one of the instruction
// forms the specification permits in a constant expression — a single
// i32.const/i64.const/f32.const/f64.const/global.get of an imported,
// immutable global, followed immediately by end — and that its produced
// type matches want.
func validateConstantExpression(expr Expression, want ValueType, m *Module, cfg *Config) *Error {
	r := NewReader(expr)
	in, err := decodeInstruction(r, cfg)
	if err != nil {
		return err
	}

	var got ValueType
	switch in.Opcode {
	case OpcodeI32Const:
		got = ValueTypeI32
	case OpcodeI64Const:
		got = ValueTypeI64
	case OpcodeF32Const:
		got = ValueTypeF32
	case OpcodeF64Const:
		got = ValueTypeF64
	case OpcodeGlobalGet:
		if in.Index >= m.ImportedGlobalCount() {
			return NewError(CategoryValidation, KindConstExprViolation, r.Position(),
				"global.get in a constant expression must reference an imported global")
		}
		gt := m.GlobalTypeOf(in.Index)
		if gt == nil {
			return NewError(CategoryValidation, KindInvalidGlobalIndex, r.Position(), "constant expression references an undefined global")
		}
		if gt.Mutable {
			return NewError(CategoryValidation, KindConstExprViolation, r.Position(),
				"global.get in a constant expression must reference an immutable global")
		}
		got = gt.ValType
	default:
		return NewError(CategoryValidation, KindConstExprViolation, r.Position(),
			"constant expression may only be a const, global.get, or end")
	}

	end, err := decodeInstruction(r, cfg)
	if err != nil {
		return err
	}
	if end.Opcode != OpcodeEnd {
		return NewError(CategoryValidation, KindConstExprViolation, r.Position(),
			"constant expression must contain exactly one instruction before end")
	}
	if !r.AtEnd() {
		return NewError(CategoryValidation, KindConstExprViolation, r.Position(), "trailing bytes after constant expression's end")
	}
	if got != want {
		return NewError(CategoryValidation, KindTypeMismatch, r.Position(),
			"constant expression produces "+ValueTypeName(got)+", want "+ValueTypeName(want))
	}
	return nil
}
