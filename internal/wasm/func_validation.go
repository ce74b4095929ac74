package wasm

// valueTypeUnknown is the stack-polymorphism sentinel ("⊥" in the
// specification): it appears only above an unreachable control frame and
// unifies with any concrete value type.
const valueTypeUnknown ValueType = 0xFF

type ctrlFrame struct {
	opcode      Opcode // OpcodeBlock, OpcodeLoop, or OpcodeIf
	startTypes  []ValueType
	endTypes    []ValueType
	height      int
	unreachable bool
	sawElse     bool
}

// funcValidator carries the mutable state of the type-stack algorithm for
// a single function body.
type funcValidator struct {
	m          *Module
	cfg        *Config
	localTypes []ValueType // params followed by declared locals
	results    []ValueType

	vStack []ValueType
	cStack []ctrlFrame

	instrSinceDeadlineCheck uint32
}

func (v *funcValidator) push(t ValueType) { v.vStack = append(v.vStack, t) }

func (v *funcValidator) pop(offset uint64) (ValueType, *Error) {
	frame := &v.cStack[len(v.cStack)-1]
	if len(v.vStack) == frame.height {
		if frame.unreachable {
			return valueTypeUnknown, nil
		}
		return 0, NewError(CategoryValidation, KindStackUnderflow, offset, "value stack exhausted at current frame")
	}
	if uint32(len(v.vStack)) > v.cfg.MaxOperandStack {
		return 0, NewError(CategoryValidation, KindStackOverflow, offset, "operand stack depth exceeds configured limit")
	}
	t := v.vStack[len(v.vStack)-1]
	v.vStack = v.vStack[:len(v.vStack)-1]
	return t, nil
}

func (v *funcValidator) popExpect(t ValueType, offset uint64) *Error {
	got, err := v.pop(offset)
	if err != nil {
		return err
	}
	if got == valueTypeUnknown || t == valueTypeUnknown {
		return nil
	}
	if got != t {
		return NewError(CategoryValidation, KindTypeMismatch, offset,
			"expected "+ValueTypeName(t)+", got "+ValueTypeName(got))
	}
	return nil
}

func (v *funcValidator) popExpectSeq(ts []ValueType, offset uint64) *Error {
	for i := len(ts) - 1; i >= 0; i-- {
		if err := v.popExpect(ts[i], offset); err != nil {
			return err
		}
	}
	return nil
}

func (v *funcValidator) pushSeq(ts []ValueType) {
	for _, t := range ts {
		v.push(t)
	}
}

func (v *funcValidator) pushCtrl(opcode Opcode, in, out []ValueType, offset uint64) *Error {
	if err := v.popExpectSeq(in, offset); err != nil {
		return err
	}
	if len(v.cStack) >= int(v.cfg.MaxLabelStack) {
		return NewError(CategoryValidation, KindStackOverflow, offset, "label stack depth exceeds configured limit")
	}
	v.cStack = append(v.cStack, ctrlFrame{opcode: opcode, startTypes: in, endTypes: out, height: len(v.vStack)})
	v.pushSeq(in)
	return nil
}

// popCtrl closes the innermost frame, checking that the value stack holds
// exactly its declared result types above its entry height, and removes it
// from the control stack. The caller pushes what follows: `end` pushes the
// frame's result types, while `else` reopens the frame and pushes its
// parameter types.
func (v *funcValidator) popCtrl(offset uint64) (ctrlFrame, *Error) {
	frame := v.cStack[len(v.cStack)-1]
	if err := v.popExpectSeq(frame.endTypes, offset); err != nil {
		return frame, err
	}
	if len(v.vStack) != frame.height {
		return frame, NewError(CategoryValidation, KindTypeMismatch, offset,
			"extra values left on the stack at end of block")
	}
	v.cStack = v.cStack[:len(v.cStack)-1]
	return frame, nil
}

func (v *funcValidator) setUnreachable() {
	frame := &v.cStack[len(v.cStack)-1]
	v.vStack = v.vStack[:frame.height]
	frame.unreachable = true
}

func (v *funcValidator) labelFrame(depth uint32, offset uint64) (*ctrlFrame, *Error) {
	if int(depth) >= len(v.cStack) {
		return nil, NewError(CategoryValidation, KindInvalidLabel, offset, "branch target exceeds control stack depth")
	}
	return &v.cStack[len(v.cStack)-1-int(depth)], nil
}

func (v *funcValidator) labelTypes(frame *ctrlFrame) []ValueType {
	if frame.opcode == OpcodeLoop {
		return frame.startTypes
	}
	return frame.endTypes
}

// validateFunction runs the type-stack algorithm over a single function's
// body. params/results/locals come from the function's declared type and
// its Code entry; body is the raw expression bytes (including the single
// terminal end). maxOperandStack overrides cfg for callers (tests) that
// want a tight bound; pass 0 to use cfg's configured default.
func validateFunction(ft *FunctionType, body []byte, localTypes []ValueType, m *Module, cfg *Config, maxOperandStack uint32) *Error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if maxOperandStack != 0 {
		c := *cfg
		c.MaxOperandStack = maxOperandStack
		cfg = &c
	}

	v := &funcValidator{m: m, cfg: cfg, localTypes: append(append([]ValueType{}, ft.Params...), localTypes...), results: ft.Results}
	// The function body is itself an implicit block whose type is [] -> results.
	v.cStack = append(v.cStack, ctrlFrame{opcode: OpcodeBlock, startTypes: nil, endTypes: ft.Results, height: 0})

	r := NewReader(body)
	for {
		if v.instrSinceDeadlineCheck++; v.instrSinceDeadlineCheck >= cfg.InstructionsPerDeadlineCheck {
			v.instrSinceDeadlineCheck = 0
			if err := cfg.CheckDeadline(); err != nil {
				return err
			}
		}

		offset := r.Position()
		in, err := decodeInstruction(r, cfg)
		if err != nil {
			return err
		}

		if uint32(len(v.vStack)) > cfg.MaxOperandStack {
			return NewError(CategoryValidation, KindStackOverflow, offset,
				"function may have too many stack values, which exceeds the configured limit")
		}

		if err := v.step(in, offset); err != nil {
			return err
		}

		if in.Opcode == OpcodeEnd && len(v.cStack) == 0 {
			break
		}
	}

	if !r.AtEnd() {
		return NewError(CategoryValidation, KindTypeMismatch, r.Position(), "trailing bytes after function's closing end")
	}
	return nil
}

func (v *funcValidator) step(in decodedInstruction, offset uint64) *Error {
	switch in.Opcode {
	case OpcodeUnreachable:
		v.setUnreachable()

	case OpcodeNop:
		// no effect

	case OpcodeBlock, OpcodeLoop, OpcodeIf:
		bt, err := v.resolveBlockType(in.Block, offset)
		if err != nil {
			return err
		}
		if in.Opcode == OpcodeIf {
			if err := v.popExpect(ValueTypeI32, offset); err != nil {
				return err
			}
		}
		return v.pushCtrl(in.Opcode, bt.Params, bt.Results, offset)

	case OpcodeElse:
		top := v.cStack[len(v.cStack)-1]
		if top.opcode != OpcodeIf || top.sawElse {
			return NewError(CategoryValidation, KindTypeMismatch, offset, "else without a matching open if")
		}
		frame, err := v.popCtrl(offset)
		if err != nil {
			return err
		}
		v.cStack = append(v.cStack, ctrlFrame{opcode: OpcodeIf, startTypes: frame.startTypes, endTypes: frame.endTypes, height: frame.height, sawElse: true})
		v.pushSeq(frame.startTypes)

	case OpcodeEnd:
		top := v.cStack[len(v.cStack)-1]
		if top.opcode == OpcodeIf && !top.sawElse && !equalValueTypes(top.startTypes, top.endTypes) {
			return NewError(CategoryValidation, KindTypeMismatch, offset, "if without else must not change the value stack's shape")
		}
		frame, err := v.popCtrl(offset)
		if err != nil {
			return err
		}
		v.pushSeq(frame.endTypes)

	case OpcodeBr:
		frame, err := v.labelFrame(in.LabelIndex, offset)
		if err != nil {
			return err
		}
		if err := v.popExpectSeq(v.labelTypes(frame), offset); err != nil {
			return err
		}
		v.setUnreachable()

	case OpcodeBrIf:
		if err := v.popExpect(ValueTypeI32, offset); err != nil {
			return err
		}
		frame, err := v.labelFrame(in.LabelIndex, offset)
		if err != nil {
			return err
		}
		lt := v.labelTypes(frame)
		if err := v.popExpectSeq(lt, offset); err != nil {
			return err
		}
		v.pushSeq(lt)

	case OpcodeBrTable:
		if err := v.popExpect(ValueTypeI32, offset); err != nil {
			return err
		}
		defFrame, err := v.labelFrame(in.DefaultLabel, offset)
		if err != nil {
			return err
		}
		defTypes := v.labelTypes(defFrame)
		for _, l := range in.LabelIndices {
			f, err := v.labelFrame(l, offset)
			if err != nil {
				return err
			}
			if !equalValueTypes(v.labelTypes(f), defTypes) {
				return NewError(CategoryValidation, KindTypeMismatch, offset, "br_table targets disagree on label type")
			}
		}
		if err := v.popExpectSeq(defTypes, offset); err != nil {
			return err
		}
		v.setUnreachable()

	case OpcodeReturn:
		if err := v.popExpectSeq(v.results, offset); err != nil {
			return err
		}
		v.setUnreachable()

	case OpcodeCall:
		ft := v.m.TypeOfFunction(in.Index)
		if ft == nil {
			return NewError(CategoryValidation, KindInvalidFunctionIndex, offset, "call targets an undefined function")
		}
		if err := v.popExpectSeq(ft.Params, offset); err != nil {
			return err
		}
		v.pushSeq(ft.Results)

	case OpcodeCallIndirect:
		if v.m.TableCount() == 0 {
			return NewError(CategoryValidation, KindInvalidTableIndex, offset, "call_indirect with no declared table")
		}
		if in.Reserved != 0 {
			return NewError(CategoryValidation, KindInvalidOpcode, offset, "call_indirect reserved byte must be zero")
		}
		if int(in.Index) >= len(v.m.TypeSection) {
			return NewError(CategoryValidation, KindInvalidTypeIndex, offset, "call_indirect references an undefined type")
		}
		ft := v.m.TypeSection[in.Index]
		if err := v.popExpect(ValueTypeI32, offset); err != nil {
			return err
		}
		if err := v.popExpectSeq(ft.Params, offset); err != nil {
			return err
		}
		v.pushSeq(ft.Results)

	case OpcodeDrop:
		_, err := v.pop(offset)
		return err

	case OpcodeSelect:
		if err := v.popExpect(ValueTypeI32, offset); err != nil {
			return err
		}
		t2, err := v.pop(offset)
		if err != nil {
			return err
		}
		t1, err := v.pop(offset)
		if err != nil {
			return err
		}
		result := t1
		if result == valueTypeUnknown {
			result = t2
		} else if t2 != valueTypeUnknown && t1 != t2 {
			return NewError(CategoryValidation, KindTypeMismatch, offset, "select operands have different types")
		}
		v.push(result)

	case OpcodeLocalGet:
		t, err := v.localType(in.Index, offset)
		if err != nil {
			return err
		}
		v.push(t)

	case OpcodeLocalSet:
		t, err := v.localType(in.Index, offset)
		if err != nil {
			return err
		}
		return v.popExpect(t, offset)

	case OpcodeLocalTee:
		t, err := v.localType(in.Index, offset)
		if err != nil {
			return err
		}
		if err := v.popExpect(t, offset); err != nil {
			return err
		}
		v.push(t)

	case OpcodeGlobalGet:
		gt := v.m.GlobalTypeOf(in.Index)
		if gt == nil {
			return NewError(CategoryValidation, KindInvalidGlobalIndex, offset, "global.get references an undefined global")
		}
		v.push(gt.ValType)

	case OpcodeGlobalSet:
		gt := v.m.GlobalTypeOf(in.Index)
		if gt == nil {
			return NewError(CategoryValidation, KindInvalidGlobalIndex, offset, "global.set references an undefined global")
		}
		if !gt.Mutable {
			return NewError(CategoryValidation, KindMutableGlobalWrite, offset, "global.set targets an immutable global")
		}
		return v.popExpect(gt.ValType, offset)

	case OpcodeMemorySize, OpcodeMemoryGrow:
		if v.m.MemoryCount() == 0 {
			return NewError(CategoryValidation, KindInvalidMemoryIndex, offset, "memory instruction with no declared memory")
		}
		if in.Reserved != 0 {
			return NewError(CategoryValidation, KindInvalidOpcode, offset, "memory.size/grow reserved byte must be zero")
		}
		if in.Opcode == OpcodeMemoryGrow {
			if err := v.popExpect(ValueTypeI32, offset); err != nil {
				return err
			}
		}
		v.push(ValueTypeI32)

	default:
		if shape, ok := memoryAccessShapes[in.Opcode]; ok {
			return v.memoryAccess(in, shape, offset)
		}
		if shape, ok := numericShapes[in.Opcode]; ok {
			return v.numeric(shape, offset)
		}
		if in.Opcode == OpcodeI32Const {
			v.push(ValueTypeI32)
			return nil
		}
		if in.Opcode == OpcodeI64Const {
			v.push(ValueTypeI64)
			return nil
		}
		if in.Opcode == OpcodeF32Const {
			v.push(ValueTypeF32)
			return nil
		}
		if in.Opcode == OpcodeF64Const {
			v.push(ValueTypeF64)
			return nil
		}
		if in.Opcode == OpcodeMiscPrefix {
			if shape, ok := miscShapes[in.MiscOp]; ok {
				return v.numeric(shape, offset)
			}
		}
		return NewError(CategoryValidation, KindInvalidOpcode, offset, "unhandled opcode in validator")
	}
	return nil
}

func (v *funcValidator) localType(idx uint32, offset uint64) (ValueType, *Error) {
	if int(idx) >= len(v.localTypes) {
		return 0, NewError(CategoryValidation, KindInvalidLocalIndex, offset, "local index out of range")
	}
	return v.localTypes[idx], nil
}

type resolvedBlockType struct {
	Params  []ValueType
	Results []ValueType
}

func (v *funcValidator) resolveBlockType(bt BlockType, offset uint64) (resolvedBlockType, *Error) {
	switch bt.Kind {
	case BlockTypeEmpty:
		return resolvedBlockType{}, nil
	case BlockTypeValue:
		return resolvedBlockType{Results: []ValueType{bt.ValueType}}, nil
	case BlockTypeIndex:
		if int(bt.TypeIndex) >= len(v.m.TypeSection) {
			return resolvedBlockType{}, NewError(CategoryValidation, KindInvalidTypeIndex, offset, "block type references an undefined type")
		}
		ft := v.m.TypeSection[bt.TypeIndex]
		return resolvedBlockType{Params: ft.Params, Results: ft.Results}, nil
	}
	return resolvedBlockType{}, NewError(CategoryValidation, KindInvalidBlockType, offset, "unrecognized block type kind")
}

func (v *funcValidator) memoryAccess(in decodedInstruction, shape memAccessShape, offset uint64) *Error {
	if v.m.MemoryCount() == 0 {
		return NewError(CategoryValidation, KindInvalidMemoryIndex, offset, "memory access with no declared memory")
	}
	if (uint32(1) << in.MemArg.Align) > shape.naturalWidth {
		return NewError(CategoryValidation, KindInvalidAlignment, offset, "alignment exceeds the access's natural width")
	}
	if shape.isStore {
		if err := v.popExpect(shape.valueType, offset); err != nil {
			return err
		}
		return v.popExpect(ValueTypeI32, offset)
	}
	if err := v.popExpect(ValueTypeI32, offset); err != nil {
		return err
	}
	v.push(shape.valueType)
	return nil
}

type memAccessShape struct {
	valueType    ValueType
	naturalWidth uint32
	isStore      bool
}

var memoryAccessShapes = map[Opcode]memAccessShape{
	OpcodeI32Load:    {ValueTypeI32, 4, false},
	OpcodeI64Load:    {ValueTypeI64, 8, false},
	OpcodeF32Load:    {ValueTypeF32, 4, false},
	OpcodeF64Load:    {ValueTypeF64, 8, false},
	OpcodeI32Load8S:  {ValueTypeI32, 1, false},
	OpcodeI32Load8U:  {ValueTypeI32, 1, false},
	OpcodeI32Load16S: {ValueTypeI32, 2, false},
	OpcodeI32Load16U: {ValueTypeI32, 2, false},
	OpcodeI64Load8S:  {ValueTypeI64, 1, false},
	OpcodeI64Load8U:  {ValueTypeI64, 1, false},
	OpcodeI64Load16S: {ValueTypeI64, 2, false},
	OpcodeI64Load16U: {ValueTypeI64, 2, false},
	OpcodeI64Load32S: {ValueTypeI64, 4, false},
	OpcodeI64Load32U: {ValueTypeI64, 4, false},
	OpcodeI32Store:   {ValueTypeI32, 4, true},
	OpcodeI64Store:   {ValueTypeI64, 8, true},
	OpcodeF32Store:   {ValueTypeF32, 4, true},
	OpcodeF64Store:   {ValueTypeF64, 8, true},
	OpcodeI32Store8:  {ValueTypeI32, 1, true},
	OpcodeI32Store16: {ValueTypeI32, 2, true},
	OpcodeI64Store8:  {ValueTypeI64, 1, true},
	OpcodeI64Store16: {ValueTypeI64, 2, true},
	OpcodeI64Store32: {ValueTypeI64, 4, true},
}

type numericShape struct {
	pop  []ValueType
	push ValueType // 0 means no push (not used currently, every numeric op here pushes exactly one value)
}

var i32u = []ValueType{ValueTypeI32}
var i32b = []ValueType{ValueTypeI32, ValueTypeI32}
var i64u = []ValueType{ValueTypeI64}
var i64b = []ValueType{ValueTypeI64, ValueTypeI64}
var f32u = []ValueType{ValueTypeF32}
var f32b = []ValueType{ValueTypeF32, ValueTypeF32}
var f64u = []ValueType{ValueTypeF64}
var f64b = []ValueType{ValueTypeF64, ValueTypeF64}

var numericShapes = map[Opcode]numericShape{
	OpcodeI32Eqz: {i32u, ValueTypeI32},
	OpcodeI32Eq:  {i32b, ValueTypeI32}, OpcodeI32Ne: {i32b, ValueTypeI32},
	OpcodeI32LtS: {i32b, ValueTypeI32}, OpcodeI32LtU: {i32b, ValueTypeI32},
	OpcodeI32GtS: {i32b, ValueTypeI32}, OpcodeI32GtU: {i32b, ValueTypeI32},
	OpcodeI32LeS: {i32b, ValueTypeI32}, OpcodeI32LeU: {i32b, ValueTypeI32},
	OpcodeI32GeS: {i32b, ValueTypeI32}, OpcodeI32GeU: {i32b, ValueTypeI32},

	OpcodeI64Eqz: {i64u, ValueTypeI32},
	OpcodeI64Eq:  {i64b, ValueTypeI32}, OpcodeI64Ne: {i64b, ValueTypeI32},
	OpcodeI64LtS: {i64b, ValueTypeI32}, OpcodeI64LtU: {i64b, ValueTypeI32},
	OpcodeI64GtS: {i64b, ValueTypeI32}, OpcodeI64GtU: {i64b, ValueTypeI32},
	OpcodeI64LeS: {i64b, ValueTypeI32}, OpcodeI64LeU: {i64b, ValueTypeI32},
	OpcodeI64GeS: {i64b, ValueTypeI32}, OpcodeI64GeU: {i64b, ValueTypeI32},

	OpcodeF32Eq: {f32b, ValueTypeI32}, OpcodeF32Ne: {f32b, ValueTypeI32},
	OpcodeF32Lt: {f32b, ValueTypeI32}, OpcodeF32Gt: {f32b, ValueTypeI32},
	OpcodeF32Le: {f32b, ValueTypeI32}, OpcodeF32Ge: {f32b, ValueTypeI32},

	OpcodeF64Eq: {f64b, ValueTypeI32}, OpcodeF64Ne: {f64b, ValueTypeI32},
	OpcodeF64Lt: {f64b, ValueTypeI32}, OpcodeF64Gt: {f64b, ValueTypeI32},
	OpcodeF64Le: {f64b, ValueTypeI32}, OpcodeF64Ge: {f64b, ValueTypeI32},

	OpcodeI32Clz: {i32u, ValueTypeI32}, OpcodeI32Ctz: {i32u, ValueTypeI32}, OpcodeI32Popcnt: {i32u, ValueTypeI32},
	OpcodeI32Add: {i32b, ValueTypeI32}, OpcodeI32Sub: {i32b, ValueTypeI32}, OpcodeI32Mul: {i32b, ValueTypeI32},
	OpcodeI32DivS: {i32b, ValueTypeI32}, OpcodeI32DivU: {i32b, ValueTypeI32},
	OpcodeI32RemS: {i32b, ValueTypeI32}, OpcodeI32RemU: {i32b, ValueTypeI32},
	OpcodeI32And: {i32b, ValueTypeI32}, OpcodeI32Or: {i32b, ValueTypeI32}, OpcodeI32Xor: {i32b, ValueTypeI32},
	OpcodeI32Shl: {i32b, ValueTypeI32}, OpcodeI32ShrS: {i32b, ValueTypeI32}, OpcodeI32ShrU: {i32b, ValueTypeI32},
	OpcodeI32Rotl: {i32b, ValueTypeI32}, OpcodeI32Rotr: {i32b, ValueTypeI32},

	OpcodeI64Clz: {i64u, ValueTypeI64}, OpcodeI64Ctz: {i64u, ValueTypeI64}, OpcodeI64Popcnt: {i64u, ValueTypeI64},
	OpcodeI64Add: {i64b, ValueTypeI64}, OpcodeI64Sub: {i64b, ValueTypeI64}, OpcodeI64Mul: {i64b, ValueTypeI64},
	OpcodeI64DivS: {i64b, ValueTypeI64}, OpcodeI64DivU: {i64b, ValueTypeI64},
	OpcodeI64RemS: {i64b, ValueTypeI64}, OpcodeI64RemU: {i64b, ValueTypeI64},
	OpcodeI64And: {i64b, ValueTypeI64}, OpcodeI64Or: {i64b, ValueTypeI64}, OpcodeI64Xor: {i64b, ValueTypeI64},
	OpcodeI64Shl: {i64b, ValueTypeI64}, OpcodeI64ShrS: {i64b, ValueTypeI64}, OpcodeI64ShrU: {i64b, ValueTypeI64},
	OpcodeI64Rotl: {i64b, ValueTypeI64}, OpcodeI64Rotr: {i64b, ValueTypeI64},

	OpcodeF32Abs: {f32u, ValueTypeF32}, OpcodeF32Neg: {f32u, ValueTypeF32}, OpcodeF32Ceil: {f32u, ValueTypeF32},
	OpcodeF32Floor: {f32u, ValueTypeF32}, OpcodeF32Trunc: {f32u, ValueTypeF32}, OpcodeF32Nearest: {f32u, ValueTypeF32},
	OpcodeF32Sqrt: {f32u, ValueTypeF32},
	OpcodeF32Add:  {f32b, ValueTypeF32}, OpcodeF32Sub: {f32b, ValueTypeF32}, OpcodeF32Mul: {f32b, ValueTypeF32},
	OpcodeF32Div: {f32b, ValueTypeF32}, OpcodeF32Min: {f32b, ValueTypeF32}, OpcodeF32Max: {f32b, ValueTypeF32},
	OpcodeF32Copysign: {f32b, ValueTypeF32},

	OpcodeF64Abs: {f64u, ValueTypeF64}, OpcodeF64Neg: {f64u, ValueTypeF64}, OpcodeF64Ceil: {f64u, ValueTypeF64},
	OpcodeF64Floor: {f64u, ValueTypeF64}, OpcodeF64Trunc: {f64u, ValueTypeF64}, OpcodeF64Nearest: {f64u, ValueTypeF64},
	OpcodeF64Sqrt: {f64u, ValueTypeF64},
	OpcodeF64Add:  {f64b, ValueTypeF64}, OpcodeF64Sub: {f64b, ValueTypeF64}, OpcodeF64Mul: {f64b, ValueTypeF64},
	OpcodeF64Div: {f64b, ValueTypeF64}, OpcodeF64Min: {f64b, ValueTypeF64}, OpcodeF64Max: {f64b, ValueTypeF64},
	OpcodeF64Copysign: {f64b, ValueTypeF64},

	OpcodeI32WrapI64:    {i64u, ValueTypeI32},
	OpcodeI32TruncF32S:  {f32u, ValueTypeI32}, OpcodeI32TruncF32U: {f32u, ValueTypeI32},
	OpcodeI32TruncF64S:  {f64u, ValueTypeI32}, OpcodeI32TruncF64U: {f64u, ValueTypeI32},
	OpcodeI64ExtendI32S: {i32u, ValueTypeI64}, OpcodeI64ExtendI32U: {i32u, ValueTypeI64},
	OpcodeI64TruncF32S:  {f32u, ValueTypeI64}, OpcodeI64TruncF32U: {f32u, ValueTypeI64},
	OpcodeI64TruncF64S:  {f64u, ValueTypeI64}, OpcodeI64TruncF64U: {f64u, ValueTypeI64},
	OpcodeF32ConvertI32S: {i32u, ValueTypeF32}, OpcodeF32ConvertI32U: {i32u, ValueTypeF32},
	OpcodeF32ConvertI64S: {i64u, ValueTypeF32}, OpcodeF32ConvertI64U: {i64u, ValueTypeF32},
	OpcodeF32DemoteF64:   {f64u, ValueTypeF32},
	OpcodeF64ConvertI32S: {i32u, ValueTypeF64}, OpcodeF64ConvertI32U: {i32u, ValueTypeF64},
	OpcodeF64ConvertI64S: {i64u, ValueTypeF64}, OpcodeF64ConvertI64U: {i64u, ValueTypeF64},
	OpcodeF64PromoteF32:     {f32u, ValueTypeF64},
	OpcodeI32ReinterpretF32: {f32u, ValueTypeI32},
	OpcodeI64ReinterpretF64: {f64u, ValueTypeI64},
	OpcodeF32ReinterpretI32: {i32u, ValueTypeF32},
	OpcodeF64ReinterpretI64: {i64u, ValueTypeF64},
}

// miscShapes gives the stack effect of the 0xFC-prefixed saturating
// truncation opcodes, keyed by MiscOp (see instruction.go), gated behind
// FeatureSaturatingTruncation at decode time.
var miscShapes = map[uint32]numericShape{
	OpcodeMiscI32TruncSatF32S: {f32u, ValueTypeI32},
	OpcodeMiscI32TruncSatF32U: {f32u, ValueTypeI32},
	OpcodeMiscI32TruncSatF64S: {f64u, ValueTypeI32},
	OpcodeMiscI32TruncSatF64U: {f64u, ValueTypeI32},
	OpcodeMiscI64TruncSatF32S: {f32u, ValueTypeI64},
	OpcodeMiscI64TruncSatF32U: {f32u, ValueTypeI64},
	OpcodeMiscI64TruncSatF64S: {f64u, ValueTypeI64},
	OpcodeMiscI64TruncSatF64U: {f64u, ValueTypeI64},
}

func (v *funcValidator) numeric(shape numericShape, offset uint64) *Error {
	if err := v.popExpectSeq(shape.pop, offset); err != nil {
		return err
	}
	v.push(shape.push)
	return nil
}
