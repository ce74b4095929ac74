package wasm

// decodedInstruction is the ephemeral, typed view of one instruction,
// produced while walking raw Expression/Code bytes. It is never persisted
// on Module; the module model keeps only the raw bytes (see Expression and
// Code.Body), so this type exists purely to drive expression framing (the
// decoder's "where does this instruction end") and the validator's
// type-stack walk.
type decodedInstruction struct {
	Opcode Opcode
	MiscOp uint32 // populated when Opcode == OpcodeMiscPrefix

	Block        BlockType
	LabelIndex   uint32
	LabelIndices []uint32 // br_table targets, not including the default
	DefaultLabel uint32

	Index    uint32 // function/local/global/type index, depending on Opcode
	Reserved byte   // the reserved zero byte of call_indirect/memory.size/memory.grow

	MemArg MemArg

	I32 int32
	I64 int64
	F32 float32
	F64 float64
}

// decodeBlockType reads a block type immediate: the single byte 0x40
// (empty), a value-type byte, or a positive signed LEB128 i33 naming a
// type-section index.
func decodeBlockType(r *Reader, context string) (BlockType, *Error) {
	v, err := r.ReadVarInt33AsInt64(context)
	if err != nil {
		return BlockType{}, err
	}
	if v == -0x40 { // 0x40 sign-extended as an i33 is -64
		return BlockType{Kind: BlockTypeEmpty}, nil
	}
	if v < 0 {
		// negative single-byte value types are encoded as their i33
		// sign-extension, e.g. i32 (0x7f) reads back as -1.
		vt := ValueType(v & 0x7f)
		if !isKnownValueType(vt) {
			return BlockType{}, NewError(CategoryBinaryFormat, KindInvalidBlockType, r.Position(), context)
		}
		return BlockType{Kind: BlockTypeValue, ValueType: vt}, nil
	}
	return BlockType{Kind: BlockTypeIndex, TypeIndex: uint32(v)}, nil
}

func isKnownValueType(t ValueType) bool {
	switch t {
	case ValueTypeI32, ValueTypeI64, ValueTypeF32, ValueTypeF64, ValueTypeV128, ValueTypeFuncref, ValueTypeExternref:
		return true
	}
	return false
}

// decodeInstruction reads one instruction (opcode plus whatever immediate
// shape it takes) from r. cfg gates recognition of the 0xFC misc-opcode
// family. It never inspects values for semantic validity beyond what is
// needed to know the instruction's byte length; that is the validator's
// job.
func decodeInstruction(r *Reader, cfg *Config) (decodedInstruction, *Error) {
	opcodeByte, err := r.MustReadByte("opcode")
	if err != nil {
		return decodedInstruction{}, err
	}
	in := decodedInstruction{Opcode: opcodeByte}

	switch opcodeByte {
	case OpcodeUnreachable, OpcodeNop, OpcodeElse, OpcodeEnd, OpcodeReturn,
		OpcodeDrop, OpcodeSelect,
		OpcodeI32Eqz, OpcodeI32Eq, OpcodeI32Ne, OpcodeI32LtS, OpcodeI32LtU, OpcodeI32GtS, OpcodeI32GtU,
		OpcodeI32LeS, OpcodeI32LeU, OpcodeI32GeS, OpcodeI32GeU,
		OpcodeI64Eqz, OpcodeI64Eq, OpcodeI64Ne, OpcodeI64LtS, OpcodeI64LtU, OpcodeI64GtS, OpcodeI64GtU,
		OpcodeI64LeS, OpcodeI64LeU, OpcodeI64GeS, OpcodeI64GeU,
		OpcodeF32Eq, OpcodeF32Ne, OpcodeF32Lt, OpcodeF32Gt, OpcodeF32Le, OpcodeF32Ge,
		OpcodeF64Eq, OpcodeF64Ne, OpcodeF64Lt, OpcodeF64Gt, OpcodeF64Le, OpcodeF64Ge,
		OpcodeI32Clz, OpcodeI32Ctz, OpcodeI32Popcnt, OpcodeI32Add, OpcodeI32Sub, OpcodeI32Mul,
		OpcodeI32DivS, OpcodeI32DivU, OpcodeI32RemS, OpcodeI32RemU,
		OpcodeI32And, OpcodeI32Or, OpcodeI32Xor, OpcodeI32Shl, OpcodeI32ShrS, OpcodeI32ShrU, OpcodeI32Rotl, OpcodeI32Rotr,
		OpcodeI64Clz, OpcodeI64Ctz, OpcodeI64Popcnt, OpcodeI64Add, OpcodeI64Sub, OpcodeI64Mul,
		OpcodeI64DivS, OpcodeI64DivU, OpcodeI64RemS, OpcodeI64RemU,
		OpcodeI64And, OpcodeI64Or, OpcodeI64Xor, OpcodeI64Shl, OpcodeI64ShrS, OpcodeI64ShrU, OpcodeI64Rotl, OpcodeI64Rotr,
		OpcodeF32Abs, OpcodeF32Neg, OpcodeF32Ceil, OpcodeF32Floor, OpcodeF32Trunc, OpcodeF32Nearest, OpcodeF32Sqrt,
		OpcodeF32Add, OpcodeF32Sub, OpcodeF32Mul, OpcodeF32Div, OpcodeF32Min, OpcodeF32Max, OpcodeF32Copysign,
		OpcodeF64Abs, OpcodeF64Neg, OpcodeF64Ceil, OpcodeF64Floor, OpcodeF64Trunc, OpcodeF64Nearest, OpcodeF64Sqrt,
		OpcodeF64Add, OpcodeF64Sub, OpcodeF64Mul, OpcodeF64Div, OpcodeF64Min, OpcodeF64Max, OpcodeF64Copysign,
		OpcodeI32WrapI64, OpcodeI32TruncF32S, OpcodeI32TruncF32U, OpcodeI32TruncF64S, OpcodeI32TruncF64U,
		OpcodeI64ExtendI32S, OpcodeI64ExtendI32U, OpcodeI64TruncF32S, OpcodeI64TruncF32U, OpcodeI64TruncF64S, OpcodeI64TruncF64U,
		OpcodeF32ConvertI32S, OpcodeF32ConvertI32U, OpcodeF32ConvertI64S, OpcodeF32ConvertI64U, OpcodeF32DemoteF64,
		OpcodeF64ConvertI32S, OpcodeF64ConvertI32U, OpcodeF64ConvertI64S, OpcodeF64ConvertI64U, OpcodeF64PromoteF32,
		OpcodeI32ReinterpretF32, OpcodeI64ReinterpretF64, OpcodeF32ReinterpretI32, OpcodeF64ReinterpretI64:
		// no immediate

	case OpcodeBlock, OpcodeLoop, OpcodeIf:
		bt, err := decodeBlockType(r, "block type")
		if err != nil {
			return in, err
		}
		in.Block = bt

	case OpcodeBr, OpcodeBrIf:
		idx, err := r.ReadVarUint32("label index")
		if err != nil {
			return in, err
		}
		in.LabelIndex = idx

	case OpcodeBrTable:
		count, err := r.ReadVarUint32("br_table label count")
		if err != nil {
			return in, err
		}
		if err := cfg.CheckVectorCount(count, "br_table targets", r.Position()); err != nil {
			return in, err
		}
		labels := make([]uint32, count)
		for i := range labels {
			labels[i], err = r.ReadVarUint32("br_table label")
			if err != nil {
				return in, err
			}
		}
		def, err := r.ReadVarUint32("br_table default label")
		if err != nil {
			return in, err
		}
		in.LabelIndices = labels
		in.DefaultLabel = def

	case OpcodeCall:
		idx, err := r.ReadVarUint32("function index")
		if err != nil {
			return in, err
		}
		in.Index = idx

	case OpcodeCallIndirect:
		idx, err := r.ReadVarUint32("type index")
		if err != nil {
			return in, err
		}
		reserved, err := r.MustReadByte("call_indirect reserved byte")
		if err != nil {
			return in, err
		}
		in.Index = idx
		in.Reserved = reserved

	case OpcodeLocalGet, OpcodeLocalSet, OpcodeLocalTee, OpcodeGlobalGet, OpcodeGlobalSet:
		idx, err := r.ReadVarUint32("local/global index")
		if err != nil {
			return in, err
		}
		in.Index = idx

	case OpcodeI32Load, OpcodeI64Load, OpcodeF32Load, OpcodeF64Load,
		OpcodeI32Load8S, OpcodeI32Load8U, OpcodeI32Load16S, OpcodeI32Load16U,
		OpcodeI64Load8S, OpcodeI64Load8U, OpcodeI64Load16S, OpcodeI64Load16U, OpcodeI64Load32S, OpcodeI64Load32U,
		OpcodeI32Store, OpcodeI64Store, OpcodeF32Store, OpcodeF64Store,
		OpcodeI32Store8, OpcodeI32Store16, OpcodeI64Store8, OpcodeI64Store16, OpcodeI64Store32:
		align, err := r.ReadVarUint32("memarg align")
		if err != nil {
			return in, err
		}
		offset, err := r.ReadVarUint32("memarg offset")
		if err != nil {
			return in, err
		}
		in.MemArg = MemArg{Align: align, Offset: offset}

	case OpcodeMemorySize, OpcodeMemoryGrow:
		reserved, err := r.MustReadByte("reserved byte")
		if err != nil {
			return in, err
		}
		in.Reserved = reserved

	case OpcodeI32Const:
		v, err := r.ReadVarInt32("i32 literal")
		if err != nil {
			return in, err
		}
		in.I32 = v

	case OpcodeI64Const:
		v, err := r.ReadVarInt64("i64 literal")
		if err != nil {
			return in, err
		}
		in.I64 = v

	case OpcodeF32Const:
		v, err := r.ReadF32LE()
		if err != nil {
			return in, err
		}
		in.F32 = v

	case OpcodeF64Const:
		v, err := r.ReadF64LE()
		if err != nil {
			return in, err
		}
		in.F64 = v

	case OpcodeMiscPrefix:
		if !cfg.Features.Get(FeatureSaturatingTruncation) {
			return in, NewError(CategoryBinaryFormat, KindInvalidOpcode, r.Position()-1, "0xFC prefix (saturating truncation disabled)")
		}
		sub, err := r.ReadVarUint32("misc opcode")
		if err != nil {
			return in, err
		}
		if sub > OpcodeMiscI64TruncSatF64U {
			return in, NewError(CategoryBinaryFormat, KindInvalidOpcode, r.Position(), "unknown 0xFC sub-opcode")
		}
		in.MiscOp = sub

	default:
		return in, NewError(CategoryBinaryFormat, KindInvalidOpcode, r.Position()-1, "unknown opcode")
	}

	return in, nil
}

// DecodeExpression reads a raw, undecoded instruction sequence up to and
// including its single outermost `end`, returning the bytes verbatim
// (needed for byte-exact re-encoding) without performing any semantic
// validation. It is used by the binary decoder to frame Global
// initializers, Element/Data offset expressions, and Code function bodies,
// none of which carry an explicit length prefix of their own in the wire
// format.
func DecodeExpression(r *Reader, cfg *Config) (Expression, *Error) {
	mark := r.Mark()
	depth := 0
	for {
		in, err := decodeInstruction(r, cfg)
		if err != nil {
			return nil, err
		}
		switch in.Opcode {
		case OpcodeBlock, OpcodeLoop, OpcodeIf:
			depth++
		case OpcodeEnd:
			if depth == 0 {
				return Expression(r.SinceMark(mark)), nil
			}
			depth--
		}
	}
}
