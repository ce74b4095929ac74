package wasm

import (
	"errors"
	"io"

	"github.com/wasmkit/wasmcore/internal/leb128"
)

func lebError(start uint64, context string, err error) *Error {
	if errors.Is(err, io.EOF) {
		return Wrap(CategoryBinaryFormat, KindUnexpectedEnd, start, context, err)
	}
	return Wrap(CategoryBinaryFormat, KindInvalidLEB128, start, context, err)
}

// ReadVarUint32 decodes an unsigned LEB128 u32 at the current position,
// translating a codec-level failure into a properly offset *Error.
func (r *Reader) ReadVarUint32(context string) (uint32, *Error) {
	start := r.Position()
	v, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return 0, lebError(start, context, err)
	}
	return v, nil
}

// ReadVarUint64 decodes an unsigned LEB128 u64 at the current position.
func (r *Reader) ReadVarUint64(context string) (uint64, *Error) {
	start := r.Position()
	v, _, err := leb128.DecodeUint64(r)
	if err != nil {
		return 0, lebError(start, context, err)
	}
	return v, nil
}

// ReadVarInt32 decodes a signed LEB128 i32 at the current position.
func (r *Reader) ReadVarInt32(context string) (int32, *Error) {
	start := r.Position()
	v, _, err := leb128.DecodeInt32(r)
	if err != nil {
		return 0, lebError(start, context, err)
	}
	return v, nil
}

// ReadVarInt33AsInt64 decodes a signed LEB128 i33 (used for block types)
// sign-extended into an int64.
func (r *Reader) ReadVarInt33AsInt64(context string) (int64, *Error) {
	start := r.Position()
	v, _, err := leb128.DecodeInt33AsInt64(r)
	if err != nil {
		return 0, lebError(start, context, err)
	}
	return v, nil
}

// ReadVarInt64 decodes a signed LEB128 i64 at the current position.
func (r *Reader) ReadVarInt64(context string) (int64, *Error) {
	start := r.Position()
	v, _, err := leb128.DecodeInt64(r)
	if err != nil {
		return 0, lebError(start, context, err)
	}
	return v, nil
}
