package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderReadExact(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	b, err := r.ReadExact(3)
	require.Nil(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)
	require.Equal(t, 2, r.Remaining())
	require.False(t, r.AtEnd())

	_, err = r.ReadExact(3)
	require.NotNil(t, err)
	require.Equal(t, KindUnexpectedEnd, err.Kind)
}

func TestReaderFramePreservesAbsoluteOffsets(t *testing.T) {
	r := NewReader([]byte{0, 0, 0, 0, 10, 20, 30})
	require.Nil(t, r.Skip(4))
	sub, err := r.Frame(3)
	require.Nil(t, err)
	require.Equal(t, uint64(4), sub.Position())

	b, err := sub.ReadExact(1)
	require.Nil(t, err)
	require.Equal(t, byte(10), b[0])
	require.Equal(t, uint64(5), sub.Position())

	require.True(t, r.AtEnd())
}

func TestReaderFrameShortInput(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.Frame(3)
	require.NotNil(t, err)
	require.Equal(t, KindUnexpectedEnd, err.Kind)
}

func TestReaderLittleEndianNumbers(t *testing.T) {
	r := NewReader([]byte{0x01, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	u32, err := r.ReadU32LE()
	require.Nil(t, err)
	require.Equal(t, uint32(1), u32)

	u64, err := r.ReadU64LE()
	require.Nil(t, err)
	require.Equal(t, uint64(0xffffffffffffffff), u64)
}

func TestReaderReadF32LEAndF64LE(t *testing.T) {
	// 1.5f32 little-endian, then 1.5f64 little-endian.
	r := NewReader([]byte{0x00, 0x00, 0xc0, 0x3f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf8, 0x3f})
	f32, err := r.ReadF32LE()
	require.Nil(t, err)
	require.Equal(t, float32(1.5), f32)

	f64, err := r.ReadF64LE()
	require.Nil(t, err)
	require.Equal(t, 1.5, f64)
}

func TestReaderReadNameValid(t *testing.T) {
	r := NewReader([]byte{5, 'h', 'e', 'l', 'l', 'o'})
	name, err := r.ReadName("test", true)
	require.Nil(t, err)
	require.Equal(t, "hello", name)
}

func TestReaderReadNameInvalidUTF8(t *testing.T) {
	r := NewReader([]byte{2, 0xff, 0xfe})
	_, err := r.ReadName("test", true)
	require.NotNil(t, err)
	require.Equal(t, KindInvalidUtf8, err.Kind)
}

func TestReaderReadNamePermissive(t *testing.T) {
	r := NewReader([]byte{2, 0xff, 0xfe})
	name, err := r.ReadName("test", false)
	require.Nil(t, err)
	require.Equal(t, 2, len(name))
}

func TestReaderVarints(t *testing.T) {
	r := NewReader([]byte{0xe5, 0x8e, 0x26})
	v, err := r.ReadVarUint32("count")
	require.Nil(t, err)
	require.Equal(t, uint32(624485), v)
}

func TestReaderVarintOverflowReportsOffset(t *testing.T) {
	r := NewReader([]byte{0, 0, 0x83, 0x80, 0x80, 0x80, 0x80, 0x00})
	require.Nil(t, r.Skip(2))
	_, err := r.ReadVarUint32("count")
	require.NotNil(t, err)
	require.Equal(t, uint64(2), err.Offset)
}

func TestReaderMarkAndSinceMark(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	m := r.Mark()
	require.Nil(t, r.Skip(3))
	require.Equal(t, []byte{1, 2, 3}, r.SinceMark(m))
}

func TestReaderPeekByteDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{9})
	b, err := r.PeekByte()
	require.Nil(t, err)
	require.Equal(t, byte(9), b)
	require.Equal(t, 1, r.Remaining())
}
