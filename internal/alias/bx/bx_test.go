package bx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLittleEndianReadWrite verifies that the u32/i32/f32 helpers
// round-trip values using little-endian encoding.
func TestLittleEndianReadWrite(t *testing.T) {
	// ---- U32 ----
	{
		b := make([]byte, 4)
		var v uint32 = 0x01020304

		PutU32(b, v)
		// LE: 04 03 02 01
		assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
		assert.Equal(t, v, U32(b))
	}

	// ---- I32 ----
	{
		b := make([]byte, 4)
		var v int32 = -123456
		PutI32(b, v)
		assert.Equal(t, v, I32(b))
	}

	// ---- F32 ----
	{
		b := make([]byte, 4)
		PutF32(b, 1.5)
		// 1.5f == 0x3fc00000
		assert.Equal(t, []byte{0x00, 0x00, 0xc0, 0x3f}, b)
		assert.Equal(t, float32(1.5), F32(b))
	}
}

// TestLittleEndianAt verifies the *At variants that work with an offset
// into a larger buffer (schema records embed counters mid-record).
func TestLittleEndianAt(t *testing.T) {
	buf := make([]byte, 16)

	PutU32At(buf, 2, 0x01020304)
	PutU32At(buf, 9, 42)

	assert.Equal(t, uint32(0x01020304), U32At(buf, 2))
	assert.Equal(t, uint32(42), U32At(buf, 9))
	assert.Equal(t, byte(0), buf[0])
}

func TestCString(t *testing.T) {
	field := make([]byte, 8)
	PutCString(field, "users")
	assert.Equal(t, []byte{'u', 's', 'e', 'r', 's', 0, 0, 0}, field)
	assert.Equal(t, "users", CString(field))

	// too long: truncated, terminator kept
	PutCString(field, "abcdefghij")
	assert.Equal(t, byte(0), field[7])
	assert.Equal(t, "abcdefg", CString(field))

	// shorter value overwrites stale bytes
	PutCString(field, "ab")
	assert.Equal(t, "ab", CString(field))
	assert.Equal(t, []byte{'a', 'b', 0, 0, 0, 0, 0, 0}, field)

	// no terminator at all
	assert.Equal(t, "xyz", CString([]byte("xyz")))
}
