// stand for bytes helper
package bx

import (
	"encoding/binary"
	"math"
)

// LE is the byte order of every on-disk integer (the layout of the x86 files we read).
var LE = binary.LittleEndian

// --- LE: read ---
func U32(b []byte) uint32  { return LE.Uint32(b) }
func I32(b []byte) int32   { return int32(U32(b)) }
func F32(b []byte) float32 { return math.Float32frombits(U32(b)) }

// --- LE: write ---
func PutU32(b []byte, v uint32)  { LE.PutUint32(b, v) }
func PutI32(b []byte, v int32)   { PutU32(b, uint32(v)) }
func PutF32(b []byte, v float32) { PutU32(b, math.Float32bits(v)) }

// --- LE: At (offset) ---
func U32At(b []byte, off int) uint32       { return U32(b[off:]) }
func PutU32At(b []byte, off int, v uint32) { PutU32(b[off:], v) }

// CString reads a NUL-terminated string out of a fixed-width field.
// A field without a terminator is returned whole.
func CString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// PutCString copies s into a fixed-width field, zero filling the rest.
// s is truncated so the last byte of the field always stays 0.
func PutCString(b []byte, s string) {
	if len(b) == 0 {
		return
	}
	n := copy(b[:len(b)-1], s)
	clear(b[n:])
}
