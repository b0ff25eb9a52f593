package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tuannm99/pagesql/internal/alias/bx"
)

var (
	ErrStringTooLong = errors.New("record: string too long")
	ErrTypeMismatch  = errors.New("record: type mismatch")
)

// Value is a fixed-size binary payload for one column. Data always has
// exactly Type.Size() bytes and is owned by the Value.
type Value struct {
	Type ColumnType
	Data []byte
}

func (v Value) Size() uint32 { return uint32(len(v.Data)) }

// EncodeLiteral converts the textual form of a literal into a Value for col.
func EncodeLiteral(literal string, col Column) (Value, error) {
	v := Value{Type: col.Type, Data: make([]byte, col.Type.Size())}

	switch col.Type {
	case ColInt:
		n, err := strconv.ParseInt(strings.TrimSpace(literal), 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not an INT for column %q", ErrTypeMismatch, literal, col.Name)
		}
		bx.PutI32(v.Data, int32(n))

	case ColFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(literal), 32)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q is not a FLOAT for column %q", ErrTypeMismatch, literal, col.Name)
		}
		bx.PutF32(v.Data, float32(f))

	case ColBool:
		if strings.EqualFold(literal, "true") || literal == "1" {
			v.Data[0] = 1
		}

	case ColString:
		if len(literal) >= MaxStringLength {
			return Value{}, fmt.Errorf("%w: %d bytes (max %d)", ErrStringTooLong, len(literal), MaxStringLength-1)
		}
		bx.PutCString(v.Data, literal)

	default:
		return Value{}, fmt.Errorf("%w: %v", ErrUnknownType, col.Type)
	}
	return v, nil
}

// IntValue, FloatValue, BoolValue and StringValue build values from Go types.
func IntValue(n int32) Value {
	v := Value{Type: ColInt, Data: make([]byte, 4)}
	bx.PutI32(v.Data, n)
	return v
}

func FloatValue(f float32) Value {
	v := Value{Type: ColFloat, Data: make([]byte, 4)}
	bx.PutF32(v.Data, f)
	return v
}

func BoolValue(b bool) Value {
	v := Value{Type: ColBool, Data: make([]byte, 1)}
	if b {
		v.Data[0] = 1
	}
	return v
}

func StringValue(s string) (Value, error) {
	return EncodeLiteral(s, Column{Type: ColString})
}

func (v Value) Int() int32     { return bx.I32(v.Data) }
func (v Value) Float() float32 { return bx.F32(v.Data) }
func (v Value) Bool() bool     { return v.Data[0] != 0 }
func (v Value) Text() string   { return bx.CString(v.Data) }

// String renders the value the way SELECT prints it.
func (v Value) String() string {
	return DecodeText(v, v.Type)
}

// DecodeText renders raw value bytes as text for the given type.
func DecodeText(v Value, typ ColumnType) string {
	if uint32(len(v.Data)) < typ.Size() {
		return ""
	}
	switch typ {
	case ColInt:
		return strconv.FormatInt(int64(v.Int()), 10)
	case ColFloat:
		return strconv.FormatFloat(float64(v.Float()), 'f', 2, 32)
	case ColBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case ColString:
		return v.Text()
	default:
		return ""
	}
}
