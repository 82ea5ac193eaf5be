package record

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/mbuserr"
)

// DataTypeKind discriminates DataType's payload variants.
type DataTypeKind int

const (
	DataNone DataTypeKind = iota
	DataUnsigned
	DataSigned
	DataReal
	DataDateTimeF
	DataDateTimeI
	DataDate
	DataTime
	DataDST
	DataString
	DataErrorValue
	DataVariableLengthNumber
)

// DataType is the decoded record payload.
type DataType struct {
	Kind        DataTypeKind
	Unsigned    uint64
	Signed      int64
	Real        float32
	DateTimeF   TypeFDateTime
	DateTimeI   TypeIDateTime
	Date        TypeGDate
	Time        TypeJTime
	DST         TypeKDST
	String      string
	ErrorValue  string
	VarLenBytes []byte
}

// decodeBCD is the pure nibble-walk shared by ParseBCD and parseNumber's
// fallback: both need to interpret the *same* already-extracted bytes,
// since the fallback to invalid-BCD must not re-consume the cursor.
func decodeBCD(raw []byte) (int64, error) {
	n := len(raw)
	negative := raw[n-1]&0xF0 == 0xF0
	var result int64
	for i := n - 1; i >= 0; i-- {
		b := raw[i]
		hi, lo := b>>4, b&0x0F
		if i == n-1 && negative {
			hi = 0
		}
		if hi > 9 || lo > 9 {
			return 0, mbuserr.New(mbuserr.Value, "nibble not a decimal digit")
		}
		result = result*100 + int64(hi)*10 + int64(lo)
	}
	if negative {
		result = -result
	}
	return result, nil
}

// decodeInvalidBCD renders raw as an uppercase hex string in big-endian
// order, with the sign nibble rendered as a leading "-" when it is 0xF.
// It never fails: every nibble is accepted.
func decodeInvalidBCD(raw []byte) string {
	n := len(raw)
	negative := raw[n-1]&0xF0 == 0xF0
	out := make([]byte, 0, n*2+1)
	if negative {
		out = append(out, '-')
	}
	for i := n - 1; i >= 0; i-- {
		b := raw[i]
		hi := b >> 4
		if i == n-1 && negative {
			hi = 0
		}
		out = append(out, fmt.Sprintf("%X", hi)...)
		out = append(out, fmt.Sprintf("%X", b&0x0F)...)
	}
	return string(out)
}

// ParseBCD decodes an n-byte valid BCD number (1<=n<=9): each nibble must
// be a decimal digit except the top nibble of the last (most
// significant) byte, which may be 0xF to mark a negative value.
func ParseBCD(n int, c *bitio.Cursor) (int64, error) {
	if n == 0 {
		return 0, mbuserr.New(mbuserr.Assertion, "cannot parse 0 bytes")
	}
	if n > 9 {
		return 0, mbuserr.New(mbuserr.Assertion, "more than 9 BCD bytes requested")
	}
	raw, err := c.Bytes(n)
	if err != nil {
		return 0, err.(*mbuserr.Error).WithContext("BCD")
	}
	return decodeBCD(raw)
}

// ParseInvalidBCD decodes the same n bytes as ParseBCD but never fails on
// a non-decimal nibble, for use as an ErrorValue when ParseBCD rejects
// the data.
func ParseInvalidBCD(n int, c *bitio.Cursor) (string, error) {
	raw, err := c.Bytes(n)
	if err != nil {
		return "", err.(*mbuserr.Error).WithContext("invalid BCD")
	}
	return decodeInvalidBCD(raw), nil
}

var supportedSignedWidths = map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true}

// ParseBinarySigned decodes an n-byte little-endian two's-complement
// integer. EN 13757-3 allows binary data lengths of 1 to 8 bytes; widths
// 1/2/4/8 read the corresponding native type directly, and the odd
// widths 3/5/6/7 are zero-padded to 8 bytes and arithmetic-shifted to
// sign-extend.
func ParseBinarySigned(n int, c *bitio.Cursor) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	if n > 8 {
		return 0, mbuserr.New(mbuserr.Assertion, "more than 8 integer bytes requested")
	}
	if !supportedSignedWidths[n] {
		return 0, mbuserr.New(mbuserr.Structural, "unsupported byte count for signed binary")
	}
	raw, err := c.Bytes(n)
	if err != nil {
		return 0, err.(*mbuserr.Error).WithContext("signed binary")
	}

	switch n {
	case 1:
		return int64(int8(raw[0])), nil
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(raw))), nil
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(raw))), nil
	case 8:
		return int64(binary.LittleEndian.Uint64(raw)), nil
	default:
		var buf [8]byte
		copy(buf[:n], raw)
		shift := uint((8 - n) * 8)
		v := int64(binary.LittleEndian.Uint64(buf[:]))
		return v << shift >> shift, nil
	}
}

var supportedUnsignedWidths = supportedSignedWidths

// ParseBinaryUnsigned mirrors ParseBinarySigned but zero-pads rather than
// sign-extends the odd widths.
func ParseBinaryUnsigned(n int, c *bitio.Cursor) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if n > 8 {
		return 0, mbuserr.New(mbuserr.Assertion, "more than 8 integer bytes requested")
	}
	if !supportedUnsignedWidths[n] {
		return 0, mbuserr.New(mbuserr.Structural, "unsupported byte count for unsigned binary")
	}
	raw, err := c.Bytes(n)
	if err != nil {
		return 0, err.(*mbuserr.Error).WithContext("unsigned binary")
	}

	var buf [8]byte
	copy(buf[:n], raw)
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ParseReal decodes a 4-byte little-endian IEEE-754 single.
func ParseReal(c *bitio.Cursor) (float32, error) {
	raw, err := c.Bytes(4)
	if err != nil {
		return 0, err.(*mbuserr.Error).WithContext("real")
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(raw)), nil
}

// parseNumber dispatches non-date value types by DIB raw-type:
// None/BCD/Binary/Real.
func parseNumber(raw RawDataType, vt ValueType, c *bitio.Cursor) (DataType, error) {
	switch raw.Kind {
	case RawNone:
		return DataType{Kind: DataNone}, nil
	case RawBCD:
		bytes, err := c.Bytes(raw.Width)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error).WithContext("BCD")
		}
		signed, berr := decodeBCD(bytes)
		if berr == nil {
			return DataType{Kind: DataSigned, Signed: signed}, nil
		}
		return DataType{Kind: DataErrorValue, ErrorValue: decodeInvalidBCD(bytes)}, nil
	case RawReal:
		v, err := ParseReal(c)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error)
		}
		return DataType{Kind: DataReal, Real: v}, nil
	case RawBinary:
		if vt.IsUnsigned() {
			v, err := ParseBinaryUnsigned(raw.Width, c)
			if err != nil {
				return DataType{}, err.(*mbuserr.Error)
			}
			return DataType{Kind: DataUnsigned, Unsigned: v}, nil
		}
		v, err := ParseBinarySigned(raw.Width, c)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error)
		}
		return DataType{Kind: DataSigned, Signed: v}, nil
	default:
		return DataType{}, mbuserr.New(mbuserr.Assertion, "data type mismatch")
	}
}
