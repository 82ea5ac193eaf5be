package record

import (
	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/mbuserr"
)

// parseLVAR implements the LVAR length-byte dispatch table of EN 13757-3
// §4.4: the length byte's value band selects the payload's shape (string,
// signed/positive BCD, binary, or variable-length raw number), and for
// the bands above 0xE0 also its width.
func parseLVAR(c *bitio.Cursor) (DataType, error) {
	l, err := c.Byte()
	if err != nil {
		return DataType{}, err.(*mbuserr.Error).WithContext("LVAR length")
	}

	switch {
	case l <= 0xBF:
		s, err := ParseLatin1(int(l), c)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error)
		}
		return DataType{Kind: DataString, String: s}, nil

	case l >= 0xCA && l <= 0xCF, l >= 0xDA && l <= 0xDF:
		return DataType{}, mbuserr.New(mbuserr.Unsupported, "LVAR length value")

	case l <= 0xC9: // 0xC0..=0xC9: positive BCD of L-0xC0 bytes
		width := int(l - 0xC0)
		v, err := ParseBCD(width, c)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error)
		}
		if v <= 0 {
			return DataType{}, mbuserr.New(mbuserr.Value, "LVAR positive BCD")
		}
		return DataType{Kind: DataSigned, Signed: v}, nil

	case l <= 0xD9: // 0xD0..=0xD9: negated BCD of L-0xD0 bytes
		width := int(l - 0xD0)
		v, err := ParseBCD(width, c)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error)
		}
		if v != 0 {
			v = -v
		}
		return DataType{Kind: DataSigned, Signed: v}, nil

	case l <= 0xE8: // 0xE0..=0xE8: Binary of L-0xE0 bytes
		width := int(l - 0xE0)
		v, err := ParseBinarySigned(width, c)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error)
		}
		return DataType{Kind: DataSigned, Signed: v}, nil

	case l <= 0xEF: // 0xE9..=0xEF: VariableLengthNumber of L-0xE0 bytes
		width := int(l - 0xE0)
		raw, err := c.Bytes(width)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error).WithContext("LVAR variable length number")
		}
		return DataType{Kind: DataVariableLengthNumber, VarLenBytes: raw}, nil

	case l <= 0xF4: // 0xF0..=0xF4: VariableLengthNumber of 4*(L-0xEC) bytes
		width := 4 * int(l-0xEC)
		raw, err := c.Bytes(width)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error).WithContext("LVAR variable length number")
		}
		return DataType{Kind: DataVariableLengthNumber, VarLenBytes: raw}, nil

	case l == 0xF5:
		raw, err := c.Bytes(48)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error).WithContext("LVAR variable length number")
		}
		return DataType{Kind: DataVariableLengthNumber, VarLenBytes: raw}, nil

	case l == 0xF6:
		raw, err := c.Bytes(64)
		if err != nil {
			return DataType{}, err.(*mbuserr.Error).WithContext("LVAR variable length number")
		}
		return DataType{Kind: DataVariableLengthNumber, VarLenBytes: raw}, nil

	default:
		return DataType{}, mbuserr.New(mbuserr.Unsupported, "LVAR length value")
	}
}
