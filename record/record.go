package record

import (
	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/mbuserr"
)

// Record is one DIB+VIB+Data entry in an application-layer Frame.
type Record struct {
	DIB  DataInfoBlock
	VIB  ValueInfoBlock
	Data DataType
}

// dateWidthFor reports the Binary() width a date/time ValueKind expects,
// and whether vt.Kind is a date/time kind at all.
func dateWidthFor(kind ValueKind) (int, bool) {
	switch kind {
	case KindTypeGDate:
		return 2, true
	case KindTypeFDateTime:
		return 4, true
	case KindTypeJTime:
		return 3, true
	case KindTypeIDateTime:
		return 5, true
	case KindTypeKDST:
		return 4, true
	default:
		return 0, false
	}
}

// parseDate dispatches to the one of five bit-packed date/time decoders
// dateWidthFor selected.
func parseDate(kind ValueKind, c *bitio.Cursor) (DataType, error) {
	switch kind {
	case KindTypeGDate:
		d, err := ParseTypeGDate(c)
		if err != nil {
			return DataType{}, err
		}
		return DataType{Kind: DataDate, Date: d}, nil
	case KindTypeFDateTime:
		d, err := ParseTypeFDateTime(c)
		if err != nil {
			return DataType{}, err
		}
		return DataType{Kind: DataDateTimeF, DateTimeF: d}, nil
	case KindTypeJTime:
		d, err := ParseTypeJTime(c)
		if err != nil {
			return DataType{}, err
		}
		return DataType{Kind: DataTime, Time: d}, nil
	case KindTypeIDateTime:
		d, err := ParseTypeIDateTime(c)
		if err != nil {
			return DataType{}, err
		}
		return DataType{Kind: DataDateTimeI, DateTimeI: d}, nil
	case KindTypeKDST:
		d, err := ParseTypeKDST(c)
		if err != nil {
			return DataType{}, err
		}
		return DataType{Kind: DataDST, DST: d}, nil
	default:
		return DataType{}, mbuserr.New(mbuserr.Assertion, "not a date value type")
	}
}

// ParseRecord decodes one DIB+VIB+Data entry: the DIB, the VIB, then the
// payload selected by their conjunction.
func ParseRecord(c *bitio.Cursor) (Record, error) {
	dib, err := ParseDIB(c)
	if err != nil {
		return Record{}, err.(*mbuserr.Error)
	}
	vib, err := ParseVIB(c)
	if err != nil {
		return Record{}, err.(*mbuserr.Error)
	}

	vt := vib.ValueType

	if vt.Kind == KindTypeMDatetime {
		return Record{}, mbuserr.New(mbuserr.Unsupported, "Type M datetime")
	}

	wantWidth, isDate := dateWidthFor(vt.Kind)
	if isDate {
		if dib.RawType.Kind == RawBinary && dib.RawType.Width == wantWidth {
			data, err := parseDate(vt.Kind, c)
			if err != nil {
				return Record{}, err.(*mbuserr.Error)
			}
			return Record{DIB: dib, VIB: vib, Data: data}, nil
		}
		// Width mismatch: fall through to a plain numeric decode of the
		// DIB's actual raw type, with the value type downgraded to
		// Invalid rather than failing outright.
		vt = ValueType{Kind: KindInvalid}
	}

	if dib.RawType.Kind == RawLVAR {
		data, err := parseLVAR(c)
		if err != nil {
			return Record{}, err.(*mbuserr.Error)
		}
		return Record{DIB: dib, VIB: ValueInfoBlock{ValueType: vt, ExtraVIFEs: vib.ExtraVIFEs}, Data: data}, nil
	}

	data, err := parseNumber(dib.RawType, vt, c)
	if err != nil {
		return Record{}, err.(*mbuserr.Error)
	}
	return Record{DIB: dib, VIB: ValueInfoBlock{ValueType: vt, ExtraVIFEs: vib.ExtraVIFEs}, Data: data}, nil
}
