// Package record implements the M-Bus application-layer record decoder:
// the Frame reader, the DIB and VIB self-describing extension chains,
// and the primitive value decoders (BCD, binary, real, LVAR, and the
// five date/time encodings) that the DIB/VIB conjunction selects
// between. Its small bitfield types follow the ParseXxx naming IEC
// 60870-5 information-element codecs use, adapted from byte-granularity
// fields to the bit-granularity fields M-Bus packs into DIB and VIB
// bytes; they are decode-only and have no Value() re-encoder.
package record

import (
	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/mbuserr"
)

// RawDataTypeKind tags which RawDataType variant is populated.
type RawDataTypeKind int

const (
	RawNone RawDataTypeKind = iota
	RawBinary
	RawReal
	RawBCD
	RawLVAR
)

// RawDataType is the DIB's raw-type field decoded into a usable shape:
// a byte width for Binary and BCD, nothing extra for None/Real/LVAR.
type RawDataType struct {
	Kind  RawDataTypeKind
	Width int // meaningful for RawBinary and RawBCD
}

func parseRawDataType(nibble byte) (RawDataType, error) {
	switch {
	case nibble == 0b0000:
		return RawDataType{Kind: RawNone}, nil
	case nibble >= 0b0001 && nibble <= 0b0100, nibble == 0b0110:
		return RawDataType{Kind: RawBinary, Width: int(nibble)}, nil
	case nibble == 0b0111:
		return RawDataType{Kind: RawBinary, Width: 8}, nil
	case nibble >= 0b1001 && nibble <= 0b1100, nibble == 0b1110:
		return RawDataType{Kind: RawBCD, Width: int(nibble - 0b1000)}, nil
	case nibble == 0b0101:
		return RawDataType{Kind: RawReal}, nil
	case nibble == 0b1101:
		return RawDataType{Kind: RawLVAR}, nil
	case nibble == 0b1000:
		return RawDataType{}, mbuserr.New(mbuserr.Unsupported, "selection for readout")
	default: // 0b1111
		return RawDataType{}, mbuserr.New(mbuserr.Structural, "reserved DIB raw-type")
	}
}

// DataFunction is the DIB's 2-bit function field.
type DataFunction int

const (
	Instantaneous DataFunction = iota
	Max
	Min
	DuringError
)

func parseDataFunction(bits byte) DataFunction {
	return DataFunction(bits)
}

func (f DataFunction) String() string {
	switch f {
	case Instantaneous:
		return "instantaneous"
	case Max:
		return "max"
	case Min:
		return "min"
	case DuringError:
		return "during error"
	default:
		return "unknown"
	}
}

const maxDIFEChain = 10

// DataInfoBlock is the decoded data-information block (EN 13757-3
// Annex A).
type DataInfoBlock struct {
	RawType  RawDataType
	Function DataFunction
	Storage  uint64
	Tariff   uint32
	Device   uint16
	IsOBIS   bool
}

// ParseDIB decodes the DIB byte and its DIFE extension chain from a bit
// cursor. The cursor must be byte-aligned on entry and is byte-aligned on
// exit (each DIB/DIFE byte is a whole number of bits).
func ParseDIB(c *bitio.Cursor) (DataInfoBlock, error) {
	extBit, err := c.Bit()
	if err != nil {
		return DataInfoBlock{}, err.(*mbuserr.Error).WithContext("DIB")
	}
	storageLSB, err := c.Bits(1)
	if err != nil {
		return DataInfoBlock{}, err.(*mbuserr.Error).WithContext("DIB")
	}
	functionBits, err := c.Bits(2)
	if err != nil {
		return DataInfoBlock{}, err.(*mbuserr.Error).WithContext("DIB")
	}
	rawTypeBits, err := c.Bits(4)
	if err != nil {
		return DataInfoBlock{}, err.(*mbuserr.Error).WithContext("DIB")
	}
	rawType, err := parseRawDataType(byte(rawTypeBits))
	if err != nil {
		return DataInfoBlock{}, err.(*mbuserr.Error).WithContext("DIB")
	}

	dib := DataInfoBlock{
		RawType:  rawType,
		Function: parseDataFunction(byte(functionBits)),
		Storage:  storageLSB,
	}

	extension := extBit
	for i := 1; extension; i++ {
		if i > maxDIFEChain {
			return DataInfoBlock{}, mbuserr.New(mbuserr.Structural, "Packet has more than 10 DIFEs!")
		}

		nextExt, err := c.Bit()
		if err != nil {
			return DataInfoBlock{}, err.(*mbuserr.Error).WithContext("DIFE")
		}
		device, err := c.Bits(1)
		if err != nil {
			return DataInfoBlock{}, err.(*mbuserr.Error).WithContext("DIFE")
		}
		tariff, err := c.Bits(2)
		if err != nil {
			return DataInfoBlock{}, err.(*mbuserr.Error).WithContext("DIFE")
		}
		storage, err := c.Bits(4)
		if err != nil {
			return DataInfoBlock{}, err.(*mbuserr.Error).WithContext("DIFE")
		}

		// A terminal DIFE (extension cleared) whose remaining fields are
		// all zero marks an OBIS-addressed record rather than an
		// unsupported "OBIS registers" error.
		if !nextExt && device == 0 && tariff == 0 && storage == 0 {
			dib.IsOBIS = true
			extension = false
			break
		}

		dib.Device += uint16(device) << uint(i)
		dib.Tariff += uint32(tariff) << uint(2*i)
		dib.Storage += storage << uint(4*i)
		extension = nextExt
	}

	return dib, nil
}
