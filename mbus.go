// Package mbus decodes M-Bus (Meter-Bus) telegrams: the binary wire
// format defined by EN 13757-2/3 and IEC 60870-5-2 used by utility
// meters for consumption reporting. ParsePacket is the sole public
// entry point; the link, transport, and record subpackages expose their
// own leaf parsers for callers working directly on extracted slices.
package mbus

import (
	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/link"
	"github.com/meterkit/go-mbus/mbuserr"
	"github.com/meterkit/go-mbus/record"
	"github.com/meterkit/go-mbus/transport"
)

// Packet is the fully-decoded result of one telegram: the link-layer
// envelope plus, for a Long frame whose CI byte resolves to a known
// transport message, the decoded Message.
type Packet struct {
	Kind    link.Kind
	Control link.Control
	Address byte
	Payload []byte
	Message transport.Message
}

// ParsePacket decodes a complete telegram byte buffer: link-layer
// framing (§4.1), then for a Long frame the transport-layer CI dispatch
// and, where CI selects it, the application-layer Frame of records
// (§4.2-4.6).
func ParsePacket(buf []byte) (Packet, error) {
	pkt, err := link.ParsePacket(buf)
	if err != nil {
		return Packet{}, err.(*mbuserr.Error)
	}

	result := Packet{
		Kind:    pkt.Kind,
		Control: pkt.Control,
		Address: pkt.Address,
		Payload: pkt.Payload,
	}

	if pkt.Kind != link.KindLong {
		return result, nil
	}

	msg, err := transport.ParseMessage(pkt.Payload)
	if err != nil {
		return Packet{}, err.(*mbuserr.Error).WithContext("telegram")
	}
	result.Message = msg
	return result, nil
}

// ParseControlByte decodes a standalone link-layer control byte.
func ParseControlByte(b byte) (link.Control, error) {
	return link.ParseControl(b)
}

// ParseLongHeader decodes a standalone long TPL header from an extracted
// slice, returning the number of bytes consumed alongside the header.
func ParseLongHeader(buf []byte) (transport.LongHeader, int, error) {
	return transport.ParseLongHeader(buf)
}

// ParseShortHeader decodes a standalone short TPL header from an
// extracted slice, returning the number of bytes consumed alongside the
// header.
func ParseShortHeader(buf []byte) (transport.ShortHeader, int, error) {
	return transport.ParseShortHeader(buf)
}

// ParseRecordFrame decodes a standalone application-layer Frame (a
// record stream) from an extracted slice.
func ParseRecordFrame(buf []byte) (record.Frame, error) {
	return record.ParseFrame(buf)
}

// ParseRecord decodes a single DIB+VIB+Data record from the start of buf,
// returning the number of bytes consumed alongside it.
func ParseRecord(buf []byte) (record.Record, int, error) {
	c := bitio.New(buf)
	r, err := record.ParseRecord(c)
	if err != nil {
		return record.Record{}, 0, err
	}
	return r, len(buf) - c.Len(), nil
}

// ParseBCD decodes an n-byte BCD number from the start of buf.
func ParseBCD(n int, buf []byte) (int64, error) {
	return record.ParseBCD(n, bitio.New(buf))
}

// ParseBinarySigned decodes an n-byte little-endian signed integer from
// the start of buf.
func ParseBinarySigned(n int, buf []byte) (int64, error) {
	return record.ParseBinarySigned(n, bitio.New(buf))
}

// ParseBinaryUnsigned decodes an n-byte little-endian unsigned integer
// from the start of buf.
func ParseBinaryUnsigned(n int, buf []byte) (uint64, error) {
	return record.ParseBinaryUnsigned(n, bitio.New(buf))
}

// ParseReal decodes a 4-byte little-endian IEEE-754 single from the
// start of buf.
func ParseReal(buf []byte) (float32, error) {
	return record.ParseReal(bitio.New(buf))
}

// ParseLatin1 decodes an L-byte Windows-1252 string (reversed on the
// wire) from the start of buf.
func ParseLatin1(l int, buf []byte) (string, error) {
	return record.ParseLatin1(l, bitio.New(buf))
}

// ParseLengthPrefixASCII decodes a length-prefixed ASCII string
// (reversed on the wire) from the start of buf.
func ParseLengthPrefixASCII(buf []byte) (string, error) {
	return record.ParseLengthPrefixASCII(bitio.New(buf))
}

// ParseTypeGDate decodes a 2-byte Type G date from the start of buf.
func ParseTypeGDate(buf []byte) (record.TypeGDate, error) {
	return record.ParseTypeGDate(bitio.New(buf))
}

// ParseTypeFDateTime decodes a 4-byte Type F date-time from the start of
// buf.
func ParseTypeFDateTime(buf []byte) (record.TypeFDateTime, error) {
	return record.ParseTypeFDateTime(bitio.New(buf))
}

// ParseTypeIDateTime decodes a 6-byte Type I date-time from the start of
// buf.
func ParseTypeIDateTime(buf []byte) (record.TypeIDateTime, error) {
	return record.ParseTypeIDateTime(bitio.New(buf))
}

// ParseTypeJTime decodes a 3-byte Type J time from the start of buf.
func ParseTypeJTime(buf []byte) (record.TypeJTime, error) {
	return record.ParseTypeJTime(bitio.New(buf))
}

// ParseTypeKDST decodes a 4-byte Type K DST schedule from the start of
// buf.
func ParseTypeKDST(buf []byte) (record.TypeKDST, error) {
	return record.ParseTypeKDST(bitio.New(buf))
}
