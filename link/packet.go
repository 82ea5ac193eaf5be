package link

import "github.com/meterkit/go-mbus/mbuserr"

const (
	longFrameHeader byte = 0x68
	shortFrameHeader byte = 0x10
	frameTail        byte = 0x16
	ackFrame         byte = 0xE5
)

// Kind tags which Packet variant was parsed.
type Kind int

const (
	KindAck Kind = iota
	KindShort
	KindLong
)

// Packet is the link-layer framer's output: one of an Ack, a
// fixed-length Short frame, or a variable-length Long frame carrying a
// payload slice for the transport layer.
type Packet struct {
	Kind    Kind
	Control Control
	Address byte
	Payload []byte
}

// ParsePacket dispatches on the first byte and parses the remainder of
// the frame. Once a start byte is recognised the parser commits to that
// variant: a malformed short or long frame fails with a precise error
// rather than falling through to try another delimiter.
func ParsePacket(buf []byte) (Packet, error) {
	if len(buf) == 0 {
		return Packet{}, mbuserr.New(mbuserr.Structural, "unexpected end of input").WithContext("frame marker")
	}

	switch buf[0] {
	case ackFrame:
		return Packet{Kind: KindAck}, nil
	case shortFrameHeader:
		p, err := parseShort(buf[1:])
		if err != nil {
			return Packet{}, err.(*mbuserr.Error).WithContext("short frame header")
		}
		return p, nil
	case longFrameHeader:
		p, err := parseLong(buf[1:])
		if err != nil {
			return Packet{}, err.(*mbuserr.Error).WithContext("long frame header")
		}
		return p, nil
	default:
		return Packet{}, mbuserr.New(mbuserr.Framing, "bad start byte")
	}
}

func parseShort(buf []byte) (Packet, error) {
	if len(buf) < 4 {
		return Packet{}, mbuserr.New(mbuserr.Structural, "unexpected end of input")
	}
	rawControl, address, checksum, tail := buf[0], buf[1], buf[2], buf[3]
	if tail != frameTail {
		return Packet{}, mbuserr.New(mbuserr.Framing, "missing tail")
	}
	sum := rawControl + address
	if sum != checksum {
		return Packet{}, mbuserr.New(mbuserr.Framing, "checksum verify")
	}
	control, err := ParseControl(rawControl)
	if err != nil {
		return Packet{}, err
	}
	return Packet{Kind: KindShort, Control: control, Address: address}, nil
}

func parseLong(buf []byte) (Packet, error) {
	if len(buf) < 2 {
		return Packet{}, mbuserr.New(mbuserr.Structural, "unexpected end of input").WithContext("length")
	}
	l1, l2 := buf[0], buf[1]
	if l1 != l2 {
		return Packet{}, mbuserr.New(mbuserr.Framing, "length confirmation")
	}
	buf = buf[2:]
	if len(buf) < 1 || buf[0] != longFrameHeader {
		return Packet{}, mbuserr.New(mbuserr.Framing, "frame marker")
	}
	buf = buf[1:]
	if len(buf) < 2 {
		return Packet{}, mbuserr.New(mbuserr.Structural, "unexpected end of input").WithContext("control byte")
	}
	rawControl, address := buf[0], buf[1]
	buf = buf[2:]

	length := int(l1)
	if length < 2 {
		return Packet{}, mbuserr.New(mbuserr.Framing, "length confirmation")
	}
	payloadLen := length - 2
	if len(buf) < payloadLen+2 {
		return Packet{}, mbuserr.New(mbuserr.Structural, "unexpected end of input").WithContext("packet data")
	}
	payload := buf[:payloadLen]
	checksum := buf[payloadLen]
	tail := buf[payloadLen+1]
	if tail != frameTail {
		return Packet{}, mbuserr.New(mbuserr.Framing, "missing tail")
	}

	var sum byte
	for _, b := range payload {
		sum += b
	}
	sum += rawControl + address
	if sum != checksum {
		return Packet{}, mbuserr.New(mbuserr.Framing, "checksum verify")
	}

	control, err := ParseControl(rawControl)
	if err != nil {
		return Packet{}, err
	}
	return Packet{Kind: KindLong, Control: control, Address: address, Payload: payload}, nil
}

// Checksum recomputes the (control + address + Σpayload) mod 256 checksum
// a Long packet's trailer byte should equal, for round-trip tests.
func Checksum(control, address byte, payload []byte) byte {
	sum := control + address
	for _, b := range payload {
		sum += b
	}
	return sum
}
