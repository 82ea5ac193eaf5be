package record

import (
	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/mbuserr"
)

const (
	moreDataFollows     byte = 0x1F
	endMarkerNoMoreData byte = 0x0F
	idleFiller          byte = 0x2F
)

// Frame is the application-layer payload (EN 13757-3 §6): an ordered
// sequence of records, a flag for whether more records follow in a
// subsequent telegram, and any trailer bytes captured verbatim once the
// terminator is seen.
type Frame struct {
	Records             []Record
	MoreDataFollows     bool
	ManufacturerSpecific []byte
}

// ParseFrame reads records until end-of-input, a 0x1F more-data marker,
// or a 0x0F end marker, skipping 0x2F idle-filler bytes between records,
// and capturing anything left after the terminator verbatim.
func ParseFrame(buf []byte) (Frame, error) {
	c := bitio.New(buf)
	var frame Frame

	for {
		if c.AtEOF() {
			frame.MoreDataFollows = false
			return frame, nil
		}

		b, err := c.PeekByte()
		if err != nil {
			return Frame{}, err.(*mbuserr.Error).WithContext("frame")
		}

		if b == moreDataFollows {
			if _, err := c.Byte(); err != nil {
				return Frame{}, err.(*mbuserr.Error).WithContext("frame")
			}
			frame.MoreDataFollows = true
			frame.ManufacturerSpecific = c.Remaining()
			return frame, nil
		}

		if b == endMarkerNoMoreData {
			if _, err := c.Byte(); err != nil {
				return Frame{}, err.(*mbuserr.Error).WithContext("frame")
			}
			frame.MoreDataFollows = false
			frame.ManufacturerSpecific = c.Remaining()
			return frame, nil
		}

		if b == idleFiller {
			if _, err := c.Byte(); err != nil {
				return Frame{}, err.(*mbuserr.Error).WithContext("frame")
			}
			continue
		}

		record, err := ParseRecord(c)
		if err != nil {
			return Frame{}, err.(*mbuserr.Error).WithContext("record")
		}
		frame.Records = append(frame.Records, record)
	}
}
