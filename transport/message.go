package transport

import (
	"github.com/meterkit/go-mbus/mbuserr"
	"github.com/meterkit/go-mbus/record"
)

// Message is implemented by every decoded application message, one
// variant per CI byte range EN 13757-3 Annex A defines. Go has no sum
// types, so each variant is its own struct satisfying this common
// interface instead of one tagged union; a plain interface fits better
// than a hand-rolled discriminator since every variant already carries a
// distinct Go type.
type Message interface {
	CI() byte
	Header() TPLHeader
}

type baseMessage struct {
	ci     byte
	header TPLHeader
}

func (m baseMessage) CI() byte         { return m.ci }
func (m baseMessage) Header() TPLHeader { return m.header }

// ApplicationReset corresponds to CI 0x50/0x53 with an empty body.
type ApplicationReset struct{ baseMessage }

// ApplicationSelect corresponds to CI 0x50/0x53 with a non-empty body.
type ApplicationSelect struct {
	baseMessage
	Data []byte
}

// SelectedApplicationRequest is CI 0x54/0x55.
type SelectedApplicationRequest struct{ baseMessage }

// SelectedApplicationResponse is CI 0x66..=0x68.
type SelectedApplicationResponse struct {
	baseMessage
	Data []byte
}

// SelectionOfDevice is CI 0x52.
type SelectionOfDevice struct {
	baseMessage
	Data []byte
}

// SetBaudRateMessage is CI 0xB8..=0xBF.
type SetBaudRateMessage struct {
	baseMessage
	Rate BaudRate
}

// SynchroniseAction is CI 0x5C.
type SynchroniseAction struct{ baseMessage }

// TimeSyncToDevice is CI 0x6C.
type TimeSyncToDevice struct {
	baseMessage
	Data []byte
}

// TimeAdjustmentToDevice is CI 0x6D.
type TimeAdjustmentToDevice struct {
	baseMessage
	Data []byte
}

// AlarmFromDevice is CI 0x71/0x74/0x75.
type AlarmFromDevice struct {
	baseMessage
	Data []byte
}

// ApplicationErrorFromDevice is CI 0x6E..=0x70.
type ApplicationErrorFromDevice struct {
	baseMessage
	Error ApplicationError
}

// CommandToDevice is CI 0x51/0x5A/0x5B.
type CommandToDevice struct {
	baseMessage
	Data []byte
}

// ResponseFromDevice is CI 0x72/0x78/0x7A: the main data path, carrying a
// fully-decoded application-layer Frame.
type ResponseFromDevice struct {
	baseMessage
	Frame record.Frame
}

// Dlms is the DLMS/COSEM catch-all, CI 0x00..=0x1F (no header) and
// 0x60/0x61/0x7C/0x7D (which carry the header ClassifyHeaderShape selects).
type Dlms struct {
	baseMessage
	Data []byte
}

// SpecificUsage is CI 0x5F/0x9E/0x9F.
type SpecificUsage struct {
	baseMessage
	Data []byte
}

// Wireless is CI 0x80..=0x83/0x86..=0x8F (wireless M-Bus radio profiles;
// decoding these further is out of scope).
type Wireless struct{ baseMessage }

// AuthenticationAndFragmentation is CI 0x90.
type AuthenticationAndFragmentation struct {
	baseMessage
	Data []byte
}

// ManufacturerSpecificMessage is CI 0xA0..=0xB7.
type ManufacturerSpecificMessage struct {
	baseMessage
	Data []byte
}

// ImageTransfer is CI 0xC0..=0xC2 (out of scope beyond raw capture).
type ImageTransfer struct {
	baseMessage
	Data []byte
}

// SecurityTransfer is CI 0xC3..=0xC5 (out of scope beyond raw capture).
type SecurityTransfer struct {
	baseMessage
	Data []byte
}

func parseHeader(ci byte, buf []byte) (TPLHeader, int, error) {
	shape, err := ClassifyHeaderShape(ci)
	if err != nil {
		return TPLHeader{}, 0, err
	}
	switch shape {
	case HeaderNone:
		return TPLHeader{Shape: HeaderNone}, 0, nil
	case HeaderShort:
		h, n, err := ParseShortHeader(buf)
		if err != nil {
			return TPLHeader{}, 0, err.(*mbuserr.Error).WithContext("short header")
		}
		return TPLHeader{Shape: HeaderShort, Short: h}, n, nil
	case HeaderLong:
		h, n, err := ParseLongHeader(buf)
		if err != nil {
			return TPLHeader{}, 0, err.(*mbuserr.Error).WithContext("long header")
		}
		return TPLHeader{Shape: HeaderLong, Long: h}, n, nil
	default:
		return TPLHeader{}, 0, mbuserr.New(mbuserr.Assertion, "unknown header shape")
	}
}

// ParseMessage reads the CI byte, parses its header, and dispatches to
// the appropriate body parser.
func ParseMessage(buf []byte) (Message, error) {
	if len(buf) == 0 {
		return nil, mbuserr.New(mbuserr.Structural, "unexpected end of input").WithContext("CI field")
	}
	ci := buf[0]
	rest := buf[1:]

	header, n, err := parseHeader(ci, rest)
	if err != nil {
		return nil, err
	}
	body := rest[n:]
	base := baseMessage{ci: ci, header: header}

	switch {
	case ci <= 0x1F, ci == 0x60, ci == 0x61, ci == 0x7C, ci == 0x7D:
		return Dlms{baseMessage: base, Data: body}, nil
	case ci == 0x5F, ci == 0x9E, ci == 0x9F:
		return SpecificUsage{baseMessage: base, Data: body}, nil
	case ci >= 0x80 && ci <= 0x83, ci >= 0x86 && ci <= 0x8F:
		return Wireless{baseMessage: base}, nil
	case ci == 0x90:
		return AuthenticationAndFragmentation{baseMessage: base, Data: body}, nil
	case ci >= 0xA0 && ci <= 0xB7:
		return ManufacturerSpecificMessage{baseMessage: base, Data: body}, nil
	case ci >= 0xC0 && ci <= 0xC2:
		return ImageTransfer{baseMessage: base, Data: body}, nil
	case ci >= 0xC3 && ci <= 0xC5:
		return SecurityTransfer{baseMessage: base, Data: body}, nil
	case ci == 0x50, ci == 0x53:
		if len(body) == 0 {
			return ApplicationReset{baseMessage: base}, nil
		}
		return ApplicationSelect{baseMessage: base, Data: body}, nil
	case ci == 0x54, ci == 0x55:
		return SelectedApplicationRequest{baseMessage: base}, nil
	case ci >= 0x66 && ci <= 0x68:
		return SelectedApplicationResponse{baseMessage: base, Data: body}, nil
	case ci == 0x52:
		return SelectionOfDevice{baseMessage: base, Data: body}, nil
	case ci == 0x5C:
		return SynchroniseAction{baseMessage: base}, nil
	case ci >= 0xB8 && ci <= 0xBF:
		rate, err := ParseBaudRate(ci)
		if err != nil {
			return nil, err
		}
		return SetBaudRateMessage{baseMessage: base, Rate: rate}, nil
	case ci == 0x6C:
		return TimeSyncToDevice{baseMessage: base, Data: body}, nil
	case ci == 0x6D:
		return TimeAdjustmentToDevice{baseMessage: base, Data: body}, nil
	case ci == 0x51, ci == 0x5A, ci == 0x5B:
		return CommandToDevice{baseMessage: base, Data: body}, nil
	case ci >= 0x69 && ci <= 0x6B:
		return nil, mbuserr.New(mbuserr.Unsupported, "format frame")
	case ci >= 0x6E && ci <= 0x70:
		appErr, err := ParseApplicationError(body)
		if err != nil {
			return nil, err
		}
		return ApplicationErrorFromDevice{baseMessage: base, Error: appErr}, nil
	case ci == 0x71, ci == 0x74, ci == 0x75:
		return AlarmFromDevice{baseMessage: base, Data: body}, nil
	case ci == 0x72, ci == 0x78, ci == 0x7A:
		frame, err := record.ParseFrame(body)
		if err != nil {
			return nil, err
		}
		return ResponseFromDevice{baseMessage: base, Frame: frame}, nil
	case ci == 0x73, ci == 0x79, ci == 0x7B:
		return nil, mbuserr.New(mbuserr.Unsupported, "compact frame")
	default:
		return nil, mbuserr.New(mbuserr.Structural, "reserved CI field")
	}
}
