// Package transport implements the M-Bus transport layer (EN 13757-3
// §5-6): CI byte dispatch, the short and long TPL headers, the
// meter-status bitfield, the security-mode field, and the manufacturer
// code. Its bitfield types follow the same ParseXxx(byte)/Value() idiom
// used throughout this decoder, adapted from IEC 60870-5 application
// fields to M-Bus transport fields.
package transport

import (
	"encoding/binary"

	"github.com/meterkit/go-mbus/mbuserr"
)

// ApplicationState is the 2-bit application-status field packed into
// MeterStatus.
type ApplicationState byte

const (
	ApplicationNone  ApplicationState = 0
	ApplicationBusy  ApplicationState = 1
	ApplicationError ApplicationState = 2
	ApplicationAlarm ApplicationState = 3
)

func (a ApplicationState) String() string {
	switch a {
	case ApplicationNone:
		return "none"
	case ApplicationBusy:
		return "busy"
	case ApplicationError:
		return "error"
	case ApplicationAlarm:
		return "alarm"
	default:
		return "unknown"
	}
}

// MeterStatus is the one-byte status field: three
// manufacturer-defined bits, two warning/failure bits, and the 2-bit
// application state, packed MSB first as {mfr[3], temporary_error,
// permanent_error, power_low, application(2)}.
type MeterStatus struct {
	ManufacturerBits [3]bool
	TemporaryError   bool
	PermanentError   bool
	PowerLow         bool
	Application      ApplicationState
}

// ParseMeterStatus decodes the status byte.
func ParseMeterStatus(b byte) MeterStatus {
	return MeterStatus{
		ManufacturerBits: [3]bool{b&0x80 != 0, b&0x40 != 0, b&0x20 != 0},
		TemporaryError:   b&0x10 != 0,
		PermanentError:   b&0x08 != 0,
		PowerLow:         b&0x04 != 0,
		Application:      ApplicationState(b & 0x03),
	}
}

// Value re-encodes MeterStatus to its wire byte.
func (s MeterStatus) Value() byte {
	var b byte
	if s.ManufacturerBits[0] {
		b |= 0x80
	}
	if s.ManufacturerBits[1] {
		b |= 0x40
	}
	if s.ManufacturerBits[2] {
		b |= 0x20
	}
	if s.TemporaryError {
		b |= 0x10
	}
	if s.PermanentError {
		b |= 0x08
	}
	if s.PowerLow {
		b |= 0x04
	}
	b |= byte(s.Application) & 0x03
	return b
}

// SecurityMode is the 5-bit encryption-mode field carried in the TPL
// configuration field. Only mode 0 ("none") is understood further; modes
// 6/11/12/14/16-31 are admitted as Reserved since real meters emit them.
// Any other nonzero mode fails as Unsupported.
type SecurityMode struct {
	Mode     byte
	InfoHigh byte // 3 bits
	InfoLow  byte // 8 bits

	// Reserved is true for modes 6, 11, 12, 14, 16-31: these are
	// recognised-but-unsupported rather than an outright parse failure,
	// since meters in the field do emit them.
	Reserved bool
}

// IsNone reports whether no security (encryption) is in use.
func (s SecurityMode) IsNone() bool {
	return s.Mode == 0
}

func isReservedSecurityMode(mode byte) bool {
	switch {
	case mode == 6, mode == 11, mode == 12, mode == 14:
		return true
	case mode >= 16 && mode <= 31:
		return true
	default:
		return false
	}
}

// ParseSecurityMode decodes the 2-byte little-endian configuration field
// into its 5-bit mode, 3-bit info-high and 8-bit info-low fields.
func ParseSecurityMode(raw uint16) (SecurityMode, error) {
	mode := byte(raw>>11) & 0x1F
	infoHigh := byte(raw>>8) & 0x07
	infoLow := byte(raw)

	sm := SecurityMode{Mode: mode, InfoHigh: infoHigh, InfoLow: infoLow}
	if mode == 0 {
		return sm, nil
	}
	if isReservedSecurityMode(mode) {
		sm.Reserved = true
		return sm, nil
	}
	return SecurityMode{}, mbuserr.New(mbuserr.Unsupported, "security mode").WithContext("tpl configuration field")
}

// ExtraHeader is a placeholder for the security-mode-dependent extra
// header bytes (e.g. an initialization vector for encrypted payloads).
// Decoding their contents is out of scope; the field only records that a
// nonzero security mode implies they exist on the wire.
type ExtraHeader struct{}

// ShortHeader is the TPL short header.
type ShortHeader struct {
	AccessNumber  byte
	Status        MeterStatus
	Security      SecurityMode
	ExtraHeader   *ExtraHeader
}

// ParseShortHeader reads {access_number, status, security_mode(2 bytes
// LE)} from buf and returns the header plus the number of bytes consumed.
func ParseShortHeader(buf []byte) (ShortHeader, int, error) {
	if len(buf) < 4 {
		return ShortHeader{}, 0, mbuserr.New(mbuserr.Structural, "unexpected end of input").WithContext("short header")
	}
	accessNumber := buf[0]
	status := ParseMeterStatus(buf[1])
	raw := binary.LittleEndian.Uint16(buf[2:4])
	security, err := ParseSecurityMode(raw)
	if err != nil {
		return ShortHeader{}, 0, err.(*mbuserr.Error).WithContext("short header")
	}
	h := ShortHeader{AccessNumber: accessNumber, Status: status, Security: security}
	if !security.IsNone() {
		h.ExtraHeader = &ExtraHeader{}
	}
	return h, 4, nil
}

// LongHeader is the TPL long header: identifier, manufacturer,
// device name, version and device type, followed by the short-header
// fields.
type LongHeader struct {
	Identifier   uint32
	RawIdentifierBCD [4]byte
	Manufacturer string
	DeviceName   string // "" when unknown; lookup is a leaf collaborator
	Version      byte
	DeviceType   DeviceType
	ShortHeader
}

// ParseLongHeader reads the 4-byte BCD identifier, 2-byte manufacturer
// code, version and device type, then delegates the rest to
// ParseShortHeader, and returns the header plus bytes consumed.
func ParseLongHeader(buf []byte) (LongHeader, int, error) {
	if len(buf) < 8 {
		return LongHeader{}, 0, mbuserr.New(mbuserr.Structural, "unexpected end of input").WithContext("long header")
	}
	rawID := [4]byte{buf[0], buf[1], buf[2], buf[3]}
	identifier, err := decodeIdentifierBCD(rawID)
	if err != nil {
		return LongHeader{}, 0, err.(*mbuserr.Error).WithContext("device identifier").WithContext("long header")
	}

	rawManufacturer := binary.LittleEndian.Uint16(buf[4:6])
	manufacturer, err := UnpackManufacturerCode(rawManufacturer)
	if err != nil {
		return LongHeader{}, 0, err.(*mbuserr.Error).WithContext("manufacturer").WithContext("long header")
	}

	version := buf[6]
	deviceType := ParseDeviceType(buf[7])

	short, n, err := ParseShortHeader(buf[8:])
	if err != nil {
		return LongHeader{}, 0, err
	}

	effectiveVersion := version
	if isVersionByte3Manufacturer(manufacturer) {
		effectiveVersion = rawID[3]
	}

	h := LongHeader{
		Identifier:       identifier,
		RawIdentifierBCD: rawID,
		Manufacturer:     manufacturer,
		DeviceName:       lookupDeviceName(rawID, manufacturer, version, deviceType),
		Version:          effectiveVersion,
		DeviceType:       deviceType,
		ShortHeader:      short,
	}
	return h, 8 + n, nil
}

// decodeIdentifierBCD decodes the 4-byte little-endian-ordered BCD
// identifier field (EN 13757-3 §6, primary identification number).
func decodeIdentifierBCD(raw [4]byte) (uint32, error) {
	var v uint32
	for i := 3; i >= 0; i-- {
		b := raw[i]
		hi, lo := b>>4, b&0x0F
		if hi > 9 || lo > 9 {
			return 0, mbuserr.New(mbuserr.Value, "BCD nibble")
		}
		v = v*100 + uint32(hi)*10 + uint32(lo)
	}
	return v, nil
}

// TPLHeader is the decoded transport-protocol-layer header: none, short,
// or long.
type TPLHeader struct {
	Shape HeaderShape
	Short ShortHeader
	Long  LongHeader
}

// HeaderShape tags which TPLHeader variant is populated.
type HeaderShape int

const (
	HeaderNone HeaderShape = iota
	HeaderShort
	HeaderLong
)
