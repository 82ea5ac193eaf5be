package transport

import "github.com/meterkit/go-mbus/mbuserr"

// ApplicationErrorCode enumerates the M-Bus application-layer error
// report carried in the CI 0x6E..=0x70 ApplicationErrorMessage bodies
// (EN 13757-3 Annex A error-code table).
type ApplicationErrorCode int

const (
	ErrUnspecified ApplicationErrorCode = iota
	ErrCIFieldError
	ErrBufferOverflow
	ErrRecordOverflow
	ErrRecordError
	ErrDIFEOverflow
	ErrVIFEOverflow
	ErrApplicationBusy
	ErrCreditOverflow
	ErrNoFunction
	ErrDataError
	ErrRoutingOrRelaying
	ErrAccessViolation
	ErrParameterError
	ErrSizeError
	ErrSecurityError
	ErrSecurityMechanismNotSupported
	ErrInadequateSecurityMethod
	ErrDynamic
	ErrManufacturerSpecific
)

var applicationErrorCodeByByte = map[byte]ApplicationErrorCode{
	0x00: ErrUnspecified,
	0x01: ErrCIFieldError,
	0x02: ErrBufferOverflow,
	0x03: ErrRecordOverflow,
	0x04: ErrRecordError,
	0x05: ErrDIFEOverflow,
	0x06: ErrVIFEOverflow,
	0x08: ErrApplicationBusy,
	0x09: ErrCreditOverflow,
	0x11: ErrNoFunction,
	0x12: ErrDataError,
	0x13: ErrRoutingOrRelaying,
	0x14: ErrAccessViolation,
	0x15: ErrParameterError,
	0x16: ErrSizeError,
	0x20: ErrSecurityError,
	0x21: ErrSecurityMechanismNotSupported,
	0x22: ErrInadequateSecurityMethod,
}

// ApplicationError is the decoded ApplicationErrorMessage body. DynamicData
// carries the embedded record bytes for error code 0xF0 (decoding that
// record is left to the caller via record.ParseRecord, to avoid an import
// cycle between transport and record); ManufacturerData carries the
// trailing bytes for 0xF1..=0xFF.
type ApplicationError struct {
	Code            ApplicationErrorCode
	RawCode         byte
	DynamicData     []byte
	ManufacturerData []byte
}

// ParseApplicationError decodes an ApplicationErrorMessage body. An empty
// buf is a legitimate "no error code sent" condition decoding to
// ErrUnspecified, not a truncation failure.
func ParseApplicationError(buf []byte) (ApplicationError, error) {
	if len(buf) == 0 {
		return ApplicationError{Code: ErrUnspecified}, nil
	}
	code := buf[0]
	rest := buf[1:]

	if known, ok := applicationErrorCodeByByte[code]; ok {
		return ApplicationError{Code: known, RawCode: code}, nil
	}
	if code == 0xF0 {
		return ApplicationError{Code: ErrDynamic, RawCode: code, DynamicData: rest}, nil
	}
	if code >= 0xF1 {
		return ApplicationError{Code: ErrManufacturerSpecific, RawCode: code, ManufacturerData: rest}, nil
	}
	return ApplicationError{}, mbuserr.New(mbuserr.Structural, "reserved error code")
}
