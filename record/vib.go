package record

import (
	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/mbuserr"
)

// Unit is a physical unit tag carried alongside a decimal exponent by
// many ValueType variants.
type Unit string

const (
	UnitNone  Unit = ""
	UnitWh    Unit = "Wh"
	UnitJ     Unit = "J"
	UnitM3    Unit = "m3"
	UnitKg    Unit = "kg"
	UnitW     Unit = "W"
	UnitJph   Unit = "J/h"
	UnitC     Unit = "C"
	UnitK     Unit = "K"
	UnitBar   Unit = "bar"
	UnitPct   Unit = "%"
	UnitV     Unit = "V"
	UnitA     Unit = "A"
	UnitHz    Unit = "Hz"
	UnitS     Unit = "s"
	UnitVARh  Unit = "VARh"
	UnitVAh   Unit = "VAh"
	UnitDeg   Unit = "deg"
)

// DurationType is the duration tag many VIF codes carry, decoded from a
// 2-bit ("nn": Seconds/Minutes/Hours/Days) or ("pp": Hours/Days/Months/
// Years) field.
type DurationType int

const (
	DurationSeconds DurationType = iota
	DurationMinutes
	DurationHours
	DurationDays
	DurationMonths
	DurationYears
)

func decodeDurationNN(v byte) DurationType {
	switch v & 0x03 {
	case 0b00:
		return DurationSeconds
	case 0b01:
		return DurationMinutes
	case 0b10:
		return DurationHours
	default:
		return DurationDays
	}
}

func decodeDurationPP(v byte) DurationType {
	switch v & 0x03 {
	case 0b00:
		return DurationHours
	case 0b01:
		return DurationDays
	case 0b10:
		return DurationMonths
	default:
		return DurationYears
	}
}

func (d DurationType) String() string {
	switch d {
	case DurationSeconds:
		return "seconds"
	case DurationMinutes:
		return "minutes"
	case DurationHours:
		return "hours"
	case DurationDays:
		return "days"
	case DurationMonths:
		return "months"
	case DurationYears:
		return "years"
	default:
		return "unknown"
	}
}

// ValueKind discriminates the roughly 120 value-information constructors
// EN 13757-3 Annex A's VIF/VIFE tables describe. Go has no sum types, so
// ValueType is a discriminator-enum-plus-payload struct; only the fields
// relevant to a given Kind are set.
type ValueKind int

const (
	KindEnergy ValueKind = iota
	KindVolume
	KindMass
	KindOnTime
	KindOperatingTime
	KindPower
	KindVolumeFlow
	KindMassFlow
	KindFlowTemperature
	KindReturnTemperature
	KindTemperatureDifference
	KindExternalTemperature
	KindPressure
	KindTypeGDate
	KindTypeFDateTime
	KindTypeIDateTime
	KindTypeJTime
	KindTypeKDST
	KindTypeMDatetime
	KindHCAUnits
	KindAveragingDuration
	KindActualityDuration
	KindFabricationNumber
	KindIdentification
	KindBusAddress

	// Table 12 (main extension): credit/debit, identities, versions,
	// errors, storage, tariff, periods.
	KindCredit
	KindDebit
	KindAccessNumber
	KindMedium
	KindManufacturerID
	KindParameterSet
	KindModelVersion
	KindHardwareVersion
	KindFirmwareVersion
	KindSoftwareVersion
	KindCustomerLocation
	KindCustomer
	KindAccessCodeUser
	KindAccessCodeOperator
	KindAccessCodeSystemOperator
	KindAccessCodeDeveloper
	KindPassword
	KindErrorFlags
	KindErrorMask
	KindDigitalOutput
	KindDigitalInput
	KindBaudRate
	KindResponseDelayTime
	KindRetry
	KindFirstStorageNumber
	KindLastStorageNumber
	KindStorageBlockSize
	KindStorageInterval
	KindDurationSinceLastReadout
	KindTariffStart
	KindTariffDuration
	KindTariffPeriod

	// Table 14 (second-level extension): selected application, battery
	// life.
	KindRemainingBatteryLife
	KindOperatingTimeBattery
	KindDateTimeBatteryChange
	KindSelectedApplication

	// Table 13 (alternate extension): reactive/apparent energy, phases,
	// frequency, voltage, current.
	KindReactiveEnergy
	KindApparentEnergy
	KindVoltage
	KindCurrent
	KindFrequency
	KindPhaseVoltageToVoltage
	KindPhaseVoltageToCurrent

	KindAny
	KindReserved
	KindUnsupported
	KindPlainText
	KindManufacturerSpecific
	KindReservedCode
	KindInvalid
)

// ValueType is the decoded VIF plus its chained VIFEs where they modify
// the unit/exponent.
type ValueType struct {
	Kind          ValueKind
	Unit          Unit
	Exponent      int8
	Duration      DurationType
	Text          string
	ReservedTable int
	ReservedRaw   byte
}

// IsUnsigned reports whether the data payload for this value type should
// be decoded as unsigned rather than signed binary. This only matters
// for raw binary payloads; most physical quantities a meter reports are
// signed (negative flow, negative energy correction, etc.) so only the
// handful of genuinely unsigned fields (counters, identifiers, bitmasks)
// opt in.
func (v ValueType) IsUnsigned() bool {
	switch v.Kind {
	case KindAccessNumber, KindMedium, KindManufacturerID, KindParameterSet,
		KindModelVersion, KindHardwareVersion, KindFirmwareVersion, KindSoftwareVersion,
		KindErrorFlags, KindErrorMask, KindDigitalOutput, KindDigitalInput,
		KindBaudRate, KindResponseDelayTime, KindRetry,
		KindFirstStorageNumber, KindLastStorageNumber, KindStorageBlockSize,
		KindFabricationNumber, KindIdentification, KindBusAddress,
		KindHCAUnits:
		return true
	default:
		return false
	}
}

// IsDate reports whether this value type selects one of the date/time
// primitive decoders rather than a plain numeric one.
func (v ValueType) IsDate() bool {
	switch v.Kind {
	case KindTypeGDate, KindTypeFDateTime, KindTypeIDateTime, KindTypeJTime, KindTypeKDST, KindTypeMDatetime:
		return true
	default:
		return false
	}
}

const (
	vifExtension1    byte = 0b0111_1011 // 0x7B
	vifExtension2    byte = 0b0111_1101 // 0x7D
	vifPlainTextASCII byte = 0b0111_1100 // 0x7C
	vifAny           byte = 0b0111_1110 // 0x7E
	vifManufacturer  byte = 0b0111_1111 // 0x7F
)

// ValueInfoBlock is the decoded value-information block: the resolved
// value type plus any trailing VIFEs this scope doesn't interpret
// further.
type ValueInfoBlock struct {
	ValueType  ValueType
	ExtraVIFEs []byte
}

func parseVIFByte(c *bitio.Cursor) (extension bool, value byte, err error) {
	bit, err := c.Bit()
	if err != nil {
		return false, 0, err
	}
	v, err := c.Bits(7)
	if err != nil {
		return false, 0, err
	}
	return bit, byte(v), nil
}

// ParseVIB decodes the VIB: the initial VIF byte, any extension-table
// byte(s) it selects, the plain-text inline string where applicable, and
// any further VIFEs left unmodeled beyond capturing their raw bytes.
func ParseVIB(c *bitio.Cursor) (ValueInfoBlock, error) {
	extension, rawValue, err := parseVIFByte(c)
	if err != nil {
		return ValueInfoBlock{}, err.(*mbuserr.Error).WithContext("initial VIF")
	}

	var vt ValueType
	isPlainText := false

	switch {
	case rawValue <= 0b0111_1010:
		vt = parseTable10(rawValue)
	case rawValue == vifExtension1:
		if !extension {
			return ValueInfoBlock{}, mbuserr.New(mbuserr.Structural, "VIF extension byte").WithContext("VIB")
		}
		var value byte
		extension, value, err = parseVIFByte(c)
		if err != nil {
			return ValueInfoBlock{}, err.(*mbuserr.Error).WithContext("VIF extension byte")
		}
		vt = parseTable12(value)
	case rawValue == vifExtension2:
		if !extension {
			return ValueInfoBlock{}, mbuserr.New(mbuserr.Structural, "VIF extension byte").WithContext("VIB")
		}
		var value byte
		extension, value, err = parseVIFByte(c)
		if err != nil {
			return ValueInfoBlock{}, err.(*mbuserr.Error).WithContext("VIF extension byte")
		}
		if value == vifExtension2 {
			if !extension {
				return ValueInfoBlock{}, mbuserr.New(mbuserr.Structural, "VIF extension layer 2 byte").WithContext("VIB")
			}
			extension, value, err = parseVIFByte(c)
			if err != nil {
				return ValueInfoBlock{}, err.(*mbuserr.Error).WithContext("VIF extension layer 2 byte")
			}
			vt = parseTable13(value)
		} else {
			vt = parseTable14(value)
		}
	case rawValue == vifPlainTextASCII:
		isPlainText = true
	case rawValue == vifManufacturer:
		vt = ValueType{Kind: KindManufacturerSpecific}
	case rawValue == vifAny:
		vt = ValueType{Kind: KindAny}
	default:
		vt = ValueType{Kind: KindReserved}
	}

	var extraVIFEs []byte
	for extension {
		var value byte
		extension, value, err = parseVIFByte(c)
		if err != nil {
			return ValueInfoBlock{}, err.(*mbuserr.Error).WithContext("VIFE")
		}
		extraVIFEs = append(extraVIFEs, value)
	}

	if isPlainText {
		text, err := parseLengthPrefixASCII(c)
		if err != nil {
			return ValueInfoBlock{}, err.(*mbuserr.Error).WithContext("plain text VIF data")
		}
		vt = ValueType{Kind: KindPlainText, Text: text}
	}

	return ValueInfoBlock{ValueType: vt, ExtraVIFEs: extraVIFEs}, nil
}
