package record

// parseTable10 decodes the primary VIF table (EN 13757-3 Annex A Table
// 10): raw 7-bit codes up to and including 0x7A. The bit groupings
// below follow Annex A directly.
func parseTable10(value byte) ValueType {
	switch {
	case value <= 0x07: // 0000 0nnn: Energy, 10^(nnn-3) Wh
		return ValueType{Kind: KindEnergy, Unit: UnitWh, Exponent: int8(value&0x07) - 3}
	case value <= 0x0F: // 0000 1nnn: Energy, 10^nnn J
		return ValueType{Kind: KindEnergy, Unit: UnitJ, Exponent: int8(value & 0x07)}
	case value <= 0x17: // 0001 0nnn: Volume, 10^(nnn-6) m3
		return ValueType{Kind: KindVolume, Unit: UnitM3, Exponent: int8(value&0x07) - 6}
	case value <= 0x1F: // 0001 1nnn: Mass, 10^(nnn-3) kg
		return ValueType{Kind: KindMass, Unit: UnitKg, Exponent: int8(value&0x07) - 3}
	case value <= 0x23: // 0010 00nn: On Time
		return ValueType{Kind: KindOnTime, Duration: decodeDurationNN(value)}
	case value <= 0x27: // 0010 01nn: Operating Time
		return ValueType{Kind: KindOperatingTime, Duration: decodeDurationNN(value)}
	case value <= 0x2F: // 0010 1nnn: Power, 10^(nnn-3) W
		return ValueType{Kind: KindPower, Unit: UnitW, Exponent: int8(value&0x07) - 3}
	case value <= 0x37: // 0011 0nnn: Power, 10^nnn J/h
		return ValueType{Kind: KindPower, Unit: UnitJph, Exponent: int8(value & 0x07)}
	case value <= 0x3F: // 0011 1nnn: Volume Flow, 10^(nnn-6) m3/h
		return ValueType{Kind: KindVolumeFlow, Unit: UnitM3, Duration: DurationHours, Exponent: int8(value&0x07) - 6}
	case value <= 0x47: // 0100 0nnn: Volume Flow ext, 10^(nnn-7) m3/min
		return ValueType{Kind: KindVolumeFlow, Unit: UnitM3, Duration: DurationMinutes, Exponent: int8(value&0x07) - 7}
	case value <= 0x4F: // 0100 1nnn: Volume Flow ext, 10^(nnn-9) m3/s
		return ValueType{Kind: KindVolumeFlow, Unit: UnitM3, Duration: DurationSeconds, Exponent: int8(value&0x07) - 9}
	case value <= 0x57: // 0101 0nnn: Mass flow, 10^(nnn-3) kg/h
		return ValueType{Kind: KindMassFlow, Unit: UnitKg, Duration: DurationHours, Exponent: int8(value&0x07) - 3}
	case value <= 0x5B: // 0101 10nn: Flow Temperature, 10^(nn-3) C
		return ValueType{Kind: KindFlowTemperature, Unit: UnitC, Exponent: int8(value&0x03) - 3}
	case value <= 0x5F: // 0101 11nn: Return Temperature, 10^(nn-3) C
		return ValueType{Kind: KindReturnTemperature, Unit: UnitC, Exponent: int8(value&0x03) - 3}
	case value <= 0x63: // 0110 00nn: Temperature Difference, 10^(nn-3) K
		return ValueType{Kind: KindTemperatureDifference, Unit: UnitK, Exponent: int8(value&0x03) - 3}
	case value <= 0x67: // 0110 01nn: External Temperature, 10^(nn-3) C
		return ValueType{Kind: KindExternalTemperature, Unit: UnitC, Exponent: int8(value&0x03) - 3}
	case value <= 0x6B: // 0110 10nn: Pressure, 10^(nn-3) bar
		return ValueType{Kind: KindPressure, Unit: UnitBar, Exponent: int8(value&0x03) - 3}
	case value == 0x6C: // 0110 1100: Time Point (date)
		return ValueType{Kind: KindTypeGDate}
	case value == 0x6D: // 0110 1101: Time Point (date/time)
		return ValueType{Kind: KindTypeFDateTime}
	case value == 0x6E: // 0110 1110: Units for H.C.A.
		return ValueType{Kind: KindHCAUnits}
	case value == 0x6F: // 0110 1111: reserved
		return ValueType{Kind: KindReservedCode, ReservedTable: 10, ReservedRaw: value}
	case value <= 0x73: // 0111 00nn: Averaging Duration
		return ValueType{Kind: KindAveragingDuration, Duration: decodeDurationNN(value)}
	case value <= 0x77: // 0111 01nn: Actuality Duration
		return ValueType{Kind: KindActualityDuration, Duration: decodeDurationNN(value)}
	case value == 0x78: // 0111 1000: Fabrication No
		return ValueType{Kind: KindFabricationNumber}
	case value == 0x79: // 0111 1001: (Enhanced) Identification
		return ValueType{Kind: KindIdentification}
	case value == 0x7A: // 0111 1010: Bus Address
		return ValueType{Kind: KindBusAddress}
	default:
		return ValueType{Kind: KindReservedCode, ReservedTable: 10, ReservedRaw: value}
	}
}

// parseTable12 decodes the main extension VIFE table (EN 13757-3 Annex
// A Table 12, selected by a leading 0x7B VIF): identities, versions,
// access control, storage and tariff bookkeeping, and credit/debit.
func parseTable12(value byte) ValueType {
	switch {
	case value <= 0x03: // 0000 00nn: Credit, 10^(nn-3) currency units
		return ValueType{Kind: KindCredit, Exponent: int8(value&0x03) - 3}
	case value <= 0x07: // 0000 01nn: Debit, 10^(nn-3) currency units
		return ValueType{Kind: KindDebit, Exponent: int8(value&0x03) - 3}
	case value == 0x08:
		return ValueType{Kind: KindAccessNumber}
	case value == 0x09:
		return ValueType{Kind: KindMedium}
	case value == 0x0A:
		return ValueType{Kind: KindManufacturerID}
	case value == 0x0B:
		return ValueType{Kind: KindParameterSet}
	case value == 0x0C:
		return ValueType{Kind: KindModelVersion}
	case value == 0x0D:
		return ValueType{Kind: KindHardwareVersion}
	case value == 0x0E:
		return ValueType{Kind: KindFirmwareVersion}
	case value == 0x0F:
		return ValueType{Kind: KindSoftwareVersion}
	case value == 0x10:
		return ValueType{Kind: KindCustomerLocation}
	case value == 0x11:
		return ValueType{Kind: KindCustomer}
	case value == 0x12:
		return ValueType{Kind: KindAccessCodeUser}
	case value == 0x13:
		return ValueType{Kind: KindAccessCodeOperator}
	case value == 0x14:
		return ValueType{Kind: KindAccessCodeSystemOperator}
	case value == 0x15:
		return ValueType{Kind: KindAccessCodeDeveloper}
	case value == 0x16:
		return ValueType{Kind: KindPassword}
	case value == 0x17:
		return ValueType{Kind: KindErrorFlags}
	case value == 0x18:
		return ValueType{Kind: KindErrorMask}
	case value == 0x1A:
		return ValueType{Kind: KindDigitalOutput}
	case value == 0x1B:
		return ValueType{Kind: KindDigitalInput}
	case value == 0x1C:
		return ValueType{Kind: KindBaudRate}
	case value == 0x1D:
		return ValueType{Kind: KindResponseDelayTime}
	case value == 0x1E:
		return ValueType{Kind: KindRetry}
	case value == 0x20:
		return ValueType{Kind: KindFirstStorageNumber}
	case value == 0x21:
		return ValueType{Kind: KindLastStorageNumber}
	case value == 0x22:
		return ValueType{Kind: KindStorageBlockSize}
	case value >= 0x24 && value <= 0x27: // 0010 01nn: Storage interval
		return ValueType{Kind: KindStorageInterval, Duration: decodeDurationNN(value)}
	case value == 0x28:
		return ValueType{Kind: KindDurationSinceLastReadout, Duration: DurationSeconds}
	case value == 0x29:
		return ValueType{Kind: KindDurationSinceLastReadout, Duration: DurationMinutes}
	case value == 0x2A:
		return ValueType{Kind: KindDurationSinceLastReadout, Duration: DurationHours}
	case value == 0x2B:
		return ValueType{Kind: KindDurationSinceLastReadout, Duration: DurationDays}
	case value == 0x2C, value == 0x2D: // 0010 110n: Start of tariff
		return ValueType{Kind: KindTariffStart}
	case value == 0x2E, value == 0x2F: // 0010 111n: Duration of tariff
		return ValueType{Kind: KindTariffDuration, Duration: decodeDurationPP(value)}
	case value >= 0x30 && value <= 0x33: // 0011 00nn: Period of tariff
		return ValueType{Kind: KindTariffPeriod, Duration: decodeDurationPP(value)}
	default:
		return ValueType{Kind: KindReservedCode, ReservedTable: 12, ReservedRaw: value}
	}
}

// parseTable13 decodes the alternate extension VIFE table (EN 13757-3
// Annex A Table 13, reached only via a 0x7D VIF whose first VIFE is
// itself 0x7D): reactive/apparent energy, per-phase voltage/current,
// and frequency.
func parseTable13(value byte) ValueType {
	switch {
	case value <= 0x07: // 0000 0nnn: Reactive Energy, 10^(nnn-3) VARh
		return ValueType{Kind: KindReactiveEnergy, Unit: UnitVARh, Exponent: int8(value&0x07) - 3}
	case value <= 0x0F: // 0000 1nnn: Apparent Energy, 10^(nnn-3) VAh
		return ValueType{Kind: KindApparentEnergy, Unit: UnitVAh, Exponent: int8(value&0x07) - 3}
	case value <= 0x5F && value >= 0x40: // 0100 0nnn .. 0101 1nnn: Voltage, 10^(nnn-9) V
		return ValueType{Kind: KindVoltage, Unit: UnitV, Exponent: int8(value&0x0F) - 9}
	case value <= 0x6F && value >= 0x60: // 0110 0nnn .. 0110 1nnn: Current, 10^(nnn-12) A
		return ValueType{Kind: KindCurrent, Unit: UnitA, Exponent: int8(value&0x0F) - 12}
	case value == 0x70:
		return ValueType{Kind: KindPhaseVoltageToVoltage}
	case value == 0x71:
		return ValueType{Kind: KindPhaseVoltageToCurrent}
	case value == 0x74: // 0111 0100: Frequency, 10^(-3) Hz
		return ValueType{Kind: KindFrequency, Unit: UnitHz, Exponent: -3}
	default:
		return ValueType{Kind: KindReservedCode, ReservedTable: 13, ReservedRaw: value}
	}
}

// parseTable14 decodes the second-level extension VIFE table (EN
// 13757-3 Annex A Table 14, reached via a 0x7D VIF whose first VIFE is
// not 0x7D): remaining battery life and the selected-application
// marker.
func parseTable14(value byte) ValueType {
	switch {
	case value == 0x00:
		return ValueType{Kind: KindRemainingBatteryLife}
	case value == 0x01:
		return ValueType{Kind: KindOperatingTimeBattery}
	case value == 0x02:
		return ValueType{Kind: KindDateTimeBatteryChange}
	case value == 0x03:
		return ValueType{Kind: KindSelectedApplication}
	default:
		return ValueType{Kind: KindReservedCode, ReservedTable: 14, ReservedRaw: value}
	}
}
