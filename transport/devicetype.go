package transport

// DeviceType is the long-header device-type (medium) byte, a 256-entry
// code space (EN 13757-3 Annex A). The named values below cover every
// water/heat/gas/electricity variant, system device, and reserved range
// Annex A lists, plus the wildcard 0xFF. Unrecognised bytes decode to a
// "reserved" name rather than failing — a 256-entry enum admits reserved
// ranges, it doesn't reject them.
type DeviceType struct {
	Code byte
	Name string
}

var deviceTypeNames = map[byte]string{
	0x00: "other",
	0x01: "oil meter",
	0x02: "electricity meter",
	0x03: "gas meter",
	0x04: "heat meter (outlet)",
	0x05: "steam meter",
	0x06: "warm water meter",
	0x07: "water meter",
	0x08: "heat cost allocator",
	0x09: "compressed air",
	0x0A: "cooling meter (outlet)",
	0x0B: "cooling meter (inlet)",
	0x0C: "heat meter (inlet)",
	0x0D: "heat/cooling meter combined",
	0x0E: "bus/system component",
	0x0F: "unknown medium",
	0x10: "reserved for metering",
	0x11: "reserved for metering",
	0x12: "reserved for metering",
	0x13: "reserved for metering",
	0x14: "calorific value",
	0x15: "hot water meter",
	0x16: "cold water meter",
	0x17: "dual register water meter",
	0x18: "pressure meter",
	0x19: "A/D converter",
	0x1A: "smoke detector",
	0x1B: "room sensor (temperature/humidity)",
	0x1C: "gas detector",
	0x1D: "reserved sensor",
	0x1E: "reserved sensor",
	0x1F: "electrical breaker",
	0x20: "valve (gas or water)",
	0x21: "reserved switching device",
	0x22: "reserved switching device",
	0x23: "reserved switching device",
	0x24: "customer unit (display device)",
	0x25: "reserved customer unit",
	0x26: "reserved customer unit",
	0x27: "waste water meter",
	0x28: "garbage",
	0x29: "reserved CO2",
	0x2A: "reserved environmental",
	0x2B: "reserved environmental",
	0x2C: "reserved environmental",
	0x2D: "reserved environmental",
	0x2E: "reserved environmental",
	0x2F: "reserved environmental",
	0x30: "service tool",
	0x31: "gas concentration",
	0x32: "communication controller (gateway)",
	0x33: "unidirectional repeater",
	0x34: "bidirectional repeater",
	0x35: "reserved system device",
	0x36: "reserved system device",
	0x37: "radio converter (system side)",
	0x38: "radio converter (meter side)",
	0x39: "bus converter (meter side)",
	0xFF: "wildcard",
}

// ParseDeviceType looks the byte up in the named table, falling back to a
// reserved-range classification for everything else.
func ParseDeviceType(b byte) DeviceType {
	if name, ok := deviceTypeNames[b]; ok {
		return DeviceType{Code: b, Name: name}
	}
	return DeviceType{Code: b, Name: "reserved"}
}

// Value returns the wire byte.
func (d DeviceType) Value() byte {
	return d.Code
}

func (d DeviceType) String() string {
	return d.Name
}
