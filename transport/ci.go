package transport

import "github.com/meterkit/go-mbus/mbuserr"

// ClassifyHeaderShape maps a CI byte to the header shape it selects
// (EN 13757-3 Annex A's CI field table), failing reserved CI values with
// context "reserved CI field".
func ClassifyHeaderShape(ci byte) (HeaderShape, error) {
	switch {
	case isNoHeaderCI(ci):
		return HeaderNone, nil
	case isShortHeaderCI(ci):
		return HeaderShort, nil
	case isLongHeaderCI(ci):
		return HeaderLong, nil
	default:
		return 0, mbuserr.New(mbuserr.Structural, "reserved CI field")
	}
}

func isNoHeaderCI(ci byte) bool {
	switch {
	case ci <= 0x1F:
	case ci == 0x54, ci == 0x5C, ci == 0x66, ci == 0x69:
	case ci >= 0x70 && ci <= 0x71:
	case ci >= 0x78 && ci <= 0x79:
	case ci == 0x81, ci == 0x83, ci == 0x86, ci == 0x89:
	case ci >= 0x8C && ci <= 0x90:
	case ci >= 0xA0 && ci <= 0xBF:
	default:
		return false
	}
	return true
}

func isShortHeaderCI(ci byte) bool {
	switch ci {
	case 0x5A, 0x61, 0x65, 0x67, 0x6A, 0x6E, 0x74, 0x7A, 0x7B, 0x7D, 0x88, 0x8A, 0x9E, 0xC1, 0xC4:
		return true
	default:
		return false
	}
}

func isLongHeaderCI(ci byte) bool {
	if ci < 0x50 || ci > 0xC5 {
		return false
	}
	return !isNoHeaderCI(ci) && !isShortHeaderCI(ci)
}
