package transport

import "github.com/meterkit/go-mbus/mbuserr"

// BaudRate enumerates the SetBaudRate command's argument (EN 13757-3
// Annex A, CI 0xB8..=0xBF).
type BaudRate int

const (
	Baud300 BaudRate = iota
	Baud600
	Baud1200
	Baud2400
	Baud4800
	Baud9600
	Baud19200
	Baud38400
)

func (b BaudRate) Int() int {
	switch b {
	case Baud300:
		return 300
	case Baud600:
		return 600
	case Baud1200:
		return 1200
	case Baud2400:
		return 2400
	case Baud4800:
		return 4800
	case Baud9600:
		return 9600
	case Baud19200:
		return 19200
	case Baud38400:
		return 38400
	default:
		return 0
	}
}

// ParseBaudRate maps a CI byte in 0xB8..=0xBF to its BaudRate.
func ParseBaudRate(ci byte) (BaudRate, error) {
	switch ci {
	case 0xB8:
		return Baud300, nil
	case 0xB9:
		return Baud600, nil
	case 0xBA:
		return Baud1200, nil
	case 0xBB:
		return Baud2400, nil
	case 0xBC:
		return Baud4800, nil
	case 0xBD:
		return Baud9600, nil
	case 0xBE:
		return Baud19200, nil
	case 0xBF:
		return Baud38400, nil
	default:
		return 0, mbuserr.New(mbuserr.Structural, "baud rate CI")
	}
}
