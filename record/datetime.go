package record

import (
	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/mbuserr"
)

// TypeGDate is the 2-byte packed {year, day, month} date (EN 13757-3 §4.2.4).
type TypeGDate struct {
	Day   uint8
	Month uint8
	Year  uint8
}

// TypeFDateTime is the 4-byte packed date-time with DST and century
// fields.
type TypeFDateTime struct {
	Minute      uint8
	Hour        uint8
	Day         uint8
	Month       uint8
	Year        uint8
	HundredYear uint8
	InDST       bool
}

// TypeIDateTime is the 6-byte packed date-time with day-of-week, ISO
// week number, and a signed DST offset.
type TypeIDateTime struct {
	Second     uint8
	Minute     uint8
	Hour       uint8
	Day        uint8
	Month      uint8
	Year       uint8
	DayOfWeek  uint8
	Week       uint8
	InDST      bool
	LeapYear   bool
	DSTOffset  int8
}

// TypeJTime is the 3-byte packed time of day (no date component).
type TypeJTime struct {
	Second uint8
	Minute uint8
	Hour   uint8
}

// TypeKDST is the 4-byte packed DST transition schedule.
type TypeKDST struct {
	StartsHour     uint8
	StartsDay      uint8
	StartsMonth    uint8
	EndsDay        uint8
	EndsMonth      uint8
	Enable         bool
	DSTDeviation   int8
	LocalDeviation uint8
}

func bitsCtx(c *bitio.Cursor, n int, label string) (uint64, error) {
	v, err := c.Bits(n)
	if err != nil {
		return 0, err.(*mbuserr.Error).WithContext(label)
	}
	return v, nil
}

func verifyRange(v uint64, label string, lo, hi uint64, tolerances ...uint64) error {
	if v >= lo && v <= hi {
		return nil
	}
	for _, t := range tolerances {
		if v == t {
			return nil
		}
	}
	return mbuserr.New(mbuserr.Value, label)
}

// parseDMY reads the shared 16-bit {year_upper(3), day(5), year_lower(4),
// month(4)} date fields used by Type G, F, and I. It peeks the full 16
// bits first: a raw value of 0xFFFF is the documented "no date" sentinel
// and fails with context "invalid check" before the individual field
// checks run.
func parseDMY(c *bitio.Cursor) (day, month, year uint8, err error) {
	peeked, perr := c.PeekBytes(2)
	if perr != nil {
		return 0, 0, 0, perr.(*mbuserr.Error).WithContext("invalid check")
	}
	if peeked[0] == 0xFF && peeked[1] == 0xFF {
		return 0, 0, 0, mbuserr.New(mbuserr.Value, "invalid check")
	}

	yu, e := bitsCtx(c, 3, "year (upper)")
	if e != nil {
		return 0, 0, 0, e
	}
	d, e := bitsCtx(c, 5, "day")
	if e != nil {
		return 0, 0, 0, e
	}
	if e := verifyRange(d, "day", 0, 31); e != nil {
		return 0, 0, 0, e
	}
	yl, e := bitsCtx(c, 4, "year (lower)")
	if e != nil {
		return 0, 0, 0, e
	}
	m, e := bitsCtx(c, 4, "month")
	if e != nil {
		return 0, 0, 0, e
	}
	if e := verifyRange(m, "month", 1, 12, 15); e != nil {
		return 0, 0, 0, e
	}

	y := yu + (uint64(yl) << 3)
	if e := verifyRange(y, "year", 0, 99, 127); e != nil {
		return 0, 0, 0, e
	}

	return uint8(d), uint8(m), uint8(y), nil
}

// ParseTypeGDate decodes the 2-byte Type G date.
func ParseTypeGDate(c *bitio.Cursor) (TypeGDate, error) {
	day, month, year, err := parseDMY(c)
	if err != nil {
		return TypeGDate{}, err
	}
	return TypeGDate{Day: day, Month: month, Year: year}, nil
}

// ParseTypeFDateTime decodes the 4-byte Type F date-time.
func ParseTypeFDateTime(c *bitio.Cursor) (TypeFDateTime, error) {
	invalid, err := c.Bit()
	if err != nil {
		return TypeFDateTime{}, err.(*mbuserr.Error).WithContext("invalid bit")
	}
	if invalid {
		return TypeFDateTime{}, mbuserr.New(mbuserr.Value, "invalid bit")
	}
	reserved, err := c.Bit()
	if err != nil {
		return TypeFDateTime{}, err.(*mbuserr.Error).WithContext("reserved")
	}
	if reserved {
		return TypeFDateTime{}, mbuserr.New(mbuserr.Value, "reserved")
	}
	minute, err := bitsCtx(c, 6, "minute")
	if err != nil {
		return TypeFDateTime{}, err
	}
	if err := verifyRange(minute, "minute", 0, 59, 63); err != nil {
		return TypeFDateTime{}, err
	}
	inDST, err := c.Bit()
	if err != nil {
		return TypeFDateTime{}, err.(*mbuserr.Error).WithContext("in_dst")
	}
	hundredYear, err := bitsCtx(c, 2, "hundred year")
	if err != nil {
		return TypeFDateTime{}, err
	}
	hour, err := bitsCtx(c, 5, "hour")
	if err != nil {
		return TypeFDateTime{}, err
	}
	if err := verifyRange(hour, "hour", 0, 23, 31); err != nil {
		return TypeFDateTime{}, err
	}
	day, month, year, err := parseDMY(c)
	if err != nil {
		return TypeFDateTime{}, err
	}

	hy := uint8(hundredYear)
	// EN 13757-3:2018 Annex A footnote: a zero century with a year in
	// 0..=80 means the missing century is the first one, not the zeroth.
	if hy == 0 && year <= 80 {
		hy = 1
	}

	return TypeFDateTime{
		Minute:      uint8(minute),
		Hour:        uint8(hour),
		Day:         day,
		Month:       month,
		Year:        year,
		HundredYear: hy,
		InDST:       inDST,
	}, nil
}

// ParseTypeIDateTime decodes the 6-byte Type I date-time.
func ParseTypeIDateTime(c *bitio.Cursor) (TypeIDateTime, error) {
	leapYear, err := c.Bit()
	if err != nil {
		return TypeIDateTime{}, err.(*mbuserr.Error).WithContext("leap year")
	}
	inDST, err := c.Bit()
	if err != nil {
		return TypeIDateTime{}, err.(*mbuserr.Error).WithContext("in dst")
	}
	second, err := bitsCtx(c, 6, "second")
	if err != nil {
		return TypeIDateTime{}, err
	}
	if err := verifyRange(second, "second", 0, 59, 63); err != nil {
		return TypeIDateTime{}, err
	}
	invalid, err := c.Bit()
	if err != nil {
		return TypeIDateTime{}, err.(*mbuserr.Error).WithContext("invalid check")
	}
	if invalid {
		return TypeIDateTime{}, mbuserr.New(mbuserr.Value, "invalid check")
	}
	dstPlus, err := c.Bit()
	if err != nil {
		return TypeIDateTime{}, err.(*mbuserr.Error).WithContext("dst ±")
	}
	minute, err := bitsCtx(c, 6, "minute")
	if err != nil {
		return TypeIDateTime{}, err
	}
	if err := verifyRange(minute, "minute", 0, 59, 63); err != nil {
		return TypeIDateTime{}, err
	}
	dayOfWeek, err := bitsCtx(c, 3, "day of week")
	if err != nil {
		return TypeIDateTime{}, err
	}
	hour, err := bitsCtx(c, 5, "hour")
	if err != nil {
		return TypeIDateTime{}, err
	}
	if err := verifyRange(hour, "hour", 0, 23, 31); err != nil {
		return TypeIDateTime{}, err
	}
	day, month, year, err := parseDMY(c)
	if err != nil {
		return TypeIDateTime{}, err
	}
	dstOffset, err := bitsCtx(c, 2, "dst offset")
	if err != nil {
		return TypeIDateTime{}, err
	}
	week, err := bitsCtx(c, 6, "week")
	if err != nil {
		return TypeIDateTime{}, err
	}
	if err := verifyRange(week, "week", 0, 53); err != nil {
		return TypeIDateTime{}, err
	}

	signedOffset := int8(dstOffset)
	if !dstPlus {
		signedOffset = -signedOffset
	}

	return TypeIDateTime{
		Second:    uint8(second),
		Minute:    uint8(minute),
		Hour:      uint8(hour),
		Day:       day,
		Month:     month,
		Year:      year,
		DayOfWeek: uint8(dayOfWeek),
		Week:      uint8(week),
		InDST:     inDST,
		LeapYear:  leapYear,
		DSTOffset: signedOffset,
	}, nil
}

// ParseTypeJTime decodes the 3-byte Type J time of day. A raw 0xFFFFFF
// is the "no time" sentinel and must fail under the "invalid check"
// context rather than the padding checks below, so the sentinel is
// peeked first the way parseDMY already does for the date types.
func ParseTypeJTime(c *bitio.Cursor) (TypeJTime, error) {
	peeked, perr := c.PeekBytes(3)
	if perr != nil {
		return TypeJTime{}, perr.(*mbuserr.Error).WithContext("invalid check")
	}
	if peeked[0] == 0xFF && peeked[1] == 0xFF && peeked[2] == 0xFF {
		return TypeJTime{}, mbuserr.New(mbuserr.Value, "invalid check")
	}

	if _, err := verify0(c, 2, "padding"); err != nil {
		return TypeJTime{}, err
	}
	second, err := bitsCtx(c, 6, "second")
	if err != nil {
		return TypeJTime{}, err
	}
	if err := verifyRange(second, "second", 0, 59, 63); err != nil {
		return TypeJTime{}, err
	}
	if _, err := verify0(c, 2, "padding"); err != nil {
		return TypeJTime{}, err
	}
	minute, err := bitsCtx(c, 6, "minute")
	if err != nil {
		return TypeJTime{}, err
	}
	if err := verifyRange(minute, "minute", 0, 59, 63); err != nil {
		return TypeJTime{}, err
	}
	if _, err := verify0(c, 3, "padding"); err != nil {
		return TypeJTime{}, err
	}
	hour, err := bitsCtx(c, 5, "hour")
	if err != nil {
		return TypeJTime{}, err
	}
	if err := verifyRange(hour, "hour", 0, 23, 31); err != nil {
		return TypeJTime{}, err
	}

	return TypeJTime{Second: uint8(second), Minute: uint8(minute), Hour: uint8(hour)}, nil
}

func verify0(c *bitio.Cursor, n int, label string) (uint64, error) {
	v, err := bitsCtx(c, n, label)
	if err != nil {
		return 0, err
	}
	if v != 0 {
		return 0, mbuserr.New(mbuserr.Value, label)
	}
	return v, nil
}

// ParseTypeKDST decodes the 4-byte DST transition schedule.
func ParseTypeKDST(c *bitio.Cursor) (TypeKDST, error) {
	gmtUpper, err := bitsCtx(c, 3, "gmt deviation upper")
	if err != nil {
		return TypeKDST{}, err
	}
	startsHour, err := bitsCtx(c, 5, "hour begins")
	if err != nil {
		return TypeKDST{}, err
	}
	if err := verifyRange(startsHour, "hour begins", 0, 23, 31); err != nil {
		return TypeKDST{}, err
	}
	enable, err := c.Bit()
	if err != nil {
		return TypeKDST{}, err.(*mbuserr.Error).WithContext("enable")
	}
	gmtLower, err := bitsCtx(c, 2, "gmt deviation lower")
	if err != nil {
		return TypeKDST{}, err
	}
	startsDay, err := bitsCtx(c, 5, "day begins")
	if err != nil {
		return TypeKDST{}, err
	}
	if err := verifyRange(startsDay, "day begins", 1, 31); err != nil {
		return TypeKDST{}, err
	}
	dstPlus, err := c.Bit()
	if err != nil {
		return TypeKDST{}, err.(*mbuserr.Error).WithContext("dst ±")
	}
	dstDeviation, err := bitsCtx(c, 2, "dst deviation hours")
	if err != nil {
		return TypeKDST{}, err
	}
	endsDay, err := bitsCtx(c, 5, "day ends")
	if err != nil {
		return TypeKDST{}, err
	}
	if err := verifyRange(endsDay, "day ends", 1, 31); err != nil {
		return TypeKDST{}, err
	}
	endsMonth, err := bitsCtx(c, 4, "month ends")
	if err != nil {
		return TypeKDST{}, err
	}
	if err := verifyRange(endsMonth, "month ends", 1, 12); err != nil {
		return TypeKDST{}, err
	}
	startsMonth, err := bitsCtx(c, 4, "month begins")
	if err != nil {
		return TypeKDST{}, err
	}
	if err := verifyRange(startsMonth, "month begins", 1, 12); err != nil {
		return TypeKDST{}, err
	}

	signedDeviation := int8(dstDeviation)
	if !dstPlus {
		signedDeviation = -signedDeviation
	}
	localDeviation := uint8(gmtLower) + uint8(gmtUpper<<3)
	if err := verifyRange(uint64(localDeviation), "gmt deviation upper", 0, 23, 31); err != nil {
		return TypeKDST{}, err
	}

	return TypeKDST{
		StartsHour:     uint8(startsHour),
		StartsDay:      uint8(startsDay),
		StartsMonth:    uint8(startsMonth),
		EndsDay:        uint8(endsDay),
		EndsMonth:      uint8(endsMonth),
		Enable:         enable,
		DSTDeviation:   signedDeviation,
		LocalDeviation: localDeviation,
	}, nil
}
