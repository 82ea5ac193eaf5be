package record

import (
	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/mbuserr"
)

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// windows1252High maps bytes 0x80-0x9F to their Windows-1252 code points;
// every other byte value maps onto the same Unicode code point as its
// value (Windows-1252 is ISO-8859-1 with this one block replaced). No
// third-party codepage table appears anywhere in the example pack, so
// this is a deliberate standard-library-only exception: the table is 32
// entries and not worth a new dependency for.
var windows1252High = [32]rune{
	0x20AC, 0x0081, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0x008D, 0x017D, 0x008F,
	0x0090, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0x009D, 0x017E, 0x0178,
}

func decodeWindows1252(raw []byte) string {
	r := make([]rune, len(raw))
	for i, b := range raw {
		if b >= 0x80 && b <= 0x9F {
			r[i] = windows1252High[b-0x80]
		} else {
			r[i] = rune(b)
		}
	}
	return string(r)
}

// ParseLatin1 consumes L bytes, decodes them as Windows-1252, and
// reverses the character order: EN 13757-3 carries string fields back
// to front on the wire.
func ParseLatin1(l int, c *bitio.Cursor) (string, error) {
	raw, err := c.Bytes(l)
	if err != nil {
		return "", err.(*mbuserr.Error).WithContext("latin-1 string")
	}
	return reverseString(decodeWindows1252(raw)), nil
}

func parseLengthPrefixASCII(c *bitio.Cursor) (string, error) {
	return ParseLengthPrefixASCII(c)
}

// ParseLengthPrefixASCII reads one length byte, then that many bytes,
// requiring valid UTF-8 (ASCII is expected), and reverses the character
// order. Used for the VIB plain-text VIF (0x7C).
func ParseLengthPrefixASCII(c *bitio.Cursor) (string, error) {
	length, err := c.Byte()
	if err != nil {
		return "", err.(*mbuserr.Error).WithContext("plain text length")
	}
	raw, err := c.Bytes(int(length))
	if err != nil {
		return "", err.(*mbuserr.Error).WithContext("plain text data")
	}
	if length > 0 && !isValidUTF8(raw) {
		return "", mbuserr.New(mbuserr.Value, "plain text data")
	}
	return reverseString(string(raw)), nil
}

func isValidUTF8(b []byte) bool {
	for _, r := range string(b) {
		if r == '�' {
			return false
		}
	}
	return true
}
