// Package bitio implements the bit/byte cursor the M-Bus record decoders
// share: DIB and VIB fields are bit-packed and must be read MSB-first
// within each byte, while the surrounding frame layers only ever need
// whole bytes. The cursor tracks both a byte offset and an in-byte bit
// offset and enforces that byte-granularity reads only happen when the
// bit offset is back at zero, mirroring the pattern asdu.ASDU uses for
// its own mutable-slice Append/Decode pairs, generalized down to bits.
package bitio

import "github.com/meterkit/go-mbus/mbuserr"

// Cursor reads bits and bytes left to right out of a fixed buffer.
type Cursor struct {
	buf    []byte
	byteAt int
	bitAt  uint8 // 0 == next read starts at the MSB of buf[byteAt]
}

// New wraps buf in a Cursor starting at the first bit of the first byte.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Aligned reports whether the cursor currently sits on a byte boundary.
func (c *Cursor) Aligned() bool {
	return c.bitAt == 0
}

// Remaining returns the bytes not yet consumed. It is only meaningful
// when Aligned(); a partially-consumed byte is not included.
func (c *Cursor) Remaining() []byte {
	return c.buf[c.byteAt:]
}

// Len returns the number of whole bytes left.
func (c *Cursor) Len() int {
	return len(c.buf) - c.byteAt
}

// AtEOF reports whether every byte has been consumed.
func (c *Cursor) AtEOF() bool {
	return c.byteAt >= len(c.buf) && c.bitAt == 0
}

// RequireAligned fails with Structural/"byte alignment" if mid-byte.
func (c *Cursor) RequireAligned(label string) error {
	if !c.Aligned() {
		return mbuserr.New(mbuserr.Structural, "byte alignment").WithContext(label)
	}
	return nil
}

// Bit reads a single bit, most-significant first.
func (c *Cursor) Bit() (bool, error) {
	if c.byteAt >= len(c.buf) {
		return false, mbuserr.New(mbuserr.Structural, "unexpected end of input")
	}
	bit := (c.buf[c.byteAt] >> (7 - c.bitAt) & 1) == 1
	c.bitAt++
	if c.bitAt == 8 {
		c.bitAt = 0
		c.byteAt++
	}
	return bit, nil
}

// Bits reads n (0..=64) bits, most-significant first, and returns them
// right-aligned in the result.
func (c *Cursor) Bits(n int) (uint64, error) {
	var v uint64
	for i := 0; i < n; i++ {
		bit, err := c.Bit()
		if err != nil {
			return 0, err
		}
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v, nil
}

// Byte reads one whole byte. The cursor must be byte-aligned.
func (c *Cursor) Byte() (byte, error) {
	if err := c.RequireAligned("byte read"); err != nil {
		return 0, err
	}
	if c.byteAt >= len(c.buf) {
		return 0, mbuserr.New(mbuserr.Structural, "unexpected end of input")
	}
	b := c.buf[c.byteAt]
	c.byteAt++
	return b, nil
}

// PeekByte returns the next byte without consuming it. The cursor must be
// byte-aligned.
func (c *Cursor) PeekByte() (byte, error) {
	if err := c.RequireAligned("byte peek"); err != nil {
		return 0, err
	}
	if c.byteAt >= len(c.buf) {
		return 0, mbuserr.New(mbuserr.Structural, "unexpected end of input")
	}
	return c.buf[c.byteAt], nil
}

// Bytes reads n whole bytes. The cursor must be byte-aligned.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.RequireAligned("byte read"); err != nil {
		return nil, err
	}
	if c.byteAt+n > len(c.buf) {
		return nil, mbuserr.New(mbuserr.Structural, "unexpected end of input")
	}
	out := make([]byte, n)
	copy(out, c.buf[c.byteAt:c.byteAt+n])
	c.byteAt += n
	return out, nil
}

// PeekBytes returns the next n bytes without consuming them.
func (c *Cursor) PeekBytes(n int) ([]byte, error) {
	if err := c.RequireAligned("byte peek"); err != nil {
		return nil, err
	}
	if c.byteAt+n > len(c.buf) {
		return nil, mbuserr.New(mbuserr.Structural, "unexpected end of input")
	}
	return c.buf[c.byteAt : c.byteAt+n], nil
}
