package bitio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestByteAlignedReadsAdvance(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03})

	b, err := c.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)

	rest, err := c.Bytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x03}, rest)
	assert.True(t, c.AtEOF())
}

func TestPeekDoesNotConsume(t *testing.T) {
	c := New([]byte{0xAA, 0xBB})

	b, err := c.PeekByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), b)

	b, err = c.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), b, "peek must not have consumed the byte")

	bs, err := c.PeekBytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xBB}, bs)
	assert.Equal(t, 1, c.Len())
}

func TestBitsReadMSBFirst(t *testing.T) {
	c := New([]byte{0b1011_0000})

	v, err := c.Bits(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b1011), v)

	v, err = c.Bits(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
	assert.True(t, c.AtEOF())
}

func TestBitReadsFlagBitByBit(t *testing.T) {
	c := New([]byte{0b1000_0001})
	var bits []bool
	for i := 0; i < 8; i++ {
		bit, err := c.Bit()
		require.NoError(t, err)
		bits = append(bits, bit)
	}
	assert.Equal(t, []bool{true, false, false, false, false, false, false, true}, bits)
}

func TestByteMisalignmentReportsStructural(t *testing.T) {
	c := New([]byte{0xFF, 0x00})
	_, err := c.Bit()
	require.NoError(t, err)

	_, err = c.Byte()
	require.Error(t, err)
}

func TestTruncatedReadFailsWithUnexpectedEndOfInput(t *testing.T) {
	c := New([]byte{0x01})
	_, err := c.Bytes(2)
	require.Error(t, err)

	_, err = New(nil).Byte()
	require.Error(t, err)
}

func TestRemainingAndLen(t *testing.T) {
	c := New([]byte{1, 2, 3, 4})
	_, err := c.Bytes(1)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []byte{2, 3, 4}, c.Remaining())
}

// Reading a buffer 8 bits at a time passes through the byte-aligned
// positions the DIB/VIB decoders rely on: consuming exactly 8*k bits
// always leaves the cursor aligned again.
func TestBitsConsumptionReturnsToAlignment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(t, "bytes")
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(rapid.IntRange(0, 255).Draw(t, "b"))
		}
		c := New(buf)
		for i := 0; i < n; i++ {
			_, err := c.Bits(8)
			require.NoError(t, err)
		}
		assert.True(t, c.Aligned())
		assert.True(t, c.AtEOF())
	})
}
