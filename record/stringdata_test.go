package record

import (
	"testing"

	"github.com/meterkit/go-mbus/bitio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLatin1ReversesAndDecodesHighBytes(t *testing.T) {
	// Wire order "C\x80A" decodes Windows-1252 0x80 as EURO SIGN, then
	// reverses to "A€C".
	s, err := ParseLatin1(3, bitio.New([]byte{'C', 0x80, 'A'}))
	require.NoError(t, err)
	assert.Equal(t, "A€C", s)
}

func TestParseLatin1PlainASCIIReverses(t *testing.T) {
	s, err := ParseLatin1(3, bitio.New([]byte{'C', 'B', 'A'}))
	require.NoError(t, err)
	assert.Equal(t, "ABC", s)
}

func TestParseLatin1TruncatedFails(t *testing.T) {
	_, err := ParseLatin1(3, bitio.New([]byte{'A'}))
	require.Error(t, err)
}

func TestParseLengthPrefixASCIIReverses(t *testing.T) {
	s, err := ParseLengthPrefixASCII(bitio.New([]byte{3, 'C', 'B', 'A'}))
	require.NoError(t, err)
	assert.Equal(t, "ABC", s)
}

func TestParseLengthPrefixASCIIZeroLength(t *testing.T) {
	s, err := ParseLengthPrefixASCII(bitio.New([]byte{0}))
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestParseLengthPrefixASCIIInvalidUTF8Fails(t *testing.T) {
	_, err := ParseLengthPrefixASCII(bitio.New([]byte{1, 0xFF}))
	require.Error(t, err)
}

func TestReverseStringHandlesMultiByteRunes(t *testing.T) {
	assert.Equal(t, "cba", reverseString("abc"))
	assert.Equal(t, "€a", reverseString("a€"))
	assert.Equal(t, "", reverseString(""))
}
