package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseMeterStatusRoundTrips(t *testing.T) {
	b := byte(0b1011_1001)
	s := ParseMeterStatus(b)
	assert.Equal(t, [3]bool{true, false, true}, s.ManufacturerBits)
	assert.True(t, s.TemporaryError)
	assert.True(t, s.PermanentError)
	assert.False(t, s.PowerLow)
	assert.Equal(t, ApplicationState(1), s.Application)
	assert.Equal(t, b, s.Value())
}

func TestApplicationStateString(t *testing.T) {
	assert.Equal(t, "none", ApplicationNone.String())
	assert.Equal(t, "busy", ApplicationBusy.String())
	assert.Equal(t, "error", ApplicationError.String())
	assert.Equal(t, "alarm", ApplicationAlarm.String())
}

func TestParseSecurityModeNone(t *testing.T) {
	sm, err := ParseSecurityMode(0)
	require.NoError(t, err)
	assert.True(t, sm.IsNone())
}

func TestParseSecurityModeReservedIsAdmitted(t *testing.T) {
	// mode=6 packed into bits 15-11
	raw := uint16(6) << 11
	sm, err := ParseSecurityMode(raw)
	require.NoError(t, err)
	assert.True(t, sm.Reserved)
	assert.False(t, sm.IsNone())
}

func TestParseSecurityModeUnsupportedFails(t *testing.T) {
	// mode=1 (AES, not carved out as reserved, not implemented)
	raw := uint16(1) << 11
	_, err := ParseSecurityMode(raw)
	require.Error(t, err)
}

func TestParseShortHeaderTooShort(t *testing.T) {
	_, _, err := ParseShortHeader([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestParseShortHeaderConsumesFourBytes(t *testing.T) {
	h, n, err := ParseShortHeader([]byte{0x05, 0x00, 0x00, 0x00, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, byte(0x05), h.AccessNumber)
	assert.Nil(t, h.ExtraHeader)
}

func TestParseShortHeaderSecurityImpliesExtraHeader(t *testing.T) {
	raw := uint16(6) << 11
	buf := []byte{0x00, 0x00, byte(raw), byte(raw >> 8)}
	h, _, err := ParseShortHeader(buf)
	require.NoError(t, err)
	require.NotNil(t, h.ExtraHeader)
}

func bcdBytes(v uint32) [4]byte {
	var out [4]byte
	for i := 0; i < 4; i++ {
		digitLo := v % 10
		v /= 10
		digitHi := v % 10
		v /= 10
		out[i] = byte(digitHi<<4 | digitLo)
	}
	return out
}

func TestParseLongHeaderDecodesBCDIdentifier(t *testing.T) {
	id := bcdBytes(12345678)
	buf := append([]byte{}, id[:]...)
	buf = append(buf, 0x01, 0x02) // manufacturer LBC = PackManufacturerCode("LBC")
	code := PackManufacturerCode("LBC")
	buf[4] = byte(code)
	buf[5] = byte(code >> 8)
	buf = append(buf, 0x01, 0x02) // version, device type
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)

	h, n, err := ParseLongHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(12345678), h.Identifier)
	assert.Equal(t, "LBC", h.Manufacturer)
	assert.Equal(t, byte(0x01), h.Version)
	assert.Equal(t, 12, n)
}

func TestParseLongHeaderInvalidBCDNibble(t *testing.T) {
	buf := []byte{0xFA, 0x00, 0x00, 0x00, 0x01, 0x02, 0x01, 0x02, 0x00, 0x00, 0x00, 0x00}
	_, _, err := ParseLongHeader(buf)
	require.Error(t, err)
}

func TestParseLongHeaderSBCVersionSubstitution(t *testing.T) {
	id := bcdBytes(1)
	id[3] = 0x42 // effective version for SBC-coded devices
	buf := append([]byte{}, id[:]...)
	code := PackManufacturerCode("SBC")
	buf = append(buf, byte(code), byte(code>>8))
	buf = append(buf, 0x01 /* ignored version byte */, 0x02)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00)

	h, _, err := ParseLongHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), h.Version)
}

func TestBCDIdentifierRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := uint32(rapid.IntRange(0, 99999999).Draw(t, "id"))
		raw := bcdBytes(v)
		got, err := decodeIdentifierBCD(raw)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	})
}
